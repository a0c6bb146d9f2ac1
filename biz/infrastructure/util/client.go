package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
)

var client *HttpClient

// HttpClient 是一个简单的 HTTP 客户端
type HttpClient struct {
	Client *http.Client
}

// NewHttpClient 创建一个新的 HttpClient 实例
func NewHttpClient() *HttpClient {
	return &HttpClient{
		Client: &http.Client{},
	}
}

// GetHttpClient 获取客户端单例
func GetHttpClient() *HttpClient {
	if client == nil {
		client = NewHttpClient()
	}
	return client
}

// Req 发送 HTTP 请求, 返回反序列化后的响应体
func (c *HttpClient) Req(method, url string, headers http.Header, body interface{}) (map[string]interface{}, error) {
	// 将 body 序列化为 JSON
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("请求体序列化失败: %w", err)
	}
	return c.do(method, url, headers, bytes.NewBuffer(bodyBytes))
}

// ReqFile 上传文件, multipart/form-data编码, fields为附加表单项
func (c *HttpClient) ReqFile(url string, field, filename string, file []byte, fields map[string]string) (map[string]interface{}, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("构造表单失败: %w", err)
	}
	if _, err = fw.Write(file); err != nil {
		return nil, fmt.Errorf("写入文件失败: %w", err)
	}
	for k, v := range fields {
		if err = w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("写入表单项失败: %w", err)
		}
	}
	if err = w.Close(); err != nil {
		return nil, err
	}

	headers := http.Header{}
	headers.Set("Content-Type", w.FormDataContentType())
	return c.do("POST", url, headers, &buf)
}

// do 实际执行请求并读取响应
func (c *HttpClient) do(method, url string, headers http.Header, body io.Reader) (map[string]interface{}, error) {
	// 创建新的请求
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	// 设置请求头
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	// 发送请求
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("发送请求失败: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Printf("关闭请求失败: %v", closeErr)
		}
	}()

	// 检查响应状态码
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_resp, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, response body: %s", resp.StatusCode, _resp)
	}

	// 读取响应
	_resp, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	// 反序列化响应体
	var respMap map[string]interface{}
	if err := json.Unmarshal(_resp, &respMap); err != nil {
		return nil, fmt.Errorf("反序列化响应失败: %w", err)
	}

	return respMap, nil
}
