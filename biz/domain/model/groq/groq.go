package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/xh-polaris/croply-core/biz/infrastructure/consts"
	"github.com/xh-polaris/croply-core/biz/infrastructure/util"
)

// 默认配置, 可被config覆盖
const (
	DefaultUrl   = "https://api.groq.com/openai/v1/chat/completions"
	DefaultModel = "llama-3.1-8b-instant"

	// 带上下文调用时最多回传的历史轮数
	historyLimit = 20
)

// message 是chat-completions协议的一条消息
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// caller 封装对Groq chat-completions接口的一次性调用
type caller struct {
	apiKey string
	url    string
	model  string
	header http.Header
}

func newCaller(apiKey, url, model string) *caller {
	if url == "" {
		url = DefaultUrl
	}
	if model == "" {
		model = DefaultModel
	}
	c := &caller{
		apiKey: apiKey,
		url:    url,
		model:  model,
		header: http.Header{},
	}
	c.header.Set("Authorization", "Bearer "+apiKey)
	c.header.Set("Content-Type", "application/json")
	return c
}

// call 发起一次对话补全
// jsonMode开启时要求模型输出JSON, 解析失败不报错, 原文落入raw_content
func (c *caller) call(ctx context.Context, system, user string, temperature float64,
	maxTokens int, jsonMode bool, history []message) (map[string]any, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("groq api key未配置")
	}

	messages := make([]message, 0, len(history)+2)
	messages = append(messages, message{Role: consts.RoleSystem, Content: system})
	// 只保留最近的历史轮次, 控制token
	if n := len(history); n > historyLimit {
		history = history[n-historyLimit:]
	}
	for _, m := range history {
		if (m.Role == consts.RoleUser || m.Role == consts.RoleAssistant) && m.Content != "" {
			messages = append(messages, m)
		}
	}
	messages = append(messages, message{Role: consts.RoleUser, Content: user})

	body := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": temperature,
		"max_tokens":  maxTokens,
	}
	if jsonMode {
		body["response_format"] = map[string]string{"type": "json_object"}
	}

	client := util.GetHttpClient()
	res, err := client.Req(consts.Post, c.url, c.header, body)
	if err != nil {
		return nil, err
	}
	content, err := extractContent(res)
	if err != nil {
		return nil, err
	}

	if jsonMode {
		var parsed map[string]any
		if err = json.Unmarshal([]byte(content), &parsed); err != nil {
			return map[string]any{"raw_content": content}, nil
		}
		return parsed, nil
	}
	return map[string]any{"response": content}, nil
}

// extractContent 取choices[0].message.content
func extractContent(res map[string]any) (string, error) {
	choices, ok := res["choices"].([]any)
	if !ok || len(choices) == 0 {
		return "", fmt.Errorf("响应缺少choices")
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return "", fmt.Errorf("choices形态异常")
	}
	msg, ok := first["message"].(map[string]any)
	if !ok {
		return "", fmt.Errorf("响应缺少message")
	}
	content, ok := msg["content"].(string)
	if !ok {
		return "", fmt.Errorf("响应缺少content")
	}
	return content, nil
}
