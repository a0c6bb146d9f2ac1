package vision

import (
	"context"
	"fmt"
	"sync"

	"github.com/xh-polaris/croply-core/biz/application/dto"
	"github.com/xh-polaris/croply-core/biz/domain/model"
	"github.com/xh-polaris/croply-core/biz/infrastructure/config"
	"github.com/xh-polaris/croply-core/biz/infrastructure/util"
)

var _ model.PredictApp = (*VisionApp)(nil)

// VisionApp 调用叶片识别模型服务
// 模型推理部署在独立服务, 这里只做HTTP透传
type VisionApp struct {
	url string
}

// NewVisionApp 创建一个识别应用实例
func NewVisionApp(url string) model.PredictApp {
	return &VisionApp{url: url}
}

var (
	instance model.PredictApp
	once     sync.Once
)

// GetVisionApp 获取识别应用单例
func GetVisionApp() model.PredictApp {
	once.Do(func() {
		c := config.GetConfig()
		instance = NewVisionApp(c.Vision.Url)
	})
	return instance
}

// Predict 上传图像获取识别结果
func (app *VisionApp) Predict(ctx context.Context, image []byte, filename string) (*dto.Prediction, error) {
	client := util.GetHttpClient()
	res, err := client.ReqFile(app.url, "file", filename, image, nil)
	if err != nil {
		return nil, err
	}

	category, ok := res["category"].(string)
	if !ok {
		return nil, fmt.Errorf("识别响应缺少category")
	}
	confidence, ok := res["confidence"].(float64)
	if !ok {
		return nil, fmt.Errorf("识别响应缺少confidence")
	}
	return &dto.Prediction{Class: category, Confidence: confidence}, nil
}

// Close 释放相关资源
func (app *VisionApp) Close() error {
	return nil
}
