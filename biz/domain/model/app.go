package model

import (
	"context"

	"github.com/xh-polaris/croply-core/biz/application/dto"
)

// ChatApp 是第三方对话大模型应用的抽象
type ChatApp interface {
	// Converse 带上下文调用, history按原始顺序只含role/content
	// 返回原始载荷, 由调用方经规范化提取展示文本
	Converse(ctx context.Context, message, language string, history []*dto.ChatContext) (map[string]any, error)

	// Close 关闭资源
	Close() error
}

// InfoApp 是第三方病害信息大模型应用的抽象
type InfoApp interface {
	// DiseaseInfo 获取结构化病害信息的原始载荷
	DiseaseInfo(ctx context.Context, class, language string) (map[string]any, error)

	// Close 关闭资源
	Close() error
}

// TipsApp 是第三方养护建议大模型应用的抽象
type TipsApp interface {
	// CareTips 获取养护建议的原始载荷
	CareTips(ctx context.Context, plantName, language string) (map[string]any, error)

	// Close 关闭资源
	Close() error
}

// PredictApp 是叶片识别模型服务的抽象
type PredictApp interface {
	// Predict 识别叶片图像, 返回类别与置信度
	Predict(ctx context.Context, image []byte, filename string) (*dto.Prediction, error)

	// Close 关闭资源
	Close() error
}
