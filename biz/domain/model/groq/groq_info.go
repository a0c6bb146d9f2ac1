package groq

import (
	"context"
	"fmt"
	"sync"

	"github.com/xh-polaris/croply-core/biz/domain/model"
	"github.com/xh-polaris/croply-core/biz/infrastructure/config"
	"github.com/xh-polaris/croply-core/biz/infrastructure/util"
)

var _ model.InfoApp = (*GroqInfoApp)(nil)

// GroqInfoApp 是Groq病害信息分析应用
// 单次调用, 无需管理上下文, JSON模式输出
type GroqInfoApp struct {
	caller *caller
}

// NewGroqInfoApp 创建一个病害信息应用实例
func NewGroqInfoApp(apiKey, url, m string) model.InfoApp {
	return &GroqInfoApp{caller: newCaller(apiKey, url, m)}
}

var (
	infoInstance model.InfoApp
	infoOnce     sync.Once
)

// GetGroqInfoApp 获取病害信息应用单例
func GetGroqInfoApp() model.InfoApp {
	infoOnce.Do(func() {
		c := config.GetConfig()
		infoInstance = NewGroqInfoApp(c.Groq.ApiKey, c.Groq.Url, c.Groq.Model)
	})
	return infoInstance
}

// DiseaseInfo 获取结构化病害信息
// 返回原始载荷, 解析成规范形态由normalize负责
func (app *GroqInfoApp) DiseaseInfo(ctx context.Context, class, language string) (map[string]any, error) {
	cleanName := util.CleanClassName(class)

	system := fmt.Sprintf(
		"You are a plant pathology expert. Provide structured, scientifically accurate "+
			"information about plant diseases for agricultural professionals. "+
			"Respond entirely in %s.", language)

	user := fmt.Sprintf(`Provide detailed information about the plant disease '%s' in JSON format:

{
    "name": "Disease Name",
    "description": "Detailed scientific description of the disease",
    "symptoms": ["Symptom 1", "Symptom 2"],
    "causes": ["Cause 1", "Cause 2"],
    "treatment_options": [
        {"method": "Treatment", "description": "Details", "effectiveness": "High/Medium/Low"}
    ],
    "prevention": ["Prevention 1", "Prevention 2"]
}

Focus on practical, scientifically accurate information.`, cleanName)

	return app.caller.call(ctx, system, user, 0.3, 800, true, nil)
}

// Close 释放相关资源
func (app *GroqInfoApp) Close() error {
	return nil
}
