package groq

import (
	"context"
	"fmt"
	"sync"

	"github.com/xh-polaris/croply-core/biz/domain/model"
	"github.com/xh-polaris/croply-core/biz/infrastructure/config"
)

var _ model.TipsApp = (*GroqTipsApp)(nil)

// GroqTipsApp 是Groq养护建议应用
// 单次调用, 无需管理上下文
type GroqTipsApp struct {
	caller *caller
}

// NewGroqTipsApp 创建一个养护建议应用实例
func NewGroqTipsApp(apiKey, url, m string) model.TipsApp {
	return &GroqTipsApp{caller: newCaller(apiKey, url, m)}
}

var (
	tipsInstance model.TipsApp
	tipsOnce     sync.Once
)

// GetGroqTipsApp 获取养护建议应用单例
func GetGroqTipsApp() model.TipsApp {
	tipsOnce.Do(func() {
		c := config.GetConfig()
		tipsInstance = NewGroqTipsApp(c.Groq.ApiKey, c.Groq.Url, c.Groq.Model)
	})
	return tipsInstance
}

// CareTips 生成养护建议
func (app *GroqTipsApp) CareTips(ctx context.Context, plantName, language string) (map[string]any, error) {
	system := "You are Croply AI, an expert plant care advisor. Provide practical, concise care routines."

	user := fmt.Sprintf(`Provide a concise daily/weekly care routine for %s plants, covering:
1. Watering schedule and amount
2. Sunlight requirements
3. Soil and fertilizer needs
4. Common pests to watch for
5. Seasonal care tips

Keep it practical and actionable for home gardeners. Respond in %s.`, plantName, language)

	res, err := app.caller.call(ctx, system, user, 0.3, 800, false, nil)
	if err != nil {
		return nil, err
	}
	// 对齐care-tips契约: {tips | raw_content}
	if s, ok := res["response"].(string); ok {
		return map[string]any{"tips": s}, nil
	}
	return res, nil
}

// Close 释放相关资源
func (app *GroqTipsApp) Close() error {
	return nil
}
