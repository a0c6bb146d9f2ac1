package groq

import (
	"context"
	"fmt"
	"sync"

	"github.com/xh-polaris/croply-core/biz/application/dto"
	"github.com/xh-polaris/croply-core/biz/domain/model"
	"github.com/xh-polaris/croply-core/biz/infrastructure/config"
)

var _ model.ChatApp = (*GroqChatApp)(nil)

// GroqChatApp 是Groq对话大模型应用
// 上下文由本地会话管理, 每次调用携带历史
type GroqChatApp struct {
	caller *caller
}

// NewGroqChatApp 创建一个Groq对话应用实例
func NewGroqChatApp(apiKey, url, m string) model.ChatApp {
	return &GroqChatApp{caller: newCaller(apiKey, url, m)}
}

var (
	chatInstance model.ChatApp
	chatOnce     sync.Once
)

// GetGroqChatApp 获取对话应用单例
func GetGroqChatApp() model.ChatApp {
	chatOnce.Do(func() {
		c := config.GetConfig()
		chatInstance = NewGroqChatApp(c.Groq.ApiKey, c.Groq.Url, c.Groq.Model)
	})
	return chatInstance
}

// Converse 带上下文调用
func (app *GroqChatApp) Converse(ctx context.Context, msg, language string, history []*dto.ChatContext) (map[string]any, error) {
	system := fmt.Sprintf(
		"You are Croply AI, a friendly and knowledgeable assistant. "+
			"Your primary expertise is in plant pathology, agriculture, and plant care — "+
			"but you can also answer general knowledge questions, help with everyday queries, "+
			"and have casual conversations. "+
			"When answering plant-related questions, be scientifically accurate and practical. "+
			"For other topics, be helpful, concise, and informative. "+
			"Use markdown formatting for structured answers. "+
			"Respond in %s.", language)

	msgs := make([]message, 0, len(history))
	for _, h := range history {
		msgs = append(msgs, message{Role: h.Role, Content: h.Content})
	}
	return app.caller.call(ctx, system, msg, 0.4, 1000, false, msgs)
}

// Close 释放相关资源
// Groq调用是无状态HTTP, 暂时没有需要释放的资源
func (app *GroqChatApp) Close() error {
	return nil
}
