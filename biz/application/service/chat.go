package service

import (
	"context"

	"github.com/google/wire"
	"github.com/hertz-contrib/websocket"
	"github.com/jinzhu/copier"

	"github.com/xh-polaris/croply-core/biz/adaptor/cmd"
	"github.com/xh-polaris/croply-core/biz/application/dto"
	"github.com/xh-polaris/croply-core/biz/domain/chat"
	"github.com/xh-polaris/croply-core/biz/infrastructure/consts"
)

type IChatService interface {
	Ask(ctx context.Context, req *cmd.AskReq) (*dto.AskResp, error)
	Transcript(ctx context.Context, session string) (*dto.TranscriptResp, error)
	Clear(ctx context.Context, req *cmd.ClearChatReq) (*dto.Response, error)
}

// ChatService 管理两个互相独立的会话
// 悬浮窗会话和主会话各有自己的持久化键与保留上限, 互不影响
type ChatService struct {
	Float *chat.Session
	Main  *chat.Session
}

var ChatServiceSet = wire.NewSet(
	wire.Struct(new(ChatService), "*"),
	wire.Bind(new(IChatService), new(*ChatService)),
)

// pick 按名称取会话, 缺省为悬浮窗会话
func (s *ChatService) pick(name string) *chat.Session {
	if name == "main" {
		return s.Main
	}
	return s.Float
}

// Ask 单次对话
// 空输入或在途请求被状态机静默忽略, 返回空响应
func (s *ChatService) Ask(ctx context.Context, req *cmd.AskReq) (*dto.AskResp, error) {
	language := req.Language
	if language == "" {
		language = consts.DefaultLanguage
	}
	reply := s.pick(req.Session).Submit(ctx, req.Message, language)
	if reply == nil {
		return &dto.AskResp{}, nil
	}
	return &dto.AskResp{Response: reply.Content, IsError: reply.IsError}, nil
}

// Transcript 返回会话记录
func (s *ChatService) Transcript(ctx context.Context, session string) (*dto.TranscriptResp, error) {
	turns := s.pick(session).Turns()
	items := make([]*dto.TurnItem, 0, len(turns))
	for _, t := range turns {
		item := &dto.TurnItem{}
		if err := copier.Copy(item, t); err != nil {
			return nil, err
		}
		item.Time = t.CreatedAt
		items = append(items, item)
	}
	return &dto.TranscriptResp{Code: 0, Msg: "success", Turns: items}, nil
}

// Clear 清空会话及其持久化副本
func (s *ChatService) Clear(ctx context.Context, req *cmd.ClearChatReq) (*dto.Response, error) {
	s.pick(req.Session).Clear()
	return &dto.Response{Code: 0, Msg: "success"}, nil
}

// ChatHandler 处理一条长对话连接, 驱动主会话
func (s *ChatService) ChatHandler(ctx context.Context, conn *websocket.Conn) {
	engine := chat.NewEngine(ctx, conn, s.Main)
	defer func() { engine.Close() }()

	if err := engine.Start(); err != nil {
		return
	}
	engine.Chat()
}
