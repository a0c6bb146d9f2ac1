package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hertz-contrib/websocket"
	"github.com/xh-polaris/gopkg/util/log"

	"github.com/xh-polaris/croply-core/biz/application/dto"
	"github.com/xh-polaris/croply-core/biz/domain"
	"github.com/xh-polaris/croply-core/biz/infrastructure/consts"
)

// Engine 是处理一轮长对话连接的核心对象
// 连接内的消息逐条经过会话状态机, 同一会话不会有并发请求
type Engine struct {
	// ctx 上下文
	ctx context.Context

	// ws 提供WebSocket的读写功能
	ws *domain.WsHelper

	// session 本连接驱动的会话
	session *Session

	// connId 连接标记, 仅用于日志
	connId string

	// language 本轮对话协商的回复语言
	language string

	// startTime 开始对话时间
	startTime time.Time

	// round 对话轮数
	round int
}

// NewEngine 初始化一个对话Engine
func NewEngine(ctx context.Context, conn *websocket.Conn, session *Session) *Engine {
	return &Engine{
		ctx:       ctx,
		ws:        domain.NewWsHelper(conn),
		session:   session,
		connId:    uuid.NewString(),
		language:  consts.DefaultLanguage,
		startTime: time.Now(),
	}
}

// Start 开始一轮对话, 读取起始帧并协商语言
func (e *Engine) Start() error {
	var startReq dto.ChatStartReq

	err := e.ws.ReadJSON(&startReq)
	if err != nil {
		log.Error("read json err:", err)
		_ = e.ws.Error(consts.ErrBadStartFrame)
		return err
	}
	if startReq.Language != "" {
		e.language = startReq.Language
	}
	log.Info("调用方: %s, 连接: %s, 调用时间: %s", startReq.From, e.connId, time.Unix(startReq.Timestamp, 0).String())
	return nil
}

// Chat 长对话的主体部分
func (e *Engine) Chat() {
	var req dto.ChatReq
	var err error
	defer func() {
		if err != nil {
			log.Error("chat err:", err)
		}
	}()

	for {
		// 获取前端对话内容
		err = e.ws.ReadJSON(&req)
		if err != nil {
			return
		}
		// 判断是否结束
		switch req.Cmd {
		case consts.EndCmd:
			return
		case consts.Ping:
			if err = e.ws.WriteBytes([]byte{}); err != nil {
				return
			}
			continue
		}

		// 经过会话状态机, 空输入或在途请求会被忽略
		reply := e.session.Submit(e.ctx, req.Msg, e.language)
		if reply == nil {
			continue
		}
		e.round++
		err = e.ws.WriteJSON(&dto.ChatData{
			Content:   reply.Content,
			IsError:   reply.IsError,
			Timestamp: reply.CreatedAt,
		})
		if err != nil {
			return
		}
	}
}

// Close 结束本轮对话
func (e *Engine) Close() {
	// 发送结束标识
	err := e.ws.WriteJSON(&dto.ChatEndResp{
		Code: 0,
		Msg:  "对话结束",
	})
	if err != nil {
		log.Error(err.Error())
	}
	if err = e.ws.Close(); err != nil {
		log.Error("close ws err:", err)
	}
	log.Info("连接: %s, 对话轮数: %d, 时长: %s", e.connId, e.round, time.Since(e.startTime).String())
}
