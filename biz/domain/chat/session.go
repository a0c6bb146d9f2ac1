package chat

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/xh-polaris/gopkg/util/log"

	"github.com/xh-polaris/croply-core/biz/application/dto"
	"github.com/xh-polaris/croply-core/biz/domain"
	"github.com/xh-polaris/croply-core/biz/domain/detail"
	"github.com/xh-polaris/croply-core/biz/domain/model"
	"github.com/xh-polaris/croply-core/biz/infrastructure/consts"
)

// State 是会话状态, 同一会话同时至多一个在途请求
type State int

const (
	Idle State = iota
	Sending
)

// Turn 是会话中的一条消息
// 追加后不再修改, 顺序即插入顺序
type Turn struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"time"`
	IsError   bool   `json:"error,omitempty"`
}

// Session 管理一个会话的完整记录
// 乐观追加用户消息, 远端完成后追加助手消息, 失败时落一条固定错误回复
type Session struct {
	mu    sync.Mutex
	key   string
	bound int
	state State
	app   model.ChatApp
	store domain.KVStore
	turns []*Turn
}

// NewSession 创建会话并恢复持久化的聊天记录
func NewSession(key string, bound int, app model.ChatApp, store domain.KVStore) *Session {
	s := &Session{
		key:   key,
		bound: bound,
		state: Idle,
		app:   app,
		store: store,
	}
	raw, err := store.Load(key)
	if err != nil {
		log.Error("load session err:", err)
		return s
	}
	if raw != "" {
		if err = json.Unmarshal([]byte(raw), &s.turns); err != nil {
			log.Error("decode session err:", err)
			s.turns = nil
		}
	}
	return s
}

// Submit 提交一条用户消息
// 空白输入或已有在途请求时静默忽略, 返回nil;
// 否则同步追加用户消息, 调用远端后返回追加的助手消息(失败时IsError为true)
func (s *Session) Submit(ctx context.Context, text, language string) *Turn {
	msg := strings.TrimSpace(text)

	s.mu.Lock()
	if msg == "" || s.state == Sending {
		s.mu.Unlock()
		return nil
	}
	s.state = Sending
	// 上下文取本条之前的消息, 本条由远端调用单独携带
	history := s.context()
	s.append(&Turn{Role: consts.RoleUser, Content: msg, CreatedAt: s.nextStamp()})
	s.mu.Unlock()

	// 远端调用是唯一挂起点, 不持有锁
	payload, err := s.app.Converse(ctx, msg, language, history)

	reply := &Turn{Role: consts.RoleAssistant}
	if err != nil {
		// 失败不重试, 落一条固定错误回复
		log.Error("converse err:", err)
		reply.Content = consts.ChatErrContent
		reply.IsError = true
	} else {
		reply.Content = detail.DisplayText(payload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	reply.CreatedAt = s.nextStamp()
	s.append(reply)
	s.state = Idle
	return reply
}

// Turns 返回当前记录的副本
func (s *Session) Turns() []*Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// State 返回当前状态
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Clear 清空整个会话及其持久化副本
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = nil
	if err := s.store.Remove(s.key); err != nil {
		log.Error("clear session err:", err)
	}
}

// append 追加一条消息并持久化, 超出保留上限时丢弃最旧的
// 调用方需持有锁
func (s *Session) append(t *Turn) {
	s.turns = append(s.turns, t)
	if len(s.turns) > s.bound {
		s.turns = s.turns[len(s.turns)-s.bound:]
	}
	data, err := json.Marshal(s.turns)
	if err != nil {
		log.Error("encode session err:", err)
		return
	}
	if err = s.store.Save(s.key, string(data)); err != nil {
		log.Error("save session err:", err)
	}
}

// context 构造发给远端的上下文: 原始顺序, 排除错误消息, 只保留角色和内容
// 调用方需持有锁
func (s *Session) context() []*dto.ChatContext {
	out := make([]*dto.ChatContext, 0, len(s.turns))
	for _, t := range s.turns {
		if t.IsError {
			continue
		}
		out = append(out, &dto.ChatContext{Role: t.Role, Content: t.Content})
	}
	return out
}

// nextStamp 生成非递减的毫秒时间戳
// 调用方需持有锁
func (s *Session) nextStamp() int64 {
	now := time.Now().UnixMilli()
	if n := len(s.turns); n > 0 && now < s.turns[n-1].CreatedAt {
		now = s.turns[n-1].CreatedAt
	}
	return now
}
