package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/xh-polaris/croply-core/biz/application/dto"
	"github.com/xh-polaris/croply-core/biz/domain"
	"github.com/xh-polaris/croply-core/biz/infrastructure/consts"
)

// fakeChatApp 可控的远端对话应用
type fakeChatApp struct {
	reply   string
	err     error
	block   chan struct{}
	history []*dto.ChatContext
	calls   int
}

func (f *fakeChatApp) Converse(_ context.Context, msg, _ string, history []*dto.ChatContext) (map[string]any, error) {
	f.calls++
	f.history = history
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.reply != "" {
		return map[string]any{"response": f.reply}, nil
	}
	return map[string]any{"response": "echo: " + msg}, nil
}

func (f *fakeChatApp) Close() error { return nil }

func newTestSession(app *fakeChatApp, bound int) (*Session, *domain.MemoryHelper) {
	store := domain.NewMemoryHelper()
	return NewSession("test:chat", bound, app, store), store
}

func TestSubmitBlankIsNoop(t *testing.T) {
	app := &fakeChatApp{}
	s, _ := newTestSession(app, 80)

	if got := s.Submit(context.Background(), "", "English"); got != nil {
		t.Fatalf("empty submit produced turn: %+v", got)
	}
	if got := s.Submit(context.Background(), "   ", "English"); got != nil {
		t.Fatalf("whitespace submit produced turn: %+v", got)
	}
	if len(s.Turns()) != 0 {
		t.Fatalf("transcript changed: %v", s.Turns())
	}
	if app.calls != 0 {
		t.Fatalf("remote called %d times", app.calls)
	}
}

func TestSubmitSuccess(t *testing.T) {
	app := &fakeChatApp{reply: "Late blight likes cool wet nights."}
	s, store := newTestSession(app, 80)

	reply := s.Submit(context.Background(), "why does my tomato rot?", "English")
	if reply == nil || reply.IsError {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	turns := s.Turns()
	if len(turns) != 2 {
		t.Fatalf("want 2 turns, got %d", len(turns))
	}
	if turns[0].Role != consts.RoleUser || turns[1].Role != consts.RoleAssistant {
		t.Fatalf("wrong roles: %s, %s", turns[0].Role, turns[1].Role)
	}
	if turns[1].Content != app.reply {
		t.Fatalf("assistant content = %q", turns[1].Content)
	}
	if turns[1].CreatedAt < turns[0].CreatedAt {
		t.Fatal("timestamps decreased")
	}
	if s.State() != Idle {
		t.Fatalf("state = %v, want Idle", s.State())
	}

	// 每次变更后都已持久化
	raw, _ := store.Load("test:chat")
	var persisted []*Turn
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil || len(persisted) != 2 {
		t.Fatalf("persisted transcript wrong: %q err=%v", raw, err)
	}
}

func TestSubmitFailure(t *testing.T) {
	app := &fakeChatApp{err: errors.New("connection timed out")}
	s, _ := newTestSession(app, 80)

	reply := s.Submit(context.Background(), "hello", "English")
	if reply == nil || !reply.IsError {
		t.Fatalf("want error turn, got %+v", reply)
	}
	turns := s.Turns()
	if len(turns) != 2 {
		t.Fatalf("want exactly user+error turns, got %d", len(turns))
	}
	if turns[0].Role != consts.RoleUser || turns[0].Content != "hello" {
		t.Fatalf("user turn wrong: %+v", turns[0])
	}
	if turns[1].Content != consts.ChatErrContent || !turns[1].IsError {
		t.Fatalf("error turn wrong: %+v", turns[1])
	}
	if s.State() != Idle {
		t.Fatal("session did not return to Idle after failure")
	}
}

func TestSubmitRejectsOverlap(t *testing.T) {
	app := &fakeChatApp{block: make(chan struct{})}
	s, _ := newTestSession(app, 80)

	done := make(chan *Turn)
	go func() {
		done <- s.Submit(context.Background(), "first", "English")
	}()

	// 等第一个请求进入Sending
	for i := 0; s.State() != Sending && i < 100; i++ {
		time.Sleep(5 * time.Millisecond)
	}
	if s.State() != Sending {
		t.Fatal("first submit never entered Sending")
	}

	// 在途时第二次提交被拒绝
	if got := s.Submit(context.Background(), "second", "English"); got != nil {
		t.Fatalf("overlapping submit accepted: %+v", got)
	}

	close(app.block)
	if reply := <-done; reply == nil {
		t.Fatal("first submit lost its reply")
	}

	// 解除后可以继续提交, 两轮各自成对且保持顺序
	app.block = nil
	if got := s.Submit(context.Background(), "second", "English"); got == nil {
		t.Fatal("submit after resolution rejected")
	}
	turns := s.Turns()
	if len(turns) != 4 {
		t.Fatalf("want 4 turns, got %d", len(turns))
	}
	want := []string{"first", "", "second", ""}
	for i, w := range want {
		if w != "" && turns[i].Content != w {
			t.Fatalf("turn %d = %q, want %q", i, turns[i].Content, w)
		}
	}
}

func TestContextExcludesErrorTurns(t *testing.T) {
	app := &fakeChatApp{err: errors.New("boom")}
	s, _ := newTestSession(app, 80)
	s.Submit(context.Background(), "first try", "English")

	// 第二次成功, 远端收到的上下文不应包含错误回复
	// 本条消息由调用单独携带, 上下文只含此前的非错误消息
	app.err = nil
	app.reply = "ok"
	s.Submit(context.Background(), "second try", "English")

	for _, h := range app.history {
		if h.Content == consts.ChatErrContent {
			t.Fatal("error turn leaked into remote context")
		}
	}
	if len(app.history) != 1 || app.history[0].Content != "first try" {
		t.Fatalf("context wrong: %v", app.history)
	}
}

func TestTranscriptBound(t *testing.T) {
	app := &fakeChatApp{reply: "ok"}
	s, store := newTestSession(app, 6)

	for i := 0; i < 5; i++ {
		s.Submit(context.Background(), fmt.Sprintf("msg %d", i), "English")
	}
	turns := s.Turns()
	if len(turns) != 6 {
		t.Fatalf("want bound 6, got %d", len(turns))
	}
	// 最旧的被静默丢弃, 留下的保持顺序
	if turns[0].Content != "msg 2" {
		t.Fatalf("oldest retained = %q", turns[0].Content)
	}

	raw, _ := store.Load("test:chat")
	var persisted []*Turn
	_ = json.Unmarshal([]byte(raw), &persisted)
	if len(persisted) != 6 {
		t.Fatalf("persisted %d turns, want 6", len(persisted))
	}
}

func TestClear(t *testing.T) {
	app := &fakeChatApp{reply: "ok"}
	s, store := newTestSession(app, 80)
	s.Submit(context.Background(), "hello", "English")

	s.Clear()
	if len(s.Turns()) != 0 {
		t.Fatal("transcript not cleared")
	}
	if raw, _ := store.Load("test:chat"); raw != "" {
		t.Fatalf("persisted copy not removed: %q", raw)
	}

	// 清空后重建会话应该是空的
	s2 := NewSession("test:chat", 80, app, store)
	if len(s2.Turns()) != 0 {
		t.Fatal("cleared session resurrected")
	}
}

func TestSessionRestore(t *testing.T) {
	app := &fakeChatApp{reply: "ok"}
	store := domain.NewMemoryHelper()
	s := NewSession("test:restore", 80, app, store)
	s.Submit(context.Background(), "remember me", "English")

	s2 := NewSession("test:restore", 80, app, store)
	turns := s2.Turns()
	if len(turns) != 2 || turns[0].Content != "remember me" {
		t.Fatalf("restore failed: %v", turns)
	}
}
