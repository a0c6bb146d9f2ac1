package domain

import (
	"sync"

	"github.com/hertz-contrib/websocket"
	"github.com/xh-polaris/croply-core/biz/infrastructure/consts"
)

// WsHelper 是封装Websocket协议的工具类
// 读取固定在单协程, 写入可能来自多个协程, 所以只需要写锁
type WsHelper struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWsHelper(conn *websocket.Conn) *WsHelper {
	return &WsHelper{
		mu:   sync.Mutex{},
		conn: conn,
	}
}

// ReadJSON 从流中获取一个Json对象, 需要传入指针
func (ws *WsHelper) ReadJSON(obj any) error {
	return ws.conn.ReadJSON(obj)
}

// Error 写入一个错误信息
func (ws *WsHelper) Error(errno *consts.Errno) error {
	resp := struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}{
		Code: errno.Code(),
		Msg:  errno.Error(),
	}
	return ws.WriteJSON(&resp)
}

// WriteJSON 写入一个Json对象
func (ws *WsHelper) WriteJSON(obj any) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	return ws.conn.WriteJSON(obj)
}

// WriteBytes 写入字节流
func (ws *WsHelper) WriteBytes(bytes []byte) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	return ws.conn.WriteMessage(websocket.BinaryMessage, bytes)
}

// Close 关闭连接
func (ws *WsHelper) Close() error {
	return ws.conn.Close()
}
