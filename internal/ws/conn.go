package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// sendTimeout bounds every outbound write. A peer that stops reading gets
// its connection dropped instead of stalling the broadcast loop.
const sendTimeout = 5 * time.Second

// gorillaConn adapts a gorilla websocket connection to the registry's Conn
// interface. Gorilla permits at most one concurrent writer, so writes are
// serialized with a mutex; the read loop stays on the handler's goroutine.
type gorillaConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// WrapConn wraps an upgraded websocket connection for registry use.
func WrapConn(conn *websocket.Conn) Conn {
	return &gorillaConn{conn: conn}
}

func (g *gorillaConn) WriteText(payload []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.conn.SetWriteDeadline(time.Now().Add(sendTimeout)); err != nil {
		return err
	}
	return g.conn.WriteMessage(websocket.TextMessage, payload)
}

func (g *gorillaConn) Close() error {
	return g.conn.Close()
}
