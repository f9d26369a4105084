package ws

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/core"
)

var ErrBackpressure = errors.New("backpressure")

const sendBuffer = 32

// wsConn wraps a websocket connection with a buffered outbound queue so
// the router's fan-out never blocks on a slow peer.
type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWsConn(conn *websocket.Conn) *wsConn {
	return &wsConn{
		conn: conn,
		send: make(chan core.Frame, sendBuffer),
	}
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}
