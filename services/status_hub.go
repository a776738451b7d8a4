package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WSClient is one page connection. All writes go through a mutex: the hub
// notifies from request goroutines while the controller pings from its own,
// and the websocket allows only one concurrent writer.
type WSClient struct {
	SessionID string

	mu   sync.Mutex
	conn *websocket.Conn
}

func NewWSClient(sessionID string, conn *websocket.Conn) *WSClient {
	return &WSClient{SessionID: sessionID, conn: conn}
}

func (c *WSClient) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(messageType, data)
}

func (c *WSClient) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

// ReadNext blocks until the next client message (discarded) or a read
// error, which signals the connection is gone.
func (c *WSClient) ReadNext() error {
	_, _, err := c.conn.ReadMessage()
	return err
}

// StatusHub pushes analysis lifecycle events (started/completed/failed) to
// whatever page connections a session has open, so the waiting indicator is
// driven by the server rather than guessed at.
type StatusHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewStatusHub() *StatusHub {
	return &StatusHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *StatusHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.SessionID] == nil {
		h.clients[c.SessionID] = make(map[*WSClient]struct{})
	}
	h.clients[c.SessionID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *StatusHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.SessionID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.SessionID)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Notify is fire-and-forget; a session with no open connections is fine.
func (h *StatusHub) Notify(sessionID, kind string, payload map[string]any) {
	event := map[string]any{"kind": kind}
	for k, v := range payload {
		event[k] = v
	}
	msg, _ := json.Marshal(event)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[sessionID] {
		_ = c.write(websocket.TextMessage, msg)
	}
}
