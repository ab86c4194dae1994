// Package ws fans preview updates out to connected websocket clients.
package ws

import (
	"context"
	"sync"
	"time"

	"github.com/coder/websocket"
)

// WriteTimeout bounds a single broadcast write to one client.
const WriteTimeout = 3 * time.Second

// Hub tracks live connections. Clients whose writes fail are dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *Hub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Broadcast sends message to every client.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	for conn := range h.clients {
		ctx, cancel := context.WithTimeout(context.Background(), WriteTimeout)
		err := conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.clients, conn)
		}
	}
	h.mu.Unlock()
}

// CloseAll disconnects every client with the given reason.
func (h *Hub) CloseAll(reason string) {
	h.mu.Lock()
	for conn := range h.clients {
		_ = conn.Close(websocket.StatusGoingAway, reason)
		delete(h.clients, conn)
	}
	h.mu.Unlock()
}
