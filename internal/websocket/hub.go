package websocket

import (
	"sync"
	"time"

	"interview-assistant-be/internal/pkg/logger"

	"github.com/gofiber/websocket/v2"
)

// Hub tracks the live STT sockets so health can report them and shutdown
// can close them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	logger  logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  log,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("Hub", "Client registered", map[string]interface{}{
		"session_id": c.SessionId,
		"active":     n,
	})
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	delete(h.clients, c)
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("Hub", "Client unregistered", map[string]interface{}{
		"session_id": c.SessionId,
		"active":     n,
	})
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll asks every live socket to close with "going away".
func (h *Hub) CloseAll(reason string) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.closeWith(websocket.CloseGoingAway, reason)
		// Bound the wait for the peer's close reply.
		c.Conn.SetReadDeadline(time.Now().Add(writeWait))
	}
}
