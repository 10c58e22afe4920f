package websocket

import (
	"sync"

	"pdf-chat-be/internal/pkg/logger"
)

// Hub tracks the currently open streaming connections. It only does lifecycle
// bookkeeping today; the clients map and lock leave room for broadcast later.
type Hub struct {
	clients map[*ChatSession]bool

	register   chan *ChatSession
	unregister chan *ChatSession

	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[*ChatSession]bool),
		register:   make(chan *ChatSession),
		unregister: make(chan *ChatSession),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case session := <-h.register:
			h.mu.Lock()
			h.clients[session] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"connections": h.Count()})

		case session := <-h.unregister:
			h.mu.Lock()
			// Idempotent: deleting an absent session is fine.
			delete(h.clients, session)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"connections": h.Count()})
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
