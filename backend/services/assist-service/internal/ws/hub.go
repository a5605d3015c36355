package ws

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"everse/backend/services/assist-service/internal/models"
)

// Hub tracks responder connections and broadcasts events to them.
type Hub struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	logger      *zap.Logger
}

// NewHub builds connection hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		connections: make(map[string]*Connection),
		logger:      logger,
	}
}

// Add registers new connection.
func (h *Hub) Add(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[conn.ID()] = conn
}

// Remove removes connection.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.connections, id)
}

// Count returns number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Broadcast sends msg to every connection.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, conn := range h.connections {
		conn.Send(msg)
	}
}

// Run forwards events until the channel closes or ctx is done, then closes all connections.
func (h *Hub) Run(ctx context.Context, events <-chan models.Event) {
	defer h.closeAll()
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			msg, err := json.Marshal(evt)
			if err != nil {
				h.logger.Error("failed to encode event", zap.Error(err))
				continue
			}
			h.Broadcast(msg)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.connections))
	for _, c := range h.connections {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	// Close calls back into Remove, so the lock must be released first
	for _, c := range conns {
		c.Close()
	}
}
