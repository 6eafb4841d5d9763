// Package ws pushes freshly created notifications to connected clients.
// The pull feed stays authoritative; a dropped push is simply picked up on
// the next fetch.
package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"evcharge/internal/models"
	"evcharge/timefmt"
)

// Hub tracks live connections per recipient NIC. A recipient may hold
// several connections (multiple devices).
type Hub struct {
	mu           sync.RWMutex
	connections  map[string]map[*Connection]struct{}
	pingInterval time.Duration
	logger       *zap.Logger
}

// NewHub builds the connection hub.
func NewHub(pingInterval time.Duration, logger *zap.Logger) *Hub {
	if pingInterval <= 0 {
		pingInterval = 30 * time.Second
	}
	return &Hub{
		connections:  make(map[string]map[*Connection]struct{}),
		pingInterval: pingInterval,
		logger:       logger,
	}
}

// Add registers a connection for its recipient.
func (h *Hub) Add(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[conn.NIC()]
	if !ok {
		set = make(map[*Connection]struct{})
		h.connections[conn.NIC()] = set
	}
	set[conn] = struct{}{}
}

// Remove drops a connection.
func (h *Hub) Remove(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.connections[conn.NIC()]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(h.connections, conn.NIC())
	}
}

// wirePayload mirrors the REST notification shape so clients decode both
// the same way.
type wirePayload struct {
	ID              string            `json:"id"`
	RecipientNIC    string            `json:"recipientNic"`
	Title           string            `json:"title"`
	Message         string            `json:"message"`
	Type            int               `json:"type"`
	Priority        int               `json:"priority"`
	IsRead          bool              `json:"isRead"`
	RelatedEntityID string            `json:"relatedEntityId,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	CreatedAt       timefmt.Time      `json:"createdAt"`
}

// Publish sends a notification to every live connection of the recipient.
func (h *Hub) Publish(recipientNIC string, n models.Notification) {
	payload, err := json.Marshal(wirePayload{
		ID:              n.ID,
		RecipientNIC:    n.RecipientNIC,
		Title:           n.Title,
		Message:         n.Message,
		Type:            int(n.Type),
		Priority:        int(n.Priority),
		IsRead:          n.IsRead,
		RelatedEntityID: n.RelatedEntityID,
		Metadata:        n.Metadata,
		CreatedAt:       timefmt.New(n.CreatedAt),
	})
	if err != nil {
		h.logger.Error("failed to encode notification push", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for conn := range h.connections[recipientNIC] {
		conn.Send(payload)
	}
}

// Start runs the keepalive ping loop until the context ends.
func (h *Hub) Start(ctx context.Context) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.mu.RLock()
			for _, set := range h.connections {
				for conn := range set {
					_ = conn.Ping()
				}
			}
			h.mu.RUnlock()
		}
	}
}
