package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"evcharge/internal/http/middleware"
	"evcharge/internal/ws"
)

// StreamHandler upgrades an authenticated request to the notification
// push stream.
type StreamHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewStreamHandler returns handler.
func NewStreamHandler(hub *ws.Hub, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// Stream handles GET /api/notifications/stream.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	wrapped := ws.NewConnection(claims.NIC, conn, 10*time.Second, h.logger, h.hub.Remove)
	h.hub.Add(wrapped)
	h.logger.Info("notification stream opened", zap.String("nic", claims.NIC))
	wrapped.Start(r.Context())
}
