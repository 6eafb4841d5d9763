package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"evcharge/internal/http/middleware"
	"evcharge/internal/service"
)

// NotificationHandlers serves the per-user notification feed.
type NotificationHandlers struct {
	notifications *service.NotificationService
	logger        *zap.Logger
}

// NewNotificationHandlers returns handler.
func NewNotificationHandlers(notifications *service.NotificationService, logger *zap.Logger) *NotificationHandlers {
	return &NotificationHandlers{notifications: notifications, logger: logger}
}

// MyNotifications handles GET /api/notifications/my-notifications with
// optional includeRead, limit and offset query parameters. An empty feed
// is a 200 with an empty array, never an error.
func (h *NotificationHandlers) MyNotifications(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	includeRead := true
	if raw := r.URL.Query().Get("includeRead"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid includeRead")
			return
		}
		includeRead = parsed
	}
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}
	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		offset = parsed
	}

	notifications, err := h.notifications.Feed(r.Context(), claims.NIC, includeRead, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]notificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, toNotificationResponse(&notifications[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Unread handles GET /api/notifications/unread.
func (h *NotificationHandlers) Unread(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	notifications, err := h.notifications.Feed(r.Context(), claims.NIC, false, 50, 0)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]notificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, toNotificationResponse(&notifications[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type markReadRequest struct {
	NotificationIDs []string `json:"notificationIds"`
}

// MarkRead handles POST /api/notifications/mark-read.
func (h *NotificationHandlers) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req markReadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.NotificationIDs) == 0 {
		writeError(w, http.StatusBadRequest, "notificationIds required")
		return
	}
	count, err := h.notifications.MarkRead(r.Context(), claims.NIC, req.NotificationIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"updated": count})
}
