package httpserver

import (
	"net/http"

	"evcharge/internal/http/handlers"
	"evcharge/internal/http/middleware"
	"evcharge/internal/models"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	AuthHandlers         *handlers.AuthHandlers
	UserHandlers         *handlers.UserHandlers
	StationHandlers      *handlers.StationHandlers
	BookingHandlers      *handlers.BookingHandlers
	NotificationHandlers *handlers.NotificationHandlers
	StreamHandler        *handlers.StreamHandler
	HealthHandler        http.HandlerFunc
}

// NewRouter wires HTTP routes. Paths mirror the mobile client's API
// surface; role guards follow the original controller annotations.
func NewRouter(deps RouterDeps, auth func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	authed := func(handler http.HandlerFunc, roles ...models.UserRole) http.Handler {
		h := http.Handler(handler)
		if len(roles) > 0 {
			h = middleware.RequireRoles(roles...)(h)
		}
		return auth(h)
	}

	staff := []models.UserRole{models.RoleBackoffice, models.RoleStationOperator}
	backoffice := []models.UserRole{models.RoleBackoffice}
	owner := []models.UserRole{models.RoleEVOwner}

	mux.Handle("GET /health", deps.HealthHandler)

	mux.Handle("POST /api/auth/register", http.HandlerFunc(deps.AuthHandlers.Register))
	mux.Handle("POST /api/auth/login", http.HandlerFunc(deps.AuthHandlers.Login))

	mux.Handle("GET /api/users", authed(deps.UserHandlers.List, backoffice...))
	mux.Handle("GET /api/users/me", authed(deps.UserHandlers.Me))
	mux.Handle("PUT /api/users/me", authed(deps.UserHandlers.UpdateMe))
	mux.Handle("POST /api/users/deactivate", authed(deps.UserHandlers.Deactivate, owner...))

	mux.Handle("GET /api/chargingstations", authed(deps.StationHandlers.List))
	mux.Handle("GET /api/chargingstations/active", authed(deps.StationHandlers.ListActive))
	mux.Handle("GET /api/chargingstations/{id}", authed(deps.StationHandlers.Get))
	mux.Handle("POST /api/chargingstations", authed(deps.StationHandlers.Create, backoffice...))
	mux.Handle("PUT /api/chargingstations/{id}", authed(deps.StationHandlers.Update, backoffice...))
	mux.Handle("POST /api/chargingstations/{id}/deactivate", authed(deps.StationHandlers.Deactivate, backoffice...))

	mux.Handle("POST /api/bookings", authed(deps.BookingHandlers.Create, owner...))
	mux.Handle("GET /api/bookings", authed(deps.BookingHandlers.List, staff...))
	mux.Handle("GET /api/bookings/my-bookings", authed(deps.BookingHandlers.MyBookings, owner...))
	mux.Handle("GET /api/bookings/station/{stationId}", authed(deps.BookingHandlers.ByStation, staff...))
	mux.Handle("GET /api/bookings/qr/{code}", authed(deps.BookingHandlers.ResolveQR, staff...))
	mux.Handle("GET /api/bookings/{id}", authed(deps.BookingHandlers.Get))
	mux.Handle("PUT /api/bookings/{id}", authed(deps.BookingHandlers.Update, owner...))
	mux.Handle("POST /api/bookings/{id}/confirm", authed(deps.BookingHandlers.Confirm, staff...))
	mux.Handle("POST /api/bookings/{id}/cancel", authed(deps.BookingHandlers.Cancel, owner...))
	mux.Handle("POST /api/bookings/{id}/cancel-by-operator", authed(deps.BookingHandlers.CancelByOperator, staff...))

	mux.Handle("GET /api/notifications/my-notifications", authed(deps.NotificationHandlers.MyNotifications))
	mux.Handle("GET /api/notifications/unread", authed(deps.NotificationHandlers.Unread))
	mux.Handle("POST /api/notifications/mark-read", authed(deps.NotificationHandlers.MarkRead))
	mux.Handle("GET /api/notifications/stream", authed(deps.StreamHandler.Stream))

	return mux
}
