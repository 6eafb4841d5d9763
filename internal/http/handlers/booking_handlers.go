package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"evcharge/internal/http/middleware"
	"evcharge/internal/models"
	"evcharge/internal/service"
	"evcharge/timefmt"
)

// BookingHandlers serves the booking lifecycle endpoints.
type BookingHandlers struct {
	bookings *service.BookingService
	stations *service.StationService
	logger   *zap.Logger
}

// NewBookingHandlers returns handler.
func NewBookingHandlers(bookings *service.BookingService, stations *service.StationService, logger *zap.Logger) *BookingHandlers {
	return &BookingHandlers{bookings: bookings, stations: stations, logger: logger}
}

// respond enriches bookings with station name/location, matching what the
// listing screens render.
func (h *BookingHandlers) respond(w http.ResponseWriter, r *http.Request, status int, b *models.Booking) {
	station, err := h.stations.Get(r.Context(), b.StationID)
	if err != nil {
		station = nil
	}
	writeJSON(w, status, toBookingResponse(b, station))
}

func (h *BookingHandlers) respondList(w http.ResponseWriter, r *http.Request, bookings []models.Booking) {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		station, err := h.stations.Get(r.Context(), bookings[i].StationID)
		if err != nil {
			station = nil
		}
		out = append(out, toBookingResponse(&bookings[i], station))
	}
	writeJSON(w, http.StatusOK, out)
}

type createBookingRequest struct {
	StationID string       `json:"stationId"`
	StartTime timefmt.Time `json:"startTime"`
	EndTime   timefmt.Time `json:"endTime"`
}

// Create handles POST /api/bookings (owner).
func (h *BookingHandlers) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.StationID == "" || req.StartTime.IsZero() || req.EndTime.IsZero() {
		writeError(w, http.StatusBadRequest, "stationId, startTime and endTime are required")
		return
	}

	b, err := h.bookings.Create(r.Context(), claims.NIC, req.StationID, req.StartTime.Time, req.EndTime.Time)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.respond(w, r, http.StatusCreated, b)
}

// MyBookings handles GET /api/bookings/my-bookings (owner).
func (h *BookingHandlers) MyBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	bookings, err := h.bookings.ListByOwner(r.Context(), claims.NIC)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.respondList(w, r, bookings)
}

// List handles GET /api/bookings (operator and back-office).
func (h *BookingHandlers) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.respondList(w, r, bookings)
}

// ByStation handles GET /api/bookings/station/{stationId}.
func (h *BookingHandlers) ByStation(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookings.ListByStation(r.Context(), r.PathValue("stationId"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.respondList(w, r, bookings)
}

type updateBookingRequest struct {
	StartTime timefmt.Time `json:"startTime"`
	EndTime   timefmt.Time `json:"endTime"`
}

// Update handles PUT /api/bookings/{id} (owner). Omitted times keep the
// stored window.
func (h *BookingHandlers) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req updateBookingRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.StartTime.IsZero() && req.EndTime.IsZero() {
		writeError(w, http.StatusBadRequest, "startTime or endTime is required")
		return
	}

	b, err := h.bookings.Update(r.Context(), r.PathValue("id"), claims.NIC, req.StartTime.Time, req.EndTime.Time)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

// Get handles GET /api/bookings/{id}. Owners may only read their own.
func (h *BookingHandlers) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	b, err := h.bookings.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if claims.Role == models.RoleEVOwner && b.OwnerNIC != claims.NIC {
		writeError(w, http.StatusForbidden, "not your booking")
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

// Confirm handles POST /api/bookings/{id}/confirm (operator).
func (h *BookingHandlers) Confirm(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.Confirm(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}

// Cancel handles POST /api/bookings/{id}/cancel (owner, no body).
func (h *BookingHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.bookings.CancelByOwner(r.Context(), r.PathValue("id"), claims.NIC); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "booking cancelled"})
}

type operatorCancelRequest struct {
	Reason string `json:"reason"`
}

// CancelByOperator handles POST /api/bookings/{id}/cancel-by-operator.
func (h *BookingHandlers) CancelByOperator(w http.ResponseWriter, r *http.Request) {
	var req operatorCancelRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.bookings.CancelByOperator(r.Context(), r.PathValue("id"), req.Reason); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "booking cancelled"})
}

// ResolveQR handles GET /api/bookings/qr/{code} (operator scanner).
func (h *BookingHandlers) ResolveQR(w http.ResponseWriter, r *http.Request) {
	b, err := h.bookings.ResolveQR(r.Context(), r.PathValue("code"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	h.respond(w, r, http.StatusOK, b)
}
