package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"evcharge/internal/models"
	"evcharge/internal/service"
)

// StationHandlers serves the station catalog.
type StationHandlers struct {
	stations *service.StationService
	logger   *zap.Logger
}

// NewStationHandlers returns handler.
func NewStationHandlers(stations *service.StationService, logger *zap.Logger) *StationHandlers {
	return &StationHandlers{stations: stations, logger: logger}
}

func (h *StationHandlers) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	stations, err := h.stations.List(r.Context(), activeOnly)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]stationResponse, 0, len(stations))
	for i := range stations {
		out = append(out, toStationResponse(&stations[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// List handles GET /api/chargingstations.
func (h *StationHandlers) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListActive handles GET /api/chargingstations/active.
func (h *StationHandlers) ListActive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// Get handles GET /api/chargingstations/{id}.
func (h *StationHandlers) Get(w http.ResponseWriter, r *http.Request) {
	station, err := h.stations.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStationResponse(station))
}

type stationRequest struct {
	Name         string  `json:"name"`
	Location     string  `json:"location"`
	Type         int     `json:"type"`
	TotalSlots   int     `json:"totalSlots"`
	PricePerHour float64 `json:"pricePerHour"`
}

func (req stationRequest) input() service.StationInput {
	return service.StationInput{
		Name:         req.Name,
		Location:     req.Location,
		Type:         models.StationType(req.Type),
		TotalSlots:   req.TotalSlots,
		PricePerHour: req.PricePerHour,
	}
}

// Create handles POST /api/chargingstations (back-office).
func (h *StationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req stationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	station, err := h.stations.Create(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStationResponse(station))
}

// Update handles PUT /api/chargingstations/{id} (back-office).
func (h *StationHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req stationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	station, err := h.stations.Update(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStationResponse(station))
}

// Deactivate handles POST /api/chargingstations/{id}/deactivate (back-office).
func (h *StationHandlers) Deactivate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.stations.Deactivate(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	h.logger.Info("station deactivated via api", zap.String("station_id", id))
	writeJSON(w, http.StatusOK, map[string]string{"message": "station deactivated"})
}
