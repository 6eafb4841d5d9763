package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"evcharge/internal/repository"
	"evcharge/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service and repository errors onto HTTP statuses.
// Unrecognized errors surface as a generic 500; their detail stays in the
// server log, not the response.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrStationNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrNotificationNotFound),
		errors.Is(err, service.ErrQRNotRedeemable):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrAccountDeactivated):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailInUse),
		errors.Is(err, service.ErrNICInUse):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotOwner):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidBookingTime),
		errors.Is(err, service.ErrStationUnavailable),
		errors.Is(err, service.ErrNoSlots),
		errors.Is(err, service.ErrNotActive),
		errors.Is(err, service.ErrNotCancellable),
		errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrCancelWindowClosed),
		errors.Is(err, service.ErrUpdateWindowClosed),
		errors.Is(err, service.ErrStationHasBookings):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
