package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoSession means an authenticated call was attempted without a
	// stored session. The caller routes to the login flow instead of
	// issuing the request.
	ErrNoSession = errors.New("client: no active session")

	// ErrUnauthorized means the server rejected the credential. The caller
	// clears the stored session and returns to the unauthenticated state.
	ErrUnauthorized = errors.New("client: unauthorized")
)

// APIError is a non-2xx response. The server error body is best-effort:
// a {"error": "..."} payload is surfaced when present, otherwise the
// message is generic.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("client: server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("client: server returned %d", e.StatusCode)
}

// ValidationError is raised locally for missing required input, before any
// request is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("client: invalid %s: %s", e.Field, e.Reason)
}

func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

func apiError(status int, body []byte) error {
	if status == 401 {
		return ErrUnauthorized
	}
	var payload struct {
		Error string `json:"error"`
	}
	message := ""
	if json.Unmarshal(body, &payload) == nil {
		message = payload.Error
	}
	return &APIError{StatusCode: status, Message: message}
}
