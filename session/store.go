// Package session persists the single authenticated session: bearer token,
// role, and, for operators, the assigned station. Every authenticated API
// call requires a loaded session; absence routes the caller back to login.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"evcharge/booking"
)

// Session is the durable record created at login and destroyed at logout
// or account deactivation.
type Session struct {
	Token     string       `json:"token"`
	Role      booking.Role `json:"role"`
	NIC       string       `json:"nic,omitempty"`
	StationID string       `json:"station_id,omitempty"`
}

// AuthorizationHeader renders the token for transport.
func (s Session) AuthorizationHeader() string {
	return "Bearer " + s.Token
}

// Store reads and writes at most one session record as a JSON file.
// Writes go through a temp file plus rename so a crash mid-write never
// leaves a torn record.
type Store struct {
	path string
}

// NewStore builds a store over an explicit file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore places the record under the user config dir.
func DefaultStore() (*Store, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("session: resolve config dir: %w", err)
	}
	return NewStore(filepath.Join(base, "evcharge", "session.json")), nil
}

// Save persists the session. The station id is kept only for the operator
// role; saving any other role drops a previously stored station id, so a
// station id without operator role cannot occur by construction.
func (s *Store) Save(token string, role booking.Role, nic, stationID string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("session: empty token")
	}
	if role != booking.RoleOwner && role != booking.RoleOperator {
		return fmt.Errorf("session: unknown role %q", role)
	}

	record := Session{Token: token, Role: role, NIC: nic}
	if role == booking.RoleOperator {
		record.StationID = stationID
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("session: commit: %w", err)
	}
	return nil
}

// Load returns the persisted session. The second return is false when no
// session was ever saved or it was cleared.
func (s *Store) Load() (Session, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Session{}, false, nil
		}
		return Session{}, false, fmt.Errorf("session: read: %w", err)
	}

	var record Session
	if err := json.Unmarshal(data, &record); err != nil {
		return Session{}, false, fmt.Errorf("session: decode: %w", err)
	}
	if strings.TrimSpace(record.Token) == "" {
		return Session{}, false, nil
	}
	return record, true, nil
}

// Clear removes the record. Used on logout and account deactivation.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
