package booking

import (
	"fmt"
	"sync"
)

// ErrIllegalTransition is returned when an optimistic update does not match
// the requested remote transition's source status.
var ErrIllegalTransition = fmt.Errorf("booking: illegal status transition")

// Overlay holds optimistic status overrides keyed by booking id. An entry
// is written only after the corresponding remote call succeeded, and the
// whole overlay is dropped on every authoritative refetch, so a stale
// override never outlives its window.
type Overlay struct {
	mu      sync.RWMutex
	pending map[string]Status
}

// NewOverlay returns an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{pending: make(map[string]Status)}
}

// Resolve returns the effective status for a booking: the pending override
// if one exists, else the fetched value.
func (o *Overlay) Resolve(id string, fetched Status) Status {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if s, ok := o.pending[id]; ok {
		return s
	}
	return fetched
}

// Reset drops every override. Called after each authoritative fetch, whose
// payload supersedes anything recorded here.
func (o *Overlay) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = make(map[string]Status)
}

// ApplyConfirm records the Active to Confirmed transition after a successful
// operator confirm. Any other effective source status is an error and
// leaves the overlay untouched.
func (o *Overlay) ApplyConfirm(id string, current Status) error {
	return o.apply(id, current, StatusConfirmed, func(s Status) bool {
		return s == StatusActive
	})
}

// ApplyOwnerCancel records the owner-cancel transition. Owners may only
// cancel active bookings; a confirmed booking is past the owner's window.
func (o *Overlay) ApplyOwnerCancel(id string, current Status) error {
	return o.apply(id, current, StatusCancelled, func(s Status) bool {
		return s == StatusActive
	})
}

// ApplyOperatorCancel records the operator-cancel transition, legal from
// both Active and Confirmed.
func (o *Overlay) ApplyOperatorCancel(id string, current Status) error {
	return o.apply(id, current, StatusCancelled, func(s Status) bool {
		return s == StatusActive || s == StatusConfirmed
	})
}

func (o *Overlay) apply(id string, reported, next Status, legalFrom func(Status) bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	effective := reported
	if s, ok := o.pending[id]; ok {
		effective = s
	}
	if !legalFrom(effective) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, effective, next)
	}
	o.pending[id] = next
	return nil
}
