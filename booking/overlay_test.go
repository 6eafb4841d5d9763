package booking

import (
	"errors"
	"testing"
)

func TestOverlayConfirmOnlyFromActive(t *testing.T) {
	o := NewOverlay()

	if err := o.ApplyConfirm("b1", StatusActive); err != nil {
		t.Fatalf("confirm from active: %v", err)
	}
	if got := o.Resolve("b1", StatusActive); got != StatusConfirmed {
		t.Fatalf("resolved status = %d, want confirmed", got)
	}

	for _, from := range []Status{StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow, Status(8)} {
		err := o.ApplyConfirm("b2", from)
		if !errors.Is(err, ErrIllegalTransition) {
			t.Errorf("confirm from %d: err = %v, want ErrIllegalTransition", from, err)
		}
	}
}

func TestOverlayOwnerCancelOnlyFromActive(t *testing.T) {
	o := NewOverlay()

	if err := o.ApplyOwnerCancel("b1", StatusActive); err != nil {
		t.Fatalf("owner cancel from active: %v", err)
	}
	if got := o.Resolve("b1", StatusActive); got != StatusCancelled {
		t.Fatalf("resolved status = %d, want cancelled", got)
	}

	if err := o.ApplyOwnerCancel("b2", StatusConfirmed); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("owner cancel from confirmed: err = %v, want ErrIllegalTransition", err)
	}
}

func TestOverlayOperatorCancelFromActiveOrConfirmed(t *testing.T) {
	o := NewOverlay()

	if err := o.ApplyOperatorCancel("b1", StatusActive); err != nil {
		t.Fatalf("operator cancel from active: %v", err)
	}
	if err := o.ApplyOperatorCancel("b2", StatusConfirmed); err != nil {
		t.Fatalf("operator cancel from confirmed: %v", err)
	}
	if err := o.ApplyOperatorCancel("b3", StatusCompleted); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("operator cancel from completed: err = %v, want ErrIllegalTransition", err)
	}
}

func TestOverlayPendingStatusGuardsNextTransition(t *testing.T) {
	o := NewOverlay()

	if err := o.ApplyConfirm("b1", StatusActive); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	// The server still reports Active, but the local overlay already
	// holds Confirmed, so a second confirm must be rejected.
	if err := o.ApplyConfirm("b1", StatusActive); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("second confirm: err = %v, want ErrIllegalTransition", err)
	}
	// An operator cancel from the overlaid Confirmed state is legal.
	if err := o.ApplyOperatorCancel("b1", StatusActive); err != nil {
		t.Fatalf("operator cancel on overlaid confirmed: %v", err)
	}
}

func TestOverlayResolveUnknownIDPassesThrough(t *testing.T) {
	o := NewOverlay()
	if got := o.Resolve("missing", StatusCompleted); got != StatusCompleted {
		t.Fatalf("resolve = %d, want fetched value", got)
	}
}

func TestOverlayResetClearsPendingState(t *testing.T) {
	o := NewOverlay()
	if err := o.ApplyOwnerCancel("b1", StatusActive); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	o.Reset()
	if got := o.Resolve("b1", StatusActive); got != StatusActive {
		t.Fatalf("resolve after reset = %d, want server value", got)
	}
}
