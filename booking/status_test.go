package booking

import "testing"

func TestDisplayCoversEveryKnownStatus(t *testing.T) {
	cases := []struct {
		status Status
		label  string
		color  string
	}{
		{StatusActive, "Active", "orange"},
		{StatusConfirmed, "Confirmed", "green"},
		{StatusCompleted, "Completed", "gray"},
		{StatusCancelled, "Cancelled", "red"},
		{StatusNoShow, "No Show", "red"},
	}

	for _, tc := range cases {
		d := tc.status.Display()
		if d.Label != tc.label {
			t.Errorf("status %d: label = %q, want %q", tc.status, d.Label, tc.label)
		}
		if d.Color != tc.color {
			t.Errorf("status %d: color = %q, want %q", tc.status, d.Color, tc.color)
		}
	}
}

func TestDisplayFallsBackForUnknownValues(t *testing.T) {
	for _, s := range []Status{-1, 5, 42, 99} {
		d := s.Display()
		if d.Label != "Unknown" || d.Color != "gray" {
			t.Errorf("status %d: display = %+v, want Unknown/gray", s, d)
		}
	}
}

func TestUnknownStatusIsTerminal(t *testing.T) {
	if StatusActive.Terminal() || StatusConfirmed.Terminal() {
		t.Fatal("active and confirmed must not be terminal")
	}
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow, -1, 7} {
		if !s.Terminal() {
			t.Errorf("status %d: expected terminal", s)
		}
	}
}

func TestLegalActionsTable(t *testing.T) {
	cases := []struct {
		status Status
		role   Role
		want   []Action
	}{
		{StatusActive, RoleOwner, []Action{ActionCancel}},
		{StatusActive, RoleOperator, []Action{ActionConfirm, ActionCancelWithReason}},
		{StatusConfirmed, RoleOwner, nil},
		{StatusConfirmed, RoleOperator, nil},
		{StatusCompleted, RoleOwner, nil},
		{StatusCompleted, RoleOperator, nil},
		{StatusCancelled, RoleOwner, nil},
		{StatusCancelled, RoleOperator, nil},
		{StatusNoShow, RoleOwner, nil},
		{StatusNoShow, RoleOperator, nil},
		{Status(9), RoleOwner, nil},
		{Status(-1), RoleOperator, nil},
	}

	for _, tc := range cases {
		got := LegalActions(tc.status, tc.role)
		if len(got) != len(tc.want) {
			t.Errorf("LegalActions(%d, %s) = %v, want %v", tc.status, tc.role, got, tc.want)
			continue
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Errorf("LegalActions(%d, %s)[%d] = %q, want %q", tc.status, tc.role, i, got[i], tc.want[i])
			}
		}
	}
}

func TestActionSetAllows(t *testing.T) {
	set := LegalActions(StatusActive, RoleOperator)
	if !set.Allows(ActionConfirm) {
		t.Error("operator should be allowed to confirm an active booking")
	}
	if set.Allows(ActionCancel) {
		t.Error("operator set should not contain the plain cancel action")
	}
	if ActionSet(nil).Allows(ActionCancel) {
		t.Error("empty set should allow nothing")
	}
}

func TestRoleFromWire(t *testing.T) {
	if role, ok := RoleFromWire(WireRoleOwner); !ok || role != RoleOwner {
		t.Errorf("wire %d = %q, %v; want owner", WireRoleOwner, role, ok)
	}
	if role, ok := RoleFromWire(WireRoleOperator); !ok || role != RoleOperator {
		t.Errorf("wire %d = %q, %v; want operator", WireRoleOperator, role, ok)
	}
	if role, ok := RoleFromWire(WireRoleBackoffice); !ok || role != RoleOperator {
		t.Errorf("wire %d = %q, %v; want operator privileges", WireRoleBackoffice, role, ok)
	}
	if _, ok := RoleFromWire(17); ok {
		t.Error("unknown wire role should not map")
	}
}
