// Package booking models the client-visible booking lifecycle: the numeric
// wire statuses, the role-gated actions a UI may offer, and the optimistic
// overlay applied between a successful write and the next authoritative
// fetch. Transitions themselves are executed server-side; this package only
// decides what is legal to attempt and how to present the result.
package booking

// Status is the numeric wire encoding of a booking's lifecycle state. The
// server is authoritative; values outside the known range are preserved
// as-is and rendered as unknown.
type Status int

const (
	// StatusActive is a fresh booking awaiting operator confirmation.
	StatusActive Status = 0
	// StatusConfirmed means the operator confirmed; the QR payload is
	// redeemable only while in this state.
	StatusConfirmed Status = 1
	// StatusCompleted is terminal: the charging session finished.
	StatusCompleted Status = 2
	// StatusCancelled is terminal: cancelled by owner or operator.
	StatusCancelled Status = 3
	// StatusNoShow is terminal: the owner never arrived.
	StatusNoShow Status = 4
)

// Known reports whether the value is one of the defined statuses.
func (s Status) Known() bool {
	return s >= StatusActive && s <= StatusNoShow
}

// Terminal reports whether no further transition is permitted. Unknown
// values are treated as terminal so the UI offers nothing for them.
func (s Status) Terminal() bool {
	switch s {
	case StatusActive, StatusConfirmed:
		return false
	default:
		return true
	}
}

func (s Status) String() string {
	return s.Display().Label
}

// Display is a status's presentation: human label plus a color class for
// the rendering layer.
type Display struct {
	Label string
	Color string
}

var displayTable = map[Status]Display{
	StatusActive:    {Label: "Active", Color: "orange"},
	StatusConfirmed: {Label: "Confirmed", Color: "green"},
	StatusCompleted: {Label: "Completed", Color: "gray"},
	StatusCancelled: {Label: "Cancelled", Color: "red"},
	StatusNoShow:    {Label: "No Show", Color: "red"},
}

// displayUnknown is the single fallback for every out-of-table value. The
// lookup is total: it never panics and never borrows a misleading label.
var displayUnknown = Display{Label: "Unknown", Color: "gray"}

// Display returns the presentation for the status, falling back to the
// explicit Unknown entry for any unrecognized value.
func (s Status) Display() Display {
	if d, ok := displayTable[s]; ok {
		return d
	}
	return displayUnknown
}

// Role identifies which side of a booking the caller is on. Wire role
// values come from the user record; back-office users act with operator
// privileges in this model.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleOperator Role = "operator"
)

// Wire role values as encoded in user records and JWT claims.
const (
	WireRoleBackoffice = 0
	WireRoleOperator   = 1
	WireRoleOwner      = 2
)

// RoleFromWire maps a numeric user role to the client-side role.
func RoleFromWire(v int) (Role, bool) {
	switch v {
	case WireRoleOwner:
		return RoleOwner, true
	case WireRoleOperator, WireRoleBackoffice:
		return RoleOperator, true
	default:
		return "", false
	}
}
