package booking

// Action is a user-facing affordance the client may offer for a booking.
type Action string

const (
	// ActionConfirm is the operator confirming an active booking.
	ActionConfirm Action = "confirm"
	// ActionCancel is the owner cancelling their own active booking.
	ActionCancel Action = "cancel"
	// ActionCancelWithReason is the operator cancelling with a mandatory
	// reason.
	ActionCancelWithReason Action = "cancel_with_reason"
)

// ActionSet is the set of actions legal for a status/role pair.
type ActionSet []Action

// Allows reports whether the set contains the action.
func (s ActionSet) Allows(a Action) bool {
	for _, have := range s {
		if have == a {
			return true
		}
	}
	return false
}

// LegalActions returns the actions a caller in the given role may attempt
// against a booking in the given status. Every terminal or unknown status
// yields the empty set, for either role; a confirmed booking offers the
// owner its redemption QR rather than an action.
func LegalActions(status Status, role Role) ActionSet {
	if status != StatusActive {
		return nil
	}
	switch role {
	case RoleOwner:
		return ActionSet{ActionCancel}
	case RoleOperator:
		return ActionSet{ActionConfirm, ActionCancelWithReason}
	default:
		return nil
	}
}
