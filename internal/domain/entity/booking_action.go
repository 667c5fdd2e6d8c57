package entity

// Action is a user-initiated operation on a booking.
type Action string

const (
	ActionAccept          Action = "accept"
	ActionReject          Action = "reject"
	ActionCompleteService Action = "complete_service"
	ActionReceivePayment  Action = "receive_payment"
	ActionCancel          Action = "cancel"
	ActionRate            Action = "rate"
)

func (a Action) String() string {
	return string(a)
}

// IsValid checks if the Action is a valid value.
func (a Action) IsValid() bool {
	switch a {
	case ActionAccept, ActionReject, ActionCompleteService, ActionReceivePayment, ActionCancel, ActionRate:
		return true
	default:
		return false
	}
}

// Actor returns the side allowed to perform the action.
func (a Action) Actor() Actor {
	switch a {
	case ActionCancel, ActionRate:
		return ActorCustomer
	default:
		return ActorCook
	}
}

// TargetStatus is the status the action moves a booking to, if any.
func (a Action) TargetStatus() (BookingStatus, bool) {
	switch a {
	case ActionAccept:
		return StatusAccepted, true
	case ActionReject:
		return StatusRejected, true
	case ActionCompleteService:
		return StatusServiceCompleted, true
	case ActionReceivePayment:
		return StatusPaymentCompleted, true
	case ActionCancel:
		return StatusCancelled, true
	default:
		return "", false
	}
}

// Viewer identifies who is looking at a booking.
type Viewer struct {
	Actor    Actor
	UserID   int64
	Username string
}

// ViewerOf builds the viewer for a session; a nil session sees nothing.
func ViewerOf(s *Session) Viewer {
	if s == nil {
		return Viewer{}
	}

	return Viewer{Actor: s.Role(), UserID: s.UserID, Username: s.Username}
}

// AvailableActions lists the actions the viewer may take on b right now.
// The order is stable: the primary action first.
func AvailableActions(b *Booking, v Viewer) []Action {
	if b == nil {
		return nil
	}

	status := b.EffectiveStatus()

	switch v.Actor {
	case ActorCook:
		if !isAssigned(b.CookID, b.CookUsername, v) {
			return nil
		}
		switch status {
		case StatusPending:
			return []Action{ActionAccept, ActionReject}
		case StatusAccepted:
			return []Action{ActionCompleteService}
		case StatusServiceCompleted:
			return []Action{ActionReceivePayment}
		}
	case ActorCustomer:
		if !isAssigned(b.CustomerID, b.CustomerUsername, v) {
			return nil
		}
		switch status {
		case StatusPending, StatusAccepted:
			return []Action{ActionCancel}
		case StatusCompleted:
			if !b.RatedByCurrentUser {
				return []Action{ActionRate}
			}
		}
	}

	return nil
}

// CanPerform reports whether action is currently offered to v on b.
func CanPerform(b *Booking, v Viewer, action Action) bool {
	for _, a := range AvailableActions(b, v) {
		if a == action {
			return true
		}
	}

	return false
}

// isAssigned compares ids when both sides know them, then usernames.
// Lists fetched from the "/me" endpoints omit the owner, which counts as assigned.
func isAssigned(id int64, username string, v Viewer) bool {
	if id != 0 && v.UserID != 0 {
		return id == v.UserID
	}
	if username != "" && v.Username != "" {
		return username == v.Username
	}

	return true
}
