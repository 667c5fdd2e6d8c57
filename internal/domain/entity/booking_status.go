package entity

// BookingStatus is the lifecycle state of a booking as reported by the backend.
type BookingStatus string

const (
	StatusPending          BookingStatus = "PENDING"
	StatusAccepted         BookingStatus = "ACCEPTED"
	StatusRejected         BookingStatus = "REJECTED"
	StatusServiceCompleted BookingStatus = "SERVICE_COMPLETED"
	StatusPaymentCompleted BookingStatus = "PAYMENT_COMPLETED"
	StatusCompleted        BookingStatus = "COMPLETED"
	// StatusCancelled is never stored by the board; cancelled bookings are removed.
	StatusCancelled BookingStatus = "CANCELLED"
)

// transitions is the directed lifecycle graph.
var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:          {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:         {StatusServiceCompleted, StatusCancelled},
	StatusServiceCompleted: {StatusPaymentCompleted, StatusCompleted},
	StatusPaymentCompleted: {StatusCompleted},
}

func (s BookingStatus) String() string {
	return string(s)
}

// IsValid checks if the status is one the client understands.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusServiceCompleted,
		StatusPaymentCompleted, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports states with no outgoing edge.
func (s BookingStatus) IsTerminal() bool {
	return s.IsValid() && len(transitions[s]) == 0
}

// CanTransition reports whether to is a direct successor of s.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}

	return false
}

// CanReach reports whether to is s itself or lies downstream of s.
// Used to reject stale data that would move a booking backwards.
func (s BookingStatus) CanReach(to BookingStatus) bool {
	if s == to {
		return true
	}

	seen := map[BookingStatus]bool{s: true}
	queue := []BookingStatus{s}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range transitions[cur] {
			if next == to {
				return true
			}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	return false
}

// rank orders the main line of the lifecycle. Side exits share the rank of
// the state they leave from plus one.
func (s BookingStatus) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusAccepted, StatusRejected:
		return 1
	case StatusServiceCompleted:
		return 2
	case StatusPaymentCompleted:
		return 3
	case StatusCompleted:
		return 4
	case StatusCancelled:
		return 5
	default:
		return -1
	}
}
