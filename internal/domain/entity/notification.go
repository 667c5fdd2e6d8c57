package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EventKind is the tag of a booking-lifecycle push event.
type EventKind string

const (
	EventNewBookingRequest       EventKind = "NEW_BOOKING_REQUEST"
	EventBookingAccepted         EventKind = "BOOKING_ACCEPTED"
	EventBookingRejected         EventKind = "BOOKING_REJECTED"
	EventBookingCancelled        EventKind = "BOOKING_CANCELLED"
	EventBookingServiceCompleted EventKind = "BOOKING_SERVICE_COMPLETED"
	EventBookingPaymentReceived  EventKind = "BOOKING_PAYMENT_RECEIVED"
	EventRatingSubmitted         EventKind = "RATING_SUBMITTED"
	EventUnknown                 EventKind = ""
)

// ParseEventKind maps a wire type onto a known kind, else EventUnknown.
func ParseEventKind(s string) EventKind {
	switch k := EventKind(s); k {
	case EventNewBookingRequest, EventBookingAccepted, EventBookingRejected, EventBookingCancelled,
		EventBookingServiceCompleted, EventBookingPaymentReceived, EventRatingSubmitted:
		return k
	default:
		return EventUnknown
	}
}

// PushEvent is a notification as delivered on the push channel.
type PushEvent struct {
	Type      string     `json:"type"`
	Message   string     `json:"message"`
	Timestamp *Timestamp `json:"timestamp,omitempty"`
	BookingID *int64     `json:"bookingId,omitempty"`
}

// Kind returns the parsed tag of the event.
func (e PushEvent) Kind() EventKind {
	return ParseEventKind(e.Type)
}

// TriggersRefresh reports whether the event may have changed the booking list.
// Any BOOKING_ type counts, including ones this client does not know yet.
func (e PushEvent) TriggersRefresh() bool {
	return e.Type == string(EventNewBookingRequest) || strings.HasPrefix(e.Type, "BOOKING_")
}

// FeedEntry is a push event once the client has accepted it into a feed.
type FeedEntry struct {
	PushEvent

	LocalID    uuid.UUID `json:"localId"` // keying only; not a dedup key
	Read       bool      `json:"isRead"`
	ReceivedAt time.Time `json:"receivedAt"`
	Seq        uint64    `json:"seq"` // ingestion order
}

// Clone returns a copy that shares nothing with the feed.
func (e FeedEntry) Clone() FeedEntry {
	c := e
	if e.Timestamp != nil {
		ts := *e.Timestamp
		c.Timestamp = &ts
	}
	if e.BookingID != nil {
		id := *e.BookingID
		c.BookingID = &id
	}

	return c
}
