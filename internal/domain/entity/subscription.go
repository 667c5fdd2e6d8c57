package entity

// SubscriptionStatus is the state of a push subscription handle.
type SubscriptionStatus string

const (
	SubscriptionConnecting SubscriptionStatus = "CONNECTING"
	SubscriptionOpen       SubscriptionStatus = "OPEN"
	SubscriptionFailed     SubscriptionStatus = "FAILED"
	SubscriptionClosed     SubscriptionStatus = "CLOSED"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsLive reports whether the handle may still deliver events.
func (s SubscriptionStatus) IsLive() bool {
	return s == SubscriptionConnecting || s == SubscriptionOpen
}
