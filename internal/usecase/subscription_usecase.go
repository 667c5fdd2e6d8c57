package usecase

import (
	"context"

	"cooked/internal/domain/entity"
)

// Subscription is a live handle on one actor's push topic.
type Subscription interface {
	// Events yields decoded events while the handle is open and is closed on
	// teardown. A closed handle is never reopened.
	Events() <-chan entity.PushEvent

	Status() entity.SubscriptionStatus

	// Identity is the session identity the handle was opened for.
	Identity() string

	Topic() string

	// Done is closed once the handle has fully stopped.
	Done() <-chan struct{}

	// Err reports why the handle failed or lost its connection.
	Err() error
}

// SubscriptionUsecase keeps at most one push subscription alive.
type SubscriptionUsecase interface {
	// Open returns a handle for session's identity. Opening for the identity
	// already held returns the live handle; any other identity closes the
	// previous handle first. Connection happens in the background; failures
	// are reported through Status and Err.
	Open(ctx context.Context, session *entity.Session) (Subscription, error)

	// Close tears down the current handle, if any.
	Close() error

	// Current returns the handle most recently opened and not yet closed.
	Current() Subscription

	// Dispatch runs apply only if sub is still the current open handle,
	// holding the manager's lock so a concurrent switch cannot interleave.
	Dispatch(sub Subscription, apply func()) bool
}
