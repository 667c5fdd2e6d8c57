package usecase

import (
	"context"

	"cooked/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase merges a session's push stream and pulls into local state.
type NotificationUsecase interface {
	// Start opens the session's subscription, runs an initial pull and keeps
	// consuming events until Stop. Starting again for another identity
	// restarts the scope.
	Start(ctx context.Context, session *entity.Session) error

	// Stop ends the scope: closes the subscription and resets the merged state.
	Stop(ctx context.Context)

	// Feed returns the general feed, or the cook preview when compact is set.
	Feed(compact bool) []entity.FeedEntry

	// UnreadCount counts unread entries whose type starts with prefix.
	UnreadCount(compact bool, prefix string) int

	MarkAllRead()
	MarkOneRead(localID uuid.UUID) bool

	// SubscriptionStatus reports the current handle's state, CLOSED if none.
	SubscriptionStatus() entity.SubscriptionStatus
}
