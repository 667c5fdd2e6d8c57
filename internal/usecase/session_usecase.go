// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"cooked/internal/domain/entity"
)

// SessionUsecase is the durable store of the signed-in session.
// Only sign-in, sign-out and expiry paths write to it.
type SessionUsecase interface {
	// SetSession persists session and arms expiry handling for it.
	SetSession(ctx context.Context, session *entity.Session) error

	// ClearSession wipes the persisted session. Clearing an empty store is not an error.
	ClearSession(ctx context.Context) error

	// GetSession returns a copy of the current session, or nil when signed out.
	// Malformed persisted data reads as signed out and is wiped.
	GetSession(ctx context.Context) (*entity.Session, error)

	// Token returns the current bearer token, or "" when signed out.
	Token() string
}

// ExpiryHandler reacts to the loss of the session credential.
type ExpiryHandler func(ctx context.Context, reason string)

// ExpiryCoordinator funnels every credential rejection into one handler call.
type ExpiryCoordinator interface {
	// Register replaces the active handler. nil restores the default.
	Register(handler ExpiryHandler)

	// Trigger runs the handler if the coordinator is armed and disarms it.
	// Concurrent triggers for the same session run the handler once.
	Trigger(ctx context.Context, reason string)

	// Arm re-enables Trigger; called whenever a session is set.
	Arm()

	// Disarm makes Trigger a no-op until the next Arm.
	Disarm()

	Armed() bool
}
