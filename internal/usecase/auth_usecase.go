package usecase

import (
	"context"

	"cooked/internal/domain/entity"
)

// LoginOutcome is the session created by a sign-in and where to go next.
type LoginOutcome struct {
	Session *entity.Session `json:"session"`
	Route   string          `json:"route"`
}

// AuthUsecase drives sign-in, sign-out and session resumption.
type AuthUsecase interface {
	// CheckIdentifier reports whether an account exists for the identifier.
	CheckIdentifier(ctx context.Context, identifier string) (bool, error)

	// Login signs in, stores the session and starts synchronization.
	Login(ctx context.Context, identifier, password string) (*LoginOutcome, error)

	// Logout stops synchronization and forgets the session.
	Logout(ctx context.Context) error

	// Restore resumes a persisted session at startup. It returns nil, nil
	// when there is none.
	Restore(ctx context.Context) (*LoginOutcome, error)
}
