// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"cooked/internal/domain/entity"
	"cooked/internal/errors"
)

// ErrSessionCorrupt is returned when persisted session data cannot be decoded.
var ErrSessionCorrupt = errors.New("persisted session is malformed")

// Persisted session keys. They are written and wiped together.
const (
	KeyAuthToken = "authToken"
	KeyUsername  = "username"
	KeyUserRoles = "userRoles"
	KeyStatus    = "status"
	KeyUserID    = "userId"
	KeyEmail     = "email"
)

// SessionKeys lists every persisted key.
var SessionKeys = []string{KeyAuthToken, KeyUsername, KeyUserRoles, KeyStatus, KeyUserID, KeyEmail}

// SessionRepository persists the signed-in session across restarts.
type SessionRepository interface {
	// Save overwrites every key with the values of session.
	Save(ctx context.Context, session *entity.Session) error

	// Load returns nil, nil when nothing is stored and ErrSessionCorrupt
	// when the stored keys do not form a session.
	Load(ctx context.Context) (*entity.Session, error)

	// Clear removes every key. Missing keys are not an error.
	Clear(ctx context.Context) error
}
