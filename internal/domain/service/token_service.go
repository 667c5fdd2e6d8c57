package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the client can read out of a bearer token without the
// signing key.
type Claims struct {
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Expiry returns the exp claim, or nil when the token has none.
func (c *Claims) Expiry() *time.Time {
	if c == nil || c.ExpiresAt == nil {
		return nil
	}
	t := c.ExpiresAt.Time

	return &t
}

// TokenInspector reads claims from opaque bearer tokens.
// The backend remains the only judge of validity.
type TokenInspector interface {
	// Inspect parses tokenString without verifying its signature.
	// Non-JWT tokens yield an error; callers treat them as never expiring.
	Inspect(tokenString string) (*Claims, error)
}
