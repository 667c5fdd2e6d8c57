// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"cooked/internal/domain/service"
	"cooked/internal/errors"
)

// jwtInspector reads JWT claims without the signing key. The backend signs
// tokens; the client only needs exp to schedule local expiry.
type jwtInspector struct {
	parser *jwt.Parser
}

// NewJWTInspector is the constructor for jwtInspector.
func NewJWTInspector() service.TokenInspector {
	return &jwtInspector{parser: jwt.NewParser()}
}

// Inspect parses the token's claims. Signature and expiry are not checked.
func (s *jwtInspector) Inspect(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	if _, _, err := s.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.Wrap(err, "parse token claims")
	}

	return claims, nil
}
