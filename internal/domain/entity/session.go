package entity

import (
	"strconv"
	"time"
)

// StatusPendingCookProfile marks a cook registration that still needs a profile.
const StatusPendingCookProfile = "PENDING_COOK_PROFILE"

// Landing routes the view is sent to.
const (
	RouteSignIn           = "/signin"
	RouteCookDashboard    = "/cook-dashboard"
	RouteCookProfileSetup = "/cook-profile-setup"
	RouteDetails          = "/details"
)

// Session is the signed-in identity and its bearer credential.
type Session struct {
	UserID    int64      `json:"userId"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	Token     string     `json:"-"`
	Roles     Roles      `json:"roles"`
	Status    string     `json:"status,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Role returns the actor this session acts as.
func (s *Session) Role() Actor {
	return s.Roles.Actor()
}

// IsCook reports whether the session belongs to a cook.
func (s *Session) IsCook() bool {
	return s.Role() == ActorCook
}

// Identity is the stable key a push subscription is opened for.
func (s *Session) Identity() string {
	return s.Role().String() + ":" + strconv.FormatInt(s.UserID, 10)
}

// Expired reports whether the credential has passed its expiry.
// Tokens without an expiry never expire locally.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// LandingRoute is where the view goes right after sign-in.
func (s *Session) LandingRoute() string {
	switch {
	case s.IsCook():
		return RouteCookDashboard
	case s.Status == StatusPendingCookProfile:
		return RouteCookProfileSetup
	default:
		return RouteDetails
	}
}

// Clone returns a copy that shares nothing with the store.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}

	c := *s
	c.Roles = append(Roles(nil), s.Roles...)
	if s.ExpiresAt != nil {
		t := *s.ExpiresAt
		c.ExpiresAt = &t
	}

	return &c
}

// LoginResult is what the backend returns on a successful sign-in.
type LoginResult struct {
	Token    string   `json:"token"`
	UserID   int64    `json:"userId"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	Status   string   `json:"status"`
}

// Profile is the signed-in account as the backend describes it.
type Profile struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles,omitempty"`
	Status   string   `json:"status,omitempty"`
}
