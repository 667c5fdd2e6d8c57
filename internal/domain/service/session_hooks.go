package service

import "context"

// Navigator moves the view layer to a route.
type Navigator interface {
	Navigate(route string)
	Current() string
}

// CredentialSource supplies the bearer token of the current session.
// An empty token means signed out.
type CredentialSource interface {
	Token() string
}

// ExpiryNotifier is told when the backend rejects the credential.
type ExpiryNotifier interface {
	Trigger(ctx context.Context, reason string)
}
