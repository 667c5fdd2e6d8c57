// Package navigation records where the view layer has been sent.
package navigation

import (
	"log/slog"
	"sync"

	"cooked/internal/domain/entity"
	"cooked/internal/domain/service"
)

// routeNavigator keeps the current route for the view to poll.
type routeNavigator struct {
	mu      sync.RWMutex
	current string
	logger  *slog.Logger
}

// NewNavigator is the constructor for routeNavigator. It starts at sign-in.
func NewNavigator(logger *slog.Logger) service.Navigator {
	return &routeNavigator{current: entity.RouteSignIn, logger: logger}
}

func (n *routeNavigator) Navigate(route string) {
	n.mu.Lock()
	prev := n.current
	n.current = route
	n.mu.Unlock()

	if prev != route {
		n.logger.Info("Navigating", slog.String("from", prev), slog.String("to", route))
	}
}

func (n *routeNavigator) Current() string {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return n.current
}
