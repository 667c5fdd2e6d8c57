package impl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	deliverycontext "cooked/internal/delivery/context"
	"cooked/internal/domain/entity"
	"cooked/internal/domain/repository"
	"cooked/internal/domain/service"
	"cooked/internal/usecase"
)

// expiryCoordinator implements the ExpiryCoordinator interface.
type expiryCoordinator struct {
	mu      sync.Mutex
	handler usecase.ExpiryHandler
	armed   atomic.Bool

	repo      repository.SessionRepository
	navigator service.Navigator
	logger    *slog.Logger
}

// NewExpiryCoordinator is the constructor for expiryCoordinator.
// It starts disarmed; setting a session arms it.
func NewExpiryCoordinator(
	repo repository.SessionRepository,
	navigator service.Navigator,
	logger *slog.Logger,
) usecase.ExpiryCoordinator {
	return &expiryCoordinator{
		repo:      repo,
		navigator: navigator,
		logger:    logger,
	}
}

func (c *expiryCoordinator) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, c.logger)
}

func (c *expiryCoordinator) Register(handler usecase.ExpiryHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler = handler
}

func (c *expiryCoordinator) Arm() {
	c.armed.Store(true)
}

func (c *expiryCoordinator) Disarm() {
	c.armed.Store(false)
}

func (c *expiryCoordinator) Armed() bool {
	return c.armed.Load()
}

// Trigger implements service.ExpiryNotifier as well.
func (c *expiryCoordinator) Trigger(ctx context.Context, reason string) {
	if !c.armed.CompareAndSwap(true, false) {
		c.log(ctx).Debug("Session expiry already handled", slog.String("reason", reason))

		return
	}

	c.mu.Lock()
	handler := c.handler
	c.mu.Unlock()

	c.log(ctx).Warn("Session expired", slog.String("reason", reason))

	if handler == nil {
		c.defaultHandler(ctx, reason)

		return
	}
	handler(ctx, reason)
}

// defaultHandler wipes what it can and sends the view to sign-in.
func (c *expiryCoordinator) defaultHandler(ctx context.Context, reason string) {
	if err := c.repo.Clear(ctx); err != nil {
		c.log(ctx).Error("Failed to wipe session after expiry", slog.Any("error", err), slog.String("reason", reason))
	}
	c.navigator.Navigate(entity.RouteSignIn)
}
