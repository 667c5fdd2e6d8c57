// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "cooked/internal/delivery/context"
	"cooked/internal/domain/entity"
	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/domain/repository"
	"cooked/internal/domain/service"
	"cooked/internal/errors"
	"cooked/internal/usecase"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	repo      repository.SessionRepository
	inspector service.TokenInspector
	expiry    usecase.ExpiryCoordinator
	logger    *slog.Logger

	mu      sync.Mutex
	loaded  bool
	current *entity.Session
	timer   *time.Timer
	now     func() time.Time
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	repo repository.SessionRepository,
	inspector service.TokenInspector,
	expiry usecase.ExpiryCoordinator,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		repo:      repo,
		inspector: inspector,
		expiry:    expiry,
		logger:    logger,
		now:       time.Now,
	}
}

// NewCredentialSource exposes the session store as the client's token source.
func NewCredentialSource(sessions usecase.SessionUsecase) service.CredentialSource {
	return sessions
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SetSession persists the session and arms expiry for it.
func (srv *sessionService) SetSession(ctx context.Context, session *entity.Session) error {
	if session == nil || session.Token == "" {
		return errors.Wrap(domainerrors.ErrNoSession, "session without token")
	}

	stored := session.Clone()
	stored.ExpiresAt = srv.tokenExpiry(ctx, stored.Token)

	if err := srv.repo.Save(ctx, stored); err != nil {
		return errors.Wrap(err, "failed to persist session")
	}

	srv.mu.Lock()
	srv.current = stored
	srv.loaded = true
	srv.scheduleLocked(stored)
	srv.mu.Unlock()

	srv.expiry.Arm()

	srv.log(ctx).Info("Session stored",
		slog.Int64("user_id", stored.UserID),
		slog.String("actor", stored.Role().String()),
	)

	return nil
}

// ClearSession forgets the session. Late credential rejections are ignored afterwards.
func (srv *sessionService) ClearSession(ctx context.Context) error {
	srv.expiry.Disarm()

	srv.mu.Lock()
	srv.current = nil
	srv.loaded = true
	srv.stopTimerLocked()
	srv.mu.Unlock()

	if err := srv.repo.Clear(ctx); err != nil {
		return errors.Wrap(err, "failed to clear session")
	}
	srv.log(ctx).Info("Session cleared")

	return nil
}

// GetSession loads the persisted session on first use.
func (srv *sessionService) GetSession(ctx context.Context) (*entity.Session, error) {
	srv.mu.Lock()
	if srv.loaded {
		current := srv.current.Clone()
		srv.mu.Unlock()

		return current, nil
	}
	srv.mu.Unlock()

	session, err := srv.repo.Load(ctx)
	if errors.Is(err, repository.ErrSessionCorrupt) {
		srv.log(ctx).Warn("Discarding malformed persisted session", slog.Any("error", err))
		if clearErr := srv.repo.Clear(ctx); clearErr != nil {
			srv.log(ctx).Error("Failed to wipe malformed session", slog.Any("error", clearErr))
		}
		session, err = nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}

	if session != nil {
		session.ExpiresAt = srv.tokenExpiry(ctx, session.Token)
	}

	srv.mu.Lock()
	if srv.loaded {
		// a concurrent Set or Clear won
		current := srv.current.Clone()
		srv.mu.Unlock()

		return current, nil
	}
	srv.loaded = true
	srv.current = session
	if session != nil {
		srv.scheduleLocked(session)
	}
	srv.mu.Unlock()

	if session == nil {
		return nil, nil
	}

	srv.expiry.Arm()
	if session.Expired(srv.now()) {
		srv.expiry.Trigger(ctx, "persisted token already expired")

		return nil, nil
	}

	return session.Clone(), nil
}

// Token implements service.CredentialSource.
func (srv *sessionService) Token() string {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.current == nil {
		return ""
	}

	return srv.current.Token
}

func (srv *sessionService) tokenExpiry(ctx context.Context, token string) *time.Time {
	claims, err := srv.inspector.Inspect(token)
	if err != nil {
		srv.log(ctx).Debug("Token carries no readable claims", slog.Any("error", err))

		return nil
	}

	return claims.Expiry()
}

// scheduleLocked arms a timer that reports expiry when the token lapses.
func (srv *sessionService) scheduleLocked(session *entity.Session) {
	srv.stopTimerLocked()
	if session.ExpiresAt == nil {
		return
	}

	wait := session.ExpiresAt.Sub(srv.now())
	if wait <= 0 {
		return
	}

	token := session.Token
	srv.timer = time.AfterFunc(wait, func() {
		if srv.Token() != token {
			return
		}
		srv.expiry.Trigger(context.Background(), "token lifetime elapsed")
	})
}

func (srv *sessionService) stopTimerLocked() {
	if srv.timer != nil {
		srv.timer.Stop()
		srv.timer = nil
	}
}
