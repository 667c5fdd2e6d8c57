package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cooked/config"
	"cooked/internal/domain/entity"
	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/domain/state"
	"cooked/internal/errors"
	"cooked/internal/usecase"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// scopeKey marks contexts owned by a sync scope. Stop called from inside the
// scope (an expiry raised by its own pull) must not wait for itself.
type scopeKey struct{}

// syncScope is one session's running subscription consumer and pull loops.
type syncScope struct {
	identity string
	cancel   context.CancelFunc
	group    *errgroup.Group
}

// notificationService implements the NotificationUsecase interface.
type notificationService struct {
	subs     usecase.SubscriptionUsecase
	bookings usecase.BookingUsecase
	store    *state.Store
	interval time.Duration
	logger   *slog.Logger

	// lifecycle serialises Start and Stop from outside a scope.
	lifecycle sync.Mutex

	mu    sync.Mutex
	scope *syncScope
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(
	subs usecase.SubscriptionUsecase,
	bookings usecase.BookingUsecase,
	store *state.Store,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.NotificationUsecase {
	return &notificationService{
		subs:     subs,
		bookings: bookings,
		store:    store,
		interval: cfg.Sync.RefreshInterval,
		logger:   logger,
	}
}

// Start opens the push subscription and the pull loop for session. The
// scope outlives ctx; only Stop or a Start for another identity ends it.
// A credential rejected by the initial pull is returned as the
// SessionExpiredError, after expiry handling has run.
func (srv *notificationService) Start(ctx context.Context, session *entity.Session) error {
	if session == nil {
		return domainerrors.ErrNoSession
	}

	srv.lifecycle.Lock()
	started, err := srv.startLocked(ctx, session)
	srv.lifecycle.Unlock()
	if err != nil || !started {
		return err
	}

	// outside the lifecycle lock: a 401 here runs expiry handling, which stops this scope
	if err := srv.bookings.Refresh(ctx); err != nil {
		if domainerrors.IsSessionExpired(err) {
			return err
		}
		srv.logger.Warn("Initial booking pull failed", slog.Any("error", err))
	}

	return nil
}

func (srv *notificationService) startLocked(ctx context.Context, session *entity.Session) (bool, error) {
	srv.mu.Lock()
	running := srv.scope != nil && srv.scope.identity == session.Identity()
	srv.mu.Unlock()
	if running {
		return false, nil
	}

	srv.stopLocked(ctx)

	sc := &syncScope{identity: session.Identity()}
	scopeCtx, cancel := context.WithCancel(context.WithValue(context.WithoutCancel(ctx), scopeKey{}, sc))
	sub, err := srv.subs.Open(scopeCtx, session)
	if err != nil {
		cancel()

		return false, errors.Wrap(err, "failed to open push subscription")
	}

	group, groupCtx := errgroup.WithContext(scopeCtx)
	sc.cancel = cancel
	sc.group = group

	// one pending pull at a time; further requests fold into it
	kick := make(chan struct{}, 1)
	preview := session.IsCook()

	group.Go(func() error {
		srv.consume(groupCtx, sub, preview, kick)

		return nil
	})
	group.Go(func() error {
		srv.pull(groupCtx, kick)

		return nil
	})
	if srv.interval > 0 {
		group.Go(func() error {
			srv.poll(groupCtx, kick)

			return nil
		})
	}

	srv.mu.Lock()
	srv.scope = sc
	srv.mu.Unlock()

	srv.logger.Info("Notification sync started",
		slog.String("identity", sc.identity),
		slog.String("topic", sub.Topic()),
	)

	return true, nil
}

// Stop closes the subscription, waits for the scope's goroutines and wipes
// the merged state. From inside a scope it only tears that scope down.
func (srv *notificationService) Stop(ctx context.Context) {
	if sc, ok := ctx.Value(scopeKey{}).(*syncScope); ok {
		srv.stopFromScope(sc)

		return
	}

	srv.lifecycle.Lock()
	defer srv.lifecycle.Unlock()

	srv.stopLocked(ctx)
}

func (srv *notificationService) stopLocked(_ context.Context) {
	srv.mu.Lock()
	sc := srv.scope
	srv.scope = nil
	srv.mu.Unlock()

	srv.teardown()
	if sc == nil {
		return
	}

	sc.cancel()
	if err := sc.group.Wait(); err != nil {
		srv.logger.Warn("Notification sync stopped with error", slog.Any("error", err))
	}
	srv.logger.Info("Notification sync stopped", slog.String("identity", sc.identity))
}

// stopFromScope ends sc without waiting, and only if it is still the running
// scope; a scope already replaced must not close its successor.
func (srv *notificationService) stopFromScope(sc *syncScope) {
	srv.mu.Lock()
	current := srv.scope == sc
	if current {
		srv.scope = nil
	}
	srv.mu.Unlock()

	sc.cancel()
	if !current {
		return
	}

	srv.teardown()
	srv.logger.Info("Notification sync stopped from within its scope", slog.String("identity", sc.identity))
}

func (srv *notificationService) teardown() {
	if err := srv.subs.Close(); err != nil {
		srv.logger.Warn("Failed to close push subscription", slog.Any("error", err))
	}
	srv.store.Reset()
}

// consume merges every event of sub until it is torn down.
func (srv *notificationService) consume(ctx context.Context, sub usecase.Subscription, preview bool, kick chan<- struct{}) {
	for ev := range sub.Events() {
		applied := srv.subs.Dispatch(sub, func() {
			entry, ok := srv.store.Feed.Ingest(ev)
			if ok && preview {
				srv.store.Preview.Insert(entry)
			}
		})
		if !applied {
			srv.logger.Debug("Dropping event from stale subscription", slog.String("type", ev.Type))

			continue
		}

		if ev.TriggersRefresh() && ctx.Err() == nil {
			requestPull(kick)
		}
	}

	if err := sub.Err(); err != nil && ctx.Err() == nil {
		srv.logger.Warn("Push subscription ended", slog.String("status", sub.Status().String()), slog.Any("error", err))
	}
}

// pull runs the pulls requested by pushes and the ticker, one at a time.
func (srv *notificationService) pull(ctx context.Context, kick <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-kick:
			if err := srv.bookings.Refresh(ctx); err != nil && ctx.Err() == nil {
				srv.logger.Warn("Background refresh failed", slog.Any("error", err))
			}
		}
	}
}

// poll requests periodic pulls so changes are seen even without pushes.
func (srv *notificationService) poll(ctx context.Context, kick chan<- struct{}) {
	ticker := time.NewTicker(srv.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			requestPull(kick)
		}
	}
}

func requestPull(kick chan<- struct{}) {
	select {
	case kick <- struct{}{}:
	default:
	}
}

func (srv *notificationService) Feed(compact bool) []entity.FeedEntry {
	return srv.feed(compact).Entries()
}

func (srv *notificationService) UnreadCount(compact bool, prefix string) int {
	return srv.feed(compact).UnreadCount(prefix)
}

func (srv *notificationService) MarkAllRead() {
	srv.store.Feed.MarkAllRead()
	srv.store.Preview.MarkAllRead()
}

func (srv *notificationService) MarkOneRead(localID uuid.UUID) bool {
	general := srv.store.Feed.MarkOneRead(localID)
	preview := srv.store.Preview.MarkOneRead(localID)

	return general || preview
}

func (srv *notificationService) SubscriptionStatus() entity.SubscriptionStatus {
	sub := srv.subs.Current()
	if sub == nil {
		return entity.SubscriptionClosed
	}

	return sub.Status()
}

func (srv *notificationService) feed(compact bool) *state.Feed {
	if compact {
		return srv.store.Preview
	}

	return srv.store.Feed
}
