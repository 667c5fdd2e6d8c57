package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"cooked/config"
	"cooked/internal/domain/entity"
	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/domain/service"
	"cooked/internal/domain/state"
	"cooked/internal/errors"
	"cooked/internal/usecase"
)

const eventBuffer = 32

// subscriptionService implements the SubscriptionUsecase interface.
type subscriptionService struct {
	transport   service.PushTransport
	topicPrefix string
	logger      *slog.Logger

	mu         sync.Mutex
	current    *subscription
	generation uint64
}

// NewSubscriptionService is the constructor for subscriptionService.
func NewSubscriptionService(
	transport service.PushTransport,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.SubscriptionUsecase {
	return &subscriptionService{
		transport:   transport,
		topicPrefix: cfg.Push.TopicPrefix,
		logger:      logger,
	}
}

// Topic builds the notification topic of an actor.
func Topic(prefix string, actor entity.Actor, userID int64) string {
	return fmt.Sprintf("%s/%s/%d/notifications", strings.TrimRight(prefix, "/"), actor, userID)
}

func (srv *subscriptionService) Open(ctx context.Context, session *entity.Session) (usecase.Subscription, error) {
	if session == nil || session.Token == "" || session.UserID == 0 {
		return nil, errors.Wrap(domainerrors.ErrNoSession, "cannot subscribe without an identified session")
	}

	identity := session.Identity()

	srv.mu.Lock()
	if cur := srv.current; cur != nil && cur.identity == identity && cur.Status().IsLive() {
		srv.mu.Unlock()

		return cur, nil
	}

	prev := srv.current
	srv.current = nil
	if prev != nil {
		prev.markClosed()
	}

	srv.generation++
	sub := newSubscription(identity, Topic(srv.topicPrefix, session.Role(), session.UserID), srv.generation, srv.logger)
	srv.current = sub
	srv.mu.Unlock()

	if prev != nil {
		srv.logger.Info("Closing push subscription for previous identity",
			slog.String("identity", prev.identity),
			slog.String("next", identity),
		)
		prev.teardown()
	}

	srv.logger.Info("Opening push subscription", slog.String("topic", sub.topic))
	go sub.run(ctx, srv.transport, session.Token)

	return sub, nil
}

func (srv *subscriptionService) Close() error {
	srv.mu.Lock()
	cur := srv.current
	srv.current = nil
	srv.generation++
	if cur != nil {
		cur.markClosed()
	}
	srv.mu.Unlock()

	if cur != nil {
		srv.logger.Info("Closing push subscription", slog.String("topic", cur.topic))
		cur.teardown()
	}

	return nil
}

func (srv *subscriptionService) Current() usecase.Subscription {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.current == nil {
		return nil
	}

	return srv.current
}

func (srv *subscriptionService) Dispatch(sub usecase.Subscription, apply func()) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	s, ok := sub.(*subscription)
	if !ok || s != srv.current || s.generation != srv.generation || s.Status() != entity.SubscriptionOpen {
		return false
	}
	apply()

	return true
}

// subscription is one handle. Its reader goroutine is the only sender on events.
type subscription struct {
	identity   string
	topic      string
	generation uint64
	logger     *slog.Logger

	mu      sync.Mutex
	status  entity.SubscriptionStatus
	err     error
	channel service.PushChannel

	events    chan entity.PushEvent
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newSubscription(identity, topic string, generation uint64, logger *slog.Logger) *subscription {
	return &subscription{
		identity:   identity,
		topic:      topic,
		generation: generation,
		logger:     logger,
		status:     entity.SubscriptionConnecting,
		events:     make(chan entity.PushEvent, eventBuffer),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (s *subscription) Events() <-chan entity.PushEvent { return s.events }
func (s *subscription) Done() <-chan struct{}           { return s.done }
func (s *subscription) Identity() string                { return s.identity }
func (s *subscription) Topic() string                   { return s.topic }

func (s *subscription) Status() entity.SubscriptionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

func (s *subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// run connects and pumps decoded events until the channel ends or the
// handle is closed.
func (s *subscription) run(ctx context.Context, transport service.PushTransport, token string) {
	defer close(s.done)
	defer close(s.events)

	dialCtx, cancel := context.WithCancel(ctx)
	go func() {
		select {
		case <-s.stop:
		case <-dialCtx.Done():
		}
		cancel()
	}()
	defer cancel()

	ch, err := transport.Dial(dialCtx, s.topic, token)
	if err != nil {
		s.mu.Lock()
		if s.status == entity.SubscriptionConnecting {
			s.status = entity.SubscriptionFailed
			s.err = err
		}
		s.mu.Unlock()
		s.logger.Warn("Push subscription failed", slog.String("topic", s.topic), slog.Any("error", err))

		return
	}

	s.mu.Lock()
	if s.status != entity.SubscriptionConnecting {
		s.mu.Unlock()
		_ = ch.Close()

		return
	}
	s.status = entity.SubscriptionOpen
	s.channel = ch
	s.mu.Unlock()
	s.logger.Info("Push subscription open", slog.String("topic", s.topic))

	for frame := range ch.Frames() {
		ev, err := state.DecodePushEvent(frame)
		if err != nil {
			s.logger.Warn("Dropping malformed push event", slog.String("topic", s.topic), slog.Any("error", err))

			continue
		}
		if !s.deliver(ev) {
			break
		}
	}

	s.mu.Lock()
	if s.status == entity.SubscriptionOpen {
		s.status = entity.SubscriptionClosed
		s.err = ch.Err()
	}
	s.mu.Unlock()
	_ = ch.Close()
}

func (s *subscription) deliver(ev entity.PushEvent) bool {
	select {
	case <-s.stop:
		return false
	default:
	}

	select {
	case s.events <- ev:
		return true
	case <-s.stop:
		return false
	}
}

// markClosed flips the status so nothing more is delivered. The caller holds
// the manager's lock.
func (s *subscription) markClosed() {
	s.mu.Lock()
	if s.status.IsLive() {
		s.status = entity.SubscriptionClosed
	}
	s.mu.Unlock()

	s.closeOnce.Do(func() { close(s.stop) })
}

// teardown closes the transport outside any lock.
func (s *subscription) teardown() {
	s.mu.Lock()
	ch := s.channel
	s.mu.Unlock()

	if ch != nil {
		if err := ch.Close(); err != nil {
			s.logger.Debug("Push channel close returned error", slog.Any("error", err))
		}
	}
}
