package impl

import (
	"context"
	"log/slog"
	"strconv"

	"cooked/config"
	deliverycontext "cooked/internal/delivery/context"
	"cooked/internal/domain/entity"
	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/domain/service"
	"cooked/internal/domain/state"
	"cooked/internal/errors"
	"cooked/internal/usecase"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"
)

// bookingService implements the BookingUsecase interface.
type bookingService struct {
	gateway  service.BookingGateway
	sessions usecase.SessionUsecase
	store    *state.Store
	validate *validator.Validate
	refresh  singleflight.Group
	logger   *slog.Logger
}

// NewStateStore builds the merged client state from configuration.
func NewStateStore(cfg *config.Config, logger *slog.Logger) *state.Store {
	return state.NewStore(cfg.Feed.Limit, cfg.Feed.CompactLimit, logger)
}

// NewBookingService is the constructor for bookingService.
func NewBookingService(
	gateway service.BookingGateway,
	sessions usecase.SessionUsecase,
	store *state.Store,
	logger *slog.Logger,
) usecase.BookingUsecase {
	return &bookingService{
		gateway:  gateway,
		sessions: sessions,
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *bookingService) session(ctx context.Context) (*entity.Session, error) {
	session, err := srv.sessions.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, domainerrors.ErrNoSession
	}

	return session, nil
}

// Refresh pulls the actor's list and replaces the board with it. Results
// that arrive after the session scope changed are discarded. Concurrent
// calls for the same identity and board generation share one request; a
// caller whose ctx ends stops waiting but the shared request completes.
func (srv *bookingService) Refresh(ctx context.Context) error {
	session, err := srv.session(ctx)
	if err != nil {
		return err
	}

	generation := srv.store.Board.Generation()
	identity := session.Identity()
	key := identity + "/" + strconv.FormatUint(generation, 10)

	flight := srv.refresh.DoChan(key, func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)

		var list []*entity.Booking
		var err error
		if session.IsCook() {
			list, err = srv.gateway.ListCookBookings(fetchCtx)
		} else {
			list, err = srv.gateway.ListCustomerBookings(fetchCtx)
		}
		if err != nil {
			return nil, err
		}

		if !srv.store.Board.Replace(generation, list) {
			srv.log(ctx).Debug("Discarding booking list of a previous session", slog.String("identity", identity))

			return nil, nil
		}
		srv.log(ctx).Debug("Booking list refreshed", slog.Int("count", len(list)))

		return nil, nil
	})

	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "refresh abandoned")
	case res := <-flight:
		if res.Err != nil {
			srv.log(ctx).Warn("Failed to refresh bookings", slog.Any("error", res.Err), slog.Bool("shared", res.Shared))

			return errors.Wrap(res.Err, "failed to refresh bookings")
		}
	}

	return nil
}

func (srv *bookingService) List(ctx context.Context) ([]*usecase.BookingView, error) {
	session, err := srv.session(ctx)
	if err != nil {
		return nil, err
	}

	viewer := entity.ViewerOf(session)
	bookings := srv.store.Board.List()
	views := make([]*usecase.BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, srv.view(b, viewer))
	}

	return views, nil
}

func (srv *bookingService) Get(ctx context.Context, bookingID int64) (*usecase.BookingView, error) {
	session, err := srv.session(ctx)
	if err != nil {
		return nil, err
	}

	b, ok := srv.store.Board.Get(bookingID)
	if !ok {
		return nil, domainerrors.ErrBookingNotFound
	}

	return srv.view(b, entity.ViewerOf(session)), nil
}

// Perform applies the action optimistically, sends it, and on failure puts
// the board back exactly as it was.
func (srv *bookingService) Perform(ctx context.Context, bookingID int64, action entity.Action, input *usecase.ActionInput) (*usecase.BookingView, error) {
	session, err := srv.session(ctx)
	if err != nil {
		return nil, err
	}
	if !action.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown action " + action.String())
	}
	if action.Actor() != session.Role() {
		return nil, domainerrors.ErrForbiddenRole
	}

	board := srv.store.Board
	current, ok := board.Get(bookingID)
	if !ok {
		return nil, domainerrors.ErrBookingNotFound
	}

	viewer := entity.ViewerOf(session)
	if !entity.CanPerform(current, viewer, action) {
		return nil, domainerrors.NewIllegalTransitionError(bookingID, current.EffectiveStatus().String(), action.String())
	}

	var rating *entity.RatingRequest
	if action == entity.ActionRate {
		if input == nil {
			input = &usecase.ActionInput{}
		}
		rating = &entity.RatingRequest{BookingID: bookingID, RatingValue: input.RatingValue, Comment: input.Comment}
		if err := srv.validate.Struct(rating); err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
		}
	}

	if !board.Begin(bookingID, action) {
		return nil, domainerrors.ErrActionInFlight
	}
	defer board.End(bookingID)

	generation := board.Generation()
	snapshot := board.Snapshot()
	srv.applyOptimistic(generation, current, action)

	srv.log(ctx).Info("Performing booking action",
		slog.Int64("booking_id", bookingID),
		slog.String("action", action.String()),
	)

	updated, err := srv.send(ctx, bookingID, action, rating)
	if err != nil {
		board.Restore(snapshot)
		srv.log(ctx).Warn("Booking action failed",
			slog.Int64("booking_id", bookingID),
			slog.String("action", action.String()),
			slog.Any("error", err),
		)

		var apiErr *domainerrors.APIError
		if errors.As(err, &apiErr) {
			if refreshErr := srv.Refresh(ctx); refreshErr != nil {
				srv.log(ctx).Warn("Resync after rejected action failed", slog.Any("error", refreshErr))
			}
		}

		return nil, err
	}

	switch {
	case action == entity.ActionRate:
		rated := current.Clone()
		rated.RatedByCurrentUser = true
		board.Apply(generation, rated)
	case updated != nil:
		board.Apply(generation, updated)
	}

	if err := srv.Refresh(ctx); err != nil && !domainerrors.IsSessionExpired(err) {
		srv.log(ctx).Warn("Refresh after booking action failed", slog.Any("error", err))
	}

	after, ok := board.Get(bookingID)
	if !ok {
		return nil, nil
	}

	return srv.view(after, viewer), nil
}

func (srv *bookingService) Create(ctx context.Context, req *entity.CreateBookingRequest) (*usecase.BookingView, error) {
	session, err := srv.session(ctx)
	if err != nil {
		return nil, err
	}
	if session.Role() != entity.ActorCustomer {
		return nil, domainerrors.ErrForbiddenRole
	}
	if req == nil {
		return nil, domainerrors.ErrValidationFailed
	}
	if err := srv.validate.Struct(req); err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	generation := srv.store.Board.Generation()
	created, err := srv.gateway.CreateBooking(ctx, req)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Booking created", slog.Int64("cook_id", req.CookID))

	if created != nil {
		srv.store.Board.Apply(generation, created)
	}
	if err := srv.Refresh(ctx); err != nil && !domainerrors.IsSessionExpired(err) {
		srv.log(ctx).Warn("Refresh after booking creation failed", slog.Any("error", err))
	}

	if created == nil {
		return nil, nil
	}
	b, ok := srv.store.Board.Get(created.ID)
	if !ok {
		b = created
	}

	return srv.view(b, entity.ViewerOf(session)), nil
}

// applyOptimistic moves the local copy to where the action will take it.
func (srv *bookingService) applyOptimistic(generation uint64, current *entity.Booking, action entity.Action) {
	target, ok := action.TargetStatus()
	if !ok {
		return
	}
	if action == entity.ActionCancel {
		srv.store.Board.Remove(current.ID)

		return
	}

	next := current.Clone()
	next.Status = target
	srv.store.Board.Apply(generation, next)
}

func (srv *bookingService) send(ctx context.Context, bookingID int64, action entity.Action, rating *entity.RatingRequest) (*entity.Booking, error) {
	switch action {
	case entity.ActionAccept, entity.ActionReject:
		target, _ := action.TargetStatus()

		return srv.gateway.UpdateStatus(ctx, bookingID, target)
	case entity.ActionCompleteService:
		return srv.gateway.CompleteService(ctx, bookingID)
	case entity.ActionReceivePayment:
		return srv.gateway.ReceivePayment(ctx, bookingID)
	case entity.ActionCancel:
		return nil, srv.gateway.CancelBooking(ctx, bookingID)
	case entity.ActionRate:
		return nil, srv.gateway.SubmitRating(ctx, rating)
	default:
		return nil, domainerrors.ErrValidationFailed
	}
}

func (srv *bookingService) view(b *entity.Booking, viewer entity.Viewer) *usecase.BookingView {
	v := &usecase.BookingView{
		Booking:         b,
		EffectiveStatus: b.EffectiveStatus(),
		Actions:         entity.AvailableActions(b, viewer),
	}
	if a, busy := srv.store.Board.InFlight(b.ID); busy {
		v.Processing = a
	}
	if v.Actions == nil {
		v.Actions = []entity.Action{}
	}

	return v
}
