package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "cooked/internal/delivery/context"
	"cooked/internal/domain/entity"
	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/domain/service"
	"cooked/internal/errors"
	"cooked/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	gateway       service.BookingGateway
	sessions      usecase.SessionUsecase
	notifications usecase.NotificationUsecase
	navigator     service.Navigator
	logger        *slog.Logger
}

// NewAuthService is the constructor for authService. It registers the
// application's expiry handler with the coordinator.
func NewAuthService(
	gateway service.BookingGateway,
	sessions usecase.SessionUsecase,
	notifications usecase.NotificationUsecase,
	expiry usecase.ExpiryCoordinator,
	navigator service.Navigator,
	logger *slog.Logger,
) usecase.AuthUsecase {
	srv := &authService{
		gateway:       gateway,
		sessions:      sessions,
		notifications: notifications,
		navigator:     navigator,
		logger:        logger,
	}
	expiry.Register(srv.handleExpiry)

	return srv
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *authService) CheckIdentifier(ctx context.Context, identifier string) (bool, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return false, domainerrors.ErrValidationFailed.WithDetails("identifier is required")
	}

	exists, err := srv.gateway.CheckIdentifier(ctx, identifier)
	if err != nil {
		return false, errors.Wrap(err, "failed to check identifier")
	}

	return exists, nil
}

func (srv *authService) Login(ctx context.Context, identifier, password string) (*usecase.LoginOutcome, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("identifier and password are required")
	}

	result, err := srv.gateway.Login(ctx, identifier, password)
	if err != nil {
		if domainerrors.IsSessionExpired(err) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "login failed")
	}

	session := &entity.Session{
		UserID:   result.UserID,
		Username: result.Username,
		Email:    result.Email,
		Token:    result.Token,
		Roles:    entity.RolesFromStrings(result.Roles),
		Status:   result.Status,
	}
	if session.Username == "" {
		session.Username = identifier
	}

	if err := srv.sessions.SetSession(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to store session")
	}

	// Older backends answer login without the account id the topics need.
	if session.UserID == 0 {
		if err := srv.fillFromProfile(ctx, session); err != nil {
			srv.log(ctx).Warn("Could not resolve account id after login", slog.Any("error", err))
		}
	}

	return srv.begin(ctx, session)
}

func (srv *authService) Logout(ctx context.Context) error {
	srv.notifications.Stop(ctx)

	if err := srv.sessions.ClearSession(ctx); err != nil {
		return errors.Wrap(err, "logout failed")
	}
	srv.navigator.Navigate(entity.RouteSignIn)
	srv.log(ctx).Info("Signed out")

	return nil
}

func (srv *authService) Restore(ctx context.Context) (*usecase.LoginOutcome, error) {
	session, err := srv.sessions.GetSession(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to restore session")
	}
	if session == nil {
		srv.navigator.Navigate(entity.RouteSignIn)

		return nil, nil
	}

	srv.log(ctx).Info("Resuming persisted session", slog.Int64("user_id", session.UserID))

	return srv.begin(ctx, session)
}

// begin starts synchronization and sends the view to the landing route.
// A credential rejected during the first pull has already been handled by
// the expiry path, so the landing route is never shown.
func (srv *authService) begin(ctx context.Context, session *entity.Session) (*usecase.LoginOutcome, error) {
	if err := srv.notifications.Start(ctx, session); err != nil {
		if domainerrors.IsSessionExpired(err) {
			return nil, errors.Wrap(err, "session rejected while starting sync")
		}
		srv.log(ctx).Warn("Notification sync not started", slog.Any("error", err))
	}

	route := session.LandingRoute()
	srv.navigator.Navigate(route)

	return &usecase.LoginOutcome{Session: session, Route: route}, nil
}

func (srv *authService) fillFromProfile(ctx context.Context, session *entity.Session) error {
	profile, err := srv.gateway.MyProfile(ctx)
	if err != nil {
		return err
	}

	session.UserID = profile.ID
	if session.Email == "" {
		session.Email = profile.Email
	}
	if len(session.Roles) == 0 {
		session.Roles = entity.RolesFromStrings(profile.Roles)
	}
	if session.Status == "" {
		session.Status = profile.Status
	}

	return srv.sessions.SetSession(ctx, session)
}

// handleExpiry tears the signed-in scope down and sends the view to sign-in.
func (srv *authService) handleExpiry(ctx context.Context, reason string) {
	srv.notifications.Stop(ctx)

	if err := srv.sessions.ClearSession(ctx); err != nil {
		srv.log(ctx).Error("Failed to clear expired session", slog.Any("error", err))
	}
	srv.navigator.Navigate(entity.RouteSignIn)
	srv.log(ctx).Info("Signed out after session expiry", slog.String("reason", reason))
}
