package cli

import (
	"context"
	"io"
	"log/slog"

	"cooked/config"
	"cooked/internal/domain/service"
	"cooked/internal/errors"
	"cooked/internal/infra/api"
	"cooked/internal/infra/auth"
	logs "cooked/internal/infra/log"
	"cooked/internal/infra/navigation"
	"cooked/internal/infra/persistence/blobstore"
	"cooked/internal/infra/push"
	"cooked/internal/usecase"
	"cooked/internal/usecase/impl"

	"gocloud.dev/blob"
)

// app is the object graph of one command run, assembled by hand in the
// same order the service's container builds it.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	bucket *blob.Bucket

	navigator     service.Navigator
	sessions      usecase.SessionUsecase
	bookings      usecase.BookingUsecase
	notifications usecase.NotificationUsecase
	auth          usecase.AuthUsecase
}

func newApp(ctx context.Context, opts *RootOptions, logOut io.Writer) (*app, error) {
	cfg, err := opts.loadConfig()
	if err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if opts.BackendURL != "" {
		cfg.Backend.BaseURL = opts.BackendURL
	}
	if opts.BucketURL != "" {
		cfg.Session.BucketURL = opts.BucketURL
	}
	if opts.Verbose {
		cfg.Env.Log.Level = "debug"
	}

	logger, err := logs.NewWithWriter(cfg, logOut)
	if err != nil {
		return nil, err
	}

	bucket, err := blobstore.OpenBucket(ctx, cfg.Session.BucketURL)
	if err != nil {
		return nil, err
	}

	repo := blobstore.NewSessionRepositoryFromConfig(bucket, cfg)
	navigator := navigation.NewNavigator(logger)
	expiry := impl.NewExpiryCoordinator(repo, navigator, logger)
	sessions := impl.NewSessionService(repo, auth.NewJWTInspector(), expiry, logger)
	client := api.New(cfg.Backend, impl.NewCredentialSource(sessions), expiry, logger)
	gateway := api.NewBookingGateway(client)
	store := impl.NewStateStore(cfg, logger)
	bookings := impl.NewBookingService(gateway, sessions, store, logger)
	subs := impl.NewSubscriptionService(push.New(cfg.Push, logger), cfg, logger)
	notifications := impl.NewNotificationService(subs, bookings, store, cfg, logger)

	return &app{
		cfg:           cfg,
		logger:        logger,
		bucket:        bucket,
		navigator:     navigator,
		sessions:      sessions,
		bookings:      bookings,
		notifications: notifications,
		auth:          impl.NewAuthService(gateway, sessions, notifications, expiry, navigator, logger),
	}, nil
}

// close ends any sync a sign-in started and releases the bucket.
func (a *app) close(ctx context.Context) {
	a.notifications.Stop(ctx)

	if err := a.bucket.Close(); err != nil {
		a.logger.Warn("Failed to close session bucket", slog.Any("error", err))
	}
}

// withApp runs fn against a freshly built graph and always tears it down.
func withApp(ctx context.Context, opts *RootOptions, logOut io.Writer, fn func(*app) error) error {
	a, err := newApp(ctx, opts, logOut)
	if err != nil {
		return WrapExitError(ExitCommandError, "startup failed", err)
	}
	defer a.close(ctx)

	return fn(a)
}
