package main

import (
	"context"
	"log/slog"
	"os"

	"cooked/config"
	"cooked/internal/delivery"
	"cooked/internal/delivery/http"
	"cooked/internal/delivery/http/middleware"
	"cooked/internal/delivery/http/router/handler"
	"cooked/internal/domain/service"
	"cooked/internal/infra/api"
	"cooked/internal/infra/auth"
	logs "cooked/internal/infra/log"
	"cooked/internal/infra/navigation"
	"cooked/internal/infra/persistence/blobstore"
	"cooked/internal/infra/push"
	"cooked/internal/usecase"
	"cooked/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

type resumeParams struct {
	fx.In

	Lc            fx.Lifecycle
	Auth          usecase.AuthUsecase
	Notifications usecase.NotificationUsecase
	Logger        *slog.Logger
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			resumeSession,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
		),
		push.Module,
	)
}

func injectRepo() fx.Option {
	return blobstore.Module
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTInspector,
			navigation.NewNavigator,
			api.NewClient,
			api.NewBookingGateway,
			newExpiryNotifier,
		),
	)
}

// newExpiryNotifier hands the coordinator to the backend client, which only triggers it
func newExpiryNotifier(coordinator usecase.ExpiryCoordinator) service.ExpiryNotifier {
	return coordinator
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewExpiryCoordinator,
			impl.NewSessionService,
			impl.NewCredentialSource,
			impl.NewStateStore,
			impl.NewBookingService,
			impl.NewSubscriptionService,
			impl.NewNotificationService,
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewSessionMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewStateHandler,
			handler.NewNotificationHandler,
			handler.NewBookingHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// resumeSession picks up a persisted session on start and ends sync on stop.
func resumeSession(params resumeParams) {
	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			outcome, err := params.Auth.Restore(ctx)
			if err != nil {
				params.Logger.Warn("Could not resume persisted session", slog.Any("error", err))

				return nil
			}
			if outcome == nil {
				params.Logger.Info("No persisted session, waiting for sign-in")

				return nil
			}
			params.Logger.Info("Session resumed", slog.String("route", outcome.Route))

			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Notifications.Stop(ctx)

			return nil
		},
	})
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
