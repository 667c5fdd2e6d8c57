// Package router wires the local surface's routes.
package router

import (
	"cooked/internal/delivery/http/middleware"
	"cooked/internal/delivery/http/router/handler"
	"cooked/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	StateHandler        *handler.StateHandler
	NotificationHandler *handler.NotificationHandler
	BookingHandler      *handler.BookingHandler
	SessionMiddleware   *middleware.SessionMiddleware
}

type router struct {
	authHandler         *handler.AuthHandler
	stateHandler        *handler.StateHandler
	notificationHandler *handler.NotificationHandler
	bookingHandler      *handler.BookingHandler
	sessionMiddleware   *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		stateHandler:        params.StateHandler,
		notificationHandler: params.NotificationHandler,
		bookingHandler:      params.BookingHandler,
		sessionMiddleware:   params.SessionMiddleware,
	}
}

// RegisterRoutes sets up all the routes of the local surface.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/state", r.stateHandler.GetState)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/check-identifier", r.authHandler.CheckIdentifier)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	feedGroup := e.Group("/feed")
	feedGroup.Use(r.sessionMiddleware.RequireSession)
	{
		feedGroup.GET("", r.notificationHandler.GetFeed)
		feedGroup.POST("/read", r.notificationHandler.MarkAllRead)
		feedGroup.POST("/:localId/read", r.notificationHandler.MarkOneRead)
	}

	bookingsGroup := e.Group("/bookings")
	bookingsGroup.Use(r.sessionMiddleware.RequireSession)
	{
		bookingsGroup.GET("", r.bookingHandler.ListBookings)
		bookingsGroup.POST("/refresh", r.bookingHandler.Refresh)
		bookingsGroup.GET("/:id", r.bookingHandler.GetBooking)
		bookingsGroup.POST("/:id/actions/:action", r.bookingHandler.PerformAction)
		bookingsGroup.POST("", r.bookingHandler.CreateBooking, r.sessionMiddleware.RequireActor(entity.ActorCustomer))
	}
}
