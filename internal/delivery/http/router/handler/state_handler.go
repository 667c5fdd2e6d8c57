package handler

import (
	"net/http"

	"cooked/internal/delivery/http/response"
	"cooked/internal/domain/entity"
	"cooked/internal/domain/service"
	"cooked/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StateHandlerParams holds dependencies for StateHandler, injected by Fx.
type StateHandlerParams struct {
	fx.In

	Sessions      usecase.SessionUsecase
	Notifications usecase.NotificationUsecase
	Navigator     service.Navigator
}

// StateHandler exposes what the view needs to pick a screen.
type StateHandler struct {
	sessions      usecase.SessionUsecase
	notifications usecase.NotificationUsecase
	navigator     service.Navigator
}

func NewStateHandler(params StateHandlerParams) *StateHandler {
	return &StateHandler{
		sessions:      params.Sessions,
		notifications: params.Notifications,
		navigator:     params.Navigator,
	}
}

// UnreadCounts are the badge numbers.
type UnreadCounts struct {
	Feed            int `json:"feed"`
	Preview         int `json:"preview"`
	BookingRequests int `json:"bookingRequests"`
}

// StateResponse summarizes the agent.
type StateResponse struct {
	Route        string                    `json:"route"`
	SignedIn     bool                      `json:"signedIn"`
	Session      *entity.Session           `json:"session,omitempty"`
	Subscription entity.SubscriptionStatus `json:"subscription"`
	Unread       UnreadCounts              `json:"unread"`
}

// GetState handles GET /state.
func (h *StateHandler) GetState(c echo.Context) error {
	session, err := h.sessions.GetSession(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, StateResponse{
		Route:        h.navigator.Current(),
		SignedIn:     session != nil,
		Session:      session,
		Subscription: h.notifications.SubscriptionStatus(),
		Unread: UnreadCounts{
			Feed:            h.notifications.UnreadCount(false, ""),
			Preview:         h.notifications.UnreadCount(true, ""),
			BookingRequests: h.notifications.UnreadCount(true, string(entity.EventNewBookingRequest)),
		},
	})
}
