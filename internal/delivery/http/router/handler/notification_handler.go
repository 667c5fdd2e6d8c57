package handler

import (
	"net/http"
	"strconv"

	"cooked/internal/delivery/http/response"
	"cooked/internal/domain/entity"
	"cooked/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
}

// NotificationHandler serves the merged notification feeds.
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
}

func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{notificationUC: params.NotificationUC}
}

// FeedResponse is a feed with its unread count under the requested filter.
type FeedResponse struct {
	Entries []entity.FeedEntry `json:"entries"`
	Unread  int                `json:"unread"`
}

// GetFeed handles GET /feed?compact=&prefix=.
func (h *NotificationHandler) GetFeed(c echo.Context) error {
	compact := false
	if raw := c.QueryParam("compact"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return response.BindingError(c, "compact must be a boolean")
		}
		compact = v
	}
	prefix := c.QueryParam("prefix")

	entries := h.notificationUC.Feed(compact)
	if entries == nil {
		entries = []entity.FeedEntry{}
	}

	return response.Success(c, http.StatusOK, FeedResponse{
		Entries: entries,
		Unread:  h.notificationUC.UnreadCount(compact, prefix),
	})
}

// MarkAllRead handles POST /feed/read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	h.notificationUC.MarkAllRead()

	return c.NoContent(http.StatusNoContent)
}

// MarkOneRead handles POST /feed/:localId/read.
func (h *NotificationHandler) MarkOneRead(c echo.Context) error {
	localID, err := uuid.Parse(c.Param("localId"))
	if err != nil {
		return response.BindingError(c, "localId must be a UUID")
	}

	if !h.notificationUC.MarkOneRead(localID) {
		return response.NotFound(c, "NOTIFICATION_NOT_FOUND", "Notification not found")
	}

	return c.NoContent(http.StatusNoContent)
}
