package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"cooked/internal/delivery/http/response"
	"cooked/internal/domain/entity"
	"cooked/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// BookingHandlerParams holds dependencies for BookingHandler, injected by Fx.
type BookingHandlerParams struct {
	fx.In

	BookingUC usecase.BookingUsecase
	Logger    *slog.Logger
}

// BookingHandler serves the booking board and its actions.
type BookingHandler struct {
	bookingUC usecase.BookingUsecase
	logger    *slog.Logger
}

func NewBookingHandler(params BookingHandlerParams) *BookingHandler {
	return &BookingHandler{
		bookingUC: params.BookingUC,
		logger:    params.Logger,
	}
}

// ListBookings handles GET /bookings.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	views, err := h.bookingUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if views == nil {
		views = []*usecase.BookingView{}
	}

	return response.Success(c, http.StatusOK, views)
}

// GetBooking handles GET /bookings/:id.
func (h *BookingHandler) GetBooking(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return response.BindingError(c, "Booking id must be a positive integer")
	}

	view, err := h.bookingUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, view)
}

// Refresh handles POST /bookings/refresh.
func (h *BookingHandler) Refresh(c echo.Context) error {
	if err := h.bookingUC.Refresh(c.Request().Context()); err != nil {
		return response.HandleAppError(c, err)
	}

	return h.ListBookings(c)
}

// CreateBooking handles POST /bookings.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req entity.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "Invalid booking input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_FAILED", err.Error())
	}

	view, err := h.bookingUC.Create(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, view)
}

// PerformAction handles POST /bookings/:id/actions/:action. The body is
// only read for rate.
func (h *BookingHandler) PerformAction(c echo.Context) error {
	id, ok := bookingID(c)
	if !ok {
		return response.BindingError(c, "Booking id must be a positive integer")
	}
	action := entity.Action(c.Param("action"))

	var input *usecase.ActionInput
	if action == entity.ActionRate {
		input = &usecase.ActionInput{}
		if err := c.Bind(input); err != nil && !errors.Is(err, io.EOF) {
			return response.BindingError(c, "Invalid rating input")
		}
	}

	view, err := h.bookingUC.Perform(c.Request().Context(), id, action, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	if view == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return response.Success(c, http.StatusOK, view)
}

func bookingID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)

	return id, err == nil && id > 0
}
