package usecase

import (
	"context"

	"cooked/internal/domain/entity"
)

// BookingView is a booking as the view layer shows it.
type BookingView struct {
	*entity.Booking

	EffectiveStatus entity.BookingStatus `json:"effectiveStatus"`
	Actions         []entity.Action      `json:"actions"`
	Processing      entity.Action        `json:"processing,omitempty"`
}

// ActionInput carries the extra fields some actions need.
type ActionInput struct {
	RatingValue int    `json:"ratingValue"`
	Comment     string `json:"comment"`
}

// BookingUsecase applies the booking state machine against the backend.
type BookingUsecase interface {
	// Refresh replaces the local list with the backend's. Concurrent calls
	// share one request.
	Refresh(ctx context.Context) error

	List(ctx context.Context) ([]*BookingView, error)
	Get(ctx context.Context, bookingID int64) (*BookingView, error)

	// Perform runs action on a booking if the current session is offered it.
	// On failure the local list is left as it was before the call.
	Perform(ctx context.Context, bookingID int64, action entity.Action, input *ActionInput) (*BookingView, error)

	// Create places a new booking as the current customer.
	Create(ctx context.Context, req *entity.CreateBookingRequest) (*BookingView, error)
}
