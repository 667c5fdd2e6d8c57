package service

import (
	"context"
	"encoding/json"

	"cooked/internal/domain/entity"
)

// Requester is the authoritative data client contract.
type Requester interface {
	// Request sends one JSON request relative to the API root. A nil payload
	// with a nil error means the server answered 2xx with no body.
	Request(ctx context.Context, method, path string, body any) (json.RawMessage, error)
}

// BookingGateway is the typed view of the backend endpoints the client uses.
type BookingGateway interface {
	ListCookBookings(ctx context.Context) ([]*entity.Booking, error)
	ListCustomerBookings(ctx context.Context) ([]*entity.Booking, error)

	// UpdateStatus moves a booking to accepted or rejected.
	UpdateStatus(ctx context.Context, bookingID int64, status entity.BookingStatus) (*entity.Booking, error)
	CompleteService(ctx context.Context, bookingID int64) (*entity.Booking, error)
	ReceivePayment(ctx context.Context, bookingID int64) (*entity.Booking, error)

	CreateBooking(ctx context.Context, req *entity.CreateBookingRequest) (*entity.Booking, error)
	CancelBooking(ctx context.Context, bookingID int64) error
	SubmitRating(ctx context.Context, req *entity.RatingRequest) error

	Login(ctx context.Context, identifier, password string) (*entity.LoginResult, error)
	CheckIdentifier(ctx context.Context, identifier string) (bool, error)
	MyProfile(ctx context.Context) (*entity.Profile, error)
}
