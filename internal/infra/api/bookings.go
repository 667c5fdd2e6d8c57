package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"cooked/internal/domain/entity"
	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/domain/service"
	"cooked/internal/errors"
)

// bookingGateway maps the booking endpoints onto Requester calls.
type bookingGateway struct {
	client service.Requester
}

// NewBookingGateway is the constructor for bookingGateway.
func NewBookingGateway(client *Client) service.BookingGateway {
	return NewGateway(client)
}

// NewGateway builds the gateway over any Requester.
func NewGateway(client service.Requester) service.BookingGateway {
	return &bookingGateway{client: client}
}

func (g *bookingGateway) ListCookBookings(ctx context.Context) ([]*entity.Booking, error) {
	return g.list(ctx, "/bookings/cook/me")
}

func (g *bookingGateway) ListCustomerBookings(ctx context.Context) ([]*entity.Booking, error) {
	return g.list(ctx, "/bookings/user/me")
}

func (g *bookingGateway) UpdateStatus(ctx context.Context, bookingID int64, status entity.BookingStatus) (*entity.Booking, error) {
	body := map[string]string{"newStatus": status.String()}

	return g.booking(ctx, http.MethodPut, bookingPath(bookingID, "status"), body)
}

func (g *bookingGateway) CompleteService(ctx context.Context, bookingID int64) (*entity.Booking, error) {
	return g.booking(ctx, http.MethodPut, bookingPath(bookingID, "complete-service"), nil)
}

func (g *bookingGateway) ReceivePayment(ctx context.Context, bookingID int64) (*entity.Booking, error) {
	return g.booking(ctx, http.MethodPut, bookingPath(bookingID, "receive-payment"), nil)
}

func (g *bookingGateway) CreateBooking(ctx context.Context, req *entity.CreateBookingRequest) (*entity.Booking, error) {
	return g.booking(ctx, http.MethodPost, "/bookings", req)
}

func (g *bookingGateway) CancelBooking(ctx context.Context, bookingID int64) error {
	_, err := g.client.Request(ctx, http.MethodDelete, bookingPath(bookingID, ""), nil)

	return err
}

func (g *bookingGateway) SubmitRating(ctx context.Context, req *entity.RatingRequest) error {
	_, err := g.client.Request(ctx, http.MethodPost, "/ratings", req)

	return err
}

func (g *bookingGateway) Login(ctx context.Context, identifier, password string) (*entity.LoginResult, error) {
	body := map[string]string{"identifier": identifier, "password": password}

	raw, err := g.client.Request(ctx, http.MethodPost, "/auth/login", body)
	if err != nil {
		return nil, err
	}

	var result entity.LoginResult
	if err := decode(raw, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, domainerrors.NewTransportError(errors.New("login response carries no token"))
	}

	return &result, nil
}

func (g *bookingGateway) CheckIdentifier(ctx context.Context, identifier string) (bool, error) {
	raw, err := g.client.Request(ctx, http.MethodPost, "/auth/check-identifier", map[string]string{"identifier": identifier})
	if err != nil {
		return false, err
	}

	var result struct {
		EmailExists bool `json:"emailExists"`
	}
	if err := decode(raw, &result); err != nil {
		return false, err
	}

	return result.EmailExists, nil
}

func (g *bookingGateway) MyProfile(ctx context.Context) (*entity.Profile, error) {
	raw, err := g.client.Request(ctx, http.MethodGet, "/users/me/profile", nil)
	if err != nil {
		return nil, err
	}

	var profile entity.Profile
	if err := decode(raw, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (g *bookingGateway) list(ctx context.Context, path string) ([]*entity.Booking, error) {
	raw, err := g.client.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	list := []*entity.Booking{}
	if raw == nil {
		return list, nil
	}
	if err := decode(raw, &list); err != nil {
		return nil, err
	}

	return list, nil
}

// booking returns nil when the server acknowledged without a body.
func (g *bookingGateway) booking(ctx context.Context, method, path string, body any) (*entity.Booking, error) {
	raw, err := g.client.Request(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var b entity.Booking
	if err := decode(raw, &b); err != nil {
		return nil, err
	}
	if b.ID == 0 {
		return nil, nil
	}

	return &b, nil
}

func decode(raw json.RawMessage, into any) error {
	if raw == nil {
		return domainerrors.NewTransportError(errors.New("empty response body"))
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return domainerrors.NewTransportError(errors.Wrap(err, "decode response"))
	}

	return nil
}

func bookingPath(id int64, action string) string {
	p := "/bookings/" + strconv.FormatInt(id, 10)
	if action != "" {
		p += "/" + action
	}

	return p
}
