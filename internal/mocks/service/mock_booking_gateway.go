// Package service holds testify mocks of the domain service contracts.
package service

import (
	"context"

	"cooked/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockBookingGateway is a mock type for the BookingGateway type.
type MockBookingGateway struct {
	mock.Mock
}

// NewMockBookingGateway creates a new instance of MockBookingGateway and
// asserts its expectations when the test ends.
func NewMockBookingGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBookingGateway {
	m := &MockBookingGateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockBookingGateway_Expecter struct {
	mock *mock.Mock
}

func (_m *MockBookingGateway) EXPECT() *MockBookingGateway_Expecter {
	return &MockBookingGateway_Expecter{mock: &_m.Mock}
}

func bookingResult(ret mock.Arguments) (*entity.Booking, error) {
	var b *entity.Booking
	if v, ok := ret.Get(0).(*entity.Booking); ok {
		b = v
	}

	return b, ret.Error(1)
}

func bookingsResult(ret mock.Arguments) ([]*entity.Booking, error) {
	var list []*entity.Booking
	if v, ok := ret.Get(0).([]*entity.Booking); ok {
		list = v
	}

	return list, ret.Error(1)
}

func (_m *MockBookingGateway) ListCookBookings(ctx context.Context) ([]*entity.Booking, error) {
	return bookingsResult(_m.Called(ctx))
}

func (_e *MockBookingGateway_Expecter) ListCookBookings(ctx interface{}) *mock.Call {
	return _e.mock.On("ListCookBookings", ctx)
}

func (_m *MockBookingGateway) ListCustomerBookings(ctx context.Context) ([]*entity.Booking, error) {
	return bookingsResult(_m.Called(ctx))
}

func (_e *MockBookingGateway_Expecter) ListCustomerBookings(ctx interface{}) *mock.Call {
	return _e.mock.On("ListCustomerBookings", ctx)
}

func (_m *MockBookingGateway) UpdateStatus(ctx context.Context, bookingID int64, status entity.BookingStatus) (*entity.Booking, error) {
	return bookingResult(_m.Called(ctx, bookingID, status))
}

func (_e *MockBookingGateway_Expecter) UpdateStatus(ctx, bookingID, status interface{}) *mock.Call {
	return _e.mock.On("UpdateStatus", ctx, bookingID, status)
}

func (_m *MockBookingGateway) CompleteService(ctx context.Context, bookingID int64) (*entity.Booking, error) {
	return bookingResult(_m.Called(ctx, bookingID))
}

func (_e *MockBookingGateway_Expecter) CompleteService(ctx, bookingID interface{}) *mock.Call {
	return _e.mock.On("CompleteService", ctx, bookingID)
}

func (_m *MockBookingGateway) ReceivePayment(ctx context.Context, bookingID int64) (*entity.Booking, error) {
	return bookingResult(_m.Called(ctx, bookingID))
}

func (_e *MockBookingGateway_Expecter) ReceivePayment(ctx, bookingID interface{}) *mock.Call {
	return _e.mock.On("ReceivePayment", ctx, bookingID)
}

func (_m *MockBookingGateway) CreateBooking(ctx context.Context, req *entity.CreateBookingRequest) (*entity.Booking, error) {
	return bookingResult(_m.Called(ctx, req))
}

func (_e *MockBookingGateway_Expecter) CreateBooking(ctx, req interface{}) *mock.Call {
	return _e.mock.On("CreateBooking", ctx, req)
}

func (_m *MockBookingGateway) CancelBooking(ctx context.Context, bookingID int64) error {
	return _m.Called(ctx, bookingID).Error(0)
}

func (_e *MockBookingGateway_Expecter) CancelBooking(ctx, bookingID interface{}) *mock.Call {
	return _e.mock.On("CancelBooking", ctx, bookingID)
}

func (_m *MockBookingGateway) SubmitRating(ctx context.Context, req *entity.RatingRequest) error {
	return _m.Called(ctx, req).Error(0)
}

func (_e *MockBookingGateway_Expecter) SubmitRating(ctx, req interface{}) *mock.Call {
	return _e.mock.On("SubmitRating", ctx, req)
}

func (_m *MockBookingGateway) Login(ctx context.Context, identifier, password string) (*entity.LoginResult, error) {
	ret := _m.Called(ctx, identifier, password)

	var r *entity.LoginResult
	if v, ok := ret.Get(0).(*entity.LoginResult); ok {
		r = v
	}

	return r, ret.Error(1)
}

func (_e *MockBookingGateway_Expecter) Login(ctx, identifier, password interface{}) *mock.Call {
	return _e.mock.On("Login", ctx, identifier, password)
}

func (_m *MockBookingGateway) CheckIdentifier(ctx context.Context, identifier string) (bool, error) {
	ret := _m.Called(ctx, identifier)

	return ret.Bool(0), ret.Error(1)
}

func (_e *MockBookingGateway_Expecter) CheckIdentifier(ctx, identifier interface{}) *mock.Call {
	return _e.mock.On("CheckIdentifier", ctx, identifier)
}

func (_m *MockBookingGateway) MyProfile(ctx context.Context) (*entity.Profile, error) {
	ret := _m.Called(ctx)

	var p *entity.Profile
	if v, ok := ret.Get(0).(*entity.Profile); ok {
		p = v
	}

	return p, ret.Error(1)
}

func (_e *MockBookingGateway_Expecter) MyProfile(ctx interface{}) *mock.Call {
	return _e.mock.On("MyProfile", ctx)
}
