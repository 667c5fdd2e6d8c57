package usecase

import (
	"context"

	"cooked/internal/domain/entity"
	"cooked/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockBookingUsecase is a mock type for the BookingUsecase type.
type MockBookingUsecase struct {
	mock.Mock
}

// NewMockBookingUsecase creates a new instance of MockBookingUsecase.
func NewMockBookingUsecase(t cleanupT) *MockBookingUsecase {
	m := &MockBookingUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockBookingUsecase_Expecter struct {
	mock *mock.Mock
}

func (_m *MockBookingUsecase) EXPECT() *MockBookingUsecase_Expecter {
	return &MockBookingUsecase_Expecter{mock: &_m.Mock}
}

func viewResult(ret mock.Arguments) (*usecase.BookingView, error) {
	var v *usecase.BookingView
	if r, ok := ret.Get(0).(*usecase.BookingView); ok {
		v = r
	}

	return v, ret.Error(1)
}

func (_m *MockBookingUsecase) Refresh(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

func (_e *MockBookingUsecase_Expecter) Refresh(ctx interface{}) *mock.Call {
	return _e.mock.On("Refresh", ctx)
}

func (_m *MockBookingUsecase) List(ctx context.Context) ([]*usecase.BookingView, error) {
	ret := _m.Called(ctx)

	var views []*usecase.BookingView
	if v, ok := ret.Get(0).([]*usecase.BookingView); ok {
		views = v
	}

	return views, ret.Error(1)
}

func (_e *MockBookingUsecase_Expecter) List(ctx interface{}) *mock.Call {
	return _e.mock.On("List", ctx)
}

func (_m *MockBookingUsecase) Get(ctx context.Context, bookingID int64) (*usecase.BookingView, error) {
	return viewResult(_m.Called(ctx, bookingID))
}

func (_e *MockBookingUsecase_Expecter) Get(ctx, bookingID interface{}) *mock.Call {
	return _e.mock.On("Get", ctx, bookingID)
}

func (_m *MockBookingUsecase) Perform(ctx context.Context, bookingID int64, action entity.Action, input *usecase.ActionInput) (*usecase.BookingView, error) {
	return viewResult(_m.Called(ctx, bookingID, action, input))
}

func (_e *MockBookingUsecase_Expecter) Perform(ctx, bookingID, action, input interface{}) *mock.Call {
	return _e.mock.On("Perform", ctx, bookingID, action, input)
}

func (_m *MockBookingUsecase) Create(ctx context.Context, req *entity.CreateBookingRequest) (*usecase.BookingView, error) {
	return viewResult(_m.Called(ctx, req))
}

func (_e *MockBookingUsecase_Expecter) Create(ctx, req interface{}) *mock.Call {
	return _e.mock.On("Create", ctx, req)
}
