package usecase

import (
	"context"

	"cooked/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockAuthUsecase is a mock type for the AuthUsecase type.
type MockAuthUsecase struct {
	mock.Mock
}

// NewMockAuthUsecase creates a new instance of MockAuthUsecase.
func NewMockAuthUsecase(t cleanupT) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockAuthUsecase_Expecter struct {
	mock *mock.Mock
}

func (_m *MockAuthUsecase) EXPECT() *MockAuthUsecase_Expecter {
	return &MockAuthUsecase_Expecter{mock: &_m.Mock}
}

func outcomeResult(ret mock.Arguments) (*usecase.LoginOutcome, error) {
	var o *usecase.LoginOutcome
	if v, ok := ret.Get(0).(*usecase.LoginOutcome); ok {
		o = v
	}

	return o, ret.Error(1)
}

func (_m *MockAuthUsecase) CheckIdentifier(ctx context.Context, identifier string) (bool, error) {
	ret := _m.Called(ctx, identifier)

	return ret.Bool(0), ret.Error(1)
}

func (_e *MockAuthUsecase_Expecter) CheckIdentifier(ctx, identifier interface{}) *mock.Call {
	return _e.mock.On("CheckIdentifier", ctx, identifier)
}

func (_m *MockAuthUsecase) Login(ctx context.Context, identifier, password string) (*usecase.LoginOutcome, error) {
	return outcomeResult(_m.Called(ctx, identifier, password))
}

func (_e *MockAuthUsecase_Expecter) Login(ctx, identifier, password interface{}) *mock.Call {
	return _e.mock.On("Login", ctx, identifier, password)
}

func (_m *MockAuthUsecase) Logout(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

func (_e *MockAuthUsecase_Expecter) Logout(ctx interface{}) *mock.Call {
	return _e.mock.On("Logout", ctx)
}

func (_m *MockAuthUsecase) Restore(ctx context.Context) (*usecase.LoginOutcome, error) {
	return outcomeResult(_m.Called(ctx))
}

func (_e *MockAuthUsecase_Expecter) Restore(ctx interface{}) *mock.Call {
	return _e.mock.On("Restore", ctx)
}
