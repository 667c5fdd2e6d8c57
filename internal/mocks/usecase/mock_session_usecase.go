// Package usecase holds testify mocks of the usecase contracts.
package usecase

import (
	"context"

	"cooked/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

type cleanupT interface {
	mock.TestingT
	Cleanup(func())
}

// MockSessionUsecase is a mock type for the SessionUsecase type.
type MockSessionUsecase struct {
	mock.Mock
}

// NewMockSessionUsecase creates a new instance of MockSessionUsecase.
func NewMockSessionUsecase(t cleanupT) *MockSessionUsecase {
	m := &MockSessionUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockSessionUsecase_Expecter struct {
	mock *mock.Mock
}

func (_m *MockSessionUsecase) EXPECT() *MockSessionUsecase_Expecter {
	return &MockSessionUsecase_Expecter{mock: &_m.Mock}
}

func (_m *MockSessionUsecase) SetSession(ctx context.Context, session *entity.Session) error {
	return _m.Called(ctx, session).Error(0)
}

func (_e *MockSessionUsecase_Expecter) SetSession(ctx, session interface{}) *mock.Call {
	return _e.mock.On("SetSession", ctx, session)
}

func (_m *MockSessionUsecase) ClearSession(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

func (_e *MockSessionUsecase_Expecter) ClearSession(ctx interface{}) *mock.Call {
	return _e.mock.On("ClearSession", ctx)
}

func (_m *MockSessionUsecase) GetSession(ctx context.Context) (*entity.Session, error) {
	ret := _m.Called(ctx)

	var s *entity.Session
	if v, ok := ret.Get(0).(*entity.Session); ok {
		s = v.Clone()
	}

	return s, ret.Error(1)
}

func (_e *MockSessionUsecase_Expecter) GetSession(ctx interface{}) *mock.Call {
	return _e.mock.On("GetSession", ctx)
}

func (_m *MockSessionUsecase) Token() string {
	return _m.Called().String(0)
}

func (_e *MockSessionUsecase_Expecter) Token() *mock.Call {
	return _e.mock.On("Token")
}
