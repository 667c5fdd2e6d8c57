package service

import "github.com/stretchr/testify/mock"

// MockNavigator is a mock type for the Navigator type.
type MockNavigator struct {
	mock.Mock
}

// NewMockNavigator creates a new instance of MockNavigator.
func NewMockNavigator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNavigator {
	m := &MockNavigator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockNavigator_Expecter struct {
	mock *mock.Mock
}

func (_m *MockNavigator) EXPECT() *MockNavigator_Expecter {
	return &MockNavigator_Expecter{mock: &_m.Mock}
}

func (_m *MockNavigator) Navigate(route string) {
	_m.Called(route)
}

func (_e *MockNavigator_Expecter) Navigate(route interface{}) *mock.Call {
	return _e.mock.On("Navigate", route)
}

func (_m *MockNavigator) Current() string {
	return _m.Called().String(0)
}

func (_e *MockNavigator_Expecter) Current() *mock.Call {
	return _e.mock.On("Current")
}
