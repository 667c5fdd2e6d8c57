package usecase

import (
	"context"

	"cooked/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockNotificationUsecase is a mock type for the NotificationUsecase type.
type MockNotificationUsecase struct {
	mock.Mock
}

// NewMockNotificationUsecase creates a new instance of MockNotificationUsecase.
func NewMockNotificationUsecase(t cleanupT) *MockNotificationUsecase {
	m := &MockNotificationUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockNotificationUsecase_Expecter struct {
	mock *mock.Mock
}

func (_m *MockNotificationUsecase) EXPECT() *MockNotificationUsecase_Expecter {
	return &MockNotificationUsecase_Expecter{mock: &_m.Mock}
}

func (_m *MockNotificationUsecase) Start(ctx context.Context, session *entity.Session) error {
	return _m.Called(ctx, session).Error(0)
}

func (_e *MockNotificationUsecase_Expecter) Start(ctx, session interface{}) *mock.Call {
	return _e.mock.On("Start", ctx, session)
}

func (_m *MockNotificationUsecase) Stop(ctx context.Context) {
	_m.Called(ctx)
}

func (_e *MockNotificationUsecase_Expecter) Stop(ctx interface{}) *mock.Call {
	return _e.mock.On("Stop", ctx)
}

func (_m *MockNotificationUsecase) Feed(compact bool) []entity.FeedEntry {
	ret := _m.Called(compact)

	var entries []entity.FeedEntry
	if v, ok := ret.Get(0).([]entity.FeedEntry); ok {
		entries = v
	}

	return entries
}

func (_e *MockNotificationUsecase_Expecter) Feed(compact interface{}) *mock.Call {
	return _e.mock.On("Feed", compact)
}

func (_m *MockNotificationUsecase) UnreadCount(compact bool, prefix string) int {
	return _m.Called(compact, prefix).Int(0)
}

func (_e *MockNotificationUsecase_Expecter) UnreadCount(compact, prefix interface{}) *mock.Call {
	return _e.mock.On("UnreadCount", compact, prefix)
}

func (_m *MockNotificationUsecase) MarkAllRead() {
	_m.Called()
}

func (_e *MockNotificationUsecase_Expecter) MarkAllRead() *mock.Call {
	return _e.mock.On("MarkAllRead")
}

func (_m *MockNotificationUsecase) MarkOneRead(localID uuid.UUID) bool {
	return _m.Called(localID).Bool(0)
}

func (_e *MockNotificationUsecase_Expecter) MarkOneRead(localID interface{}) *mock.Call {
	return _e.mock.On("MarkOneRead", localID)
}

func (_m *MockNotificationUsecase) SubscriptionStatus() entity.SubscriptionStatus {
	ret := _m.Called()

	status, _ := ret.Get(0).(entity.SubscriptionStatus)

	return status
}

func (_e *MockNotificationUsecase_Expecter) SubscriptionStatus() *mock.Call {
	return _e.mock.On("SubscriptionStatus")
}
