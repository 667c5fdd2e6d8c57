package impl

import (
	"context"
	"testing"

	"cooked/internal/domain/entity"
	domainerrors "cooked/internal/domain/errors"
	"cooked/internal/errors"
	mockService "cooked/internal/mocks/service"
	mockUsecase "cooked/internal/mocks/usecase"
	"cooked/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	gateway       *mockService.MockBookingGateway
	sessions      *mockUsecase.MockSessionUsecase
	notifications *mockUsecase.MockNotificationUsecase
	navigator     *mockService.MockNavigator
	expiry        usecase.ExpiryCoordinator
	service       usecase.AuthUsecase
}

func createTestAuthService(t *testing.T) *authFixture {
	t.Helper()

	fx := &authFixture{
		gateway:       mockService.NewMockBookingGateway(t),
		sessions:      mockUsecase.NewMockSessionUsecase(t),
		notifications: mockUsecase.NewMockNotificationUsecase(t),
		navigator:     mockService.NewMockNavigator(t),
	}
	fx.expiry = NewExpiryCoordinator(nil, fx.navigator, discardLogger())
	fx.service = NewAuthService(fx.gateway, fx.sessions, fx.notifications, fx.expiry, fx.navigator, discardLogger())

	return fx
}

func TestAuthService_Login_Cook(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.gateway.EXPECT().Login(ctx, "chef@example.com", "secret").Return(&entity.LoginResult{
		Token:    "tok",
		UserID:   42,
		Username: "chef",
		Roles:    []string{"ROLE_COOK", "ROLE_ADMIN"},
	}, nil).Once()

	expected := &entity.Session{UserID: 42, Username: "chef", Token: "tok", Roles: entity.Roles{entity.RoleCook}}
	fx.sessions.EXPECT().SetSession(ctx, expected).Return(nil).Once()
	fx.notifications.EXPECT().Start(ctx, expected).Return(nil).Once()
	fx.navigator.EXPECT().Navigate(entity.RouteCookDashboard).Once()

	outcome, err := fx.service.Login(ctx, " chef@example.com ", "secret")
	require.NoError(t, err)
	assert.Equal(t, entity.RouteCookDashboard, outcome.Route)
	assert.Equal(t, int64(42), outcome.Session.UserID)
}

func TestAuthService_Login_PendingCookProfile(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.gateway.EXPECT().Login(ctx, "new", "pw").Return(&entity.LoginResult{
		Token:  "tok",
		UserID: 5,
		Roles:  []string{"ROLE_USER"},
		Status: entity.StatusPendingCookProfile,
	}, nil).Once()
	fx.sessions.EXPECT().SetSession(ctx, mock.Anything).Return(nil).Once()
	fx.notifications.EXPECT().Start(ctx, mock.Anything).Return(nil).Once()
	fx.navigator.EXPECT().Navigate(entity.RouteCookProfileSetup).Once()

	outcome, err := fx.service.Login(ctx, "new", "pw")
	require.NoError(t, err)
	assert.Equal(t, "new", outcome.Session.Username, "identifier stands in for a missing username")
	assert.Equal(t, entity.RouteCookProfileSetup, outcome.Route)
}

func TestAuthService_Login_ResolvesMissingUserID(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.gateway.EXPECT().Login(ctx, "ada", "pw").Return(&entity.LoginResult{
		Token: "tok",
		Roles: []string{"ROLE_USER"},
	}, nil).Once()
	fx.sessions.EXPECT().SetSession(ctx, mock.Anything).Return(nil).Twice()
	fx.gateway.EXPECT().MyProfile(ctx).Return(&entity.Profile{ID: 7, Username: "ada", Email: "ada@example.com"}, nil).Once()
	fx.notifications.EXPECT().Start(ctx, mock.MatchedBy(func(s *entity.Session) bool { return s.UserID == 7 })).Return(nil).Once()
	fx.navigator.EXPECT().Navigate(entity.RouteDetails).Once()

	outcome, err := fx.service.Login(ctx, "ada", "pw")
	require.NoError(t, err)
	assert.Equal(t, int64(7), outcome.Session.UserID)
	assert.Equal(t, "ada@example.com", outcome.Session.Email)
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.gateway.EXPECT().Login(ctx, "chef", "wrong").
		Return(nil, domainerrors.NewSessionExpiredError("401 from /auth/login")).Once()

	outcome, err := fx.service.Login(ctx, "chef", "wrong")
	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Login(context.Background(), "  ", "pw")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = fx.service.Login(context.Background(), "chef", "")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestAuthService_Login_TransportError(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.gateway.EXPECT().Login(ctx, "chef", "pw").
		Return(nil, domainerrors.NewTransportError(errors.New("no route to host"))).Once()

	_, err := fx.service.Login(ctx, "chef", "pw")

	var transportErr *domainerrors.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestAuthService_Logout(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.notifications.EXPECT().Stop(ctx).Once()
	fx.sessions.EXPECT().ClearSession(ctx).Return(nil).Once()
	fx.navigator.EXPECT().Navigate(entity.RouteSignIn).Once()

	require.NoError(t, fx.service.Logout(ctx))
}

func TestAuthService_Restore(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	session := cookSession(42)
	fx.sessions.EXPECT().GetSession(ctx).Return(session, nil).Once()
	fx.notifications.EXPECT().Start(ctx, session).Return(nil).Once()
	fx.navigator.EXPECT().Navigate(entity.RouteCookDashboard).Once()

	outcome, err := fx.service.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.RouteCookDashboard, outcome.Route)
}

func TestAuthService_Restore_NoSession(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.sessions.EXPECT().GetSession(ctx).Return(nil, nil).Once()
	fx.navigator.EXPECT().Navigate(entity.RouteSignIn).Once()

	outcome, err := fx.service.Restore(ctx)
	require.NoError(t, err)
	assert.Nil(t, outcome)
}

// expireDuringStart makes Start behave like a first pull answered with 401:
// the coordinator runs the expiry path before Start reports the error.
func expireDuringStart(fx *authFixture, session *entity.Session) {
	fx.expiry.Arm()
	fx.notifications.EXPECT().Start(mock.Anything, session).
		Run(func(args mock.Arguments) {
			fx.expiry.Trigger(args.Get(0).(context.Context), "401 on /bookings/cook")
		}).
		Return(domainerrors.NewSessionExpiredError("401 on /bookings/cook")).Once()
	fx.notifications.EXPECT().Stop(mock.Anything).Once()
	fx.sessions.EXPECT().ClearSession(mock.Anything).Return(nil).Once()
	fx.navigator.EXPECT().Navigate(entity.RouteSignIn).Once()
}

func TestAuthService_Login_RejectedDuringFirstPull(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.gateway.EXPECT().Login(ctx, "chef", "secret").Return(&entity.LoginResult{
		Token:    "tok",
		UserID:   42,
		Username: "chef",
		Roles:    []string{"ROLE_COOK"},
	}, nil).Once()
	session := &entity.Session{UserID: 42, Username: "chef", Token: "tok", Roles: entity.Roles{entity.RoleCook}}
	fx.sessions.EXPECT().SetSession(ctx, session).Return(nil).Once()
	expireDuringStart(fx, session)

	outcome, err := fx.service.Login(ctx, "chef", "secret")
	require.Error(t, err)
	assert.True(t, domainerrors.IsSessionExpired(err))
	assert.Nil(t, outcome)
	fx.navigator.AssertNotCalled(t, "Navigate", entity.RouteCookDashboard)
}

func TestAuthService_Restore_RejectedDuringFirstPull(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	session := cookSession(42)
	fx.sessions.EXPECT().GetSession(ctx).Return(session, nil).Once()
	expireDuringStart(fx, session)

	outcome, err := fx.service.Restore(ctx)
	require.Error(t, err)
	assert.True(t, domainerrors.IsSessionExpired(err))
	assert.Nil(t, outcome)
	fx.navigator.AssertNotCalled(t, "Navigate", entity.RouteCookDashboard)
}

func TestAuthService_Login_SyncFailureStillLands(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.gateway.EXPECT().Login(ctx, "chef", "secret").Return(&entity.LoginResult{
		Token: "tok", UserID: 42, Username: "chef", Roles: []string{"ROLE_COOK"},
	}, nil).Once()
	fx.sessions.EXPECT().SetSession(ctx, mock.Anything).Return(nil).Once()
	fx.notifications.EXPECT().Start(ctx, mock.Anything).Return(errors.New("broker unreachable")).Once()
	fx.navigator.EXPECT().Navigate(entity.RouteCookDashboard).Once()

	outcome, err := fx.service.Login(ctx, "chef", "secret")
	require.NoError(t, err)
	assert.Equal(t, entity.RouteCookDashboard, outcome.Route)
}

func TestAuthService_ExpiryStopsEverything(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.notifications.EXPECT().Stop(ctx).Once()
	fx.sessions.EXPECT().ClearSession(ctx).Return(nil).Once()
	fx.navigator.EXPECT().Navigate(entity.RouteSignIn).Once()

	fx.expiry.Arm()
	fx.expiry.Trigger(ctx, "401")
	fx.expiry.Trigger(ctx, "401 again")
}

func TestAuthService_CheckIdentifier(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.gateway.EXPECT().CheckIdentifier(ctx, "ada@example.com").Return(true, nil).Once()

	exists, err := fx.service.CheckIdentifier(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = fx.service.CheckIdentifier(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
