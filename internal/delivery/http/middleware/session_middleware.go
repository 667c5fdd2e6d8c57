package middleware

import (
	"cooked/internal/delivery/http/response"
	deliverycontext "cooked/internal/delivery/context"
	"cooked/internal/domain/entity"
	"cooked/internal/usecase"

	"github.com/labstack/echo/v4"
)

// SessionMiddleware gates routes on the stored session.
type SessionMiddleware struct {
	sessions usecase.SessionUsecase
}

func NewSessionMiddleware(sessions usecase.SessionUsecase) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// RequireSession resolves the current session and rejects signed-out callers.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := m.sessions.GetSession(c.Request().Context())
		if err != nil {
			return response.HandleAppError(c, err)
		}
		if session == nil {
			return response.Unauthorized(c, "NO_SESSION", "Sign in first")
		}

		deliverycontext.SetSession(c, session)

		return next(c)
	}
}

// RequireActor must run after RequireSession.
func (m *SessionMiddleware) RequireActor(actor entity.Actor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := deliverycontext.GetSession(c)
			if !ok {
				return response.Unauthorized(c, "NO_SESSION", "Sign in first")
			}
			if session.Role() != actor {
				return response.Forbidden(c, "FORBIDDEN_ROLE", "Permission denied: requires the "+actor.String()+" role")
			}

			return next(c)
		}
	}
}
