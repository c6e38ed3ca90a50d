package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

// SessionCookie is the cookie the storefront carries the gateway token in.
// A bearer Authorization header is accepted as an alternative for API
// consumers.
const SessionCookie = "lm_session"

const sessionContextKey = "session"

// SessionSource is the subset of the session service the middleware needs:
// token validation plus session lookup.
type SessionSource interface {
	ParseToken(token string) (string, error)
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
}

// Session restores the visitor's session from the request token, when one
// is present and still stored. The session is attached optimistically: an
// expired upstream token is not checked here; the first boundary call
// repairs it. Requests without a valid session simply continue
// unauthenticated and the route guards decide what that means.
func Session(sessions SessionSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := requestToken(c)
			if token == "" {
				return next(c)
			}

			sid, err := sessions.ParseToken(token)
			if err != nil {
				return next(c)
			}

			session, err := sessions.Resolve(c.Request().Context(), sid)
			if err != nil {
				// Stored session is gone (logout elsewhere, aged out). The
				// request proceeds unauthenticated.
				return next(c)
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}

// CurrentSession returns the session attached by the Session middleware, or
// nil for an unauthenticated request.
func CurrentSession(c echo.Context) *domain.Session {
	session, _ := c.Get(sessionContextKey).(*domain.Session)
	return session
}

// AuthState derives the guard input from the request context.
func AuthState(c echo.Context) domain.AuthState {
	session := CurrentSession(c)
	if session == nil {
		return domain.AuthState{}
	}
	return domain.AuthState{Authenticated: true, Role: session.Identity.Role}
}

func requestToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
