package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/localmart/storefront-gateway/internal/api/metrics"
	"github.com/localmart/storefront-gateway/internal/core/domain"
)

// Redirect targets for rejected navigations.
const (
	LoginPath = "/login"
	HomePath  = "/"
)

// RequireSession guards a route subtree that needs an authenticated
// visitor. Unauthenticated requests are redirected to the login route with
// the originally requested path preserved, so a successful login returns
// the visitor where they were headed.
func RequireSession() echo.MiddlewareFunc {
	return Guard()
}

// Guard enforces the access decision for the given allowed-role set. With
// no roles, any authenticated visitor passes. Unauthenticated visitors go
// to login; authenticated visitors whose role is not in the set go home.
// "Not logged in" and "logged in but forbidden" are different failures with
// different correct redirects.
func Guard(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := domain.Decide(AuthState(c), allowed)
			metrics.GuardDecisionsTotal.WithLabelValues(decision.String()).Inc()

			switch decision {
			case domain.Allow:
				return next(c)
			case domain.RedirectLogin:
				return c.Redirect(http.StatusFound, loginRedirect(c))
			default:
				return c.Redirect(http.StatusFound, HomePath)
			}
		}
	}
}

// loginRedirect builds the login URL carrying the requested path in the
// next parameter.
func loginRedirect(c echo.Context) string {
	target := c.Request().URL.RequestURI()
	if target == "" || target == LoginPath {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(target)
}
