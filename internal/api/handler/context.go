package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimiddleware "github.com/localmart/storefront-gateway/internal/api/middleware"
	"github.com/localmart/storefront-gateway/internal/core/domain"
)

// ctxSession extracts the session attached by the Session middleware and
// performs a fast-fail check before any service call. Handlers behind a
// guard should always find one; a missing session means the route was wired
// without its guard, so reject rather than proceed anonymously.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session := apimiddleware.CurrentSession(c)
	if session == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return session, nil
}
