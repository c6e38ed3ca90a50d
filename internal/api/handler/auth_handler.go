package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/localmart/storefront-gateway/internal/api/metrics"
	apimiddleware "github.com/localmart/storefront-gateway/internal/api/middleware"
	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// ActivityDispatcher is the interface handlers use to enqueue activity
// events.
type ActivityDispatcher interface {
	Enqueue(event ports.ActivityInput)
}

// AuthHandler owns the session endpoints.
type AuthHandler struct {
	sessions ports.SessionService
	activity ActivityDispatcher
}

func NewAuthHandler(sessions ports.SessionService, activity ActivityDispatcher) *AuthHandler {
	return &AuthHandler{sessions: sessions, activity: activity}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type sessionResponse struct {
	Identity domain.Identity `json:"identity"`
	Token    string          `json:"token,omitempty"`
}

// Login authenticates against the auth boundary and opens a session.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  envelope
// @Failure      401   {object}  envelope
// @Failure      403   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("login", "error").Inc()
		return err
	}
	metrics.SessionOperationsTotal.WithLabelValues("login", "ok").Inc()

	setSessionCookie(c, result.Token, 7*24*time.Hour)
	h.track(result.Session, domain.ActivityLogin, "")

	return respond(c, http.StatusOK, sessionResponse{
		Identity: result.Session.Identity,
		Token:    result.Token,
	})
}

// Logout closes the current session. Logging out without one succeeds; the
// operation is idempotent.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  envelope
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	session := apimiddleware.CurrentSession(c)
	if session != nil {
		if err := h.sessions.Logout(c.Request().Context(), session.ID); err != nil {
			metrics.SessionOperationsTotal.WithLabelValues("logout", "error").Inc()
			return err
		}
		metrics.SessionOperationsTotal.WithLabelValues("logout", "ok").Inc()
		h.track(session, domain.ActivityLogout, "")
	}

	setSessionCookie(c, "", -time.Hour)
	return respondMessage(c, http.StatusOK, "logged out")
}

// Me returns the current identity, letting the storefront restore its
// header chrome after a reload without a boundary round-trip.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  envelope
// @Failure      401  {object}  envelope
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, sessionResponse{Identity: session.Identity})
}

// ForgotPassword proxies the reset request. The response is the same
// whether or not the account exists.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  envelope
// @Failure      422   {object}  envelope
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.sessions.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "if the account exists, a reset link has been sent")
}

func (h *AuthHandler) track(session *domain.Session, kind domain.ActivityKind, path string) {
	if h.activity == nil {
		return
	}
	h.activity.Enqueue(ports.ActivityInput{
		ID:         uuid.NewString(),
		SessionID:  session.ID,
		IdentityID: session.Identity.ID,
		Kind:       string(kind),
		Path:       path,
		OccurredAt: time.Now().UTC(),
	})
}

func setSessionCookie(c echo.Context, token string, maxAge time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     apimiddleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
