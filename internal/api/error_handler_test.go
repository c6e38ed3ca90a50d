package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

func handle(t *testing.T, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/cart/checkout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if jsonErr := json.Unmarshal(rec.Body.Bytes(), &body); jsonErr != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), jsonErr)
	}
	return rec, body
}

func TestErrorHandler_ValidationErrorSurfacesReason(t *testing.T) {
	rec, body := handle(t, domain.InvalidInput("cart is empty"))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if body.Success {
		t.Fatalf("expected success=false")
	}
	if body.Message != "cart is empty" {
		t.Fatalf("expected the validation reason, got %q", body.Message)
	}
}

func TestErrorHandler_DomainSentinels(t *testing.T) {
	cases := []struct {
		err     error
		code    int
		message string
	}{
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{domain.ErrAccountSuspended, http.StatusForbidden, "account suspended"},
		{domain.ErrSessionExpired, http.StatusUnauthorized, "session expired"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{domain.ErrNotFound, http.StatusNotFound, "resource not found"},
		{domain.ErrUnavailable, http.StatusServiceUnavailable, "service temporarily unavailable"},
	}
	for _, tc := range cases {
		rec, body := handle(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		if body.Message != tc.message {
			t.Fatalf("%v: expected message %q, got %q", tc.err, tc.message, body.Message)
		}
	}
}

func TestErrorHandler_UnexpectedErrorIsGeneric(t *testing.T) {
	rec, body := handle(t, errors.New("connection reset by peer"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if body.Message != "internal server error" {
		t.Fatalf("internal details must not leak, got %q", body.Message)
	}
}
