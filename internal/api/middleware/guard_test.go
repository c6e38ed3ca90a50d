package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

type stubSessionSource struct {
	sessions map[string]*domain.Session
}

func (s *stubSessionSource) ParseToken(token string) (string, error) {
	if !strings.HasPrefix(token, "sess_") {
		return "", domain.ErrSessionNotFound
	}
	return token, nil
}

func (s *stubSessionSource) Resolve(_ context.Context, sessionID string) (*domain.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// sourceWith issues tokens equal to the session id, enough for middleware
// tests.
func sourceWith(sessions ...*domain.Session) *stubSessionSource {
	src := &stubSessionSource{sessions: make(map[string]*domain.Session)}
	for _, s := range sessions {
		src.sessions[s.ID] = s
	}
	return src
}

func roleSession(id string, role domain.Role) *domain.Session {
	return &domain.Session{
		ID:       id,
		Identity: domain.Identity{ID: "id_" + id, Role: role, Status: domain.StatusActive},
	}
}

func serve(t *testing.T, src SessionSource, guard echo.MiddlewareFunc, target, token string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.Use(Session(src))
	e.GET("/guarded/*", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	}, guard)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGuard_UnauthenticatedRedirectsToLoginWithNext(t *testing.T) {
	rec := serve(t, sourceWith(), RequireSession(), "/guarded/cart?tab=items", "")

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	want := "/login?next=" + "%2Fguarded%2Fcart%3Ftab%3Ditems"
	if location != want {
		t.Fatalf("Location = %q, want %q", location, want)
	}
}

func TestGuard_AuthenticatedPasses(t *testing.T) {
	session := roleSession("sess_1", domain.RoleCustomer)
	rec := serve(t, sourceWith(session), RequireSession(), "/guarded/cart", "sess_1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_WrongRoleRedirectsHome(t *testing.T) {
	session := roleSession("sess_1", domain.RoleCustomer)
	rec := serve(t, sourceWith(session), Guard(domain.RoleVendor), "/guarded/vendor", "sess_1")

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != HomePath {
		t.Fatalf("Location = %q, want %q", got, HomePath)
	}
}

func TestGuard_MatchingRolePasses(t *testing.T) {
	session := roleSession("sess_1", domain.RoleVendor)
	rec := serve(t, sourceWith(session), Guard(domain.RoleVendor), "/guarded/vendor", "sess_1")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_UnauthenticatedOnRoleRouteGoesToLogin(t *testing.T) {
	// Authentication is checked before role: no session means login, not home.
	rec := serve(t, sourceWith(), Guard(domain.RoleAdmin), "/guarded/admin", "")

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if got := rec.Header().Get("Location"); got == HomePath {
		t.Fatalf("unauthenticated visitor must go to login, not home")
	}
}

func TestGuard_UnknownTokenTreatedAsUnauthenticated(t *testing.T) {
	rec := serve(t, sourceWith(), RequireSession(), "/guarded/cart", "bogus")

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}
