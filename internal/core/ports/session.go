package ports

import (
	"context"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

// LoginResult is returned by SessionService.Login: the stored session plus
// the gateway-signed token the browser carries on subsequent requests.
type LoginResult struct {
	Session *domain.Session
	Token   string
}

// SessionService owns the session lifecycle: login against the auth
// boundary, restoration from the session store, one-shot refresh, logout.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Logout destroys the persisted session. Idempotent: logging out an
	// already-destroyed session is a no-op.
	Logout(ctx context.Context, sessionID string) error
	// Resolve loads the session referenced by a gateway token's session id.
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
	// Refresh performs exactly one refresh round-trip against the boundary.
	// On success the stored session is rewritten in place; on failure the
	// session is destroyed and domain.ErrSessionExpired is returned.
	Refresh(ctx context.Context, sessionID string) (*domain.Session, error)
	// ForgotPassword proxies the reset request. Always succeeds from the
	// caller's point of view unless the boundary is unreachable; account
	// existence is never leaked.
	ForgotPassword(ctx context.Context, email string) error
}

// SessionRepository persists sessions across gateway restarts.
type SessionRepository interface {
	Save(ctx context.Context, s *domain.Session) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// AuthGateway is the upstream auth boundary.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*AuthGrant, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthGrant, error)
	ForgotPassword(ctx context.Context, email string) error
}

// AuthGrant is what the auth boundary hands back on login or refresh.
type AuthGrant struct {
	Identity     domain.Identity
	AccessToken  string
	RefreshToken string
	ExpiresIn    int // seconds
}
