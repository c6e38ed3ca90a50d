package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

const defaultGrantTTL = time.Hour

// SessionService implements the session lifecycle. Credentials pass through
// to the auth boundary and are never stored; what the gateway keeps is the
// identity plus the upstream token pair, persisted so sessions survive
// restarts.
type SessionService struct {
	repo      ports.SessionRepository
	auth      ports.AuthGateway
	jwtSecret string
	logger    zerolog.Logger

	// refreshing serializes refresh attempts per session so a burst of 401s
	// spends only one refresh round-trip.
	refreshing *keyedMutex
}

func NewSessionService(repo ports.SessionRepository, auth ports.AuthGateway, jwtSecret string, logger zerolog.Logger) *SessionService {
	return &SessionService{
		repo:       repo,
		auth:       auth,
		jwtSecret:  jwtSecret,
		logger:     logger,
		refreshing: newKeyedMutex(),
	}
}

// Login exchanges credentials at the boundary and creates a session. On any
// failure no session state is touched.
func (s *SessionService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	grant, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if grant.Identity.Status == domain.StatusSuspended {
		return nil, domain.ErrAccountSuspended
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:           uuid.NewString(),
		Identity:     grant.Identity,
		AccessToken:  grant.AccessToken,
		RefreshToken: grant.RefreshToken,
		ExpiresAt:    grantExpiry(now, grant.ExpiresIn),
		CreatedAt:    now,
	}
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := s.signToken(session)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("session_id", session.ID).
		Str("identity_id", session.Identity.ID).
		Str("role", string(session.Identity.Role)).
		Msg("session created")

	return &ports.LoginResult{Session: session, Token: token}, nil
}

// Logout destroys the session. Idempotent.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("session_id", sessionID).Msg("session destroyed")
	return nil
}

// Resolve loads the stored session for a gateway token's session id. The
// session is trusted optimistically even when the upstream token has
// expired; the next boundary call repairs it with a refresh.
func (s *SessionService) Resolve(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.repo.Find(ctx, sessionID)
}

// Refresh performs exactly one refresh round-trip. On success the stored
// session is rewritten; the identity, including its role, never changes. On
// rejection the session is destroyed so the next request starts logged out.
func (s *SessionService) Refresh(ctx context.Context, sessionID string) (*domain.Session, error) {
	unlock := s.refreshing.Lock(sessionID)
	defer unlock()

	session, err := s.repo.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	grant, err := s.auth.Refresh(ctx, session.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			return nil, err
		}
		// Unrecoverable: boundary rejected the refresh token.
		_ = s.repo.Delete(ctx, sessionID)
		s.logger.Warn().Str("session_id", sessionID).Msg("refresh rejected, session destroyed")
		return nil, domain.ErrSessionExpired
	}

	session.AccessToken = grant.AccessToken
	session.RefreshToken = grant.RefreshToken
	session.ExpiresAt = grantExpiry(time.Now().UTC(), grant.ExpiresIn)
	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("session_id", sessionID).Msg("session refreshed")
	return session, nil
}

// ForgotPassword proxies the reset request to the boundary.
func (s *SessionService) ForgotPassword(ctx context.Context, email string) error {
	return s.auth.ForgotPassword(ctx, email)
}

// ParseToken validates a gateway token and returns the session id it names.
func (s *SessionService) ParseToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrSessionNotFound
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrSessionNotFound
	}
	return sid, nil
}

// signToken issues the gateway-signed JWT the browser carries. It outlives
// the upstream access token: holding it only proves which session to load,
// not that the session is still valid.
func (s *SessionService) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":  session.ID,
		"role": string(session.Identity.Role),
		"sub":  session.Identity.ID,
		"exp":  session.CreatedAt.Add(7 * 24 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func grantExpiry(now time.Time, expiresIn int) time.Time {
	if expiresIn <= 0 {
		return now.Add(defaultGrantTTL)
	}
	return now.Add(time.Duration(expiresIn) * time.Second)
}
