package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// AuthGateway implements ports.AuthGateway against the auth boundary.
type AuthGateway struct {
	client *Client
}

func NewAuthGateway(client *Client) *AuthGateway {
	return &AuthGateway{client: client}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type identityPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type grantPayload struct {
	Identity     identityPayload `json:"identity"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
	ExpiresIn    int             `json:"expiresIn"`
}

// Login exchanges credentials for a token grant. A boundary 401 means bad
// credentials; a 403 means the account exists but is suspended.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*ports.AuthGrant, error) {
	env, err := g.client.send(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password}, "")
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSessionExpired):
			return nil, domain.ErrInvalidCredentials
		case errors.Is(err, domain.ErrForbidden):
			return nil, domain.ErrAccountSuspended
		}
		return nil, err
	}
	return decodeGrant(env)
}

// Refresh exchanges a refresh token for a fresh grant. Any boundary
// rejection is terminal for the session.
func (g *AuthGateway) Refresh(ctx context.Context, refreshToken string) (*ports.AuthGrant, error) {
	env, err := g.client.send(ctx, http.MethodPost, "/refresh", refreshRequest{RefreshToken: refreshToken}, "")
	if err != nil {
		if errors.Is(err, domain.ErrUnavailable) {
			return nil, err
		}
		return nil, domain.ErrSessionExpired
	}
	return decodeGrant(env)
}

// ForgotPassword proxies the reset request. The boundary answers 2xx whether
// or not the account exists, so only transport failures surface.
func (g *AuthGateway) ForgotPassword(ctx context.Context, email string) error {
	_, err := g.client.send(ctx, http.MethodPost, "/forgot-password", forgotPasswordRequest{Email: email}, "")
	if err != nil && errors.Is(err, domain.ErrUnavailable) {
		return err
	}
	return nil
}

func decodeGrant(env *envelope) (*ports.AuthGrant, error) {
	var p grantPayload
	if err := decodeData(env, &p); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(p.Identity.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: role %q", domain.ErrUpstream, p.Identity.Role)
	}
	return &ports.AuthGrant{
		Identity: domain.Identity{
			ID:     p.Identity.ID,
			Name:   p.Identity.Name,
			Email:  p.Identity.Email,
			Role:   role,
			Status: domain.AccountStatus(p.Identity.Status),
		},
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    p.ExpiresIn,
	}, nil
}
