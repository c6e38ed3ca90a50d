package service

import (
	"context"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// AdminService serves the admin dashboard.
type AdminService struct {
	gateway  ports.AdminGateway
	sessions ports.SessionService
}

func NewAdminService(gateway ports.AdminGateway, sessions ports.SessionService) *AdminService {
	return &AdminService{gateway: gateway, sessions: sessions}
}

func (s *AdminService) Stats(ctx context.Context, session *domain.Session) (*ports.PlatformStats, error) {
	return withAuthRetry(ctx, s.sessions, session, func(token string) (*ports.PlatformStats, error) {
		return s.gateway.Stats(ctx, token)
	})
}
