package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// CustomerService serves the authenticated customer screens: favorites and
// order history. All calls ride through withAuthRetry so one upstream 401 is
// repaired with a refresh before any failure reaches the storefront.
type CustomerService struct {
	gateway  ports.CustomerGateway
	sessions ports.SessionService
	logger   zerolog.Logger
}

func NewCustomerService(gateway ports.CustomerGateway, sessions ports.SessionService, logger zerolog.Logger) *CustomerService {
	return &CustomerService{gateway: gateway, sessions: sessions, logger: logger}
}

func (s *CustomerService) ListFavorites(ctx context.Context, session *domain.Session, in ports.ListInput) (*ports.FavoritePage, error) {
	in = normalize(in)
	return withAuthRetry(ctx, s.sessions, session, func(token string) (*ports.FavoritePage, error) {
		return s.gateway.ListFavorites(ctx, token, in)
	})
}

func (s *CustomerService) RemoveFavorite(ctx context.Context, session *domain.Session, productID string) error {
	_, err := withAuthRetry(ctx, s.sessions, session, func(token string) (struct{}, error) {
		return struct{}{}, s.gateway.RemoveFavorite(ctx, token, productID)
	})
	if err == nil {
		s.logger.Debug().Str("identity_id", session.Identity.ID).Str("product_id", productID).Msg("favorite removed")
	}
	return err
}

func (s *CustomerService) ListOrders(ctx context.Context, session *domain.Session, in ports.ListInput) (*ports.OrderPage, error) {
	in = normalize(in)
	return withAuthRetry(ctx, s.sessions, session, func(token string) (*ports.OrderPage, error) {
		return s.gateway.ListOrders(ctx, token, in)
	})
}

func (s *CustomerService) GetOrder(ctx context.Context, session *domain.Session, orderID string) (*domain.Order, error) {
	return withAuthRetry(ctx, s.sessions, session, func(token string) (*domain.Order, error) {
		return s.gateway.GetOrder(ctx, token, orderID)
	})
}
