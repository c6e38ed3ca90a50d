package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// VendorService serves the vendor dashboard product CRUD. Role enforcement
// happens at the route guard; this layer validates the payloads and carries
// the refresh-once retry.
type VendorService struct {
	gateway  ports.VendorGateway
	sessions ports.SessionService
	logger   zerolog.Logger
}

func NewVendorService(gateway ports.VendorGateway, sessions ports.SessionService, logger zerolog.Logger) *VendorService {
	return &VendorService{gateway: gateway, sessions: sessions, logger: logger}
}

func (s *VendorService) ListProducts(ctx context.Context, session *domain.Session, in ports.ListInput) (*ports.ProductPage, error) {
	in = normalize(in)
	return withAuthRetry(ctx, s.sessions, session, func(token string) (*ports.ProductPage, error) {
		return s.gateway.ListProducts(ctx, token, in)
	})
}

func (s *VendorService) CreateProduct(ctx context.Context, session *domain.Session, in ports.ProductInput) (*domain.Product, error) {
	if err := validateProductInput(in); err != nil {
		return nil, err
	}
	product, err := withAuthRetry(ctx, s.sessions, session, func(token string) (*domain.Product, error) {
		return s.gateway.CreateProduct(ctx, token, in)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info().
		Str("identity_id", session.Identity.ID).
		Str("product_id", product.ID).
		Msg("vendor product created")
	return product, nil
}

func (s *VendorService) UpdateProduct(ctx context.Context, session *domain.Session, productID string, patch ports.ProductPatch) (*domain.Product, error) {
	if productID == "" {
		return nil, domain.ErrNotFound
	}
	if patch.ListPrice != nil && *patch.ListPrice <= 0 {
		return nil, domain.InvalidInput("list price must be positive")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, domain.InvalidInput("stock must not be negative")
	}
	return withAuthRetry(ctx, s.sessions, session, func(token string) (*domain.Product, error) {
		return s.gateway.UpdateProduct(ctx, token, productID, patch)
	})
}

func (s *VendorService) DeleteProduct(ctx context.Context, session *domain.Session, productID string) error {
	if productID == "" {
		return domain.ErrNotFound
	}
	_, err := withAuthRetry(ctx, s.sessions, session, func(token string) (struct{}, error) {
		return struct{}{}, s.gateway.DeleteProduct(ctx, token, productID)
	})
	if err == nil {
		s.logger.Info().
			Str("identity_id", session.Identity.ID).
			Str("product_id", productID).
			Msg("vendor product deleted")
	}
	return err
}

func validateProductInput(in ports.ProductInput) error {
	if in.Name == "" {
		return domain.InvalidInput("product name is required")
	}
	if in.ListPrice <= 0 {
		return domain.InvalidInput("list price must be positive")
	}
	if in.SalePrice < 0 || in.SalePrice > in.ListPrice {
		return domain.InvalidInput("sale price must be between 0 and the list price")
	}
	if in.Stock < 0 {
		return domain.InvalidInput("stock must not be negative")
	}
	return nil
}
