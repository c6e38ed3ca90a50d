package ports

import (
	"context"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

// ProductInput carries the editable fields of a vendor's product. Prices
// are integer cents.
type ProductInput struct {
	Name        string
	Description string
	CategoryID  string
	ListPrice   int64
	SalePrice   int64
	Stock       int
	ImageURL    string
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	CategoryID  *string
	ListPrice   *int64
	SalePrice   *int64
	Stock       *int
	ImageURL    *string
}

// VendorService serves the vendor dashboard product CRUD.
type VendorService interface {
	ListProducts(ctx context.Context, session *domain.Session, in ListInput) (*ProductPage, error)
	CreateProduct(ctx context.Context, session *domain.Session, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, session *domain.Session, productID string, patch ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, session *domain.Session, productID string) error
}

// VendorGateway is the upstream boundary for vendor-scoped resources.
type VendorGateway interface {
	ListProducts(ctx context.Context, accessToken string, in ListInput) (*ProductPage, error)
	CreateProduct(ctx context.Context, accessToken string, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, accessToken, productID string, patch ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, accessToken, productID string) error
}
