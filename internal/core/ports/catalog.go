package ports

import (
	"context"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

// ListInput carries the shared pagination and search parameters for catalog
// list endpoints. Page is 1-based; Limit is capped by the service.
type ListInput struct {
	Page   int
	Limit  int
	Search string
}

// ShopPage is one page of shops plus pagination metadata.
type ShopPage struct {
	Items []domain.Shop
	Page  domain.Page
}

// ProductPage is one page of products plus pagination metadata.
type ProductPage struct {
	Items []domain.Product
	Page  domain.Page
}

// CategoryPage is one page of categories plus pagination metadata.
type CategoryPage struct {
	Items []domain.Category
	Page  domain.Page
}

// OfferPage is one page of offers plus pagination metadata.
type OfferPage struct {
	Items []domain.Offer
	Page  domain.Page
}

// ProductListInput narrows a product listing to a shop or category.
type ProductListInput struct {
	ListInput
	ShopID     string
	CategoryID string
}

// CatalogService serves the public browse screens. Reads go through a
// short-lived cache; the boundary stays the source of truth.
type CatalogService interface {
	ListShops(ctx context.Context, in ListInput) (*ShopPage, error)
	GetShop(ctx context.Context, id string) (*domain.Shop, error)
	ListProducts(ctx context.Context, in ProductListInput) (*ProductPage, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context, in ListInput) (*CategoryPage, error)
	ListOffers(ctx context.Context, in ListInput) (*OfferPage, error)
}

// CatalogGateway is the upstream catalog boundary.
type CatalogGateway interface {
	ListShops(ctx context.Context, in ListInput) (*ShopPage, error)
	GetShop(ctx context.Context, id string) (*domain.Shop, error)
	ListProducts(ctx context.Context, in ProductListInput) (*ProductPage, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListCategories(ctx context.Context, in ListInput) (*CategoryPage, error)
	ListOffers(ctx context.Context, in ListInput) (*OfferPage, error)
}
