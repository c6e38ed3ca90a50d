package ports

import (
	"context"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

// FavoritePage is one page of a customer's saved products.
type FavoritePage struct {
	Items []domain.Favorite
	Page  domain.Page
}

// OrderPage is one page of a customer's orders.
type OrderPage struct {
	Items []domain.Order
	Page  domain.Page
}

// CustomerService serves the authenticated customer screens. Every call
// carries the session so an upstream 401 can be recovered with one refresh
// before failing.
type CustomerService interface {
	ListFavorites(ctx context.Context, session *domain.Session, in ListInput) (*FavoritePage, error)
	RemoveFavorite(ctx context.Context, session *domain.Session, productID string) error
	ListOrders(ctx context.Context, session *domain.Session, in ListInput) (*OrderPage, error)
	GetOrder(ctx context.Context, session *domain.Session, orderID string) (*domain.Order, error)
}

// PlaceOrderInput is the checkout payload sent to the order boundary.
type PlaceOrderInput struct {
	Lines   []domain.OrderLine
	Address string
	City    string
	Phone   string
	Notes   string
}

// CustomerGateway is the upstream boundary for customer-scoped resources.
// Calls return domain.ErrSessionExpired on an upstream 401 so callers can
// attempt a refresh.
type CustomerGateway interface {
	ListFavorites(ctx context.Context, accessToken string, in ListInput) (*FavoritePage, error)
	RemoveFavorite(ctx context.Context, accessToken, productID string) error
	ListOrders(ctx context.Context, accessToken string, in ListInput) (*OrderPage, error)
	GetOrder(ctx context.Context, accessToken, orderID string) (*domain.Order, error)
	PlaceOrder(ctx context.Context, accessToken string, in PlaceOrderInput) (*domain.Order, error)
}
