package ports

import (
	"context"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

// AddItemInput carries the parameters for adding a product to the cart.
// Price and stock come from the catalog view the storefront rendered; the
// boundary revalidates both at checkout.
type AddItemInput struct {
	ProductID string
	Name      string
	ListPrice int64
	SalePrice int64
	Stock     int
	ImageURL  string
	Quantity  int
}

// CartView is a cart together with its derived totals.
type CartView struct {
	Cart   *domain.Cart
	Totals domain.CartTotals
}

// CheckoutInput carries delivery details for placing an order.
type CheckoutInput struct {
	Address string
	City    string
	Phone   string
	Notes   string
}

// CartService implements the cart operations for one identity. Mutations on
// the same identity are serialized so sequential updates apply in the order
// issued.
type CartService interface {
	Get(ctx context.Context, identityID string) (*CartView, error)
	AddItem(ctx context.Context, identityID string, in AddItemInput) (*CartView, error)
	UpdateQuantity(ctx context.Context, identityID, productID string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, identityID, productID string) (*CartView, error)
	Clear(ctx context.Context, identityID string) error
	// Checkout submits the cart to the order boundary and clears it on
	// success.
	Checkout(ctx context.Context, session *domain.Session, in CheckoutInput) (*domain.Order, error)
}

// CartRepository persists carts, one document per identity.
type CartRepository interface {
	FindByIdentity(ctx context.Context, identityID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, identityID string) error
}
