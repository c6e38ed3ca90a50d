package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// Cart bounds, enforced before persistence.
const (
	maxQuantityPerLine = 100
	maxLinesPerCart    = 50
)

// CartService implements the per-identity cart. Mutations for one identity
// run under a per-identity lock so sequential updates from the storefront
// are applied in the order they were issued, not in arrival order.
type CartService struct {
	repo        ports.CartRepository
	orders      ports.CustomerGateway
	sessions    ports.SessionService
	deliveryFee int64
	logger      zerolog.Logger

	locks *keyedMutex
}

func NewCartService(repo ports.CartRepository, orders ports.CustomerGateway, sessions ports.SessionService, deliveryFee int64, logger zerolog.Logger) *CartService {
	return &CartService{
		repo:        repo,
		orders:      orders,
		sessions:    sessions,
		deliveryFee: deliveryFee,
		logger:      logger,
		locks:       newKeyedMutex(),
	}
}

// Get returns the identity's cart with derived totals. A missing cart is an
// empty cart, not an error.
func (s *CartService) Get(ctx context.Context, identityID string) (*ports.CartView, error) {
	cart, err := s.load(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return view(cart), nil
}

// AddItem merges the product into the cart, creating the line when absent.
func (s *CartService) AddItem(ctx context.Context, identityID string, in ports.AddItemInput) (*ports.CartView, error) {
	if in.ProductID == "" {
		return nil, domain.InvalidInput("product id is required")
	}
	if in.Quantity > maxQuantityPerLine {
		in.Quantity = maxQuantityPerLine
	}

	unlock := s.locks.Lock(identityID)
	defer unlock()

	cart, err := s.load(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if cart.Line(in.ProductID) == nil && len(cart.Lines) >= maxLinesPerCart {
		return nil, domain.InvalidInput("cart is full")
	}

	cart.AddLine(domain.CartLine{
		ProductID: in.ProductID,
		Name:      in.Name,
		ListPrice: in.ListPrice,
		SalePrice: in.SalePrice,
		Stock:     in.Stock,
		ImageURL:  in.ImageURL,
		Quantity:  in.Quantity,
	})

	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	s.logger.Debug().Str("identity_id", identityID).Str("product_id", in.ProductID).Msg("cart line added")
	return view(cart), nil
}

// UpdateQuantity sets a line's quantity; zero or below removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, identityID, productID string, quantity int) (*ports.CartView, error) {
	if quantity > maxQuantityPerLine {
		quantity = maxQuantityPerLine
	}

	unlock := s.locks.Lock(identityID)
	defer unlock()

	cart, err := s.load(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if !cart.SetQuantity(productID, quantity) {
		return nil, domain.ErrNotFound
	}
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return view(cart), nil
}

// RemoveItem drops the product's line; removing an absent line is a no-op.
func (s *CartService) RemoveItem(ctx context.Context, identityID, productID string) (*ports.CartView, error) {
	unlock := s.locks.Lock(identityID)
	defer unlock()

	cart, err := s.load(ctx, identityID)
	if err != nil {
		return nil, err
	}
	cart.RemoveLine(productID)
	if err := s.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return view(cart), nil
}

// Clear empties the cart.
func (s *CartService) Clear(ctx context.Context, identityID string) error {
	unlock := s.locks.Lock(identityID)
	defer unlock()

	return s.repo.Delete(ctx, identityID)
}

// Checkout submits the cart to the order boundary, which revalidates stock
// and prices. The cart is cleared only after the boundary accepts the
// order.
func (s *CartService) Checkout(ctx context.Context, session *domain.Session, in ports.CheckoutInput) (*domain.Order, error) {
	identityID := session.Identity.ID

	unlock := s.locks.Lock(identityID)
	defer unlock()

	cart, err := s.load(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, domain.InvalidInput("cart is empty")
	}

	input := ports.PlaceOrderInput{
		Address: in.Address,
		City:    in.City,
		Phone:   in.Phone,
		Notes:   in.Notes,
	}
	for _, l := range cart.Lines {
		input.Lines = append(input.Lines, domain.OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice(),
			Quantity:  l.Quantity,
		})
	}

	order, err := withAuthRetry(ctx, s.sessions, session, func(token string) (*domain.Order, error) {
		return s.orders.PlaceOrder(ctx, token, input)
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, identityID); err != nil {
		// The order is placed; losing the clear only leaves a stale cart.
		s.logger.Warn().Err(err).Str("identity_id", identityID).Msg("failed to clear cart after checkout")
	}

	s.logger.Info().
		Str("identity_id", identityID).
		Str("order_id", order.ID).
		Int("lines", len(input.Lines)).
		Msg("checkout completed")
	return order, nil
}

// load fetches the cart, treating a missing document as a fresh empty cart
// carrying the configured delivery fee.
func (s *CartService) load(ctx context.Context, identityID string) (*domain.Cart, error) {
	cart, err := s.repo.FindByIdentity(ctx, identityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cart = domain.NewCart(identityID)
			cart.DeliveryFee = s.deliveryFee
			return cart, nil
		}
		return nil, err
	}
	return cart, nil
}

func view(cart *domain.Cart) *ports.CartView {
	return &ports.CartView{Cart: cart, Totals: cart.Totals()}
}
