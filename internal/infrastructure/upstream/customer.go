package upstream

import (
	"context"
	"net/http"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// CustomerGateway implements ports.CustomerGateway. Every call carries the
// session's upstream access token; a boundary 401 surfaces as
// domain.ErrSessionExpired for the service layer's refresh-once retry.
type CustomerGateway struct {
	client *Client
}

func NewCustomerGateway(client *Client) *CustomerGateway {
	return &CustomerGateway{client: client}
}

func (g *CustomerGateway) ListFavorites(ctx context.Context, accessToken string, in ports.ListInput) (*ports.FavoritePage, error) {
	env, err := g.client.get(ctx, "/favorites", listQuery(in.Page, in.Limit, in.Search), accessToken)
	if err != nil {
		return nil, err
	}
	var items []domain.Favorite
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return &ports.FavoritePage{Items: items, Page: env.Meta.toPage()}, nil
}

func (g *CustomerGateway) RemoveFavorite(ctx context.Context, accessToken, productID string) error {
	_, err := g.client.send(ctx, http.MethodDelete, "/favorites/"+productID, nil, accessToken)
	return err
}

func (g *CustomerGateway) ListOrders(ctx context.Context, accessToken string, in ports.ListInput) (*ports.OrderPage, error) {
	env, err := g.client.get(ctx, "/orders", listQuery(in.Page, in.Limit, in.Search), accessToken)
	if err != nil {
		return nil, err
	}
	var items []domain.Order
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return &ports.OrderPage{Items: items, Page: env.Meta.toPage()}, nil
}

func (g *CustomerGateway) GetOrder(ctx context.Context, accessToken, orderID string) (*domain.Order, error) {
	env, err := g.client.get(ctx, "/orders/"+orderID, nil, accessToken)
	if err != nil {
		return nil, err
	}
	var order domain.Order
	if err := decodeData(env, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

type placeOrderRequest struct {
	Lines   []orderLineRequest `json:"lines"`
	Address string             `json:"address"`
	City    string             `json:"city"`
	Phone   string             `json:"phone"`
	Notes   string             `json:"notes,omitempty"`
}

type orderLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (g *CustomerGateway) PlaceOrder(ctx context.Context, accessToken string, in ports.PlaceOrderInput) (*domain.Order, error) {
	req := placeOrderRequest{
		Address: in.Address,
		City:    in.City,
		Phone:   in.Phone,
		Notes:   in.Notes,
	}
	for _, l := range in.Lines {
		req.Lines = append(req.Lines, orderLineRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	env, err := g.client.send(ctx, http.MethodPost, "/orders", req, accessToken)
	if err != nil {
		return nil, err
	}
	var order domain.Order
	if err := decodeData(env, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
