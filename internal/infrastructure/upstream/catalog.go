package upstream

import (
	"context"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// CatalogGateway implements ports.CatalogGateway against the public catalog
// boundary. Catalog reads carry no token.
type CatalogGateway struct {
	client *Client
}

func NewCatalogGateway(client *Client) *CatalogGateway {
	return &CatalogGateway{client: client}
}

func (g *CatalogGateway) ListShops(ctx context.Context, in ports.ListInput) (*ports.ShopPage, error) {
	env, err := g.client.get(ctx, "/shops", listQuery(in.Page, in.Limit, in.Search), "")
	if err != nil {
		return nil, err
	}
	var items []domain.Shop
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return &ports.ShopPage{Items: items, Page: env.Meta.toPage()}, nil
}

func (g *CatalogGateway) GetShop(ctx context.Context, id string) (*domain.Shop, error) {
	env, err := g.client.get(ctx, "/shops/"+id, nil, "")
	if err != nil {
		return nil, err
	}
	var shop domain.Shop
	if err := decodeData(env, &shop); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (g *CatalogGateway) ListProducts(ctx context.Context, in ports.ProductListInput) (*ports.ProductPage, error) {
	q := listQuery(in.Page, in.Limit, in.Search)
	if in.ShopID != "" {
		q.Set("shopId", in.ShopID)
	}
	if in.CategoryID != "" {
		q.Set("categoryId", in.CategoryID)
	}
	env, err := g.client.get(ctx, "/products", q, "")
	if err != nil {
		return nil, err
	}
	var items []domain.Product
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return &ports.ProductPage{Items: items, Page: env.Meta.toPage()}, nil
}

func (g *CatalogGateway) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	env, err := g.client.get(ctx, "/products/"+id, nil, "")
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := decodeData(env, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (g *CatalogGateway) ListCategories(ctx context.Context, in ports.ListInput) (*ports.CategoryPage, error) {
	env, err := g.client.get(ctx, "/categories", listQuery(in.Page, in.Limit, in.Search), "")
	if err != nil {
		return nil, err
	}
	var items []domain.Category
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return &ports.CategoryPage{Items: items, Page: env.Meta.toPage()}, nil
}

func (g *CatalogGateway) ListOffers(ctx context.Context, in ports.ListInput) (*ports.OfferPage, error) {
	env, err := g.client.get(ctx, "/offers", listQuery(in.Page, in.Limit, in.Search), "")
	if err != nil {
		return nil, err
	}
	var items []domain.Offer
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return &ports.OfferPage{Items: items, Page: env.Meta.toPage()}, nil
}
