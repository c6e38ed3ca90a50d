package upstream

import (
	"context"
	"net/http"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

// VendorGateway implements ports.VendorGateway for the vendor dashboard.
type VendorGateway struct {
	client *Client
}

func NewVendorGateway(client *Client) *VendorGateway {
	return &VendorGateway{client: client}
}

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`
	ListPrice   int64  `json:"listPrice"`
	SalePrice   int64  `json:"salePrice,omitempty"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// productPatchRequest mirrors PATCH semantics: absent fields stay untouched.
type productPatchRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
	ListPrice   *int64  `json:"listPrice,omitempty"`
	SalePrice   *int64  `json:"salePrice,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

func (g *VendorGateway) ListProducts(ctx context.Context, accessToken string, in ports.ListInput) (*ports.ProductPage, error) {
	env, err := g.client.get(ctx, "/vendor/products", listQuery(in.Page, in.Limit, in.Search), accessToken)
	if err != nil {
		return nil, err
	}
	var items []domain.Product
	if err := decodeData(env, &items); err != nil {
		return nil, err
	}
	return &ports.ProductPage{Items: items, Page: env.Meta.toPage()}, nil
}

func (g *VendorGateway) CreateProduct(ctx context.Context, accessToken string, in ports.ProductInput) (*domain.Product, error) {
	req := productRequest{
		Name:        in.Name,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		ListPrice:   in.ListPrice,
		SalePrice:   in.SalePrice,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
	}
	env, err := g.client.send(ctx, http.MethodPost, "/vendor/products", req, accessToken)
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := decodeData(env, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (g *VendorGateway) UpdateProduct(ctx context.Context, accessToken, productID string, patch ports.ProductPatch) (*domain.Product, error) {
	req := productPatchRequest{
		Name:        patch.Name,
		Description: patch.Description,
		CategoryID:  patch.CategoryID,
		ListPrice:   patch.ListPrice,
		SalePrice:   patch.SalePrice,
		Stock:       patch.Stock,
		ImageURL:    patch.ImageURL,
	}
	env, err := g.client.send(ctx, http.MethodPatch, "/vendor/products/"+productID, req, accessToken)
	if err != nil {
		return nil, err
	}
	var product domain.Product
	if err := decodeData(env, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (g *VendorGateway) DeleteProduct(ctx context.Context, accessToken, productID string) error {
	_, err := g.client.send(ctx, http.MethodDelete, "/vendor/products/"+productID, nil, accessToken)
	return err
}
