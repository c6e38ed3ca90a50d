package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
)

type stubVendorGateway struct {
	created *ports.ProductInput
}

func (g *stubVendorGateway) ListProducts(_ context.Context, _ string, in ports.ListInput) (*ports.ProductPage, error) {
	return &ports.ProductPage{Page: domain.Page{Page: in.Page, Limit: in.Limit}}, nil
}

func (g *stubVendorGateway) CreateProduct(_ context.Context, _ string, in ports.ProductInput) (*domain.Product, error) {
	g.created = &in
	return &domain.Product{ID: "prod_1", Name: in.Name, ListPrice: in.ListPrice}, nil
}

func (g *stubVendorGateway) UpdateProduct(_ context.Context, _, productID string, _ ports.ProductPatch) (*domain.Product, error) {
	return &domain.Product{ID: productID}, nil
}

func (g *stubVendorGateway) DeleteProduct(_ context.Context, _, _ string) error {
	return nil
}

func vendorSession() *domain.Session {
	return &domain.Session{
		ID:          "sess_v1",
		Identity:    domain.Identity{ID: "vend_1", Role: domain.RoleVendor, Status: domain.StatusActive},
		AccessToken: "access-1",
		CreatedAt:   time.Now().UTC(),
	}
}

func newTestVendorService(gw ports.VendorGateway) *VendorService {
	return NewVendorService(gw, nil, zerolog.Nop())
}

func TestVendorService_CreateProduct(t *testing.T) {
	gw := &stubVendorGateway{}
	svc := newTestVendorService(gw)

	product, err := svc.CreateProduct(context.Background(), vendorSession(), ports.ProductInput{
		Name:      "Honey",
		ListPrice: 5000,
		SalePrice: 4000,
		Stock:     10,
	})
	if err != nil {
		t.Fatalf("CreateProduct returned error: %v", err)
	}
	if product.ID != "prod_1" {
		t.Fatalf("unexpected product %+v", product)
	}
	if gw.created == nil || gw.created.Name != "Honey" {
		t.Fatalf("input not forwarded to the boundary")
	}
}

func TestVendorService_CreateProductValidation(t *testing.T) {
	svc := newTestVendorService(&stubVendorGateway{})

	cases := []struct {
		name string
		in   ports.ProductInput
	}{
		{"missing name", ports.ProductInput{ListPrice: 100}},
		{"zero list price", ports.ProductInput{Name: "Honey"}},
		{"sale above list", ports.ProductInput{Name: "Honey", ListPrice: 100, SalePrice: 200}},
		{"negative stock", ports.ProductInput{Name: "Honey", ListPrice: 100, Stock: -1}},
	}
	for _, tc := range cases {
		_, err := svc.CreateProduct(context.Background(), vendorSession(), tc.in)
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected a validation error, got %v", tc.name, err)
		}
	}
}

func TestVendorService_UpdateProductValidation(t *testing.T) {
	svc := newTestVendorService(&stubVendorGateway{})
	session := vendorSession()

	zero := int64(0)
	_, err := svc.UpdateProduct(context.Background(), session, "prod_1", ports.ProductPatch{ListPrice: &zero})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected a validation error for zero list price, got %v", err)
	}

	negative := -1
	if _, err := svc.UpdateProduct(context.Background(), session, "prod_1", ports.ProductPatch{Stock: &negative}); !errors.As(err, &ve) {
		t.Fatalf("expected a validation error for negative stock, got %v", err)
	}

	if _, err := svc.UpdateProduct(context.Background(), session, "", ports.ProductPatch{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty id, got %v", err)
	}
}
