package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
	"github.com/localmart/storefront-gateway/internal/fetch"
)

type stubCatalogGateway struct {
	calls    int
	lastList ports.ListInput
	err      error
	shops    []domain.Shop
}

func (g *stubCatalogGateway) ListShops(_ context.Context, in ports.ListInput) (*ports.ShopPage, error) {
	g.calls++
	g.lastList = in
	if g.err != nil {
		return nil, g.err
	}
	return &ports.ShopPage{Items: g.shops, Page: domain.Page{Page: in.Page, Limit: in.Limit, Total: int64(len(g.shops))}}, nil
}

func (g *stubCatalogGateway) GetShop(_ context.Context, id string) (*domain.Shop, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &domain.Shop{ID: id, Name: "Shop " + id}, nil
}

func (g *stubCatalogGateway) ListProducts(_ context.Context, in ports.ProductListInput) (*ports.ProductPage, error) {
	g.calls++
	g.lastList = in.ListInput
	if g.err != nil {
		return nil, g.err
	}
	return &ports.ProductPage{Page: domain.Page{Page: in.Page, Limit: in.Limit}}, nil
}

func (g *stubCatalogGateway) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return &domain.Product{ID: id}, nil
}

func (g *stubCatalogGateway) ListCategories(_ context.Context, in ports.ListInput) (*ports.CategoryPage, error) {
	g.calls++
	return &ports.CategoryPage{}, nil
}

func (g *stubCatalogGateway) ListOffers(_ context.Context, in ports.ListInput) (*ports.OfferPage, error) {
	g.calls++
	return &ports.OfferPage{}, nil
}

func TestCatalogService_ListShopsCachesWithinTTL(t *testing.T) {
	gw := &stubCatalogGateway{shops: []domain.Shop{{ID: "s1"}}}
	svc := NewCatalogService(gw, zerolog.Nop())

	in := ports.ListInput{Page: 1, Limit: 20}
	if _, err := svc.ListShops(context.Background(), in); err != nil {
		t.Fatalf("ListShops returned error: %v", err)
	}
	page, err := svc.ListShops(context.Background(), in)
	if err != nil {
		t.Fatalf("ListShops returned error: %v", err)
	}

	if gw.calls != 1 {
		t.Fatalf("expected one boundary call for identical params, got %d", gw.calls)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "s1" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestCatalogService_DistinctParamsAreDistinctEntries(t *testing.T) {
	gw := &stubCatalogGateway{}
	svc := NewCatalogService(gw, zerolog.Nop())

	if _, err := svc.ListShops(context.Background(), ports.ListInput{Page: 1}); err != nil {
		t.Fatalf("ListShops returned error: %v", err)
	}
	if _, err := svc.ListShops(context.Background(), ports.ListInput{Page: 2}); err != nil {
		t.Fatalf("ListShops returned error: %v", err)
	}
	if _, err := svc.ListShops(context.Background(), ports.ListInput{Page: 1, Search: "honey"}); err != nil {
		t.Fatalf("ListShops returned error: %v", err)
	}

	if gw.calls != 3 {
		t.Fatalf("expected three boundary calls, got %d", gw.calls)
	}
}

func TestCatalogService_FailureIsNotCached(t *testing.T) {
	gw := &stubCatalogGateway{err: domain.ErrUnavailable}
	svc := NewCatalogService(gw, zerolog.Nop())

	if _, err := svc.ListShops(context.Background(), ports.ListInput{}); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	gw.err = nil
	if _, err := svc.ListShops(context.Background(), ports.ListInput{}); err != nil {
		t.Fatalf("expected recovery after failure, got %v", err)
	}
	if gw.calls != 2 {
		t.Fatalf("failure must not be served from cache, got %d calls", gw.calls)
	}
}

func TestCatalogService_NormalizesPagination(t *testing.T) {
	gw := &stubCatalogGateway{}
	svc := NewCatalogService(gw, zerolog.Nop())

	if _, err := svc.ListShops(context.Background(), ports.ListInput{Page: 0, Limit: 0, Search: "  tea  "}); err != nil {
		t.Fatalf("ListShops returned error: %v", err)
	}
	if gw.lastList.Page != 1 {
		t.Fatalf("expected page 1, got %d", gw.lastList.Page)
	}
	if gw.lastList.Limit != defaultPageLimit {
		t.Fatalf("expected default limit, got %d", gw.lastList.Limit)
	}
	if gw.lastList.Search != "tea" {
		t.Fatalf("expected trimmed search, got %q", gw.lastList.Search)
	}

	if _, err := svc.ListShops(context.Background(), ports.ListInput{Limit: 10_000}); err != nil {
		t.Fatalf("ListShops returned error: %v", err)
	}
	if gw.lastList.Limit != maxPageLimit {
		t.Fatalf("expected limit capped at %d, got %d", maxPageLimit, gw.lastList.Limit)
	}
}

func TestCatalogService_GetProductByID(t *testing.T) {
	gw := &stubCatalogGateway{}
	svc := NewCatalogService(gw, zerolog.Nop())

	product, err := svc.GetProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetProduct returned error: %v", err)
	}
	if product.ID != "p1" {
		t.Fatalf("unexpected product: %+v", product)
	}

	if _, err := svc.GetProduct(context.Background(), "p1"); err != nil {
		t.Fatalf("GetProduct returned error: %v", err)
	}
	if gw.calls != 1 {
		t.Fatalf("expected cached second read, got %d calls", gw.calls)
	}
}

// supersedingGateway starts a newer load on the same cache entry while the
// first fetch is still in flight, so the first completion arrives stale.
type supersedingGateway struct {
	stubCatalogGateway
	svc        *CatalogService
	key        string
	superseded bool
}

func (g *supersedingGateway) GetShop(ctx context.Context, id string) (*domain.Shop, error) {
	if !g.superseded {
		g.superseded = true
		g.svc.entry(g.key).tracker.Begin()
	}
	return g.stubCatalogGateway.GetShop(ctx, id)
}

func TestCatalogService_SupersededLoadDoesNotStampCache(t *testing.T) {
	gw := &supersedingGateway{key: "shop:s1"}
	svc := NewCatalogService(gw, zerolog.Nop())
	gw.svc = svc

	shop, err := svc.GetShop(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetShop returned error: %v", err)
	}
	if shop.ID != "s1" {
		t.Fatalf("expected the caller's own result, got %+v", shop)
	}

	e := svc.entry("shop:s1")
	svc.mu.Lock()
	stamped := !e.fetchedAt.IsZero()
	svc.mu.Unlock()
	if stamped {
		t.Fatalf("stale completion must not stamp the cache timestamp")
	}
}

func TestCatalogService_EvictsExpiredEntriesAtCapacity(t *testing.T) {
	gw := &stubCatalogGateway{}
	svc := NewCatalogService(gw, zerolog.Nop())

	stale := time.Now().Add(-2 * catalogCacheTTL)
	svc.mu.Lock()
	for i := 0; i < maxCacheEntries; i++ {
		svc.entries[fmt.Sprintf("stale:%d", i)] = &cacheEntry{tracker: fetch.NewTracker[any](), fetchedAt: stale}
	}
	svc.mu.Unlock()

	if _, err := svc.GetShop(context.Background(), "s1"); err != nil {
		t.Fatalf("GetShop returned error: %v", err)
	}

	svc.mu.Lock()
	n := len(svc.entries)
	svc.mu.Unlock()
	if n != 1 {
		t.Fatalf("expected expired entries evicted on insert, %d remain", n)
	}
}

// countingGateway serializes the stub so concurrent loads do not race on its
// counters.
type countingGateway struct {
	stubCatalogGateway
	mu sync.Mutex
}

func (g *countingGateway) ListShops(ctx context.Context, in ports.ListInput) (*ports.ShopPage, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stubCatalogGateway.ListShops(ctx, in)
}

func TestCatalogService_ConcurrentLoads(t *testing.T) {
	gw := &countingGateway{stubCatalogGateway: stubCatalogGateway{shops: []domain.Shop{{ID: "s1"}}}}
	svc := NewCatalogService(gw, zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			page, err := svc.ListShops(context.Background(), ports.ListInput{Page: 1, Limit: 20})
			if err != nil {
				t.Errorf("ListShops returned error: %v", err)
				return
			}
			if len(page.Items) != 1 {
				t.Errorf("expected 1 shop, got %d", len(page.Items))
			}
		}()
	}
	wg.Wait()
}
