package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/localmart/storefront-gateway/internal/core/domain"
	"github.com/localmart/storefront-gateway/internal/core/ports"
	"github.com/localmart/storefront-gateway/internal/fetch"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	catalogCacheTTL  = 30 * time.Second
	maxCacheEntries  = 1024
)

// CatalogService serves the public browse screens through a short-lived
// read-through cache. Each cache key tracks its load with a fetch.Tracker,
// so when refreshes race the last-issued request wins and a stale response
// is discarded instead of overwriting fresher data.
type CatalogService struct {
	gateway ports.CatalogGateway
	logger  zerolog.Logger

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	tracker   *fetch.Tracker[any]
	fetchedAt time.Time
}

func NewCatalogService(gateway ports.CatalogGateway, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		gateway: gateway,
		logger:  logger,
		entries: make(map[string]*cacheEntry),
	}
}

func (s *CatalogService) ListShops(ctx context.Context, in ports.ListInput) (*ports.ShopPage, error) {
	in = normalize(in)
	return load[*ports.ShopPage](s, listKey("shops", in, "", ""), func() (any, error) {
		return s.gateway.ListShops(ctx, in)
	})
}

func (s *CatalogService) GetShop(ctx context.Context, id string) (*domain.Shop, error) {
	return load[*domain.Shop](s, "shop:"+id, func() (any, error) {
		return s.gateway.GetShop(ctx, id)
	})
}

func (s *CatalogService) ListProducts(ctx context.Context, in ports.ProductListInput) (*ports.ProductPage, error) {
	in.ListInput = normalize(in.ListInput)
	return load[*ports.ProductPage](s, listKey("products", in.ListInput, in.ShopID, in.CategoryID), func() (any, error) {
		return s.gateway.ListProducts(ctx, in)
	})
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return load[*domain.Product](s, "product:"+id, func() (any, error) {
		return s.gateway.GetProduct(ctx, id)
	})
}

func (s *CatalogService) ListCategories(ctx context.Context, in ports.ListInput) (*ports.CategoryPage, error) {
	in = normalize(in)
	return load[*ports.CategoryPage](s, listKey("categories", in, "", ""), func() (any, error) {
		return s.gateway.ListCategories(ctx, in)
	})
}

func (s *CatalogService) ListOffers(ctx context.Context, in ports.ListInput) (*ports.OfferPage, error) {
	in = normalize(in)
	return load[*ports.OfferPage](s, listKey("offers", in, "", ""), func() (any, error) {
		return s.gateway.ListOffers(ctx, in)
	})
}

// load serves a cache key: a fresh Success state is returned as-is, anything
// else triggers a boundary fetch guarded by the entry's tracker.
func load[T any](s *CatalogService, key string, fetchFn func() (any, error)) (T, error) {
	var zero T
	e := s.entry(key)

	s.mu.Lock()
	fetchedAt := e.fetchedAt
	s.mu.Unlock()
	if st := e.tracker.State(); st.Status == fetch.Success && time.Since(fetchedAt) < catalogCacheTTL {
		return st.Data.(T), nil
	}

	tok := e.tracker.Begin()
	data, err := fetchFn()
	if !e.tracker.Complete(tok, data, err) {
		// Superseded by a newer load. Serve its result when it has one;
		// otherwise return this caller's own without stamping the cache
		// clock, which belongs to the newer load.
		st := e.tracker.State()
		switch st.Status {
		case fetch.Success:
			return st.Data.(T), nil
		case fetch.Failure:
			return zero, st.Err
		}
		if err != nil {
			return zero, err
		}
		return data.(T), nil
	}
	if err != nil {
		return zero, err
	}

	s.mu.Lock()
	e.fetchedAt = time.Now()
	s.mu.Unlock()
	return data.(T), nil
}

func (s *CatalogService) entry(key string) *cacheEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		if len(s.entries) >= maxCacheEntries {
			s.evictExpiredLocked()
		}
		e = &cacheEntry{tracker: fetch.NewTracker[any]()}
		s.entries[key] = e
	}
	return e
}

// evictExpiredLocked drops entries whose cached result has aged past the
// TTL. A caller still holding a dropped entry finishes its load on the
// detached pointer; the result simply is not cached. Caller must hold s.mu.
func (s *CatalogService) evictExpiredLocked() {
	for k, e := range s.entries {
		if e.tracker.State().Status != fetch.Loading && time.Since(e.fetchedAt) > catalogCacheTTL {
			delete(s.entries, k)
		}
	}
}

func normalize(in ports.ListInput) ports.ListInput {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit <= 0 {
		in.Limit = defaultPageLimit
	}
	if in.Limit > maxPageLimit {
		in.Limit = maxPageLimit
	}
	in.Search = strings.TrimSpace(in.Search)
	return in
}

func listKey(resource string, in ports.ListInput, shopID, categoryID string) string {
	return fmt.Sprintf("%s:%d:%d:%s:%s:%s", resource, in.Page, in.Limit, in.Search, shopID, categoryID)
}
