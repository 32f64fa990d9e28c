package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gitlab.com/nubelio/licences/storefront-client/internal/adapters/config"
	"gitlab.com/nubelio/licences/storefront-client/internal/domain"
	"gitlab.com/nubelio/licences/storefront-client/pkg/cachekeys"
)

// CategoryGateway is the read slice of the categories boundary the
// catalog service consumes. Admin mutations bypass the cache and go to
// the REST module directly.
type CategoryGateway interface {
	List(ctx context.Context, q domain.CategoryQuery) (*domain.CategoryListResponse, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
}

// ProductGateway is the read slice of the products boundary.
type ProductGateway interface {
	List(ctx context.Context, q domain.ProductQuery) (*domain.ProductListResponse, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
}

// CatalogService serves catalog reads through the response cache.
// Listings cache briefly (categories shorter than products), single
// resources cache longest. A cache failure is logged and degrades to a
// live call, never to an error.
type CatalogService struct {
	categories CategoryGateway
	products   ProductGateway
	cache      domain.Cache
	cfg        config.Provider
	logger     domain.Logger
}

// NewCatalogService creates the cached catalog reader.
func NewCatalogService(categories CategoryGateway, products ProductGateway, cache domain.Cache, cfg config.Provider, logger domain.Logger) *CatalogService {
	if categories == nil {
		panic("categories cannot be nil in NewCatalogService")
	}
	if products == nil {
		panic("products cannot be nil in NewCatalogService")
	}
	if cache == nil {
		panic("cache cannot be nil in NewCatalogService")
	}
	if cfg == nil {
		panic("cfg cannot be nil in NewCatalogService")
	}
	if logger == nil {
		panic("logger cannot be nil in NewCatalogService")
	}
	return &CatalogService{
		categories: categories,
		products:   products,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
	}
}

// ListCategories returns categories matching q, cached per filter set.
func (s *CatalogService) ListCategories(ctx context.Context, q domain.CategoryQuery) (*domain.CategoryListResponse, error) {
	var resp domain.CategoryListResponse
	_, err := s.cached(ctx, cachekeys.CategoryList(q), s.categoryListTTL(), &resp, func() (any, error) {
		return s.categories.List(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCategory returns one category by ID, mapping 404 to ErrNotFound.
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	var cat domain.Category
	_, err := s.cached(ctx, cachekeys.Category(id), s.resourceTTL(), &cat, func() (any, error) {
		return s.categories.Get(ctx, id)
	})
	if err != nil {
		return nil, mapNotFound(err, "category %s", id)
	}
	return &cat, nil
}

// GetCategoryBySlug returns one category by slug.
func (s *CatalogService) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var cat domain.Category
	_, err := s.cached(ctx, cachekeys.CategorySlug(slug), s.resourceTTL(), &cat, func() (any, error) {
		return s.categories.GetBySlug(ctx, slug)
	})
	if err != nil {
		return nil, mapNotFound(err, "category %s", slug)
	}
	return &cat, nil
}

// ListProducts returns products matching q, cached per filter set.
func (s *CatalogService) ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductListResponse, error) {
	var resp domain.ProductListResponse
	_, err := s.cached(ctx, cachekeys.ProductList(q), s.productListTTL(), &resp, func() (any, error) {
		return s.products.List(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetProduct returns one product by ID, mapping 404 to ErrNotFound.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	_, err := s.cached(ctx, cachekeys.Product(id), s.resourceTTL(), &p, func() (any, error) {
		return s.products.Get(ctx, id)
	})
	if err != nil {
		return nil, mapNotFound(err, "product %s", id)
	}
	return &p, nil
}

// GetProductBySlug returns one product by slug.
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	_, err := s.cached(ctx, cachekeys.ProductSlug(slug), s.resourceTTL(), &p, func() (any, error) {
		return s.products.GetBySlug(ctx, slug)
	})
	if err != nil {
		return nil, mapNotFound(err, "product %s", slug)
	}
	return &p, nil
}

// InvalidateAll drops the whole response cache, for use after admin
// mutations of the catalog.
func (s *CatalogService) InvalidateAll(ctx context.Context) error {
	return s.cache.Clear(ctx)
}

// cached fills out from the cache under key, or from fetch on a miss,
// writing the fetched value back with the given TTL. The bool result
// reports whether the value came from the cache.
func (s *CatalogService) cached(ctx context.Context, key string, ttl time.Duration, out any, fetch func() (any, error)) (bool, error) {
	payload, err := s.cache.Get(ctx, key)
	if err == nil {
		if err := json.Unmarshal(payload, out); err == nil {
			return true, nil
		}
		// A corrupted entry is dropped and refetched.
		s.logger.Warn(ctx, "Dropping undecodable cache entry", "key", key)
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Warn(ctx, "Failed to delete undecodable cache entry", "key", key, "error", err.Error())
		}
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn(ctx, "Cache read failed, falling through to API", "key", key, "error", err.Error())
	}

	fetched, err := fetch()
	if err != nil {
		return false, err
	}

	payload, err = json.Marshal(fetched)
	if err != nil {
		return false, fmt.Errorf("failed to encode value for cache key '%s': %w", key, err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return false, fmt.Errorf("failed to decode value for cache key '%s': %w", key, err)
	}
	if err := s.cache.Set(ctx, key, payload, ttl); err != nil {
		s.logger.Warn(ctx, "Cache write failed", "key", key, "error", err.Error())
	}
	return false, nil
}

func (s *CatalogService) categoryListTTL() time.Duration {
	return secondsOr(s.cfg.Get().Cache.CategoryListTTLSeconds, 5*time.Minute)
}

func (s *CatalogService) productListTTL() time.Duration {
	return secondsOr(s.cfg.Get().Cache.ProductListTTLSeconds, 10*time.Minute)
}

func (s *CatalogService) resourceTTL() time.Duration {
	return secondsOr(s.cfg.Get().Cache.ProductTTLSeconds, 30*time.Minute)
}

func secondsOr(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func mapNotFound(err error, format string, args ...any) error {
	if domain.IsStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: "+format, append([]any{domain.ErrNotFound}, args...)...)
	}
	return err
}
