package gateway

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/RedDotz20/storeapi/internal/domain"
	"github.com/RedDotz20/storeapi/internal/query"
)

// DefaultCatalogTTL bounds how long cached catalog reads are served
// before the upstream is asked again.
const DefaultCatalogTTL = 5 * time.Minute

// CachedCatalog wraps a Catalog with a TTL cache for the full product
// list and the category list. Single-product and per-category reads
// are answered from the cached list when it is warm, so a page render
// costs at most one upstream round trip.
type CachedCatalog struct {
	upstream Catalog
	ttl      time.Duration
	log      *slog.Logger

	mu           sync.Mutex
	products     []domain.Product
	categories   []string
	fetchedAt    time.Time
	categoriesAt time.Time
}

// NewCachedCatalog wraps upstream with the given TTL. A non-positive
// TTL falls back to DefaultCatalogTTL.
func NewCachedCatalog(upstream Catalog, ttl time.Duration, log *slog.Logger) *CachedCatalog {
	if ttl <= 0 {
		ttl = DefaultCatalogTTL
	}
	return &CachedCatalog{upstream: upstream, ttl: ttl, log: log}
}

func (c *CachedCatalog) freshProducts(ctx context.Context) ([]domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.products != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.products, nil
	}

	products, err := c.upstream.ListProducts(ctx, 0)
	if err != nil {
		if c.products != nil {
			// Serve stale data over an error while the upstream is down.
			c.log.Warn("serving stale catalog", "error", err, "age", time.Since(c.fetchedAt).String())
			return c.products, nil
		}
		return nil, err
	}

	c.products = products
	c.fetchedAt = time.Now()
	return c.products, nil
}

// ListProducts returns the cached catalog, fetching on miss or expiry.
// limit caps the returned slice without affecting the cache.
func (c *CachedCatalog) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	products, err := c.freshProducts(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	out := make([]domain.Product, len(products))
	copy(out, products)
	return out, nil
}

// GetProduct answers from the cached list when warm, falling back to
// the upstream for IDs the list does not contain.
func (c *CachedCatalog) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	products, err := c.freshProducts(ctx)
	if err == nil {
		for _, p := range products {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return c.upstream.GetProduct(ctx, id)
}

// ListCategories returns the cached category names, fetching on miss
// or expiry.
func (c *CachedCatalog) ListCategories(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.categories != nil && time.Since(c.categoriesAt) < c.ttl {
		out := make([]string, len(c.categories))
		copy(out, c.categories)
		return out, nil
	}

	categories, err := c.upstream.ListCategories(ctx)
	if err != nil {
		if c.categories != nil {
			c.log.Warn("serving stale categories", "error", err)
			out := make([]string, len(c.categories))
			copy(out, c.categories)
			return out, nil
		}
		return nil, err
	}

	c.categories = categories
	c.categoriesAt = time.Now()
	out := make([]string, len(categories))
	copy(out, categories)
	return out, nil
}

// ListByCategory filters the cached catalog by category.
func (c *CachedCatalog) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := c.freshProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// MaxPriceBound returns the price slider bound for the cached catalog.
func (c *CachedCatalog) MaxPriceBound(ctx context.Context) (float64, error) {
	products, err := c.freshProducts(ctx)
	if err != nil {
		return 0, err
	}
	return query.MaxPriceBound(products), nil
}

// Invalidate drops the cached catalog so the next read refetches.
func (c *CachedCatalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products = nil
	c.categories = nil
}
