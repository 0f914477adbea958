// Package gateway contains clients for the remote storefront APIs:
// the product catalog and the authentication backend.
package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/RedDotz20/storeapi/internal/domain"
	"github.com/RedDotz20/storeapi/pkg/httpclient"
)

// Catalog reads products and categories from the remote store API.
type Catalog interface {
	ListProducts(ctx context.Context, limit int) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (domain.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
}

// HTTPCatalog talks to a Fake Store compatible product API.
type HTTPCatalog struct {
	client *httpclient.JSONClient
}

// NewHTTPCatalog builds a catalog over the given client.
func NewHTTPCatalog(client *httpclient.JSONClient) *HTTPCatalog {
	return &HTTPCatalog{client: client}
}

type productPayload struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Rating      struct {
		Rate  float64 `json:"rate"`
		Count int     `json:"count"`
	} `json:"rating"`
}

func (p productPayload) toDomain() domain.Product {
	return domain.Product{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Rating:      domain.Rating{Rate: p.Rating.Rate, Count: p.Rating.Count},
	}
}

func toDomainProducts(payloads []productPayload) []domain.Product {
	out := make([]domain.Product, len(payloads))
	for i, p := range payloads {
		out[i] = p.toDomain()
	}
	return out
}

// ListProducts fetches the catalog, optionally capped at limit items.
func (c *HTTPCatalog) ListProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	var params url.Values
	if limit > 0 {
		params = url.Values{"limit": {strconv.Itoa(limit)}}
	}

	var payloads []productPayload
	if err := c.client.Get(ctx, "/products", params, &payloads); err != nil {
		return nil, err
	}
	return toDomainProducts(payloads), nil
}

// GetProduct fetches a single product by ID.
func (c *HTTPCatalog) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	var payload productPayload
	if err := c.client.Get(ctx, fmt.Sprintf("/products/%d", id), nil, &payload); err != nil {
		return domain.Product{}, err
	}
	return payload.toDomain(), nil
}

// ListCategories fetches the distinct category names.
func (c *HTTPCatalog) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.client.Get(ctx, "/products/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListByCategory fetches the products in one category.
func (c *HTTPCatalog) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	path := "/products/category/" + url.PathEscape(category)

	var payloads []productPayload
	if err := c.client.Get(ctx, path, nil, &payloads); err != nil {
		return nil, err
	}
	return toDomainProducts(payloads), nil
}
