package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RedDotz20/storeapi/internal/domain"
	"github.com/RedDotz20/storeapi/internal/gateway"
	"github.com/RedDotz20/storeapi/internal/query"
	apperrors "github.com/RedDotz20/storeapi/pkg/errors"
	"github.com/RedDotz20/storeapi/pkg/httputil"
)

// ProductHandler serves the catalog browsing endpoints. Listings run
// through the query pipeline, so the URL parameters here are the same
// ones the client keeps in its address bar.
type ProductHandler struct {
	catalog      *gateway.CachedCatalog
	suggestLimit int
	logger       *slog.Logger
}

// NewProductHandler creates a new product HTTP handler. suggestLimit
// caps autocomplete results; zero means the pipeline default.
func NewProductHandler(catalog *gateway.CachedCatalog, suggestLimit int, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, suggestLimit: suggestLimit, logger: logger}
}

// listResponse echoes the applied parameters so clients can render
// filter state without re-parsing their own URL.
type listResponse struct {
	Products []productResponse `json:"products"`
	Total    int               `json:"total"`
	Params   paramsResponse    `json:"params"`
	MaxPrice float64           `json:"maxPrice"`
}

type paramsResponse struct {
	Search     string   `json:"search"`
	SortBy     string   `json:"sortBy"`
	Categories []string `json:"categories,omitempty"`
	MinPrice   float64  `json:"minPrice"`
	MaxPrice   float64  `json:"maxPrice"`
	MinRating  float64  `json:"minRating"`
}

type productResponse struct {
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

func toProductResponse(p domain.Product) productResponse {
	out := productResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
	}
	out.Rating.Rate = p.Rating.Rate
	out.Rating.Count = p.Rating.Count
	return out
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context(), 0)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	maxPrice := query.MaxPriceBound(products)
	params := query.DecodeParams(r.URL.Query(), maxPrice)
	filtered := query.Apply(products, params)

	resp := listResponse{
		Products: toProductResponses(filtered),
		Total:    len(filtered),
		MaxPrice: maxPrice,
		Params: paramsResponse{
			Search:     params.Search,
			SortBy:     string(params.SortBy),
			Categories: params.Filter.Categories,
			MinPrice:   params.Filter.MinPrice,
			MaxPrice:   params.Filter.MaxPrice,
			MinRating:  params.Filter.MinRating,
		},
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resp})
}

// Suggest handles GET /api/v1/products/suggest?q=
func (h *ProductHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context(), 0)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	suggestions := query.Suggest(products, r.URL.Query().Get("q"), h.suggestLimit)
	if suggestions == nil {
		suggestions = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"suggestions": suggestions,
	}})
}

// Get handles GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		httputil.WriteError(w, r, apperrors.InvalidInput("product id must be a positive integer"), h.logger)
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toProductResponse(product)})
}

// Categories handles GET /api/v1/categories
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string][]string{
		"categories": categories,
	}})
}
