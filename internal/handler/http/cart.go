package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/RedDotz20/storeapi/internal/cart"
	"github.com/RedDotz20/storeapi/internal/domain"
	apperrors "github.com/RedDotz20/storeapi/pkg/errors"
	"github.com/RedDotz20/storeapi/pkg/httputil"
	"github.com/RedDotz20/storeapi/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *cart.Service
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *cart.Service, logger *slog.Logger) *CartHandler {
	return &CartHandler{service: svc, logger: logger}
}

// AddItemRequest is the JSON request body for adding an item to the cart.
type AddItemRequest struct {
	ID       int     `json:"id" validate:"required,gte=1"`
	Title    string  `json:"title" validate:"required,min=1,max=500"`
	Price    float64 `json:"price" validate:"gte=0"`
	Image    string  `json:"image"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityRequest is the JSON request body for updating an item's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Get(sid)})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	item := domain.CartItem{
		ID:    req.ID,
		Title: req.Title,
		Price: req.Price,
		Image: req.Image,
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	sid := sessionIDFromContext(r.Context())
	updated := h.service.AddItem(sid, item, quantity)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: updated})
}

// UpdateQuantity handles PATCH /api/v1/cart/items/{id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || itemID < 1 {
		httputil.WriteError(w, r, apperrors.InvalidInput("item id must be a positive integer"), h.logger)
		return
	}

	var req UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	sid := sessionIDFromContext(r.Context())
	updated := h.service.UpdateQuantity(sid, itemID, req.Quantity)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: updated})
}

// RemoveItem handles DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || itemID < 1 {
		httputil.WriteError(w, r, apperrors.InvalidInput("item id must be a positive integer"), h.logger)
		return
	}

	sid := sessionIDFromContext(r.Context())
	updated := h.service.RemoveItem(sid, itemID)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: updated})
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: h.service.Clear(sid)})
}
