package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/RedDotz20/storeapi/internal/domain"
	"github.com/RedDotz20/storeapi/internal/session"
	apperrors "github.com/RedDotz20/storeapi/pkg/errors"
	"github.com/RedDotz20/storeapi/pkg/httputil"
	"github.com/RedDotz20/storeapi/pkg/validator"
)

// AuthHandler handles HTTP requests for per-session authentication.
type AuthHandler struct {
	registry *session.Registry
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(registry *session.Registry, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{registry: registry, logger: logger}
}

// LoginRequest is the JSON request body for logging in.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,min=1,max=255"`
	Password   string `json:"password" validate:"required,min=1,max=255"`
}

// SignupRequest is the JSON request body for signing up.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

// Session handles GET /api/v1/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	m := h.registry.Get(r.Context(), sessionIDFromContext(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: m.State()})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	m := h.registry.Get(r.Context(), sessionIDFromContext(r.Context()))
	state, err := m.Login(r.Context(), domain.LoginCredentials{
		Identifier: req.Identifier,
		Password:   req.Password,
	})
	if err != nil {
		// The session holds the error state; the response carries the
		// error itself.
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: state})
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	m := h.registry.Get(r.Context(), sessionIDFromContext(r.Context()))
	state, err := m.Signup(r.Context(), domain.SignupCredentials{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: state})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	m := h.registry.Get(r.Context(), sessionIDFromContext(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: m.Logout(r.Context())})
}

// ClearError handles POST /api/v1/auth/clear-error
func (h *AuthHandler) ClearError(w http.ResponseWriter, r *http.Request) {
	m := h.registry.Get(r.Context(), sessionIDFromContext(r.Context()))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: m.ClearError()})
}
