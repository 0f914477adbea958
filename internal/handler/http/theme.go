package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/RedDotz20/storeapi/internal/session"
	apperrors "github.com/RedDotz20/storeapi/pkg/errors"
	"github.com/RedDotz20/storeapi/pkg/httputil"
	"github.com/RedDotz20/storeapi/pkg/validator"
)

// ThemeHandler handles the per-session display theme preference.
type ThemeHandler struct {
	themes *session.Themes
	logger *slog.Logger
}

// NewThemeHandler creates a new theme HTTP handler.
func NewThemeHandler(themes *session.Themes, logger *slog.Logger) *ThemeHandler {
	return &ThemeHandler{themes: themes, logger: logger}
}

// SetThemeRequest is the JSON request body for setting the theme.
type SetThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark system"`
}

// Get handles GET /api/v1/theme
func (h *ThemeHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid := sessionIDFromContext(r.Context())
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{
		"theme": h.themes.Get(r.Context(), sid),
	}})
}

// Set handles PUT /api/v1/theme
func (h *ThemeHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req SetThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	sid := sessionIDFromContext(r.Context())
	if err := h.themes.Set(r.Context(), sid, req.Theme); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"theme": req.Theme}})
}
