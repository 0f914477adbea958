package session

import (
	"context"

	"github.com/RedDotz20/storeapi/internal/domain"
	apperrors "github.com/RedDotz20/storeapi/pkg/errors"
	"github.com/RedDotz20/storeapi/pkg/kvstore"
)

const themeKey = "theme"

// Themes stores the per-session display theme preference.
type Themes struct {
	store kvstore.Store
}

// NewThemes builds a theme store over the shared key-value store.
func NewThemes(store kvstore.Store) *Themes {
	return &Themes{store: store}
}

// Get returns the session's theme. Missing or corrupted values fall
// back to the system default.
func (t *Themes) Get(ctx context.Context, sessionID string) string {
	theme, ok := t.store.GetString(ctx, sessionID+":"+themeKey)
	if !ok || !domain.IsValidTheme(theme) {
		return domain.ThemeSystem
	}
	return theme
}

// Set persists the session's theme, rejecting unknown values.
func (t *Themes) Set(ctx context.Context, sessionID, theme string) error {
	if !domain.IsValidTheme(theme) {
		return apperrors.InvalidInput("unknown theme: " + theme)
	}
	t.store.SetString(ctx, sessionID+":"+themeKey, theme)
	return nil
}
