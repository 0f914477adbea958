package domain

import (
	"time"
)

// User represents an authenticated storefront user, mapped from whichever
// backend profile shape the auth gateway speaks.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginCredentials carries a login attempt. Identifier is a username or an
// email address depending on the auth backend.
type LoginCredentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// SignupCredentials carries a registration attempt.
type SignupCredentials struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Theme preference values.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// IsValidTheme checks whether the given string is a valid theme preference.
func IsValidTheme(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark || theme == ThemeSystem
}
