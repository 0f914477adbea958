package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/RedDotz20/storeapi/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Remote catalog
	CatalogBaseURL  string        `env:"CATALOG_BASE_URL" envDefault:"https://fakestoreapi.com"`
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`

	// Auth backend
	AuthBackend string `env:"AUTH_BACKEND" envDefault:"fakestore"`
	AuthBaseURL string `env:"AUTH_BASE_URL" envDefault:"https://fakestoreapi.com"`

	// Key-value store
	KVBackend     string `env:"KV_BACKEND" envDefault:"memory"`
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Query pipeline
	SearchDebounce time.Duration `env:"SEARCH_DEBOUNCE" envDefault:"300ms"`
	SignupDelay    time.Duration `env:"SIGNUP_DELAY" envDefault:"800ms"`
	SuggestLimit   int           `env:"SUGGEST_LIMIT" envDefault:"5"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Pprof debug endpoints, restricted to these CIDRs.
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32" envSeparator:","`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}
	switch cfg.AuthBackend {
	case "fakestore", "platzi":
	default:
		return nil, fmt.Errorf("invalid auth backend: %q", cfg.AuthBackend)
	}
	switch cfg.KVBackend {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("invalid kv backend: %q", cfg.KVBackend)
	}
	return cfg, nil
}
