// Package app wires together all dependencies and runs the storefront
// service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/RedDotz20/storeapi/internal/cart"
	"github.com/RedDotz20/storeapi/internal/config"
	"github.com/RedDotz20/storeapi/internal/gateway"
	handler "github.com/RedDotz20/storeapi/internal/handler/http"
	"github.com/RedDotz20/storeapi/internal/session"
	"github.com/RedDotz20/storeapi/pkg/health"
	"github.com/RedDotz20/storeapi/pkg/httpclient"
	"github.com/RedDotz20/storeapi/pkg/kvstore"
	"github.com/RedDotz20/storeapi/pkg/middleware"
)

// App holds the wired dependency graph for the storefront service.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	store      kvstore.Store
	redis      *kvstore.Redis
	httpServer *http.Server
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Key-value store backing session and theme state.
	var (
		store kvstore.Store
		rdb   *kvstore.Redis
	)
	switch cfg.KVBackend {
	case "redis":
		redisCfg := kvstore.DefaultRedisConfig()
		redisCfg.Addr = cfg.RedisAddr
		redisCfg.Password = cfg.RedisPassword
		redisCfg.DB = cfg.RedisDB

		var err error
		rdb, err = kvstore.NewRedis(ctx, redisCfg, logger)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		store = rdb
		logger.Info("connected to Redis", slog.String("addr", cfg.RedisAddr), slog.Int("db", cfg.RedisDB))
	default:
		store = kvstore.NewMemory(logger)
		logger.Info("using in-memory key-value store")
	}

	// Upstream HTTP clients. The catalog client sits behind a circuit
	// breaker so a flapping upstream degrades to cached reads instead
	// of piling up retries.
	baseClient := httpclient.New(httpclient.DefaultConfig())
	catalogBreaker := httpclient.NewCircuitBreakerClient(
		baseClient,
		httpclient.DefaultCircuitBreakerConfig("catalog"),
		logger,
	)
	catalogClient := httpclient.NewJSONClient("catalog", cfg.CatalogBaseURL, catalogBreaker)
	authClient := httpclient.NewJSONClient("auth", cfg.AuthBaseURL, baseClient)

	catalog := gateway.NewCachedCatalog(
		gateway.NewHTTPCatalog(catalogClient),
		cfg.CatalogCacheTTL,
		logger,
	)

	var auth gateway.Auth
	switch cfg.AuthBackend {
	case "platzi":
		auth = gateway.NewPlatziAuth(authClient, logger)
	default:
		auth = gateway.NewFakeStoreAuth(authClient, 0)
	}
	logger.Info("auth backend selected", slog.String("backend", cfg.AuthBackend))

	cartService := cart.NewService()
	sessions := session.NewRegistry(store, auth, logger, cfg.SignupDelay)
	themes := session.NewThemes(store)

	// Health checks.
	healthHandler := health.NewHandler()
	if rdb != nil {
		healthHandler.Register("redis", func(ctx context.Context) error {
			return rdb.Ping(ctx)
		})
	}
	healthHandler.Register("catalog", func(ctx context.Context) error {
		_, err := catalog.ListCategories(ctx)
		return err
	})

	router := handler.NewRouter(handler.RouterConfig{
		Catalog:       catalog,
		CartService:   cartService,
		Sessions:      sessions,
		Themes:        themes,
		HealthHandler: healthHandler,
		Logger:        logger,
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Environment:    cfg.Environment,
		},
		PprofCIDRs:   cfg.PprofAllowedCIDRs,
		SuggestLimit: cfg.SuggestLimit,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		redis:      rdb,
		httpServer: httpServer,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server", slog.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close error", slog.String("error", err.Error()))
		}
	}

	a.logger.Info("application shutdown complete")
	return nil
}
