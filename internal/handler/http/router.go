package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RedDotz20/storeapi/internal/cart"
	"github.com/RedDotz20/storeapi/internal/gateway"
	"github.com/RedDotz20/storeapi/internal/session"
	"github.com/RedDotz20/storeapi/pkg/health"
	"github.com/RedDotz20/storeapi/pkg/middleware"
)

// RouterConfig bundles the dependencies for the storefront router.
type RouterConfig struct {
	Catalog       *gateway.CachedCatalog
	CartService   *cart.Service
	Sessions      *session.Registry
	Themes        *session.Themes
	HealthHandler *health.Handler
	Logger        *slog.Logger
	CORS          middleware.CORSConfig
	PprofCIDRs    []string
	SuggestLimit  int
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.RequestLogger(cfg.Logger))

	// Health check endpoints
	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, cfg.Logger)

	productHandler := NewProductHandler(cfg.Catalog, cfg.SuggestLimit, cfg.Logger)
	cartHandler := NewCartHandler(cfg.CartService, cfg.Logger)
	authHandler := NewAuthHandler(cfg.Sessions, cfg.Logger)
	themeHandler := NewThemeHandler(cfg.Themes, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionID)
		r.Use(ContentTypeJSON)

		// Catalog reads are safe to cache briefly at the edge.
		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(60))

			r.Get("/products", productHandler.List)
			r.Get("/products/suggest", productHandler.Suggest)
			r.Get("/products/{id}", productHandler.Get)
			r.Get("/categories", productHandler.Categories)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)

			r.Post("/items", cartHandler.AddItem)
			r.Patch("/items/{id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{id}", cartHandler.RemoveItem)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Get("/session", authHandler.Session)
			r.Post("/login", authHandler.Login)
			r.Post("/signup", authHandler.Signup)
			r.Post("/logout", authHandler.Logout)
			r.Post("/clear-error", authHandler.ClearError)
		})

		r.Get("/theme", themeHandler.Get)
		r.Put("/theme", themeHandler.Set)
	})

	return r
}
