package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/unifit/bundle-service/pkg/health"
	"github.com/unifit/bundle-service/pkg/middleware"

	"github.com/unifit/bundle-service/internal/service"
)

// NewRouter creates a chi router with all bundle service routes registered.
func NewRouter(
	resolver *service.ResolverService,
	configService *service.ConfigService,
	uploadService *service.UploadService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("bundle"))
	r.Use(middleware.Tracing("bundle"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	bundleHandler := NewBundleHandler(resolver, logger)
	configHandler := NewConfigHandler(configService, logger)
	uploadHandler := NewUploadHandler(uploadService, logger)

	r.Route("/api/v1/bundles", func(r chi.Router) {
		r.Get("/{handle}", bundleHandler.Resolve)
		r.Get("/{handle}/products", bundleHandler.Products)
	})

	r.Route("/api/v1/config", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(SessionFromHeader)

		r.Get("/", configHandler.Get)
		r.Delete("/", configHandler.Reset)
		r.Post("/{handle}", configHandler.Initialize)

		r.Post("/items", configHandler.AddItem)
		r.Patch("/items/{itemId}", configHandler.UpdateItem)
		r.Delete("/items/{itemId}", configHandler.RemoveItem)

		r.Post("/branding/{category}", configHandler.ApplyBranding)
		r.Post("/apply-first-style", configHandler.ApplyFirstStyle)
		r.Post("/validate", configHandler.Validate)
	})

	r.Route("/api/v1/logos", func(r chi.Router) {
		r.Use(SessionFromHeader)
		r.Post("/", uploadHandler.Upload)
	})

	return r
}
