package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/unifit/bundle-service/pkg/errors"
	"github.com/unifit/bundle-service/pkg/httputil"

	"github.com/unifit/bundle-service/internal/filter"
	"github.com/unifit/bundle-service/internal/service"
)

// BundleHandler handles HTTP requests for bundle resolution endpoints.
type BundleHandler struct {
	resolver *service.ResolverService
	logger   *slog.Logger
}

// NewBundleHandler creates a new bundle HTTP handler.
func NewBundleHandler(resolver *service.ResolverService, logger *slog.Logger) *BundleHandler {
	return &BundleHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// resolveResponse is the payload for a resolved bundle.
type resolveResponse struct {
	Bundle any    `json:"bundle"`
	Source string `json:"source"`
}

// productsResponse is the payload for a slot's eligible product listing.
// Fallback tells the UI the category matched nothing and the whole catalog
// was returned; Partial tells it the catalog listing itself was incomplete.
type productsResponse struct {
	Products any  `json:"products"`
	Fallback bool `json:"fallback"`
	Partial  bool `json:"partial"`
}

// Resolve handles GET /api/v1/bundles/{handle}
func (h *BundleHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")

	resolved, err := h.resolver.Resolve(r.Context(), handle)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: resolveResponse{
		Bundle: resolved.Bundle,
		Source: resolved.Source,
	}})
}

// Products handles GET /api/v1/bundles/{handle}/products?category=
func (h *BundleHandler) Products(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		httputil.WriteError(w, r, apperrors.InvalidInput("category query parameter is required"), h.logger)
		return
	}

	result, partial, err := h.resolver.EligibleProducts(r.Context(), category, nil)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: productsResponse{
		Products: result.Products,
		Fallback: result.Match == filter.MatchFallback,
		Partial:  partial,
	}})
}
