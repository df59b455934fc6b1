package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/unifit/bundle-service/pkg/errors"
	"github.com/unifit/bundle-service/pkg/httputil"
	"github.com/unifit/bundle-service/pkg/validator"

	"github.com/unifit/bundle-service/internal/domain"
	"github.com/unifit/bundle-service/internal/service"
)

// ConfigHandler handles HTTP requests for session configuration endpoints.
type ConfigHandler struct {
	service *service.ConfigService
	logger  *slog.Logger
}

// NewConfigHandler creates a new configuration HTTP handler.
func NewConfigHandler(svc *service.ConfigService, logger *slog.Logger) *ConfigHandler {
	return &ConfigHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// UpdateItemRequest is the JSON body for a partial slot update.
type UpdateItemRequest struct {
	ProductHandle *string                   `json:"product_handle"`
	VariantID     *string                   `json:"variant_id"`
	Size          *string                   `json:"size"`
	Color         *string                   `json:"color"`
	Logo          *domain.LogoCustomization `json:"logo_customization"`
}

// AddItemRequest is the JSON body for appending an extra slot.
type AddItemRequest struct {
	Category string `json:"category" validate:"required"`
	Label    string `json:"label"`
}

// --- Response payloads ---

// configResponse pairs the configuration with its live price quote.
type configResponse struct {
	Configuration *domain.BundleConfiguration `json:"configuration"`
	Quote         domain.Quote                `json:"quote"`
}

// --- Handlers ---

// Initialize handles POST /api/v1/config/{handle}
func (h *ConfigHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	handle := chi.URLParam(r, "handle")

	cfg, err := h.service.Initialize(r.Context(), sessionID, handle)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeConfig(w, http.StatusCreated, cfg)
}

// Get handles GET /api/v1/config
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	cfg, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeConfig(w, http.StatusOK, cfg)
}

// UpdateItem handles PATCH /api/v1/config/items/{itemId}
func (h *ConfigHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	cfg, err := h.service.UpdateItem(r.Context(), sessionID, itemID, service.UpdateItemInput{
		ProductHandle: req.ProductHandle,
		VariantID:     req.VariantID,
		Size:          req.Size,
		Color:         req.Color,
		Logo:          req.Logo,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeConfig(w, http.StatusOK, cfg)
}

// AddItem handles POST /api/v1/config/items
func (h *ConfigHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}
	if err := validator.Validate(req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	cfg, err := h.service.AddItem(r.Context(), sessionID, req.Category, req.Label)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeConfig(w, http.StatusOK, cfg)
}

// RemoveItem handles DELETE /api/v1/config/items/{itemId}
func (h *ConfigHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	itemID := chi.URLParam(r, "itemId")

	cfg, err := h.service.RemoveItem(r.Context(), sessionID, itemID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeConfig(w, http.StatusOK, cfg)
}

// ApplyBranding handles POST /api/v1/config/branding/{category}
func (h *ConfigHandler) ApplyBranding(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())
	category := chi.URLParam(r, "category")

	var logo domain.LogoCustomization
	if err := json.NewDecoder(r.Body).Decode(&logo); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("invalid request body: "+err.Error()), h.logger)
		return
	}

	cfg, err := h.service.ApplyBrandingToCategory(r.Context(), sessionID, category, &logo)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeConfig(w, http.StatusOK, cfg)
}

// ApplyFirstStyle handles POST /api/v1/config/apply-first-style
func (h *ConfigHandler) ApplyFirstStyle(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	cfg, err := h.service.ApplyFirstSlotStyleToAll(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.writeConfig(w, http.StatusOK, cfg)
}

// Validate handles POST /api/v1/config/validate
func (h *ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	result, err := h.service.Validate(r.Context(), sessionID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// Reset handles DELETE /api/v1/config
func (h *ConfigHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := sessionFromContext(r.Context())

	if err := h.service.Reset(r.Context(), sessionID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "reset"}})
}

func (h *ConfigHandler) writeConfig(w http.ResponseWriter, status int, cfg *domain.BundleConfiguration) {
	httputil.WriteJSON(w, status, httputil.Response{Data: configResponse{
		Configuration: cfg,
		Quote:         h.service.Quote(cfg),
	}})
}
