package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/unifit/bundle-service/pkg/errors"

	"github.com/unifit/bundle-service/internal/domain"
	"github.com/unifit/bundle-service/internal/event"
	"github.com/unifit/bundle-service/internal/repository"
)

// extraSlotPrefix marks slots added on top of the resolved bundle. Only these
// can be removed; base slots are cleared, never deleted.
const extraSlotPrefix = "extra-"

// PricingPolicy carries the configurable pricing knobs.
type PricingPolicy struct {
	LogoUnitPrice float64
	VATRate       float64
}

// DefaultPricingPolicy returns the reference pricing constants.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		LogoUnitPrice: domain.DefaultLogoUnitPrice,
		VATRate:       domain.DefaultVATRate,
	}
}

// UpdateItemInput holds a partial slot update. Nil fields are left untouched;
// changing the product resets the dependent variant fields.
type UpdateItemInput struct {
	ProductHandle *string                   `json:"product_handle"`
	VariantID     *string                   `json:"variant_id"`
	Size          *string                   `json:"size"`
	Color         *string                   `json:"color"`
	Logo          *domain.LogoCustomization `json:"logo_customization"`
}

// ConfigService implements the business logic for session bundle
// configurations: one live configuration per session, persisted on every
// mutation.
type ConfigService struct {
	repo     repository.ConfigRepository
	resolver *ResolverService
	catalog  CatalogClient
	producer *event.Producer
	logger   *slog.Logger
	pricing  PricingPolicy
}

// NewConfigService creates a new configuration service.
func NewConfigService(repo repository.ConfigRepository, resolver *ResolverService, catalogClient CatalogClient, producer *event.Producer, logger *slog.Logger, pricing PricingPolicy) *ConfigService {
	return &ConfigService{
		repo:     repo,
		resolver: resolver,
		catalog:  catalogClient,
		producer: producer,
		logger:   logger,
		pricing:  pricing,
	}
}

// Initialize starts (or resumes) the session's configuration for a bundle
// handle. Resuming only happens for the same handle; initializing a different
// bundle discards the previous state.
func (s *ConfigService) Initialize(ctx context.Context, sessionID, handle string) (*domain.BundleConfiguration, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	resolved, err := s.resolver.Resolve(ctx, handle)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.Get(ctx, sessionID)
	if err == nil && strings.EqualFold(existing.BundleHandle, resolved.Bundle.Handle) {
		return existing, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("load existing configuration: %w", err)
	}

	cfg := domain.NewConfiguration(sessionID, resolved.Bundle)
	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save configuration: %w", err)
	}

	s.logger.InfoContext(ctx, "configuration initialized",
		slog.String("session_id", sessionID),
		slog.String("handle", resolved.Bundle.Handle),
		slog.Int("slots", len(cfg.Items)),
	)

	return cfg, nil
}

// Get returns the session's current configuration.
func (s *ConfigService) Get(ctx context.Context, sessionID string) (*domain.BundleConfiguration, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	return s.repo.Get(ctx, sessionID)
}

// Quote prices the configuration under the service's pricing policy.
func (s *ConfigService) Quote(cfg *domain.BundleConfiguration) domain.Quote {
	return domain.PriceQuote(cfg.Items, cfg.FreeLogoIncluded, s.pricing.LogoUnitPrice, s.pricing.VATRate)
}

// Validate runs the checkout-readiness validation over the session's slots.
func (s *ConfigService) Validate(ctx context.Context, sessionID string) (domain.ValidationResult, error) {
	cfg, err := s.Get(ctx, sessionID)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	result := domain.ValidateItems(cfg.Items)
	if result.IsValid {
		if err := s.producer.PublishConfigCompleted(ctx, cfg, s.Quote(cfg)); err != nil {
			s.logger.WarnContext(ctx, "failed to publish bundle.config.completed event",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
	}
	return result, nil
}

// UpdateItem applies a partial update to a single slot. Other slots are never
// touched.
func (s *ConfigService) UpdateItem(ctx context.Context, sessionID, itemID string, input UpdateItemInput) (*domain.BundleConfiguration, error) {
	cfg, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cfg.FindItemIndex(itemID)
	if idx == -1 {
		return nil, apperrors.NotFound("item", itemID)
	}
	item := &cfg.Items[idx]

	if input.Logo != nil && !domain.IsValidLogoType(input.Logo.Type) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown logo type %q", input.Logo.Type))
	}

	if input.ProductHandle != nil && *input.ProductHandle != item.ProductHandle {
		if err := s.applyProduct(ctx, item, *input.ProductHandle); err != nil {
			return nil, err
		}
	}

	if input.VariantID != nil && *input.VariantID != item.VariantID {
		if err := s.applyVariant(ctx, item, *input.VariantID); err != nil {
			return nil, err
		}
	}

	if input.Size != nil {
		item.Size = *input.Size
	}
	if input.Color != nil {
		item.Color = *input.Color
	}
	if input.Logo != nil {
		logo := *input.Logo
		item.Logo = &logo
	}

	return s.persist(ctx, cfg)
}

// AddItem appends an extra slot of the given category, bounded by the
// bundle's extra-item allowance.
func (s *ConfigService) AddItem(ctx context.Context, sessionID, category, label string) (*domain.BundleConfiguration, error) {
	if category == "" {
		return nil, apperrors.InvalidInput("category is required")
	}

	cfg, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	extras := 0
	for i := range cfg.Items {
		if strings.HasPrefix(cfg.Items[i].ID, extraSlotPrefix) {
			extras++
		}
	}
	if cfg.MaxExtraItems > 0 && extras >= cfg.MaxExtraItems {
		return nil, apperrors.Conflict(fmt.Sprintf("no more than %d extra items can be added", cfg.MaxExtraItems))
	}

	if label == "" {
		label = category
	}
	cfg.Items = append(cfg.Items, domain.BundleItem{
		ID:            extraSlotPrefix + category + "-" + uuid.New().String(),
		Category:      category,
		CategoryLabel: label,
	})

	return s.persist(ctx, cfg)
}

// RemoveItem deletes an extra slot. Base bundle slots are part of the package
// definition and cannot be removed.
func (s *ConfigService) RemoveItem(ctx context.Context, sessionID, itemID string) (*domain.BundleConfiguration, error) {
	cfg, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := cfg.FindItemIndex(itemID)
	if idx == -1 {
		return nil, apperrors.NotFound("item", itemID)
	}
	if !strings.HasPrefix(itemID, extraSlotPrefix) {
		return nil, apperrors.InvalidInput("base bundle slots cannot be removed")
	}

	cfg.Items = append(cfg.Items[:idx], cfg.Items[idx+1:]...)
	return s.persist(ctx, cfg)
}

// ApplyBrandingToCategory copies one branding choice onto every slot of the
// category. Each slot gets its own copy so later per-slot edits stay isolated.
func (s *ConfigService) ApplyBrandingToCategory(ctx context.Context, sessionID, category string, logo *domain.LogoCustomization) (*domain.BundleConfiguration, error) {
	if logo == nil || !domain.IsValidLogoType(logo.Type) {
		return nil, apperrors.InvalidInput("a valid logo customization is required")
	}

	cfg, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	applied := 0
	for i := range cfg.Items {
		if !strings.EqualFold(cfg.Items[i].Category, category) {
			continue
		}
		copied := *logo
		copied.Placements = append([]string(nil), logo.Placements...)
		cfg.Items[i].Logo = &copied
		applied++
	}
	if applied == 0 {
		return nil, apperrors.NotFound("category", category)
	}

	return s.persist(ctx, cfg)
}

// ApplyFirstSlotStyleToAll copies the first configured slot's product,
// variant, size, color, and branding choice into every other slot. It is a
// convenience shortcut, not a validation step: the copied selection may not
// suit every slot's category and validation will still flag whatever is wrong.
func (s *ConfigService) ApplyFirstSlotStyleToAll(ctx context.Context, sessionID string) (*domain.BundleConfiguration, error) {
	cfg, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var src *domain.BundleItem
	for i := range cfg.Items {
		if cfg.Items[i].IsConfigured() {
			src = &cfg.Items[i]
			break
		}
	}
	if src == nil {
		return nil, apperrors.InvalidInput("configure at least one item first")
	}

	for i := range cfg.Items {
		item := &cfg.Items[i]
		if item.ID == src.ID {
			continue
		}

		item.ProductID = src.ProductID
		item.ProductHandle = src.ProductHandle
		item.ProductTitle = src.ProductTitle
		item.ProductImage = src.ProductImage
		item.ProductSKU = src.ProductSKU
		item.VariantID = src.VariantID
		item.Size = src.Size
		item.Color = src.Color
		item.Price = src.Price

		if src.Logo != nil {
			copied := *src.Logo
			copied.Placements = append([]string(nil), src.Logo.Placements...)
			item.Logo = &copied
		}
	}

	return s.persist(ctx, cfg)
}

// Reset discards the session's configuration.
func (s *ConfigService) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return apperrors.InvalidInput("session id is required")
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("reset configuration: %w", err)
	}

	s.logger.InfoContext(ctx, "configuration reset", slog.String("session_id", sessionID))
	return nil
}

// applyProduct fills the slot from the chosen catalog product and resets the
// variant-dependent fields.
func (s *ConfigService) applyProduct(ctx context.Context, item *domain.BundleItem, handle string) error {
	product, err := s.catalog.GetProductByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.InvalidInput(fmt.Sprintf("product %s does not exist", handle))
		}
		return fmt.Errorf("fetch product for slot: %w", err)
	}

	item.ProductID = product.ID
	item.ProductHandle = product.Handle
	item.ProductTitle = product.Title
	item.ProductImage = product.FirstImage()
	item.Price = product.FirstVariantPrice()
	item.VariantID = ""
	item.ProductSKU = ""
	item.Size = ""
	item.Color = ""

	return nil
}

// applyVariant fills the slot's variant-dependent fields, deriving size and
// color from the variant options.
func (s *ConfigService) applyVariant(ctx context.Context, item *domain.BundleItem, variantID string) error {
	if item.ProductHandle == "" {
		return apperrors.InvalidInput("select a product before choosing a variant")
	}

	product, err := s.catalog.GetProductByHandle(ctx, item.ProductHandle)
	if err != nil {
		return fmt.Errorf("fetch product for variant: %w", err)
	}

	variant := product.VariantByID(variantID)
	if variant == nil {
		return apperrors.InvalidInput(fmt.Sprintf("variant %s does not belong to product %s", variantID, item.ProductHandle))
	}

	item.VariantID = variant.ID
	item.ProductSKU = variant.SKU
	item.Price = variant.PriceValue()
	if variant.Option1 != "" {
		item.Size = variant.Option1
	}
	if variant.Option2 != "" {
		item.Color = variant.Option2
	}

	return nil
}

// persist recalculates progress, saves, and publishes the update event.
func (s *ConfigService) persist(ctx context.Context, cfg *domain.BundleConfiguration) (*domain.BundleConfiguration, error) {
	cfg.RecalcProgress()
	cfg.UpdatedAt = time.Now().UTC()

	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, fmt.Errorf("save configuration: %w", err)
	}

	if err := s.producer.PublishConfigUpdated(ctx, cfg, s.Quote(cfg).Total); err != nil {
		s.logger.WarnContext(ctx, "failed to publish bundle.config.updated event",
			slog.String("session_id", cfg.SessionID),
			slog.String("error", err.Error()),
		)
	}

	return cfg, nil
}
