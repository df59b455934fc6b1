package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	apperrors "github.com/unifit/bundle-service/pkg/errors"

	"github.com/unifit/bundle-service/internal/catalog"
	"github.com/unifit/bundle-service/internal/derive"
	"github.com/unifit/bundle-service/internal/domain"
	"github.com/unifit/bundle-service/internal/event"
	"github.com/unifit/bundle-service/internal/filter"
	"github.com/unifit/bundle-service/internal/registry"
	"github.com/unifit/bundle-service/internal/repository"
)

// Resolution source labels, carried on bundle.resolved events and responses.
const (
	ResolveSourceRegistry = "registry"
	ResolveSourceDocument = "document"
	ResolveSourceDerived  = "derived"
)

// CatalogClient is the subset of the catalog API the services depend on.
type CatalogClient interface {
	GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error)
	ListProducts(ctx context.Context, page, pageSize int) ([]domain.Product, error)
	ListAllProducts(ctx context.Context) (catalog.ListResult, error)
}

// ResolvedBundle pairs a resolved bundle with the layer that produced it.
type ResolvedBundle struct {
	Bundle *domain.Bundle
	Source string
}

// ResolverService turns a storefront handle into a bundle definition. Layers
// are tried in a fixed order: the curated registry, then persisted bundle
// documents (by id, then by handle), then derivation from the catalog
// product's title. An unknown handle is a NotFound result, never a panic.
type ResolverService struct {
	docs     repository.BundleDocumentRepository
	catalog  CatalogClient
	producer *event.Producer
	logger   *slog.Logger
}

// NewResolverService creates a new resolver service.
func NewResolverService(docs repository.BundleDocumentRepository, catalogClient CatalogClient, producer *event.Producer, logger *slog.Logger) *ResolverService {
	return &ResolverService{
		docs:     docs,
		catalog:  catalogClient,
		producer: producer,
		logger:   logger,
	}
}

// Resolve finds the bundle definition for a handle.
func (s *ResolverService) Resolve(ctx context.Context, handle string) (*ResolvedBundle, error) {
	if handle == "" {
		return nil, apperrors.InvalidInput("bundle handle is required")
	}

	if bundle, ok := registry.Lookup(handle); ok {
		return s.resolved(ctx, bundle, ResolveSourceRegistry), nil
	}

	bundle, err := s.fromDocuments(ctx, handle)
	if err != nil {
		return nil, err
	}
	if bundle != nil {
		return s.resolved(ctx, bundle, ResolveSourceDocument), nil
	}

	bundle, err = s.fromCatalog(ctx, handle)
	if err != nil {
		return nil, err
	}

	return s.resolved(ctx, bundle, ResolveSourceDerived), nil
}

// fromDocuments checks the persisted document store, by id first and then by
// handle field. A document with no slots counts as not found for its lookup:
// resolving one would produce an unconfigurable bundle, so the next lookup
// (and then the next layer) still gets its turn.
func (s *ResolverService) fromDocuments(ctx context.Context, handle string) (*domain.Bundle, error) {
	doc, err := s.docs.GetByID(ctx, handle)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("load bundle document by id: %w", err)
		}
		doc = nil
	}
	if doc != nil && len(doc.Bundle.Items) == 0 {
		s.logger.WarnContext(ctx, "bundle document has no slots, skipping",
			slog.String("document_id", doc.ID),
			slog.String("handle", handle),
		)
		doc = nil
	}

	if doc == nil {
		doc, err = s.docs.GetByHandle(ctx, handle)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, nil
			}
			return nil, fmt.Errorf("load bundle document by handle: %w", err)
		}
		if len(doc.Bundle.Items) == 0 {
			s.logger.WarnContext(ctx, "bundle document has no slots, skipping",
				slog.String("document_id", doc.ID),
				slog.String("handle", handle),
			)
			return nil, nil
		}
	}

	bundle := doc.Bundle
	if bundle.Handle == "" {
		bundle.Handle = doc.Handle
	}
	return &bundle, nil
}

// fromCatalog derives a bundle definition from the catalog product's title.
func (s *ResolverService) fromCatalog(ctx context.Context, handle string) (*domain.Bundle, error) {
	product, err := s.catalog.GetProductByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("bundle", handle)
		}
		return nil, fmt.Errorf("resolve bundle from catalog: %w", err)
	}

	count := derive.ParseItemCount(product.Title)
	category := derive.ClassifyCategory(product.Title)

	if count.Confidence == derive.ConfidenceLow {
		s.logger.WarnContext(ctx, "low-confidence bundle derivation from product title",
			slog.String("handle", handle),
			slog.String("title", product.Title),
			slog.Int("items", count.Items),
			slog.String("category", category.Key),
		)
	}

	items := make([]domain.BundleItem, count.Items)
	for i := range items {
		items[i] = domain.BundleItem{
			ID:            category.Key + "-" + strconv.Itoa(i+1),
			Category:      category.Key,
			CategoryLabel: category.Label,
		}
	}

	price := product.FirstVariantPrice()
	return &domain.Bundle{
		ID:               product.ID,
		Handle:           product.Handle,
		Name:             product.Title,
		BasePrice:        price,
		TotalPrice:       price,
		FreeLogoIncluded: true,
		MaxItems:         count.Items,
		Items:            items,
	}, nil
}

// resolved wraps the bundle with its source and publishes the analytics event.
// Publish failures are logged, never surfaced: analytics must not break
// resolution.
func (s *ResolverService) resolved(ctx context.Context, bundle *domain.Bundle, source string) *ResolvedBundle {
	if err := s.producer.PublishBundleResolved(ctx, bundle, source); err != nil {
		s.logger.WarnContext(ctx, "failed to publish bundle.resolved event",
			slog.String("handle", bundle.Handle),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "bundle resolved",
		slog.String("handle", bundle.Handle),
		slog.String("source", source),
		slog.Int("items", len(bundle.Items)),
	)

	return &ResolvedBundle{Bundle: bundle, Source: source}
}

// EligibleProducts lists the catalog products eligible for a slot category.
// The partial flag propagates catalog degradation so the UI can note an
// incomplete picker; the fallback flag is exposed through Result.Match.
func (s *ResolverService) EligibleProducts(ctx context.Context, category string, allowList []string) (filter.Result, bool, error) {
	listing, err := s.catalog.ListAllProducts(ctx)
	if err != nil {
		return filter.Result{}, false, fmt.Errorf("list catalog products: %w", err)
	}

	result := filter.EligibleProducts(category, listing.Products, allowList)
	if result.Match == filter.MatchFallback {
		s.logger.WarnContext(ctx, "category filter fell back to full catalog",
			slog.String("category", category),
			slog.Int("products", len(result.Products)),
		)
	}

	return result, listing.Partial, nil
}
