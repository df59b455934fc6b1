package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/unifit/bundle-service/pkg/errors"
	pkgkafka "github.com/unifit/bundle-service/pkg/kafka"

	"github.com/unifit/bundle-service/internal/catalog"
	"github.com/unifit/bundle-service/internal/domain"
	"github.com/unifit/bundle-service/internal/event"
	"github.com/unifit/bundle-service/internal/filter"
)

// --- Mock document repository ---

type mockDocumentRepo struct {
	mock.Mock
}

func (m *mockDocumentRepo) GetByID(ctx context.Context, id string) (*domain.BundleDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BundleDocument), args.Error(1)
}

func (m *mockDocumentRepo) GetByHandle(ctx context.Context, handle string) (*domain.BundleDocument, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BundleDocument), args.Error(1)
}

func (m *mockDocumentRepo) Upsert(ctx context.Context, doc *domain.BundleDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// --- Mock catalog client ---

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockCatalog) ListProducts(ctx context.Context, page, pageSize int) ([]domain.Product, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockCatalog) ListAllProducts(ctx context.Context) (catalog.ListResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(catalog.ListResult), args.Error(1)
}

// --- Test helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestProducer points at an unreachable broker; publish failures are
// expected to be swallowed by the services.
func newTestProducer() *event.Producer {
	logger := newTestLogger()
	kafkaProducer := pkgkafka.NewProducer(pkgkafka.DefaultProducerConfig([]string{"localhost:9092"}), logger)
	return event.NewProducer(kafkaProducer, logger)
}

func newResolver(docs *mockDocumentRepo, cat *mockCatalog) *ResolverService {
	return NewResolverService(docs, cat, newTestProducer(), newTestLogger())
}

func notFoundOnBoth(docs *mockDocumentRepo, handle string) {
	docs.On("GetByID", mock.Anything, handle).Return(nil, apperrors.ErrNotFound)
	docs.On("GetByHandle", mock.Anything, handle).Return(nil, apperrors.ErrNotFound)
}

// ============================================================================
// Resolve: layer precedence
// ============================================================================

// Curated registry entries win over everything else, so official bundles can
// never be shadowed by documents or catalog products.
func TestResolve_RegistryWins(t *testing.T) {
	docs := new(mockDocumentRepo)
	cat := new(mockCatalog)
	svc := newResolver(docs, cat)

	resolved, err := svc.Resolve(context.Background(), "10-item-professional")
	require.NoError(t, err)

	assert.Equal(t, ResolveSourceRegistry, resolved.Source)
	assert.Len(t, resolved.Bundle.Items, 10)
	assert.InDelta(t, 185.00, resolved.Bundle.BasePrice, 1e-9)

	// Neither fallback layer was consulted.
	docs.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	cat.AssertNotCalled(t, "GetProductByHandle", mock.Anything, mock.Anything)
}

func TestResolve_DocumentByID(t *testing.T) {
	docs := new(mockDocumentRepo)
	cat := new(mockCatalog)
	svc := newResolver(docs, cat)

	doc := &domain.BundleDocument{
		ID:     "doc-7",
		Handle: "custom-bundle",
		Bundle: domain.Bundle{
			ID:     "doc-7",
			Handle: "custom-bundle",
			Name:   "Custom Bundle",
			Items:  []domain.BundleItem{{ID: "s1", Category: "hoodies"}},
		},
	}
	docs.On("GetByID", mock.Anything, "doc-7").Return(doc, nil)

	resolved, err := svc.Resolve(context.Background(), "doc-7")
	require.NoError(t, err)
	assert.Equal(t, ResolveSourceDocument, resolved.Source)
	assert.Equal(t, "Custom Bundle", resolved.Bundle.Name)
	docs.AssertNotCalled(t, "GetByHandle", mock.Anything, mock.Anything)
}

func TestResolve_DocumentByHandleAfterIDMiss(t *testing.T) {
	docs := new(mockDocumentRepo)
	cat := new(mockCatalog)
	svc := newResolver(docs, cat)

	doc := &domain.BundleDocument{
		ID:     "doc-9",
		Handle: "spring-promo-bundle",
		Bundle: domain.Bundle{
			Items: []domain.BundleItem{{ID: "s1", Category: "t-shirts"}},
		},
	}
	docs.On("GetByID", mock.Anything, "spring-promo-bundle").Return(nil, apperrors.ErrNotFound)
	docs.On("GetByHandle", mock.Anything, "spring-promo-bundle").Return(doc, nil)

	resolved, err := svc.Resolve(context.Background(), "spring-promo-bundle")
	require.NoError(t, err)
	assert.Equal(t, ResolveSourceDocument, resolved.Source)
	// The document's handle backfills the bundle when the payload omits it.
	assert.Equal(t, "spring-promo-bundle", resolved.Bundle.Handle)
}

// A persisted document with no slots would resolve to an unconfigurable
// bundle; it is skipped and resolution continues down the chain.
func TestResolve_EmptyDocumentFallsThrough(t *testing.T) {
	docs := new(mockDocumentRepo)
	cat := new(mockCatalog)
	svc := newResolver(docs, cat)

	empty := &domain.BundleDocument{ID: "broken", Handle: "broken", Bundle: domain.Bundle{}}
	docs.On("GetByID", mock.Anything, "broken").Return(empty, nil)
	docs.On("GetByHandle", mock.Anything, "broken").Return(nil, apperrors.ErrNotFound)
	cat.On("GetProductByHandle", mock.Anything, "broken").Return(&domain.Product{
		ID:     "p-broken",
		Handle: "broken",
		Title:  "Essential 5 Pack Polo Bundle",
	}, nil)

	resolved, err := svc.Resolve(context.Background(), "broken")
	require.NoError(t, err)
	assert.Equal(t, ResolveSourceDerived, resolved.Source)
	assert.Len(t, resolved.Bundle.Items, 5)
}

// An empty record under the id is treated as not found for that lookup only;
// the handle-field lookup still gets its turn before catalog derivation.
func TestResolve_EmptyDocumentByIDStillTriesHandle(t *testing.T) {
	docs := new(mockDocumentRepo)
	cat := new(mockCatalog)
	svc := newResolver(docs, cat)

	empty := &domain.BundleDocument{ID: "dual", Handle: "dual", Bundle: domain.Bundle{}}
	good := &domain.BundleDocument{
		ID:     "doc-12",
		Handle: "dual",
		Bundle: domain.Bundle{
			Items: []domain.BundleItem{{ID: "s1", Category: "fleeces"}},
		},
	}
	docs.On("GetByID", mock.Anything, "dual").Return(empty, nil)
	docs.On("GetByHandle", mock.Anything, "dual").Return(good, nil)

	resolved, err := svc.Resolve(context.Background(), "dual")
	require.NoError(t, err)
	assert.Equal(t, ResolveSourceDocument, resolved.Source)
	assert.Equal(t, "dual", resolved.Bundle.Handle)
	cat.AssertNotCalled(t, "GetProductByHandle", mock.Anything, mock.Anything)
}

// ============================================================================
// Resolve: catalog derivation
// ============================================================================

func TestResolve_DerivedFromCatalogTitle(t *testing.T) {
	docs := new(mockDocumentRepo)
	cat := new(mockCatalog)
	svc := newResolver(docs, cat)

	notFoundOnBoth(docs, "essential-5-pack-polos")
	cat.On("GetProductByHandle", mock.Anything, "essential-5-pack-polos").Return(&domain.Product{
		ID:     "p-55",
		Handle: "essential-5-pack-polos",
		Title:  "Essential 5 Pack Polo Bundle",
		Variants: []domain.ProductVariant{
			{ID: "v1", Price: "99.00"},
		},
	}, nil)

	resolved, err := svc.Resolve(context.Background(), "essential-5-pack-polos")
	require.NoError(t, err)

	assert.Equal(t, ResolveSourceDerived, resolved.Source)
	b := resolved.Bundle
	require.Len(t, b.Items, 5)
	assert.Equal(t, "polo-shirts", b.Items[0].Category)
	assert.Equal(t, "Polo Shirt", b.Items[0].CategoryLabel)
	assert.InDelta(t, 99.00, b.BasePrice, 1e-9)
	assert.InDelta(t, 99.00, b.TotalPrice, 1e-9, "derived bundles price from the first variant")
	assert.Equal(t, 5, b.MaxItems)
	assert.True(t, b.FreeLogoIncluded)

	// Slot IDs are distinct within the derived bundle.
	assert.NotEqual(t, b.Items[0].ID, b.Items[1].ID)
}

func TestResolve_UnknownHandleIsNotFound(t *testing.T) {
	docs := new(mockDocumentRepo)
	cat := new(mockCatalog)
	svc := newResolver(docs, cat)

	notFoundOnBoth(docs, "no-such-bundle")
	cat.On("GetProductByHandle", mock.Anything, "no-such-bundle").Return(nil, apperrors.ErrNotFound)

	_, err := svc.Resolve(context.Background(), "no-such-bundle")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestResolve_EmptyHandle(t *testing.T) {
	svc := newResolver(new(mockDocumentRepo), new(mockCatalog))

	_, err := svc.Resolve(context.Background(), "")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestResolve_DocumentStoreErrorPropagates(t *testing.T) {
	docs := new(mockDocumentRepo)
	cat := new(mockCatalog)
	svc := newResolver(docs, cat)

	docs.On("GetByID", mock.Anything, "any-bundle").Return(nil, errors.New("connection refused"))

	_, err := svc.Resolve(context.Background(), "any-bundle")
	assert.ErrorContains(t, err, "connection refused")
	cat.AssertNotCalled(t, "GetProductByHandle", mock.Anything, mock.Anything)
}

// ============================================================================
// EligibleProducts
// ============================================================================

func TestEligibleProducts_FiltersByCategory(t *testing.T) {
	docs := new(mockDocumentRepo)
	cat := new(mockCatalog)
	svc := newResolver(docs, cat)

	cat.On("ListAllProducts", mock.Anything).Return(catalog.ListResult{
		Products: []domain.Product{
			{Handle: "p1", ProductType: "Polo"},
			{Handle: "h1", ProductType: "Sweatshirt"},
		},
	}, nil)

	result, partial, err := svc.EligibleProducts(context.Background(), "hoodies", nil)
	require.NoError(t, err)
	assert.False(t, partial)
	assert.Equal(t, filter.MatchTypeTable, result.Match)
	require.Len(t, result.Products, 1)
	assert.Equal(t, "h1", result.Products[0].Handle)
}

func TestEligibleProducts_PropagatesPartialFlag(t *testing.T) {
	docs := new(mockDocumentRepo)
	cat := new(mockCatalog)
	svc := newResolver(docs, cat)

	cat.On("ListAllProducts", mock.Anything).Return(catalog.ListResult{
		Products: []domain.Product{{Handle: "only", ProductType: "Mug"}},
		Partial:  true,
	}, nil)

	result, partial, err := svc.EligibleProducts(context.Background(), "fleeces", nil)
	require.NoError(t, err)
	assert.True(t, partial)
	assert.Equal(t, filter.MatchFallback, result.Match)
	assert.Len(t, result.Products, 1)
}
