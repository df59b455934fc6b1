package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/unifit/bundle-service/pkg/errors"

	"github.com/unifit/bundle-service/internal/domain"
)

func setupRepo(t *testing.T) (*ConfigRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return NewConfigRepository(client, time.Hour), mr
}

func sampleConfig() *domain.BundleConfiguration {
	b := &domain.Bundle{
		ID:               "bundle-1",
		Handle:           "10-item-professional",
		FreeLogoIncluded: true,
		Items: []domain.BundleItem{
			{ID: "polo-shirts-1", Category: "polo-shirts", CategoryLabel: "Polo Shirt"},
			{ID: "hoodies-1", Category: "hoodies", CategoryLabel: "Hoodie"},
		},
	}
	return domain.NewConfiguration("sess-1", b)
}

func TestConfigRepository_SaveAndGet(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	cfg := sampleConfig()
	cfg.Items[0].ProductID = "p1"
	cfg.Items[0].VariantID = "v1"
	cfg.Items[0].Size = "L"
	cfg.RecalcProgress()

	require.NoError(t, repo.Save(ctx, cfg))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "10-item-professional", got.BundleHandle)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "p1", got.Items[0].ProductID)
	assert.Equal(t, "L", got.Items[0].Size)
	assert.Equal(t, 1, got.CompletedSteps)
}

func TestConfigRepository_GetMissing(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestConfigRepository_SaveSetsTTL(t *testing.T) {
	repo, mr := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleConfig()))

	ttl := mr.TTL(keyPrefix + "sess-1")
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

// The product cache is rehydrated from the catalog; it must not be stored.
func TestConfigRepository_ProductCacheNotPersisted(t *testing.T) {
	repo, mr := setupRepo(t)
	ctx := context.Background()

	cfg := sampleConfig()
	cfg.Products = map[string]domain.Product{"classic-polo": {Handle: "classic-polo"}}
	require.NoError(t, repo.Save(ctx, cfg))

	raw, err := mr.Get(keyPrefix + "sess-1")
	require.NoError(t, err)
	assert.NotContains(t, raw, "classic-polo")
}

func TestConfigRepository_Delete(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sampleConfig()))
	require.NoError(t, repo.Delete(ctx, "sess-1"))

	_, err := repo.Get(ctx, "sess-1")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	// Deleting a missing key is not an error.
	assert.NoError(t, repo.Delete(ctx, "sess-1"))
}

func TestConfigRepository_SaveOverwrites(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	cfg := sampleConfig()
	require.NoError(t, repo.Save(ctx, cfg))

	cfg.Items[1].ProductID = "p2"
	require.NoError(t, repo.Save(ctx, cfg))

	got, err := repo.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "p2", got.Items[1].ProductID)
}
