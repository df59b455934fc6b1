package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBundle() *Bundle {
	return &Bundle{
		ID:               "bundle-1",
		Handle:           "10-item-professional",
		Name:             "10 Item Professional Bundle",
		BasePrice:        185.00,
		FreeLogoIncluded: true,
		MaxItems:         2,
		Items: []BundleItem{
			{ID: "slot-1", Category: "polo-shirts", CategoryLabel: "Polo Shirt"},
			{ID: "slot-2", Category: "hoodies", CategoryLabel: "Hoodie"},
		},
	}
}

func TestNewConfiguration_CopiesBundleSlots(t *testing.T) {
	b := testBundle()
	cfg := NewConfiguration("sess-1", b)

	assert.Equal(t, "sess-1", cfg.SessionID)
	assert.Equal(t, "bundle-1", cfg.BundleID)
	assert.Equal(t, "10-item-professional", cfg.BundleHandle)
	assert.True(t, cfg.FreeLogoIncluded)
	assert.Equal(t, DefaultMaxExtraItems, cfg.MaxExtraItems)
	require.Len(t, cfg.Items, 2)
	assert.Equal(t, 2, cfg.TotalSteps)
	assert.Equal(t, 0, cfg.CompletedSteps)
	assert.False(t, cfg.CreatedAt.IsZero())

	// The configuration owns its slot copies.
	cfg.Items[0].ProductID = "p1"
	assert.Empty(t, b.Items[0].ProductID)
}

func TestFindItemIndex(t *testing.T) {
	cfg := NewConfiguration("sess-1", testBundle())

	assert.Equal(t, 1, cfg.FindItemIndex("slot-2"))
	assert.Equal(t, -1, cfg.FindItemIndex("slot-9"))
}

func TestRecalcProgress_CountsConfiguredSlots(t *testing.T) {
	cfg := NewConfiguration("sess-1", testBundle())

	cfg.Items[0].ProductID = "p1"
	cfg.Items[0].VariantID = "v1"
	cfg.RecalcProgress()

	assert.Equal(t, 1, cfg.CompletedSteps)
	assert.Equal(t, 2, cfg.TotalSteps)

	// Product alone without a variant does not count.
	cfg.Items[1].ProductID = "p2"
	cfg.RecalcProgress()
	assert.Equal(t, 1, cfg.CompletedSteps)
}

// The product cache is session-transient and must never survive a round trip
// through persistence.
func TestConfiguration_ProductCacheNotSerialized(t *testing.T) {
	cfg := NewConfiguration("sess-1", testBundle())
	cfg.Products = map[string]Product{"classic-polo": {Handle: "classic-polo"}}

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "classic-polo")

	var restored BundleConfiguration
	require.NoError(t, json.Unmarshal(raw, &restored))
	assert.Nil(t, restored.Products)
	assert.Equal(t, cfg.BundleHandle, restored.BundleHandle)
	require.Len(t, restored.Items, 2)
}
