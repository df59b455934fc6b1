package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ============================================================================
// BundleItem.IsConfigured Tests
// ============================================================================

func TestIsConfigured_ProductAndVariantSet(t *testing.T) {
	item := BundleItem{ProductID: "prod-1", VariantID: "var-1"}
	assert.True(t, item.IsConfigured())
}

func TestIsConfigured_MissingVariant(t *testing.T) {
	item := BundleItem{ProductID: "prod-1"}
	assert.False(t, item.IsConfigured())
}

func TestIsConfigured_Empty(t *testing.T) {
	item := BundleItem{}
	assert.False(t, item.IsConfigured())
}

// ============================================================================
// BundleItem.IsComplete Tests
// ============================================================================

func TestIsComplete_FullSlot(t *testing.T) {
	item := completeItem("item-1")
	assert.True(t, item.IsComplete())
}

func TestIsComplete_ConfiguredButNoLogo(t *testing.T) {
	item := completeItem("item-1")
	item.Logo = nil
	assert.True(t, item.IsConfigured())
	assert.False(t, item.IsComplete())
}

func TestIsComplete_NoneLogoNotEnough(t *testing.T) {
	item := completeItem("item-1")
	item.Logo = &LogoCustomization{Type: LogoTypeNone}
	assert.False(t, item.IsComplete())
}

func TestIsComplete_InvalidLogoNotEnough(t *testing.T) {
	item := completeItem("item-1")
	item.Logo = &LogoCustomization{Type: LogoTypeUpload, Placements: []string{PlacementBack}}
	assert.False(t, item.IsComplete())
}

// ============================================================================
// Bundle helpers
// ============================================================================

func TestConfiguredCount(t *testing.T) {
	b := &Bundle{Items: []BundleItem{
		{ProductID: "p1", VariantID: "v1"},
		{ProductID: "p2"},
		{},
	}}
	assert.Equal(t, 1, b.ConfiguredCount())
}

func TestItemByID(t *testing.T) {
	b := &Bundle{Items: []BundleItem{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, 1, b.ItemByID("b"))
	assert.Equal(t, -1, b.ItemByID("zzz"))
}
