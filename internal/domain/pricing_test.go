package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// ItemsTotal Tests
// ============================================================================

// configuredItem builds a slot that passes the configured bar with the given
// price.
func configuredItem(price float64) BundleItem {
	return BundleItem{ProductID: "p1", VariantID: "v1", Price: price}
}

func TestItemsTotal_SumsConfiguredSlots(t *testing.T) {
	items := []BundleItem{
		configuredItem(15.00),
		configuredItem(22.50),
		configuredItem(9.99),
	}
	assert.InDelta(t, 47.49, ItemsTotal(items), 1e-9)
}

func TestItemsTotal_UnsetPriceReadsAsZero(t *testing.T) {
	items := []BundleItem{
		configuredItem(15.00),
		{}, // slot not yet configured
	}
	assert.InDelta(t, 15.00, ItemsTotal(items), 1e-9)
}

// A slot with a product chosen but no variant carries the product's
// first-variant price provisionally; it must not bill until the variant is
// picked.
func TestItemsTotal_ProductWithoutVariantNotBilled(t *testing.T) {
	items := []BundleItem{
		{ProductID: "p1", Price: 15.00},
	}
	assert.Zero(t, ItemsTotal(items))
}

func TestItemsTotal_Empty(t *testing.T) {
	assert.Zero(t, ItemsTotal(nil))
}

// ============================================================================
// LogoSurcharge Tests
// ============================================================================

func TestLogoSurcharge_FirstPlacementFree(t *testing.T) {
	items := []BundleItem{
		{Logo: &LogoCustomization{
			Type:       LogoTypeText,
			Placements: []string{PlacementLeftChest},
		}},
	}
	assert.Zero(t, LogoSurcharge(items, DefaultLogoUnitPrice, true))
}

func TestLogoSurcharge_ExtraPlacementsBilled(t *testing.T) {
	items := []BundleItem{
		{Logo: &LogoCustomization{
			Type:       LogoTypeUpload,
			Placements: []string{PlacementLeftChest, PlacementBack, PlacementSleeveLeft},
		}},
	}
	// 3 placements, first free: 2 * 5.95
	assert.InDelta(t, 11.90, LogoSurcharge(items, DefaultLogoUnitPrice, true), 1e-9)
}

func TestLogoSurcharge_NoAllowanceBillsAll(t *testing.T) {
	items := []BundleItem{
		{Logo: &LogoCustomization{
			Type:       LogoTypeText,
			Placements: []string{PlacementLeftChest, PlacementBack},
		}},
	}
	assert.InDelta(t, 11.90, LogoSurcharge(items, DefaultLogoUnitPrice, false), 1e-9)
}

func TestLogoSurcharge_NoneTypeIgnored(t *testing.T) {
	items := []BundleItem{
		{Logo: &LogoCustomization{Type: LogoTypeNone, Placements: []string{PlacementBack}}},
		{Logo: nil},
	}
	assert.Zero(t, LogoSurcharge(items, DefaultLogoUnitPrice, false))
}

func TestLogoSurcharge_DuplicatePlacementsCountOnce(t *testing.T) {
	items := []BundleItem{
		{Logo: &LogoCustomization{
			Type:       LogoTypeText,
			Placements: []string{PlacementBack, PlacementBack},
		}},
	}
	assert.Zero(t, LogoSurcharge(items, DefaultLogoUnitPrice, true))
}

// Adding a placement never decreases the total; removing a slot never
// increases it.
func TestPricing_Monotonicity(t *testing.T) {
	base := []BundleItem{
		{ProductID: "p1", VariantID: "v1", Price: 15.00, Logo: &LogoCustomization{
			Type:       LogoTypeText,
			Placements: []string{PlacementLeftChest},
		}},
		configuredItem(12.00),
	}

	before := ItemsTotal(base) + LogoSurcharge(base, DefaultLogoUnitPrice, true)

	withExtra := []BundleItem{
		{ProductID: "p1", VariantID: "v1", Price: 15.00, Logo: &LogoCustomization{
			Type:       LogoTypeText,
			Placements: []string{PlacementLeftChest, PlacementBack},
		}},
		configuredItem(12.00),
	}
	after := ItemsTotal(withExtra) + LogoSurcharge(withExtra, DefaultLogoUnitPrice, true)
	assert.GreaterOrEqual(t, after, before)

	removed := base[:1]
	assert.LessOrEqual(t, ItemsTotal(removed)+LogoSurcharge(removed, DefaultLogoUnitPrice, true), before)
}

// ============================================================================
// Bundle.Total Tests
// ============================================================================

func TestTotal_SlotWithThreePlacements(t *testing.T) {
	b := &Bundle{
		FreeLogoIncluded: true,
		Items: []BundleItem{
			{
				ProductID: "p1",
				VariantID: "v1",
				Price:     15.00,
				Logo: &LogoCustomization{
					Type:       LogoTypeUpload,
					Placements: []string{PlacementLeftChest, PlacementBack, PlacementSleeveLeft},
				},
			},
		},
	}
	// 15.00 + 2*5.95
	assert.InDelta(t, 26.90, b.Total(5.95), 1e-9)
}

// ============================================================================
// VATBreakdown Tests
// ============================================================================

func TestVATBreakdown_InclusiveDecomposition(t *testing.T) {
	net, vat := VATBreakdown(120.00, 0.20)
	assert.InDelta(t, 100.00, net, 1e-9)
	assert.InDelta(t, 20.00, vat, 1e-9)
}

func TestVATBreakdown_RoundTrip(t *testing.T) {
	for _, total := range []float64{0, 0.01, 26.90, 185.00, 1234.56} {
		net, vat := VATBreakdown(total, 0.20)
		assert.InDelta(t, total, net+vat, 1e-9)
		assert.InDelta(t, total, net*1.20, 1e-9)
	}
}

// ============================================================================
// RoundDisplay / PriceQuote Tests
// ============================================================================

func TestRoundDisplay(t *testing.T) {
	assert.InDelta(t, 26.90, RoundDisplay(26.900000000000002), 1e-12)
	assert.InDelta(t, 0.13, RoundDisplay(0.125000001), 1e-12)
}

func TestPriceQuote(t *testing.T) {
	items := []BundleItem{
		{ProductID: "p1", VariantID: "v1", Price: 15.00, Logo: &LogoCustomization{
			Type:       LogoTypeText,
			Placements: []string{PlacementLeftChest, PlacementBack, PlacementSleeveLeft},
		}},
	}

	q := PriceQuote(items, true, 5.95, 0.20)

	require.InDelta(t, 15.00, q.ItemsTotal, 1e-9)
	require.InDelta(t, 11.90, q.LogoTotal, 1e-9)
	require.InDelta(t, 26.90, q.Total, 1e-9)
	assert.InDelta(t, q.Total, q.Net+q.VAT, 0.01)
}
