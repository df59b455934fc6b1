package domain

import "math"

// Reference pricing constants. Both are overridable via service configuration.
const (
	// DefaultLogoUnitPrice is the charge per billable logo placement.
	DefaultLogoUnitPrice = 5.95
	// DefaultVATRate is the UK standard VAT rate.
	DefaultVATRate = 0.20
)

// Prices are decimal currency units in IEEE doubles. Rounding happens only at
// the display boundary (RoundDisplay), never mid-calculation, so rounding
// error does not compound across slots.

// ItemsTotal sums the unit price of every configured slot. A slot that has a
// product but no variant yet carries a provisional price; it does not bill
// until the variant is chosen.
func ItemsTotal(items []BundleItem) float64 {
	var total float64
	for i := range items {
		if items[i].IsConfigured() {
			total += items[i].Price
		}
	}
	return total
}

// LogoSurcharge computes the branding surcharge across slots. Each slot with a
// non-none logo customization is billed per distinct placement; when
// freeIncluded is true the first placement of each slot is waived.
func LogoSurcharge(items []BundleItem, unitPrice float64, freeIncluded bool) float64 {
	var total float64
	for i := range items {
		logo := items[i].Logo
		if logo == nil || logo.Type == LogoTypeNone {
			continue
		}
		n := logo.PlacementCount()
		if freeIncluded && n > 0 {
			n--
		}
		total += float64(n) * unitPrice
	}
	return total
}

// Total returns the VAT-inclusive bundle price: configured item prices plus
// the logo surcharge.
func (b *Bundle) Total(logoUnitPrice float64) float64 {
	return ItemsTotal(b.Items) + LogoSurcharge(b.Items, logoUnitPrice, b.FreeLogoIncluded)
}

// VATBreakdown decomposes a VAT-inclusive total into net and VAT portions for
// receipt display. This is a decomposition of an already-inclusive price, not
// an additive tax: net = total / (1 + rate), vat = total - net. Callers must
// not apply VAT on top of the result.
func VATBreakdown(total, rate float64) (net, vat float64) {
	net = total / (1 + rate)
	return net, total - net
}

// RoundDisplay rounds a price to 2 decimal places for display.
func RoundDisplay(v float64) float64 {
	return math.Round(v*100) / 100
}

// Quote is a priced summary of a bundle configuration.
type Quote struct {
	ItemsTotal float64 `json:"items_total"`
	LogoTotal  float64 `json:"logo_total"`
	Total      float64 `json:"total"`
	Net        float64 `json:"net"`
	VAT        float64 `json:"vat"`
}

// PriceQuote prices a slot list under the given policy and decomposes the
// inclusive total for display. All figures are display-rounded.
func PriceQuote(items []BundleItem, freeLogo bool, logoUnitPrice, vatRate float64) Quote {
	itemsTotal := ItemsTotal(items)
	logoTotal := LogoSurcharge(items, logoUnitPrice, freeLogo)
	total := itemsTotal + logoTotal
	net, vat := VATBreakdown(total, vatRate)

	return Quote{
		ItemsTotal: RoundDisplay(itemsTotal),
		LogoTotal:  RoundDisplay(logoTotal),
		Total:      RoundDisplay(total),
		Net:        RoundDisplay(net),
		VAT:        RoundDisplay(vat),
	}
}
