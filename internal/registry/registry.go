// Package registry holds the hand-curated table of official bundle products.
// Handles in this table resolve without touching the database or the catalog,
// and their slot composition is exact rather than derived.
package registry

import (
	"strconv"
	"strings"

	"github.com/unifit/bundle-service/internal/domain"
)

// slotSpec describes a run of identical slots in a curated bundle.
type slotSpec struct {
	category string
	label    string
	count    int
}

type entry struct {
	id        string
	name      string
	basePrice float64
	freeLogo  bool
	maxItems  int // expected slot count, informational
	slots     []slotSpec
}

// bundles maps lowercase handles to curated definitions.
var bundles = map[string]entry{
	"10-item-professional": {
		id:        "reg-10-item-professional",
		name:      "10 Item Professional Bundle",
		basePrice: 185.00,
		freeLogo:  true,
		maxItems:  10,
		slots: []slotSpec{
			{category: "polo-shirts", label: "Polo Shirt", count: 3},
			{category: "hoodies", label: "Hoodie", count: 2},
			{category: "t-shirts", label: "T-Shirt", count: 3},
			{category: "fleeces", label: "Fleece", count: 1},
			{category: "trousers", label: "Trousers", count: 1},
		},
	},
	"5-item-essential": {
		id:        "reg-5-item-essential",
		name:      "5 Item Essential Bundle",
		basePrice: 99.00,
		freeLogo:  true,
		maxItems:  5,
		slots: []slotSpec{
			{category: "polo-shirts", label: "Polo Shirt", count: 3},
			{category: "hoodies", label: "Hoodie", count: 2},
		},
	},
	"hi-vis-safety-pack": {
		id:        "reg-hi-vis-safety-pack",
		name:      "Hi-Vis Safety Pack",
		basePrice: 75.00,
		freeLogo:  false,
		maxItems:  5,
		slots: []slotSpec{
			{category: "hi-vis", label: "Hi-Vis", count: 5},
		},
	},
}

// Lookup returns the curated bundle for the handle, if registered. Handles
// are matched case-insensitively. Each call returns a fresh Bundle with fresh
// slot IDs so callers can mutate the result freely.
func Lookup(handle string) (*domain.Bundle, bool) {
	e, ok := bundles[strings.ToLower(strings.TrimSpace(handle))]
	if !ok {
		return nil, false
	}
	return e.build(strings.ToLower(strings.TrimSpace(handle))), true
}

// Handles lists the registered handles. Useful for admin listings and tests.
func Handles() []string {
	out := make([]string, 0, len(bundles))
	for h := range bundles {
		out = append(out, h)
	}
	return out
}

func (e entry) build(handle string) *domain.Bundle {
	var items []domain.BundleItem
	for _, s := range e.slots {
		for i := 0; i < s.count; i++ {
			items = append(items, domain.BundleItem{
				ID:            slotID(s.category, i),
				Category:      s.category,
				CategoryLabel: s.label,
			})
		}
	}
	return &domain.Bundle{
		ID:               e.id,
		Handle:           handle,
		Name:             e.name,
		BasePrice:        e.basePrice,
		TotalPrice:       e.basePrice,
		FreeLogoIncluded: e.freeLogo,
		MaxItems:         e.maxItems,
		Items:            items,
	}
}

func slotID(category string, i int) string {
	return category + "-" + strconv.Itoa(i+1)
}
