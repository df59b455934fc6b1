// Package filter selects catalog products eligible for a bundle slot
// category. Matching is layered: an explicit allow-list first, then a fixed
// category-to-type keyword table, then a substring match on the normalized
// category itself. When nothing matches, the whole catalog is returned rather
// than an empty set, so a slot picker is never a dead end; the Match field
// tells callers which layer produced the result so the UI can warn on
// fallback.
package filter

import (
	"strings"

	"github.com/unifit/bundle-service/internal/domain"
)

// Match identifies which matching layer produced a filter result.
type Match string

const (
	// MatchAllowList means an explicit keyword allow-list matched.
	MatchAllowList Match = "allow_list"
	// MatchTypeTable means the category-to-type keyword table matched.
	MatchTypeTable Match = "type_table"
	// MatchFallback means no layer matched and the full catalog was returned.
	MatchFallback Match = "fallback"
)

// Result is the outcome of an eligibility pass.
type Result struct {
	Products []domain.Product
	Match    Match
}

// typeKeywords maps slot category keys to product_type keywords. Matching is
// case-insensitive substring containment on product_type.
var typeKeywords = map[string][]string{
	"polo-shirts": {"Polo", "Top"},
	"hoodies":     {"Hood", "Sweatshirt"},
	"t-shirts":    {"T-Shirt", "Tee", "Top"},
	"fleeces":     {"Fleece", "Jacket"},
	"hi-vis":      {"Waistcoat", "Jacket", "Vest", "Hi-Vis"},
	"trousers":    {"Trouser", "Pants"},
}

// EligibleProducts returns the subset of catalog eligible for the given slot
// category. Pure and order-preserving; tolerates products with missing tags
// or product_type.
func EligibleProducts(category string, catalog []domain.Product, allowList []string) Result {
	if len(allowList) > 0 {
		if matched := byAllowList(catalog, allowList); len(matched) > 0 {
			return Result{Products: matched, Match: MatchAllowList}
		}
	}

	if matched := byTypeTable(category, catalog); len(matched) > 0 {
		return Result{Products: matched, Match: MatchTypeTable}
	}

	// Deliberate policy: never return an empty picker for a non-empty
	// catalog. Callers surface a warning when Match is MatchFallback.
	return Result{Products: catalog, Match: MatchFallback}
}

func byAllowList(catalog []domain.Product, allowList []string) []domain.Product {
	var matched []domain.Product
	for i := range catalog {
		text := catalog[i].SearchableText()
		for _, kw := range allowList {
			if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
				matched = append(matched, catalog[i])
				break
			}
		}
	}
	return matched
}

func byTypeTable(category string, catalog []domain.Product) []domain.Product {
	normalized := normalizeCategory(category)
	keywords := typeKeywords[normalized]

	var matched []domain.Product
	for i := range catalog {
		p := &catalog[i]
		if typeMatches(p.ProductType, keywords) ||
			(normalized != "" && strings.Contains(p.SearchableText(), normalized)) {
			matched = append(matched, *p)
		}
	}
	return matched
}

func typeMatches(productType string, keywords []string) bool {
	if productType == "" {
		return false
	}
	lower := strings.ToLower(productType)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// normalizeCategory lowercases and trims a category key so free-form category
// strings ("Polo-Shirts ") still hit the table.
func normalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
