// Package derive parses bundle structure out of free-text catalog product
// titles ("10 Item Professional Bundle" -> 10 slots of workwear). The
// heuristics are inherently ambiguous for titles outside the expected
// patterns, so every result carries a confidence level and callers are
// expected to flag low-confidence derivations rather than trust them silently.
package derive

import (
	"regexp"
	"strconv"
	"strings"
)

// Confidence qualifies how trustworthy a derived value is.
type Confidence string

const (
	// ConfidenceHigh means an explicit number was found in the title.
	ConfidenceHigh Confidence = "high"
	// ConfidenceLow means the value came from a category default.
	ConfidenceLow Confidence = "low"
)

// Count is the derived slot count for a bundle title.
type Count struct {
	Items      int
	Confidence Confidence
}

// Category is a derived slot category: machine key plus display label.
type Category struct {
	Key   string
	Label string
}

var (
	leadingNumber = regexp.MustCompile(`^\s*(\d+)\b`)
	// A number next to a bundle-ish word, in either order:
	// "5 pack", "5-item", "bundle of 3", "pack 10".
	numberThenWord = regexp.MustCompile(`(?i)\b(\d+)[\s-]*(?:pack|item|bundle|piece)s?\b`)
	wordThenNumber = regexp.MustCompile(`(?i)\b(?:pack|item|bundle|piece)s?(?:\s+of)?[\s-]*(\d+)\b`)
)

// categoryRules is the ordered keyword table for title classification. First
// match wins, so more specific garments come before generic ones.
var categoryRules = []struct {
	keywords []string
	category Category
}{
	{[]string{"hoodie", "hooded"}, Category{Key: "hoodies", Label: "Hoodie"}},
	{[]string{"polo"}, Category{Key: "polo-shirts", Label: "Polo Shirt"}},
	{[]string{"t-shirt", "tshirt", "tee"}, Category{Key: "t-shirts", Label: "T-Shirt"}},
	{[]string{"fleece"}, Category{Key: "fleeces", Label: "Fleece"}},
	{[]string{"hi-vis", "hi vis", "hiviz", "hi-viz", "vest", "waistcoat"}, Category{Key: "hi-vis", Label: "Hi-Vis"}},
	{[]string{"trouser", "pants"}, Category{Key: "trousers", Label: "Trousers"}},
}

// fallbackCategory is used when no keyword rule matches.
var fallbackCategory = Category{Key: "workwear", Label: "Workwear"}

// ParseItemCount derives the slot count from a bundle-like product title.
// A leading integer wins; otherwise a number adjacent to pack/item/bundle/
// piece is used. Titles mentioning "hi vis" or "pack" without an explicit
// number default to 5; anything else defaults to 1. Defaults are reported as
// low confidence.
func ParseItemCount(title string) Count {
	if m := leadingNumber.FindStringSubmatch(title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return Count{Items: n, Confidence: ConfidenceHigh}
		}
	}

	for _, re := range []*regexp.Regexp{numberThenWord, wordThenNumber} {
		if m := re.FindStringSubmatch(title); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
				return Count{Items: n, Confidence: ConfidenceHigh}
			}
		}
	}

	lower := strings.ToLower(title)
	if strings.Contains(lower, "hi vis") || strings.Contains(lower, "hi-vis") || strings.Contains(lower, "pack") {
		return Count{Items: 5, Confidence: ConfidenceLow}
	}

	return Count{Items: 1, Confidence: ConfidenceLow}
}

// ClassifyCategory classifies a product title against the ordered keyword
// rules. Unmatched titles fall back to the generic workwear category.
func ClassifyCategory(title string) Category {
	lower := strings.ToLower(title)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return fallbackCategory
}
