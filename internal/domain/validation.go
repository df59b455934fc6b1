package domain

import "fmt"

// ValidationResult is the outcome of a whole-bundle validation pass.
// Validation failures are data, never errors: the caller decides whether to
// block progression.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// ValidateBundle walks every slot in order and collects a human-readable
// defect for each missing field, using 1-based slot numbering. The result is
// valid iff no defects were found, which holds exactly when every slot passes
// IsComplete.
func ValidateBundle(b *Bundle) ValidationResult {
	return ValidateItems(b.Items)
}

// ValidateItems validates a slot list directly (used for live configurations).
func ValidateItems(items []BundleItem) ValidationResult {
	var errs []string

	for i := range items {
		slot := i + 1
		item := &items[i]

		if item.ProductID == "" {
			errs = append(errs, fmt.Sprintf("Item %d: Product not selected", slot))
		}
		if item.VariantID == "" {
			errs = append(errs, fmt.Sprintf("Item %d: Variant not selected", slot))
		}
		if item.Size == "" {
			errs = append(errs, fmt.Sprintf("Item %d: Size not selected", slot))
		}
		if item.Color == "" {
			errs = append(errs, fmt.Sprintf("Item %d: Color not selected", slot))
		}

		if item.Logo == nil || item.Logo.Type == LogoTypeNone {
			errs = append(errs, fmt.Sprintf("Item %d: Logo option not chosen", slot))
			continue
		}

		for _, defect := range item.Logo.Defects() {
			errs = append(errs, fmt.Sprintf("Item %d: %s", slot, defect))
		}
	}

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
