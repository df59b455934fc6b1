package domain

// Bundle is a purchasable package definition: an ordered list of configurable
// slots plus pricing policy. Bundles are read-only once resolved; buyer edits
// happen on the BundleConfiguration copy.
type Bundle struct {
	ID               string       `json:"id"`
	Handle           string       `json:"handle"`
	Name             string       `json:"name"`
	Description      string       `json:"description,omitempty"`
	BasePrice        float64      `json:"base_price"`
	TotalPrice       float64      `json:"total_price"`
	FreeLogoIncluded bool         `json:"free_logo_included"`
	MaxItems         int          `json:"max_items"`
	Items            []BundleItem `json:"items"`
}

// BundleItem is one slot in a bundle. Slot order is meaningful: slot 1,
// slot 2, and so on. Product fields are filled in independently as the buyer
// configures the slot.
type BundleItem struct {
	ID            string  `json:"id"`
	Category      string  `json:"category"`
	CategoryLabel string  `json:"category_label"`
	ProductID     string  `json:"product_id,omitempty"`
	ProductHandle string  `json:"product_handle,omitempty"`
	ProductTitle  string  `json:"product_title,omitempty"`
	ProductImage  string  `json:"product_image,omitempty"`
	ProductSKU    string  `json:"product_sku,omitempty"`
	VariantID     string  `json:"variant_id,omitempty"`
	Size          string  `json:"size,omitempty"`
	Color         string  `json:"color,omitempty"`
	Price         float64 `json:"price,omitempty"`

	Logo *LogoCustomization `json:"logo_customization,omitempty"`
}

// IsConfigured reports whether the slot has both a product and a variant
// chosen. This is the lenient bar used for progress display ("3/10
// configured") and Next-step gating.
func (i *BundleItem) IsConfigured() bool {
	return i.ProductID != "" && i.VariantID != ""
}

// IsComplete reports whether the slot is fully specified for checkout:
// configured, with size, color, and a valid branding choice other than
// LogoTypeNone. A none-typed choice counts as undecided here; checkout
// requires an explicit branding selection per slot.
func (i *BundleItem) IsComplete() bool {
	return i.IsConfigured() &&
		i.Size != "" &&
		i.Color != "" &&
		i.Logo != nil &&
		i.Logo.Type != LogoTypeNone &&
		len(i.Logo.Defects()) == 0
}

// ConfiguredCount returns how many slots pass the lenient configured bar.
func (b *Bundle) ConfiguredCount() int {
	var n int
	for i := range b.Items {
		if b.Items[i].IsConfigured() {
			n++
		}
	}
	return n
}

// ItemByID returns the index of the slot with the given ID, or -1.
func (b *Bundle) ItemByID(id string) int {
	for i := range b.Items {
		if b.Items[i].ID == id {
			return i
		}
	}
	return -1
}
