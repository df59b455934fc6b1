package domain

import (
	"strconv"
	"strings"
)

// Product is the external catalog shape, consumed not owned. Fields mirror
// what the catalog API returns; helpers below tolerate missing tags, types,
// and variants without panicking.
type Product struct {
	ID          string           `json:"id"`
	Handle      string           `json:"handle"`
	Title       string           `json:"title"`
	ProductType string           `json:"product_type"`
	Tags        []string         `json:"tags"`
	Images      []ProductImage   `json:"images"`
	Variants    []ProductVariant `json:"variants"`
	Options     []ProductOption  `json:"options"`
}

// ProductVariant is one sellable variation of a product. Price is a decimal
// string on the wire.
type ProductVariant struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Price          string `json:"price"`
	Option1        string `json:"option1"` // size by convention
	Option2        string `json:"option2"` // color by convention
	SKU            string `json:"sku"`
	CompareAtPrice string `json:"compare_at_price,omitempty"`
}

// ProductImage is an image attached to a product, in display order.
type ProductImage struct {
	Src string `json:"src"`
}

// ProductOption declares which option position means size vs color.
type ProductOption struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// PriceValue parses the variant's decimal price string. Unparsable or empty
// prices read as zero.
func (v *ProductVariant) PriceValue() float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(v.Price), 64)
	if err != nil {
		return 0
	}
	return p
}

// FirstVariantPrice returns the price of the product's first variant, or zero
// when the product has no variants.
func (p *Product) FirstVariantPrice() float64 {
	if len(p.Variants) == 0 {
		return 0
	}
	return p.Variants[0].PriceValue()
}

// FirstImage returns the src of the product's first image, or "".
func (p *Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Src
}

// VariantByID returns the variant with the given ID, or nil.
func (p *Product) VariantByID(id string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// SearchableText returns the product's combined searchable text: handle,
// title, product type, and tags, case-folded. Used by the category filter.
func (p *Product) SearchableText() string {
	parts := make([]string, 0, 3+len(p.Tags))
	parts = append(parts, p.Handle, p.Title, p.ProductType)
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
