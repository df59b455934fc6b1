package domain

import "time"

// DefaultMaxExtraItems is the flat allowance of extra slots a buyer can append
// on top of the resolved bundle shape.
const DefaultMaxExtraItems = 3

// BundleConfiguration is the live working state of one buyer session
// configuring one bundle. It mirrors the resolved Bundle's slots as a mutable
// copy; the Products cache resolves slot pickers and is never persisted (it is
// rehydrated from the catalog on demand).
type BundleConfiguration struct {
	SessionID        string       `json:"session_id"`
	BundleID         string       `json:"bundle_id"`
	BundleHandle     string       `json:"bundle_handle"`
	FreeLogoIncluded bool         `json:"free_logo_included"`
	MaxExtraItems    int          `json:"max_extra_items"`
	Items            []BundleItem `json:"items"`
	CompletedSteps   int          `json:"completed_steps"`
	TotalSteps       int          `json:"total_steps"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`

	Products map[string]Product `json:"-"`
}

// NewConfiguration creates a fresh configuration for the given session from a
// resolved bundle, copying its slots.
func NewConfiguration(sessionID string, b *Bundle) *BundleConfiguration {
	items := make([]BundleItem, len(b.Items))
	copy(items, b.Items)

	now := time.Now().UTC()
	cfg := &BundleConfiguration{
		SessionID:        sessionID,
		BundleID:         b.ID,
		BundleHandle:     b.Handle,
		FreeLogoIncluded: b.FreeLogoIncluded,
		MaxExtraItems:    DefaultMaxExtraItems,
		Items:            items,
		TotalSteps:       len(items),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	cfg.RecalcProgress()
	return cfg
}

// FindItemIndex returns the index of the slot with the given ID, or -1.
func (c *BundleConfiguration) FindItemIndex(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// RecalcProgress refreshes the step counters: TotalSteps is the slot count,
// CompletedSteps counts slots passing the lenient configured bar.
func (c *BundleConfiguration) RecalcProgress() {
	c.TotalSteps = len(c.Items)
	n := 0
	for i := range c.Items {
		if c.Items[i].IsConfigured() {
			n++
		}
	}
	c.CompletedSteps = n
}
