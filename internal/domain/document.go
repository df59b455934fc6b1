package domain

import "time"

// BundleDocument is a merchant-authored bundle definition persisted in the
// document store. Resolution falls back to these records when a handle is not
// in the curated registry; documents with no slots are treated as absent.
type BundleDocument struct {
	ID        string    `json:"id"`
	Handle    string    `json:"handle"`
	Bundle    Bundle    `json:"bundle"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
