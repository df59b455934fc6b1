package repository

import (
	"context"

	"github.com/unifit/bundle-service/internal/domain"
)

// ConfigRepository defines the interface for session configuration persistence.
type ConfigRepository interface {
	// Get retrieves the configuration for a session ID.
	Get(ctx context.Context, sessionID string) (*domain.BundleConfiguration, error)

	// Save persists a configuration, overwriting any existing one for the session.
	Save(ctx context.Context, cfg *domain.BundleConfiguration) error

	// Delete removes a session's configuration.
	Delete(ctx context.Context, sessionID string) error
}

// BundleDocumentRepository defines the interface for persisted bundle
// definitions.
type BundleDocumentRepository interface {
	// GetByID retrieves a bundle document by its primary key.
	GetByID(ctx context.Context, id string) (*domain.BundleDocument, error)

	// GetByHandle retrieves a bundle document by its storefront handle.
	GetByHandle(ctx context.Context, handle string) (*domain.BundleDocument, error)

	// Upsert inserts or replaces a bundle document.
	Upsert(ctx context.Context, doc *domain.BundleDocument) error
}
