package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/unifit/bundle-service/pkg/database"
	apperrors "github.com/unifit/bundle-service/pkg/errors"

	"github.com/unifit/bundle-service/internal/domain"
)

// BundleDocumentRepository implements repository.BundleDocumentRepository
// using PostgreSQL. The bundle definition itself is stored as a jsonb
// document; id and handle are first-class columns for lookup.
type BundleDocumentRepository struct {
	pool database.DBTX
}

// NewBundleDocumentRepository creates a new PostgreSQL-backed document repository.
func NewBundleDocumentRepository(pool database.DBTX) *BundleDocumentRepository {
	return &BundleDocumentRepository{pool: pool}
}

// GetByID retrieves a bundle document by its primary key.
func (r *BundleDocumentRepository) GetByID(ctx context.Context, id string) (*domain.BundleDocument, error) {
	query := `
		SELECT id, handle, data, created_at, updated_at
		FROM bundle_documents
		WHERE id = $1`

	return r.scanDocument(ctx, query, id)
}

// GetByHandle retrieves a bundle document by its storefront handle.
func (r *BundleDocumentRepository) GetByHandle(ctx context.Context, handle string) (*domain.BundleDocument, error) {
	query := `
		SELECT id, handle, data, created_at, updated_at
		FROM bundle_documents
		WHERE handle = $1`

	return r.scanDocument(ctx, query, handle)
}

// Upsert inserts or replaces a bundle document keyed by id.
func (r *BundleDocumentRepository) Upsert(ctx context.Context, doc *domain.BundleDocument) error {
	data, err := json.Marshal(doc.Bundle)
	if err != nil {
		return fmt.Errorf("marshal bundle document: %w", err)
	}

	doc.UpdatedAt = time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = doc.UpdatedAt
	}

	query := `
		INSERT INTO bundle_documents (id, handle, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET handle = EXCLUDED.handle,
		    data = EXCLUDED.data,
		    updated_at = EXCLUDED.updated_at`

	_, err = r.pool.Exec(ctx, query,
		doc.ID,
		doc.Handle,
		data,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert bundle document: %w", err)
	}

	return nil
}

// scanDocument executes a query expected to return a single document row.
func (r *BundleDocumentRepository) scanDocument(ctx context.Context, query string, args ...any) (*domain.BundleDocument, error) {
	var (
		doc      domain.BundleDocument
		dataJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&doc.ID,
		&doc.Handle,
		&dataJSON,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan bundle document: %w", err)
	}

	if err := json.Unmarshal(dataJSON, &doc.Bundle); err != nil {
		return nil, fmt.Errorf("unmarshal bundle document: %w", err)
	}

	return &doc, nil
}
