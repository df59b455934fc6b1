package storage

import (
	"context"
	"io"
)

// Storage defines the interface for logo artwork blob storage.
type Storage interface {
	// Upload stores artwork and returns its key and public URL.
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)

	// Delete removes artwork by its key.
	Delete(ctx context.Context, key string) error

	// GetURL returns the public URL for the given key.
	GetURL(ctx context.Context, key string) (string, error)
}

// UploadInput holds the parameters for storing one artwork file.
type UploadInput struct {
	Key         string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadResult holds the outcome of a successful upload.
type UploadResult struct {
	Key string
	URL string
}
