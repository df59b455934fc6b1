package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/unifit/bundle-service/internal/storage"
)

// artwork holds one stored logo file.
type artwork struct {
	contentType string
	data        []byte
	url         string
}

// Storage implements storage.Storage with an in-memory map. Suitable for
// single-node deployments and tests; artwork does not survive a restart.
type Storage struct {
	mu      sync.RWMutex
	files   map[string]*artwork
	baseURL string
}

// New creates an in-memory artwork store.
func New(baseURL string) *Storage {
	return &Storage{
		files:   make(map[string]*artwork),
		baseURL: baseURL,
	}
}

// Upload reads and stores the artwork bytes, returning its serving URL.
func (s *Storage) Upload(_ context.Context, input *storage.UploadInput) (*storage.UploadResult, error) {
	data, err := io.ReadAll(input.Data)
	if err != nil {
		return nil, fmt.Errorf("read artwork: %w", err)
	}

	url := fmt.Sprintf("%s/logos/%s", s.baseURL, input.Key)

	s.mu.Lock()
	s.files[input.Key] = &artwork{
		contentType: input.ContentType,
		data:        data,
		url:         url,
	}
	s.mu.Unlock()

	return &storage.UploadResult{Key: input.Key, URL: url}, nil
}

// Delete removes stored artwork.
func (s *Storage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.files[key]; !exists {
		return fmt.Errorf("artwork not found: %s", key)
	}

	delete(s.files, key)
	return nil
}

// GetURL returns the serving URL for stored artwork.
func (s *Storage) GetURL(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.files[key]
	if !exists {
		return "", fmt.Errorf("artwork not found: %s", key)
	}

	return entry.url, nil
}
