package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/unifit/bundle-service/pkg/errors"

	"github.com/unifit/bundle-service/internal/storage"
)

// DefaultMaxLogoSize is the artwork size limit: 10 MiB.
const DefaultMaxLogoSize = 10 << 20

// defaultAllowedLogoTypes lists the artwork MIME types print production accepts.
var defaultAllowedLogoTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

// UploadLogoInput holds one artwork file submission.
type UploadLogoInput struct {
	FileName    string
	ContentType string
	Size        int64
	Data        io.Reader
}

// UploadedLogo describes stored artwork, ready to reference from a slot's
// logo customization.
type UploadedLogo struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size"`
	URL      string `json:"url"`
}

// UploadService validates and stores logo artwork. Validation happens
// entirely before the storage call: a rejected file must leave no trace.
type UploadService struct {
	store        storage.Storage
	logger       *slog.Logger
	maxSize      int64
	allowedTypes map[string]bool
}

// NewUploadService creates a new upload service. A non-positive maxSize falls
// back to the default limit.
func NewUploadService(store storage.Storage, logger *slog.Logger, maxSize int64) *UploadService {
	if maxSize <= 0 {
		maxSize = DefaultMaxLogoSize
	}
	return &UploadService{
		store:        store,
		logger:       logger,
		maxSize:      maxSize,
		allowedTypes: defaultAllowedLogoTypes,
	}
}

// Upload stores one artwork file and returns its handle. Rejections carry a
// reason specific to what failed, size or type, so the buyer can fix the
// right thing.
func (s *UploadService) Upload(ctx context.Context, input UploadLogoInput) (*UploadedLogo, error) {
	if input.Size <= 0 {
		return nil, apperrors.UploadRejected("uploaded file is empty")
	}
	if input.Size > s.maxSize {
		return nil, apperrors.UploadRejected(
			fmt.Sprintf("file is %.1f MB; artwork must be %d MB or smaller",
				float64(input.Size)/(1<<20), s.maxSize>>20))
	}

	contentType := normalizeContentType(input.ContentType)
	if !s.allowedTypes[contentType] {
		return nil, apperrors.UploadRejected(
			fmt.Sprintf("file type %q is not accepted; upload PNG, JPEG, SVG, or PDF", input.ContentType))
	}

	key := uuid.New().String() + strings.ToLower(filepath.Ext(input.FileName))
	result, err := s.store.Upload(ctx, &storage.UploadInput{
		Key:         key,
		ContentType: contentType,
		Size:        input.Size,
		Data:        input.Data,
	})
	if err != nil {
		return nil, fmt.Errorf("store logo artwork: %w", err)
	}

	s.logger.InfoContext(ctx, "logo artwork uploaded",
		slog.String("key", result.Key),
		slog.String("file_name", input.FileName),
		slog.Int64("size", input.Size),
	)

	return &UploadedLogo{
		ID:       result.Key,
		FileName: input.FileName,
		FileSize: input.Size,
		URL:      result.URL,
	}, nil
}

// normalizeContentType strips parameters ("image/png; charset=binary") and
// case-folds the media type.
func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
