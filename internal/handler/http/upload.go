package http

import (
	"log/slog"
	"net/http"

	apperrors "github.com/unifit/bundle-service/pkg/errors"
	"github.com/unifit/bundle-service/pkg/httputil"

	"github.com/unifit/bundle-service/internal/service"
)

// multipartMemoryLimit bounds how much of the form is buffered in memory;
// larger parts spill to temp files.
const multipartMemoryLimit = 4 << 20

// UploadHandler handles HTTP requests for logo artwork uploads.
type UploadHandler struct {
	service *service.UploadService
	logger  *slog.Logger
}

// NewUploadHandler creates a new upload HTTP handler.
func NewUploadHandler(svc *service.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		service: svc,
		logger:  logger,
	}
}

// Upload handles POST /api/v1/logos (multipart/form-data, field "file").
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("expected multipart form data: "+err.Error()), h.logger)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput(`multipart field "file" is required`), h.logger)
		return
	}
	defer file.Close()

	uploaded, err := h.service.Upload(r.Context(), service.UploadLogoInput{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: uploaded})
}
