package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	// Registered decoders determine which upload formats are accepted.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"menuboard/internal/middleware"
	"menuboard/internal/models"
	"menuboard/internal/observability"

	"github.com/google/uuid"
	"log/slog"
)

var imageExtensions = map[string]string{
	"jpeg": ".jpg",
	"png":  ".png",
	"gif":  ".gif",
	"webp": ".webp",
}

// ImageService stores uploaded images in the persistent static directory.
type ImageService struct {
	staticDir string
	maxBytes  int64
}

// NewImageService creates an image service writing into staticDir with the
// given size cap in megabytes.
func NewImageService(staticDir string, maxUploadMB int) *ImageService {
	return &ImageService{
		staticDir: staticDir,
		maxBytes:  int64(maxUploadMB) * 1024 * 1024,
	}
}

// StoredImage describes a successfully stored upload.
type StoredImage struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// MaxBytes returns the configured upload size cap.
func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

// Save validates and persists an uploaded image. The content must decode as
// one of the registered image formats; anything else is rejected before
// touching the filesystem. The file is written to a temp name and renamed
// into place so a failed write never leaves a partial image behind.
func (s *ImageService) Save(ctx context.Context, content []byte) (*StoredImage, error) {
	if int64(len(content)) > s.maxBytes {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError(fmt.Sprintf("File exceeds the %dMB upload limit", s.maxBytes/(1024*1024)))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Only image files are allowed (JPEG, PNG, GIF, WEBP)")
	}
	ext, ok := imageExtensions[format]
	if !ok {
		observability.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, models.NewValidationError("Only image files are allowed (JPEG, PNG, GIF, WEBP)")
	}

	if err := os.MkdirAll(s.staticDir, 0o755); err != nil {
		observability.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	tmp, err := os.CreateTemp(s.staticDir, "upload-*")
	if err != nil {
		observability.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		observability.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		observability.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	filename := "img-" + uuid.NewString() + ext
	if err := os.Rename(tmpName, filepath.Join(s.staticDir, filename)); err != nil {
		_ = os.Remove(tmpName)
		observability.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, models.NewInternalError(err)
	}

	middleware.Logger.InfoContext(ctx, "image stored",
		slog.String("filename", filename),
		slog.String("format", format),
		slog.Int("width", cfg.Width),
		slog.Int("height", cfg.Height),
		slog.Int("bytes", len(content)),
	)

	observability.UploadsTotal.WithLabelValues("accepted").Inc()
	return &StoredImage{
		URL:      "static/" + filename,
		Filename: filename,
		Size:     int64(len(content)),
	}, nil
}
