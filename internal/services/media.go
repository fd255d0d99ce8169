package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"networkingbude/internal/domain"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

const (
	defaultMaxImageWidth = 1200
	jpegQuality          = 85
)

type mediaService struct {
	storage  domain.MediaStorage
	maxWidth int
	logger   *slog.Logger
}

// NewMediaService returns a MediaService that downscales images to maxWidth pixels
// and stores them as JPEG. maxWidth <= 0 uses the default.
func NewMediaService(storage domain.MediaStorage, maxWidth int, logger *slog.Logger) domain.MediaService {
	if maxWidth <= 0 {
		maxWidth = defaultMaxImageWidth
	}
	return &mediaService{storage: storage, maxWidth: maxWidth, logger: logger}
}

func (s *mediaService) UploadImage(ctx context.Context, collection domain.Collection, data []byte) (string, error) {
	if _, err := domain.ParseCollection(string(collection)); err != nil {
		return "", fmt.Errorf("collection %q: %w", collection, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", domain.ErrInvalidInput)
	}
	if img.Bounds().Dx() > s.maxWidth {
		img = imaging.Resize(img, s.maxWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	path := fmt.Sprintf("slots/%s/%s.jpg", collection, uuid.NewString())
	url, err := s.storage.Upload(ctx, path, "image/jpeg", buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	s.logger.InfoContext(ctx, "image uploaded", "path", path, "bytes", buf.Len())
	return url, nil
}

func (s *mediaService) RemoveImage(ctx context.Context, path string) error {
	path = strings.TrimPrefix(strings.TrimSpace(path), "/")
	if !strings.HasPrefix(path, "slots/") || strings.Contains(path, "..") {
		return fmt.Errorf("path %q: %w", path, domain.ErrInvalidInput)
	}
	if err := s.storage.Remove(ctx, path); err != nil {
		return fmt.Errorf("remove image: %w", err)
	}
	return nil
}
