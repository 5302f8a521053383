// Package media validates and stores uploaded chat images.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"deskchat-server/internal/utils/imageid"
)

var (
	// ErrEmptyFile is returned when the upload carries no bytes.
	ErrEmptyFile = errors.New("file is empty")
	// ErrTooLarge is returned when the upload exceeds the size cap.
	ErrTooLarge = errors.New("file exceeds the maximum allowed size")
	// ErrUnsupportedType is returned for non-image content.
	ErrUnsupportedType = errors.New("unsupported file type")
)

var allowedMIMEs = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
	"image/bmp":  "bmp",
	"image/tiff": "tiff",
}

// BlobStorage abstracts the blob store the images land in.
type BlobStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	PublicURL(key string) string
}

// Service ingests image uploads.
type Service struct {
	storage  BlobStorage
	maxBytes int64
	log      zerolog.Logger
}

// NewService wires the media service.
func NewService(storage BlobStorage, maxBytes int64, log zerolog.Logger) *Service {
	return &Service{
		storage:  storage,
		maxBytes: maxBytes,
		log:      log.With().Str("component", "media-service").Logger(),
	}
}

// StoreImage validates the bytes by sniffing their real content type,
// uploads them under a ULID key and returns the durable public URL. The
// client-supplied filename and content type are never trusted.
func (s *Service) StoreImage(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w (%d bytes)", ErrTooLarge, len(data))
	}

	mimeType := mimetype.Detect(data).String()
	ext, ok := allowedMIMEs[mimeType]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}

	key := fmt.Sprintf("images/%s.%s", imageid.New(), ext)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), mimeType); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("upload image")
		return "", err
	}

	url := s.storage.PublicURL(key)
	s.log.Info().Str("key", key).Int("bytes", len(data)).Str("mime", mimeType).Msg("image stored")
	return url, nil
}
