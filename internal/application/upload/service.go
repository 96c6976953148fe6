// Package upload validates, resizes and stores menu images.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"net/http"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/cafemenu/backend/internal/domain/shared"
	"github.com/cafemenu/backend/internal/infrastructure/config"
)

// Folders provisioned in the bucket at startup
var uploadFolders = []string{"menu-items", "categories", "logos", "temp"}

var allowedMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ObjectStorage is the slice of object storage the upload service needs
type ObjectStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// Result describes a stored upload
type Result struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// Service handles image uploads with validation, resizing and retry
type Service struct {
	store  ObjectStorage
	cfg    config.UploadConfig
	logger *zap.Logger

	// newBackOff builds the retry schedule, replaceable in tests
	newBackOff func() backoff.BackOff
}

// Option is a functional option for the upload service
type Option func(*Service)

// WithBackOffFactory overrides the retry schedule, used by tests
func WithBackOffFactory(factory func() backoff.BackOff) Option {
	return func(s *Service) {
		s.newBackOff = factory
	}
}

// NewService creates an upload service
func NewService(store ObjectStorage, cfg config.UploadConfig, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
	s.newBackOff = func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = cfg.RetryBase
		b.Multiplier = 2
		b.RandomizationFactor = 0
		b.MaxInterval = cfg.RetryBase * 8
		b.MaxElapsedTime = 0
		return backoff.WithMaxRetries(b, uint64(maxRetries(cfg.MaxRetries)))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store validates the image, resizes it when oversized and uploads it under
// the given folder. The store call is retried with exponential backoff.
//
// Validation order: empty file, MIME type, file size, pixel dimensions.
func (s *Service) Store(ctx context.Context, folder, filename string, data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, shared.NewDomainError("EMPTY_FILE", "Uploaded file is empty")
	}

	contentType := detectContentType(data)
	ext, ok := allowedMIMETypes[contentType]
	if !ok {
		return nil, shared.NewDomainError("UNSUPPORTED_FILE_TYPE", "Only JPEG, PNG, WebP and GIF images are accepted")
	}

	if int64(len(data)) > s.cfg.MaxFileSize {
		return nil, shared.NewDomainError("FILE_TOO_LARGE",
			fmt.Sprintf("File exceeds the %d MB limit", s.cfg.MaxFileSize>>20))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_IMAGE", "File is not a decodable image")
	}
	if cfg.Width > s.cfg.MaxDimension || cfg.Height > s.cfg.MaxDimension {
		return nil, shared.NewDomainError("IMAGE_TOO_LARGE",
			fmt.Sprintf("Image dimensions exceed %dx%d pixels", s.cfg.MaxDimension, s.cfg.MaxDimension))
	}

	data, contentType, width, height, err := s.resizeIfNeeded(data, contentType, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	if contentType == "image/jpeg" {
		ext = ".jpg"
	}

	key := buildKey(folder, filename, ext)
	if err := s.uploadWithRetry(ctx, key, data, contentType); err != nil {
		return nil, err
	}

	s.logger.Info("Image stored",
		zap.String("key", key),
		zap.Int("size", len(data)),
		zap.Int("width", width),
		zap.Int("height", height))

	return &Result{
		Key:         key,
		URL:         s.store.PublicURL(key),
		ContentType: contentType,
		Size:        int64(len(data)),
		Width:       width,
		Height:      height,
	}, nil
}

// Remove deletes a stored image
func (s *Service) Remove(ctx context.Context, key string) error {
	if key == "" {
		return shared.NewDomainError("INVALID_KEY", "Storage key is required")
	}
	return s.store.Delete(ctx, key)
}

// EnsureFolders provisions the upload folder markers. Failures are logged
// and ignored since folders also appear implicitly on first upload.
func (s *Service) EnsureFolders(ctx context.Context) {
	for _, folder := range uploadFolders {
		if err := s.store.Upload(ctx, folder+"/.keep", []byte{}, "application/octet-stream"); err != nil {
			s.logger.Warn("Folder provisioning failed", zap.String("folder", folder), zap.Error(err))
		}
	}
}

func (s *Service) uploadWithRetry(ctx context.Context, key string, data []byte, contentType string) error {
	attempt := 0
	operation := func() error {
		attempt++
		err := s.store.Upload(ctx, key, data, contentType)
		if err != nil {
			s.logger.Warn("Upload attempt failed",
				zap.String("key", key),
				zap.Int("attempt", attempt),
				zap.Error(err))
		}
		return err
	}

	if err := backoff.Retry(operation, backoff.WithContext(s.newBackOff(), ctx)); err != nil {
		return fmt.Errorf("upload failed after %d attempts: %w", attempt, err)
	}
	return nil
}

// resizeIfNeeded scales jpeg and png images down to fit the configured box,
// preserving aspect ratio and never upscaling. GIF is passed through to keep
// animations intact, WebP because there is no encoder for it.
func (s *Service) resizeIfNeeded(data []byte, contentType string, width, height int) ([]byte, string, int, int, error) {
	if contentType == "image/gif" || contentType == "image/webp" {
		return data, contentType, width, height, nil
	}
	if width <= s.cfg.ResizeWidth && height <= s.cfg.ResizeHeight {
		return data, contentType, width, height, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", 0, 0, shared.NewDomainError("INVALID_IMAGE", "File is not a decodable image")
	}

	newWidth, newHeight := fitWithin(width, height, s.cfg.ResizeWidth, s.cfg.ResizeHeight)
	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch contentType {
	case "image/png":
		err = png.Encode(&buf, dst)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: s.cfg.JPEGQuality})
	}
	if err != nil {
		return nil, "", 0, 0, fmt.Errorf("image re-encoding failed: %w", err)
	}

	return buf.Bytes(), contentType, newWidth, newHeight, nil
}

// fitWithin scales (w, h) down to fit in (maxW, maxH) keeping aspect ratio
func fitWithin(w, h, maxW, maxH int) (int, int) {
	scaleW := float64(maxW) / float64(w)
	scaleH := float64(maxH) / float64(h)
	scale := scaleW
	if scaleH < scale {
		scale = scaleH
	}
	if scale >= 1 {
		return w, h
	}
	newW := int(float64(w) * scale)
	newH := int(float64(h) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH
}

// detectContentType sniffs the payload rather than trusting the client.
// http.DetectContentType covers jpeg, png, gif and webp.
func detectContentType(data []byte) string {
	return http.DetectContentType(data)
}

// buildKey derives the storage key from a sanitized filename, a millisecond
// timestamp and a short random id
func buildKey(folder, filename, ext string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = sanitizeName(base)
	if base == "" {
		base = "image"
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "temp"
	}
	return fmt.Sprintf("%s/%s-%d-%s%s",
		folder, base, time.Now().UnixMilli(), uuid.New().String()[:8], ext)
}

// sanitizeName lowercases and keeps only letters, digits and dashes
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '-' || r == '_' || r == ' ' || r == '.':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func maxRetries(configured int) int {
	if configured < 1 {
		return 2
	}
	return configured - 1
}
