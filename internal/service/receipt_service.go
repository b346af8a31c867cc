package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/budgety/budgety-backend/internal/repository/storage"
)

const (
	MaxReceiptSize = 5 * 1024 * 1024 // 5MB
	MinImageWidth  = 50
	MinImageHeight = 50
	ThumbnailWidth = 200
	DisplayWidth   = 800
	JPEGQuality    = 85

	presignedURLExpiry = 15 * time.Minute
)

var (
	ErrReceiptTooLarge     = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidFormat       = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrImageTooSmall       = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidImageData    = errors.New("invalid image data")
	ErrStorageNotConfigured = errors.New("receipt storage not configured")
)

// AllowedExtensions maps extensions to content types
var AllowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ReceiptMetadata contains the stored object paths for a receipt upload
type ReceiptMetadata struct {
	ID           string `json:"id"`
	ThumbnailKey string `json:"thumbnailKey"`
	DisplayKey   string `json:"displayKey"`
	OriginalKey  string `json:"originalKey"`
}

// ReceiptService handles receipt image processing and storage
type ReceiptService struct {
	storage storage.ReceiptRepository
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(storage storage.ReceiptRepository) *ReceiptService {
	return &ReceiptService{storage: storage}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured).
func (s *ReceiptService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// validateAndDecode validates the image and returns the decoded image
func (s *ReceiptService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxReceiptSize {
		return nil, ErrReceiptTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return nil, ErrInvalidFormat
	}

	// Decode to verify it's a real image and check dimensions
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinImageWidth || bounds.Dy() < MinImageHeight {
		return nil, ErrImageTooSmall
	}

	return img, nil
}

// ProcessAndUpload resizes a receipt image and uploads all variants, returning
// their object paths
func (s *ReceiptService) ProcessAndUpload(ctx context.Context, userID uuid.UUID, transactionID string, data []byte, filename string) (*ReceiptMetadata, error) {
	if !s.IsEnabled() {
		return nil, ErrStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	imageID := uuid.New().String()

	variants := []struct {
		name     string
		maxWidth int
	}{
		{"thumb", ThumbnailWidth},
		{"display", DisplayWidth},
		{"original", 0}, // 0 means keep original size
	}

	keys := make(map[string]string)

	for _, variant := range variants {
		var processed image.Image
		if variant.maxWidth > 0 && img.Bounds().Dx() > variant.maxWidth {
			// Resize maintaining aspect ratio
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		} else {
			processed = img
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := storage.GenerateObjectPath(userID, transactionID, imageID, variant.name, ".jpg")

		key, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
		if err != nil {
			s.cleanupVariants(ctx, keys)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}

		keys[variant.name] = key
	}

	return &ReceiptMetadata{
		ID:           imageID,
		ThumbnailKey: keys["thumb"],
		DisplayKey:   keys["display"],
		OriginalKey:  keys["original"],
	}, nil
}

// cleanupVariants removes variants uploaded before a failed operation
func (s *ReceiptService) cleanupVariants(ctx context.Context, keys map[string]string) {
	for _, key := range keys {
		_ = s.storage.Delete(ctx, key)
	}
}

// PresignURL generates a short-lived download URL for a stored receipt
func (s *ReceiptService) PresignURL(ctx context.Context, objectPath string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrStorageNotConfigured
	}
	return s.storage.GeneratePresignedURL(ctx, objectPath, presignedURLExpiry)
}

// PresignVariants generates download URLs for every stored variant given
// any variant's object path
func (s *ReceiptService) PresignVariants(ctx context.Context, objectPath string) (map[string]string, error) {
	if !s.IsEnabled() {
		return nil, ErrStorageNotConfigured
	}

	basePath := extractBasePath(objectPath)
	if basePath == "" {
		url, err := s.storage.GeneratePresignedURL(ctx, objectPath, presignedURLExpiry)
		if err != nil {
			return nil, err
		}
		return map[string]string{"original": url}, nil
	}

	urls := make(map[string]string)
	for _, variant := range []string{"thumb", "display", "original"} {
		url, err := s.storage.GeneratePresignedURL(ctx, basePath+"_"+variant+".jpg", presignedURLExpiry)
		if err != nil {
			return nil, err
		}
		urls[variant] = url
	}
	return urls, nil
}

// DeleteAllVariants deletes all stored variants of a receipt given any
// variant's object path
func (s *ReceiptService) DeleteAllVariants(ctx context.Context, objectPath string) error {
	if objectPath == "" {
		return nil
	}
	if !s.IsEnabled() {
		return ErrStorageNotConfigured
	}

	basePath := extractBasePath(objectPath)
	if basePath == "" {
		return s.storage.Delete(ctx, objectPath)
	}

	for _, variant := range []string{"thumb", "display", "original"} {
		variantPath := basePath + "_" + variant + ".jpg"
		if err := s.storage.Delete(ctx, variantPath); err != nil {
			// Best effort cleanup
			continue
		}
	}
	return nil
}

// extractBasePath strips the variant suffix from an object path
func extractBasePath(objectPath string) string {
	suffixes := []string{"_thumb.jpg", "_display.jpg", "_original.jpg"}
	for _, suffix := range suffixes {
		if strings.HasSuffix(objectPath, suffix) {
			return strings.TrimSuffix(objectPath, suffix)
		}
	}
	return ""
}

// GetContentType returns the content type for a file extension
func GetContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := AllowedExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
