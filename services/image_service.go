package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/url"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

var (
	ErrImageTooLarge    = errors.New("image exceeds the maximum upload size")
	ErrUnsupportedImage = errors.New("unsupported image format")
)

const (
	// MaxUploadSize bounds the transient memory an upload may occupy
	MaxUploadSize = 5 * 1024 * 1024
	// maxDimension is the longest edge after resizing
	maxDimension = 1600
	// webpQuality is the lossy encode quality
	webpQuality = 80
)

// Uploader is the object-storage surface the image service needs.
// *spaces.Client satisfies it.
type Uploader interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteObject(ctx context.Context, key string) error
}

// ImageService validates, resizes, converts and uploads school images
type ImageService struct {
	uploader Uploader
}

// NewImageService creates a new image service
func NewImageService(uploader Uploader) *ImageService {
	return &ImageService{
		uploader: uploader,
	}
}

// Decode sniffs the content type and decodes a jpeg, png or webp image
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrUnsupportedImage
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	contentType := http.DetectContentType(head)

	var (
		img image.Image
		err error
	)
	switch {
	case strings.Contains(contentType, "jpeg"):
		img, err = jpeg.Decode(bytes.NewReader(data))
	case strings.Contains(contentType, "png"):
		img, err = png.Decode(bytes.NewReader(data))
	case strings.Contains(contentType, "webp"):
		img, err = webp.Decode(bytes.NewReader(data))
	default:
		return nil, ErrUnsupportedImage
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Normalize resizes an image to fit within maxDimension (keeping aspect
// ratio, never upscaling) and re-encodes it as lossy webp
func Normalize(img image.Image) ([]byte, error) {
	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

// ProcessAndUpload runs the full ingestion pipeline for one uploaded image:
// validate, resize, convert to webp, upload under the school's namespace,
// and return the CDN URL. Nothing is persisted until the upload succeeds,
// so a failure at any stage leaves no partial state behind.
func (s *ImageService) ProcessAndUpload(ctx context.Context, schoolID uint, data []byte) (string, error) {
	if len(data) > MaxUploadSize {
		return "", ErrImageTooLarge
	}

	img, err := Decode(data)
	if err != nil {
		return "", err
	}

	encoded, err := Normalize(img)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("schools/%d/%s.webp", schoolID, uuid.New().String())
	return s.uploader.UploadBytes(ctx, key, encoded, "image/webp")
}

// Delete removes a previously uploaded image given its public URL. The
// object key is the URL path, which holds for both the CDN and the
// origin-bucket form.
func (s *ImageService) Delete(ctx context.Context, imageURL string) error {
	u, err := url.Parse(imageURL)
	if err != nil {
		return fmt.Errorf("invalid image url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return fmt.Errorf("invalid image url: empty object key")
	}
	return s.uploader.DeleteObject(ctx, key)
}
