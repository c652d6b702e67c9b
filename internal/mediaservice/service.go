package mediaservice

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 10 << 20 // 10 MB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload validates the declared content type, stores the image under a
// fresh name, and returns the public URL alongside a markdown image
// snippet the editor can paste straight into a post.
func (s *MediaService) Upload(ctx context.Context, originalName, contentType string, r io.Reader, size int64) (*UploadResult, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	name := uuid.NewString() + ext

	url, err := s.u.Save(ctx, name, contentType, r, size)
	if err != nil {
		return nil, err
	}

	alt := altText(originalName)

	return &UploadResult{
		URL:      url,
		Filename: name,
		Markdown: fmt.Sprintf("![%s](%s)", alt, url),
	}, nil
}

// altText derives a readable alt text from the uploaded filename.
func altText(originalName string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	base = strings.ReplaceAll(base, "-", " ")
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.TrimSpace(base)
	if base == "" {
		return "image"
	}
	return base
}
