package mediaservice

import (
	"context"
	"errors"
	"io"
)

var ErrUnsupportedType = errors.New("unsupported image type")

// Uploader stores image bytes under a name and returns the public URL.
type Uploader interface {
	Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error)
}

type MediaService struct {
	u Uploader
}

func NewMediaService(u Uploader) *MediaService {
	return &MediaService{u: u}
}

// UploadResult is returned to the editor: the public URL plus a
// ready-to-embed markdown snippet.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Markdown string `json:"markdown"`
}
