package mediaservice

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DiskUploader stores images on the local filesystem and serves them from
// a public base URL (the static file server mounts the same directory).
type DiskUploader struct {
	dir     string
	baseURL string
}

func NewDiskUploader(dir, baseURL string) (*DiskUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create uploads directory: %w", err)
	}

	return &DiskUploader{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (u *DiskUploader) Save(_ context.Context, name, _ string, r io.Reader, size int64) (string, error) {
	f, err := os.Create(filepath.Join(u.dir, filepath.Base(name)))
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, io.LimitReader(r, size)); err != nil {
		os.Remove(f.Name())
		return "", err
	}

	return u.baseURL + "/" + name, nil
}
