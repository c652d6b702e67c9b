package mediaservice

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioUploader stores images in an S3-compatible bucket.
type MinioUploader struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

func NewMinioUploader(endpoint, accessKey, secretKey, bucket, baseURL string, useSSL bool) (*MinioUploader, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create minio client: %w", err)
	}

	return &MinioUploader{
		client:  client,
		bucket:  bucket,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (u *MinioUploader) Save(ctx context.Context, name, contentType string, r io.Reader, size int64) (string, error) {
	_, err := u.client.PutObject(ctx, u.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to bucket: %w", err)
	}

	return u.baseURL + "/" + name, nil
}
