// internal/service/upload/signer.go
package upload

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
)

// DestinationSigner mints a short-lived PUT destination for one object.
type DestinationSigner interface {
	SignPut(ctx context.Context, objectName string) (string, error)
}

// MinioSigner signs PUT URLs against a single MinIO bucket.
type MinioSigner struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

func NewMinioSigner(client *minio.Client, bucket string) *MinioSigner {
	return &MinioSigner{client: client, bucket: bucket, expiry: 15 * time.Minute}
}

func (s *MinioSigner) SignPut(ctx context.Context, objectName string) (string, error) {
	u, err := s.client.PresignedPutObject(ctx, s.bucket, objectName, s.expiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for %s: %w", objectName, err)
	}
	return u.String(), nil
}

// EnsureBucket creates the bucket if it does not exist yet. Called once at
// startup.
func (s *MinioSigner) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}
