package product

import (
	"context"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// MinIOStore adapts minio.Client to the objectStore interface.
type MinIOStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewMinIOStore constructs an adapter bound to one bucket and a fixed
// presign expiry window.
func NewMinIOStore(client *minio.Client, bucket string, expiry time.Duration) *MinIOStore {
	return &MinIOStore{client: client, bucket: bucket, expiry: expiry}
}

// Put stores an object under key with the declared content type.
func (s *MinIOStore) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// Remove deletes an object. Removing a key that does not exist succeeds.
func (s *MinIOStore) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

// PresignedGetURL mints a time-limited read URL for the object under key.
func (s *MinIOStore) PresignedGetURL(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
