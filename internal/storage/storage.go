package storage

import (
	"context"
	"io"
)

const DefaultContentType = "application/octet-stream"

// Blob is a stored photo. Callers must close Body.
type Blob struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// BlobStore is key-addressed byte storage that keeps the content type given at
// upload time. Get returns types.ErrBlobNotFound for unknown keys.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Get(ctx context.Context, key string) (*Blob, error)
	Delete(ctx context.Context, key string) error
}

func contentTypeOrDefault(contentType string) string {
	if contentType == "" {
		return DefaultContentType
	}
	return contentType
}
