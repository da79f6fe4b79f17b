package model

import (
	"context"
	"io"
)

// Storage persists binary blobs such as user avatars.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	// URL returns the public URL an uploaded object is served from.
	URL(key string) string
}
