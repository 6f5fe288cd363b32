package object

import (
	"context"
	"io"
)

// Object describes a stored blob.
type Object struct {
	Key       string
	SizeBytes int64
	MimeType  string
}

// ObjectStore saves and retrieves uploaded files, namespaced per user.
type ObjectStore interface {
	Save(ctx context.Context, userID, fileName string, r io.Reader) (Object, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
