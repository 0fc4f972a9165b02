package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("object not found in storage")

// BlobStorage defines the object storage operations the session store needs.
type BlobStorage interface {
	// PutObject stores body under objectKey, replacing any previous object.
	PutObject(ctx context.Context, objectKey string, contentType string, body []byte) error

	// GetObject returns the object body or ErrObjectNotFound.
	GetObject(ctx context.Context, objectKey string) ([]byte, error)

	// DeleteObject removes an object. Deleting a missing key is not an error.
	DeleteObject(ctx context.Context, objectKey string) error
}
