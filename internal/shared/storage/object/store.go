package object

import (
	"context"
	"errors"
	"io"
)

// ErrObjectExists is returned by Put when the key is already occupied.
// Storage keys embed a millisecond timestamp, so a collision means two
// writers raced on the same key and the later one must lose.
var ErrObjectExists = errors.New("object already exists")

// ObjectStore defines the contract for saving and retrieving binary objects.
// Keys are full storage paths decided by the caller.
type ObjectStore interface {
	// Put writes the reader to key and returns the number of bytes written.
	// It fails with ErrObjectExists if the key is already present.
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// PublicURL returns the browser-reachable URL for a stored key.
	PublicURL(key string) string
}
