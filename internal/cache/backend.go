package cache

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Backend.Get when no value exists for the key.
var ErrNotFound = errors.New("cache: key not found")

// Backend is the key-value space snapshots are persisted in. Implementations
// must be safe for concurrent use; single-key operations are assumed atomic.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}
