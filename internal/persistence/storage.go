package persistence

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when the key has never been written.
var ErrNotFound = errors.New("snapshot not found")

// Storage is the durable key-value port the store persists snapshots
// through. The value is an opaque byte blob; backends never interpret it.
type Storage interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}
