package storage

import (
	"context"
	"errors"
)

// SnapshotStore persists opaque cart snapshots by key.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Close() error
}

var ErrSnapshotNotFound = errors.New("snapshot not found")
