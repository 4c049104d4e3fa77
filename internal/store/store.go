// Package store persists serialized game sessions keyed by user id.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates the user has no saved session.
var ErrNotFound = errors.New("session not found")

// Store saves opaque session blobs. Implementations are safe for concurrent use.
type Store interface {
	Load(ctx context.Context, userID string) ([]byte, error)
	Save(ctx context.Context, userID string, blob []byte) error
	Delete(ctx context.Context, userID string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

// Open builds the configured backend under dir, optionally wrapped with lz4
// compression.
func Open(backend, dir string, compress bool) (Store, error) {
	var (
		s   Store
		err error
	)
	switch strings.ToLower(backend) {
	case BackendSQLite, "":
		s, err = OpenSQLite(filepath.Join(dir, "sessions.db"))
	case BackendBolt:
		s, err = OpenBolt(filepath.Join(dir, "sessions.bolt"))
	case BackendMemory:
		s = NewMemory()
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
	if err != nil {
		return nil, err
	}
	if compress {
		s = Compressed(s)
	}
	return s, nil
}

func checkKey(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id is required")
	}
	return nil
}
