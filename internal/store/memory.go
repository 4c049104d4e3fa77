package store

import (
	"context"
	"sync"
)

// Memory keeps sessions in a map. It is used by tests and the memory backend.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// Load returns a copy of the stored blob.
func (m *Memory) Load(ctx context.Context, userID string) ([]byte, error) {
	if err := checkKey(ctx, userID); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

// Save replaces the blob for userID.
func (m *Memory) Save(ctx context.Context, userID string, blob []byte) error {
	if err := checkKey(ctx, userID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[userID] = append([]byte(nil), blob...)
	return nil
}

// Delete removes the blob for userID if present.
func (m *Memory) Delete(ctx context.Context, userID string) error {
	if err := checkKey(ctx, userID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, userID)
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }
