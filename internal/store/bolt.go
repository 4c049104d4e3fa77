package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const sessionBucket = "sessions"

// Bolt stores sessions in a BoltDB bucket.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens a BoltDB-backed store at the provided path.
func OpenBolt(path string) (*Bolt, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(sessionBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create session bucket: %w", err)
	}
	return &Bolt{db: db}, nil
}

// Load fetches the blob for userID.
func (b *Bolt) Load(ctx context.Context, userID string) ([]byte, error) {
	if err := checkKey(ctx, userID); err != nil {
		return nil, err
	}
	var blob []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket is missing")
		}
		payload := bucket.Get([]byte(userID))
		if payload == nil {
			return ErrNotFound
		}
		// payload is only valid inside the transaction.
		blob = append([]byte(nil), payload...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blob, nil
}

// Save replaces the blob for userID.
func (b *Bolt) Save(ctx context.Context, userID string, blob []byte) error {
	if err := checkKey(ctx, userID); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket is missing")
		}
		return bucket.Put([]byte(userID), blob)
	})
}

// Delete removes the blob for userID.
func (b *Bolt) Delete(ctx context.Context, userID string) error {
	if err := checkKey(ctx, userID); err != nil {
		return err
	}
	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sessionBucket))
		if bucket == nil {
			return fmt.Errorf("session bucket is missing")
		}
		return bucket.Delete([]byte(userID))
	})
}

// Close closes the underlying BoltDB database.
func (b *Bolt) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
