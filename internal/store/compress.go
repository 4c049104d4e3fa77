package store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

type compressed struct {
	Store
}

// Compressed wraps s so blobs are lz4 framed at rest.
func Compressed(s Store) Store {
	return compressed{Store: s}
}

func (c compressed) Load(ctx context.Context, userID string) ([]byte, error) {
	blob, err := c.Store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(blob)))
	if err != nil {
		return nil, fmt.Errorf("decompress session: %w", err)
	}
	return out, nil
}

func (c compressed) Save(ctx context.Context, userID string, blob []byte) error {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(blob); err != nil {
		return fmt.Errorf("compress session: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compress session: %w", err)
	}
	return c.Store.Save(ctx, userID, buf.Bytes())
}
