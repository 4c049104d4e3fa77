package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	lite, err := OpenSQLite(filepath.Join(dir, "s.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	bolt, err := OpenBolt(filepath.Join(dir, "s.bolt"))
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	all := map[string]Store{
		"memory":      NewMemory(),
		"sqlite":      lite,
		"bolt":        bolt,
		"lz4(memory)": Compressed(NewMemory()),
	}
	t.Cleanup(func() {
		for _, s := range all {
			_ = s.Close()
		}
	})
	return all
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Load(ctx, "alice"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			first := []byte(`{"turn":1}`)
			if err := s.Save(ctx, "alice", first); err != nil {
				t.Fatalf("save: %v", err)
			}
			second := bytes.Repeat([]byte("abc"), 500)
			if err := s.Save(ctx, "alice", second); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err := s.Load(ctx, "alice")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if !bytes.Equal(got, second) {
				t.Fatalf("expected overwritten blob, got %d bytes", len(got))
			}
			if _, err := s.Load(ctx, "bob"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("users must be isolated, got %v", err)
			}
			if err := s.Delete(ctx, "alice"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, err := s.Load(ctx, "alice"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestStoreRejectsEmptyUserAndCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Save(context.Background(), " ", []byte("x")); err == nil {
				t.Fatalf("expected error for blank user id")
			}
			if _, err := s.Load(ctx, "alice"); !errors.Is(err, context.Canceled) {
				t.Fatalf("expected context.Canceled, got %v", err)
			}
		})
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	blob := []byte("abc")
	if err := m.Save(ctx, "u", blob); err != nil {
		t.Fatal(err)
	}
	blob[0] = 'z'
	got, _ := m.Load(ctx, "u")
	got[1] = 'z'
	again, _ := m.Load(ctx, "u")
	if string(again) != "abc" {
		t.Fatalf("stored blob was aliased: %q", again)
	}
}

func TestCompressedStoresFramedData(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	s := Compressed(inner)
	payload := bytes.Repeat([]byte("land "), 200)
	if err := s.Save(ctx, "u", payload); err != nil {
		t.Fatal(err)
	}
	raw, err := inner.Load(ctx, "u")
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) >= len(payload) {
		t.Fatalf("expected compressed blob smaller than %d, got %d", len(payload), len(raw))
	}
	if err := inner.Save(ctx, "bad", []byte("not lz4")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, "bad"); err == nil {
		t.Fatalf("expected decompress error")
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{BackendSQLite, BackendBolt, BackendMemory} {
		s, err := Open(backend, dir, true)
		if err != nil {
			t.Fatalf("open %s: %v", backend, err)
		}
		if err := s.Save(context.Background(), "u", []byte("v")); err != nil {
			t.Fatalf("%s save: %v", backend, err)
		}
		_ = s.Close()
	}
	if _, err := Open("redis", dir, false); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(context.Background(), "u", []byte("kept")); err != nil {
		t.Fatal(err)
	}
	_ = s.Close()
	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	got, err := s.Load(context.Background(), "u")
	if err != nil || string(got) != "kept" {
		t.Fatalf("expected kept, got %q (%v)", got, err)
	}
}
