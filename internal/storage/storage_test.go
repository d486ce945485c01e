package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openAll(t *testing.T) map[string]Store {
	t.Helper()
	stores := make(map[string]Store)
	for _, backend := range []string{BackendFile, BackendSQLite, BackendMemory} {
		s, err := Open(backend, t.TempDir())
		if err != nil {
			t.Fatalf("Open(%q) failed: %v", backend, err)
		}
		t.Cleanup(func() { _ = s.Close() })
		stores[backend] = s
	}
	return stores
}

func TestStoreGetSet(t *testing.T) {
	ctx := context.Background()
	for name, s := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
				t.Fatalf("Get(missing) = ok %v, err %v; want false, nil", ok, err)
			}
			if err := s.Set(ctx, "progress", `{"index":1}`); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			if err := s.Set(ctx, "progress", `{"index":2}`); err != nil {
				t.Fatalf("second Set failed: %v", err)
			}
			got, ok, err := s.Get(ctx, "progress")
			if err != nil || !ok {
				t.Fatalf("Get(progress) = ok %v, err %v", ok, err)
			}
			if got != `{"index":2}` {
				t.Errorf("Get(progress) = %q, want overwritten value", got)
			}
		})
	}
}

func TestStoreRejectsInvalidKeys(t *testing.T) {
	ctx := context.Background()
	keys := []string{
		"",
		"../../../etc/passwd",
		"/etc/passwd",
		"..\\..\\windows",
		"a/b",
		"./session",
		"session\x00.txt",
		"dots..inside",
	}
	for name, s := range openAll(t) {
		for _, key := range keys {
			t.Run(name+"_"+key, func(t *testing.T) {
				if err := s.Set(ctx, key, "x"); !errors.Is(err, ErrInvalidKey) {
					t.Errorf("Set(%q) err = %v, want ErrInvalidKey", key, err)
				}
				if _, _, err := s.Get(ctx, key); !errors.Is(err, ErrInvalidKey) {
					t.Errorf("Get(%q) err = %v, want ErrInvalidKey", key, err)
				}
			})
		}
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	if _, err := Open("redis", t.TempDir()); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open(redis) err = %v, want ErrUnknownBackend", err)
	}
}

func TestFileStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "vocab-trainer.progress", "saved"); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, "vocab-trainer.progress.json")); err != nil {
		t.Errorf("expected value file on disk: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}

	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, ok, err := reopened.Get(ctx, "vocab-trainer.progress")
	if err != nil || !ok || got != "saved" {
		t.Errorf("reopened Get = %q, %v, %v", got, ok, err)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "progress", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewSQLiteStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	got, ok, err := reopened.Get(ctx, "progress")
	if err != nil || !ok || got != "v1" {
		t.Errorf("reopened Get = %q, %v, %v", got, ok, err)
	}
}

func TestFileStoreHonoursCancelledContext(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Set(ctx, "progress", "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Set with cancelled ctx err = %v", err)
	}
}
