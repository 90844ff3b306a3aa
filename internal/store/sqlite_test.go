package store_test

import (
	"path/filepath"
	"testing"

	"github.com/dandelion9999/protein-floor-tracker/internal/store"
)

func newTestStore(t *testing.T) *store.SQLite {
	t.Helper()
	kv, err := store.Open(filepath.Join(t.TempDir(), "pftrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestGetMissingKeyIsNotAnError(t *testing.T) {
	t.Parallel()
	kv := newTestStore(t)

	value, ok, err := kv.Get("absent")
	if err != nil {
		t.Fatalf("get absent key: %v", err)
	}
	if ok || value != "" {
		t.Fatalf("expected missing key, got ok=%v value=%q", ok, value)
	}
}

func TestSetThenGetRoundTrips(t *testing.T) {
	t.Parallel()
	kv := newTestStore(t)

	if err := kv.Set("state", `{"entries":[]}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := kv.Get("state")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != `{"entries":[]}` {
		t.Fatalf("unexpected value: ok=%v value=%q", ok, value)
	}
}

func TestSetOverwritesExistingValue(t *testing.T) {
	t.Parallel()
	kv := newTestStore(t)

	if err := kv.Set("state", "one"); err != nil {
		t.Fatalf("first set: %v", err)
	}
	if err := kv.Set("state", "two"); err != nil {
		t.Fatalf("second set: %v", err)
	}
	value, ok, err := kv.Get("state")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || value != "two" {
		t.Fatalf("expected overwritten value, got ok=%v value=%q", ok, value)
	}
}

func TestSurvivesReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "pftrack.db")

	kv, err := store.Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := kv.Set("state", "persisted"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := store.Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	value, ok, err := reopened.Get("state")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if !ok || value != "persisted" {
		t.Fatalf("expected persisted value, got ok=%v value=%q", ok, value)
	}
}
