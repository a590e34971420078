package session

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/me/taskdeck/internal/logging"
)

func TestSQLiteKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := NewSQLiteKV(":memory:", logging.Discard())
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	defer kv.Close()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Errorf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := kv.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := kv.Get(ctx, "k"); !ok || v != "v1" {
		t.Errorf("Get(k) = (%q, %v), want (v1, true)", v, ok)
	}

	// Upsert replaces.
	if err := kv.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("set again: %v", err)
	}
	if v, _, _ := kv.Get(ctx, "k"); v != "v2" {
		t.Errorf("Get(k) = %q, want v2", v)
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Error("key still present after delete")
	}

	// Deleting an absent key is a no-op.
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Errorf("delete absent key: %v", err)
	}
}

func TestSQLiteKVCreatesParentDir(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "state.db")

	kv, err := NewSQLiteKV(dbPath, logging.Discard())
	if err != nil {
		t.Fatalf("open kv at %s: %v", dbPath, err)
	}
	defer kv.Close()

	ctx := context.Background()
	if err := kv.Set(ctx, "k", "v"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := kv.Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("Get(k) = (%q, %v), want (v, true)", v, ok)
	}
}
