package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestKV(t *testing.T) *SQLiteKV {
	t.Helper()
	kv, err := NewSQLiteKV(filepath.Join(t.TempDir(), "chits.db"))
	if err != nil {
		t.Fatalf("NewSQLiteKV() error: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestSQLiteKV_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	kv := newTestKV(t)

	if _, ok, err := kv.Get(ctx, "gts_chits_groups"); err != nil || ok {
		t.Fatalf("Get(unset) = ok %v, err %v", ok, err)
	}

	if err := kv.Set(ctx, "gts_chits_groups", `[{"id":"g1"}]`); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	v, ok, err := kv.Get(ctx, "gts_chits_groups")
	if err != nil || !ok || v != `[{"id":"g1"}]` {
		t.Fatalf("Get() = %q, ok %v, err %v", v, ok, err)
	}

	// Upsert overwrites.
	if err := kv.Set(ctx, "gts_chits_groups", `[]`); err != nil {
		t.Fatalf("Set(overwrite) error: %v", err)
	}
	v, _, _ = kv.Get(ctx, "gts_chits_groups")
	if v != `[]` {
		t.Errorf("Get() after overwrite = %q", v)
	}

	if err := kv.Delete(ctx, "gts_chits_groups"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "gts_chits_groups"); ok {
		t.Error("Get() after delete reported the key present")
	}
}

func TestSQLiteKV_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chits.db")

	kv, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := kv.Set(ctx, "gts_chits_upi", "gts@upi"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening also re-runs migrations, which must be a no-op.
	kv2, err := NewSQLiteKV(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer kv2.Close()

	v, ok, err := kv2.Get(ctx, "gts_chits_upi")
	if err != nil || !ok || v != "gts@upi" {
		t.Errorf("Get() after reopen = %q, ok %v, err %v", v, ok, err)
	}
}
