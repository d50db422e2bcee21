// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package params

import (
	"context"
	"testing"
)

func TestDirRoundTrip(t *testing.T) {
	store, err := NewDir(t.TempDir() + "/nested/params")
	if err != nil {
		t.Fatalf("NewDir: %s", err)
	}
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get missing: ok=%v err=%v", ok, err)
	}

	// Keys with path separators and unicode must be safe.
	key := "env/prod/unittest_resource/ünïcode"
	if err := store.Set(ctx, key, `{"state": {}}`); err != nil {
		t.Fatalf("Set: %s", err)
	}
	value, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if value != `{"state": {}}` {
		t.Errorf("wrong value %q", value)
	}

	if err := store.Set(ctx, key, "v2"); err != nil {
		t.Fatalf("Set overwrite: %s", err)
	}
	if value, _, _ := store.Get(ctx, key); value != "v2" {
		t.Errorf("overwrite lost: %q", value)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %s", err)
	}
	if _, ok, _ := store.Get(ctx, key); ok {
		t.Error("key still present after Delete")
	}
	// Deleting again is a no-op.
	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete (again): %s", err)
	}
}

func TestDirKeysDoNotCollide(t *testing.T) {
	store, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	if err := store.Set(ctx, "a/b", "one"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(ctx, "a_b", "two"); err != nil {
		t.Fatal(err)
	}

	one, _, _ := store.Get(ctx, "a/b")
	two, _, _ := store.Get(ctx, "a_b")
	if one != "one" || two != "two" {
		t.Errorf("keys collided: %q %q", one, two)
	}
}
