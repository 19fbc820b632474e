package cache

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestResultKey(t *testing.T) {
	k1 := ResultKey("Policy Number: P-1", "pattern")
	k2 := ResultKey("Policy Number: P-1", "pattern")
	if k1 != k2 {
		t.Error("same document and mode must produce the same key")
	}
	if !strings.HasPrefix(k1, "fnoltriage:v1:") {
		t.Errorf("key missing namespace prefix: %s", k1)
	}

	if ResultKey("Policy Number: P-2", "pattern") == k1 {
		t.Error("different documents must produce different keys")
	}
	if ResultKey("Policy Number: P-1", "gemini/gemini-1.5-flash") == k1 {
		t.Error("different extraction modes must produce different keys")
	}

	// Mode and text are separated in the preimage, so shifting bytes between
	// them cannot collide.
	if ResultKey("atternP-1", "p") == ResultKey("P-1", "pattern") {
		t.Error("mode/text boundary is ambiguous")
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := ResultKey("doc", "pattern")
	if err := c.Set(key, []byte("result"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, found := c.Get(key)
	if !found || !bytes.Equal(got, []byte("result")) {
		t.Errorf("expected result, got %q (found=%v)", got, found)
	}

	if err := c.Delete(key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found := c.Get(key); found {
		t.Error("expected miss after delete")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	key := ResultKey("doc", "pattern")
	if err := c.Set(key, []byte("result"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get(key); found {
		t.Error("expected entry to expire")
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	key := ResultKey("doc", "pattern")
	if err := c.Set(key, []byte(`{"recommendedRoute":"Fast-track"}`), 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	// A fresh instance over the same directory sees the entry.
	reopened := NewDiskCache(dir, time.Hour)
	got, found := reopened.Get(key)
	if !found || !bytes.Contains(got, []byte("Fast-track")) {
		t.Errorf("expected persisted entry, got %q (found=%v)", got, found)
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, found := reopened.Get(key); found {
		t.Error("expected miss after clear")
	}
}

func TestDiskCache_Expiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	key := ResultKey("doc", "pattern")
	if err := c.Set(key, []byte("result"), 10*time.Millisecond); err != nil {
		t.Fatalf("set: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get(key); found {
		t.Error("expected entry to expire")
	}
}

func TestLayeredCache_DiskPromotion(t *testing.T) {
	dir := t.TempDir()

	// Seed disk only, then read through a fresh layered cache: the value must
	// come back and be promoted to memory.
	seed := NewDiskCache(dir, time.Hour)
	key := ResultKey("doc", "pattern")
	if err := seed.Set(key, []byte("result"), 0); err != nil {
		t.Fatalf("seed disk: %v", err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	got, found := layered.Get(key)
	if !found || !bytes.Equal(got, []byte("result")) {
		t.Fatalf("expected disk hit through layered cache, got %q (found=%v)", got, found)
	}

	// Remove the disk entry; a memory hit proves promotion happened.
	if err := seed.Delete(key); err != nil {
		t.Fatalf("delete disk entry: %v", err)
	}
	if _, found := layered.Get(key); !found {
		t.Error("expected promoted entry in memory after disk delete")
	}
}

func TestLayeredCache_Delete(t *testing.T) {
	layered := NewLayeredCache(time.Minute, t.TempDir(), time.Hour)

	key := ResultKey("doc", "pattern")
	if err := layered.Set(key, []byte("result"), 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := layered.Delete(key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, found := layered.Get(key); found {
		t.Error("expected miss after delete")
	}
}
