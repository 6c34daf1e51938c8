package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestBoltStoreMarksAndExpiresSnapshots(t *testing.T) {
	ctx := context.Background()
	store, err := openBolt(filepath.Join(t.TempDir(), "nested", "cache.db"), Options{
		SnapshotTTL:     time.Minute,
		CleanupInterval: time.Hour,
	})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }

	seen, err := store.SeenSnapshot(ctx, "fp1")
	if err != nil || seen {
		t.Fatalf("expected unseen snapshot, seen=%v err=%v", seen, err)
	}
	if err := store.MarkSnapshot(ctx, "fp1"); err != nil {
		t.Fatalf("MarkSnapshot: %v", err)
	}
	seen, err = store.SeenSnapshot(ctx, "fp1")
	if err != nil || !seen {
		t.Fatalf("expected snapshot marked as seen, seen=%v err=%v", seen, err)
	}

	now = now.Add(2 * time.Minute)
	seen, err = store.SeenSnapshot(ctx, "fp1")
	if err != nil {
		t.Fatalf("SeenSnapshot after expiry: %v", err)
	}
	if seen {
		t.Fatalf("expected entry to expire")
	}
	if n, _ := store.count(); n != 0 {
		t.Fatalf("expired entry should be deleted on lookup, %d left", n)
	}
}

func TestBoltStoreSweepsOnInterval(t *testing.T) {
	ctx := context.Background()
	store, err := openBolt(filepath.Join(t.TempDir(), "cache.db"), Options{
		SnapshotTTL:     time.Minute,
		CleanupInterval: 10 * time.Minute,
	})
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }
	for _, key := range []string{"a", "b", "c"} {
		if err := store.MarkSnapshot(ctx, key); err != nil {
			t.Fatalf("MarkSnapshot %s: %v", key, err)
		}
	}

	now = now.Add(11 * time.Minute)
	if err := store.MarkSnapshot(ctx, "fresh"); err != nil {
		t.Fatalf("MarkSnapshot fresh: %v", err)
	}
	n, err := store.count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected only the fresh entry after sweep, got %d", n)
	}
}

func TestBoltStoreReopenKeepsEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	first, err := openBolt(path, normalizeOptions(Options{}))
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	if err := first.MarkSnapshot(ctx, "persisted"); err != nil {
		t.Fatalf("MarkSnapshot: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := openBolt(path, normalizeOptions(Options{}))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	seen, err := second.SeenSnapshot(ctx, "persisted")
	if err != nil || !seen {
		t.Fatalf("expected persisted entry, seen=%v err=%v", seen, err)
	}
}

func TestNewStore(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.MarkSnapshot(context.Background(), "x"); err != nil {
		t.Fatalf("noop MarkSnapshot: %v", err)
	}
	if seen, _ := store.SeenSnapshot(context.Background(), "x"); seen {
		t.Fatalf("noop store never reports a snapshot as seen")
	}

	bolt, err := NewStore(" BBolt ", filepath.Join(t.TempDir(), "db"), Options{})
	if err != nil {
		t.Fatalf("NewStore bbolt: %v", err)
	}
	bolt.Close()

	cases := []struct {
		typ, location string
	}{
		{"bbolt", ""},
		{"redis", " "},
		{"memcached", "x"},
	}
	for _, tc := range cases {
		if _, err := NewStore(tc.typ, tc.location, Options{}); err == nil {
			t.Errorf("NewStore(%q, %q): expected error", tc.typ, tc.location)
		}
	}
}
