package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	snapshotBucket = "snapshots"
	expiryBytes    = 8
)

var errBucketMissing = errors.New("snapshot bucket missing")

// boltStore keeps snapshot fingerprints in a single bucket, each value holding its expiry.
type boltStore struct {
	db              *bolt.DB
	ttl             time.Duration
	cleanupInterval time.Duration
	now             func() time.Time

	cleanupMu   sync.Mutex
	lastCleanup atomic.Int64
}

func openBolt(path string, opts Options) (*boltStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(snapshotBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	s := &boltStore{
		db:              db,
		ttl:             opts.SnapshotTTL,
		cleanupInterval: opts.CleanupInterval,
		now:             time.Now,
	}
	s.lastCleanup.Store(s.now().Unix())
	return s, nil
}

func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SeenSnapshot reports whether key was marked and has not expired yet. Expired
// entries found on lookup are deleted.
func (b *boltStore) SeenSnapshot(_ context.Context, key string) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}
	now := b.now()
	if err := b.sweep(now); err != nil {
		return false, err
	}

	var seen bool
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return errBucketMissing
		}
		raw := bucket.Get([]byte(key))
		if raw == nil {
			return nil
		}
		if expiry, ok := decodeExpiry(raw); ok && expiry.After(now) {
			seen = true
			return nil
		}
		return bucket.Delete([]byte(key))
	})
	return seen, err
}

func (b *boltStore) MarkSnapshot(_ context.Context, key string) error {
	if b == nil || b.db == nil {
		return nil
	}
	now := b.now()
	if err := b.sweep(now); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return errBucketMissing
		}
		return bucket.Put([]byte(key), encodeExpiry(now.Add(b.ttl)))
	})
}

// sweep drops expired fingerprints at most once per cleanup interval.
func (b *boltStore) sweep(now time.Time) error {
	if !b.sweepDue(now) {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()
	if !b.sweepDue(now) {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return errBucketMissing
		}
		c := bucket.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if expiry, ok := decodeExpiry(v); ok && expiry.After(now) {
				continue
			}
			if err := c.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sweep expired snapshots: %w", err)
	}
	b.lastCleanup.Store(now.Unix())
	return nil
}

func (b *boltStore) sweepDue(now time.Time) bool {
	last := time.Unix(b.lastCleanup.Load(), 0)
	return now.Sub(last) >= b.cleanupInterval
}

func (b *boltStore) count() (int, error) {
	n := 0
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return errBucketMissing
		}
		n = bucket.Stats().KeyN
		return nil
	})
	return n, err
}

func encodeExpiry(t time.Time) []byte {
	buf := make([]byte, expiryBytes)
	binary.BigEndian.PutUint64(buf, uint64(t.Unix()))
	return buf
}

func decodeExpiry(value []byte) (time.Time, bool) {
	if len(value) != expiryBytes {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
