package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Store remembers which market snapshots were already published.
type Store interface {
	Close() error
	SeenSnapshot(ctx context.Context, key string) (bool, error)
	MarkSnapshot(ctx context.Context, key string) error
}

// Options controls retention and connection details for the concrete backends.
type Options struct {
	SnapshotTTL     time.Duration
	CleanupInterval time.Duration

	RedisPassword string
	RedisDB       int
}

const (
	defaultSnapshotTTL     = 24 * time.Hour
	defaultCleanupInterval = 6 * time.Hour
)

// NewStore creates the configured storage backend. location is the bbolt file
// path or the redis address.
func NewStore(typ, location string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(location) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(location, opts)
	case "redis":
		if strings.TrimSpace(location) == "" {
			return nil, fmt.Errorf("redis storage requires an address")
		}
		return openRedis(location, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = defaultSnapshotTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                                       { return nil }
func (noopStore) SeenSnapshot(context.Context, string) (bool, error) { return false, nil }
func (noopStore) MarkSnapshot(context.Context, string) error         { return nil }
