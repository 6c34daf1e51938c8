package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "coingecko:snapshot:"

// redisCmdable is the part of *redis.Client the store relies on.
type redisCmdable interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

// redisStore lets several harvester instances share one dedupe set. Expiry is left to redis.
type redisStore struct {
	client redisCmdable
	ttl    time.Duration
}

func openRedis(addr string, opts Options) (*redisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: opts.RedisPassword,
		DB:       opts.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return newRedisStore(client, opts.SnapshotTTL), nil
}

func newRedisStore(client redisCmdable, ttl time.Duration) *redisStore {
	return &redisStore{client: client, ttl: ttl}
}

func (r *redisStore) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

func (r *redisStore) SeenSnapshot(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (r *redisStore) MarkSnapshot(ctx context.Context, key string) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, 1, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
