package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache stores entries in Redis under a common key prefix.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to the Redis instance at url, for example
// "redis://localhost:6379/0". Keys are stored as prefix + key. The
// connection is established lazily on first use.
func NewRedisCache(url, prefix string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opts), prefix: prefix}, nil
}

func (c *RedisCache) key(k string) string { return c.prefix + k }

// wrap classifies a client error: redis.Nil passes through, anything else
// is a network failure worth retrying.
func wrap(err error) error {
	if err == nil || errors.Is(err, redis.Nil) {
		return err
	}
	return unreachable(err)
}

// Get retrieves a value, retrying transient failures.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := backoff.Retry(ctx, func(ctx context.Context) error {
		var err error
		data, err = c.client.Get(ctx, c.key(key)).Bytes()
		return wrap(err)
	})
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value with Redis-side expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return backoff.Retry(ctx, func(ctx context.Context) error {
		return wrap(c.client.Set(ctx, c.key(key), data, ttl).Err())
	})
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return wrap(c.client.Del(ctx, c.key(key)).Err())
}

// Clear deletes every key under the prefix. An empty prefix clears
// nothing, so a shared database is never flushed by accident.
func (c *RedisCache) Clear(ctx context.Context) error {
	if c.prefix == "" {
		return nil
	}
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return wrap(err)
	}
	if len(keys) == 0 {
		return nil
	}
	return wrap(c.client.Del(ctx, keys...).Err())
}

// Close closes the client connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
