package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/talentgrid/searchd/pkg/metrics"
)

// versionKey holds the current cache generation. Invalidation bumps it,
// which orphans every existing entry; orphans then age out via TTL.
const versionKey = "searchd:cache:version"

// RedisOption applies a configuration option to the RedisCache.
type RedisOption func(*RedisCache)

// WithRedisTTL overrides the default freshness window.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// RedisCache implements Cache on a shared Redis instance so multiple
// search processes see one result cache and one invalidation signal.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache parses redisURL, verifies connectivity, and returns a
// Redis-backed cache.
func NewRedisCache(ctx context.Context, redisURL string, opts ...RedisOption) (*RedisCache, error) {
	ropts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %q: %v", ErrBackend, redisURL, err)
	}
	client := redis.NewClient(ropts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: ping: %v", ErrBackend, err)
	}

	c := &RedisCache{client: client, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get returns the entry for key under the current cache generation.
func (c *RedisCache) Get(ctx context.Context, key string) (Entry, bool, error) {
	vkey, err := c.versionedKey(ctx, key)
	if err != nil {
		return Entry{}, false, err
	}
	raw, err := c.client.Get(ctx, vkey).Bytes()
	if err == redis.Nil {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("%w: get: %v", ErrBackend, err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// A corrupt entry is a miss, not a failure.
		return Entry{}, false, nil
	}
	return e, true, nil
}

// Put stores an entry under the current cache generation with the TTL.
func (c *RedisCache) Put(ctx context.Context, key string, e Entry) error {
	vkey, err := c.versionedKey(ctx, key)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrBackend, err)
	}
	if err := c.client.Set(ctx, vkey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %v", ErrBackend, err)
	}
	return nil
}

// Invalidate bumps the cache generation, conservatively orphaning every
// entry regardless of which owner changed. Orphans expire via their TTL.
func (c *RedisCache) Invalidate(ctx context.Context, _ string) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("%w: incr version: %v", ErrBackend, err)
	}
	metrics.RecordCacheInvalidation()
	return nil
}

// Close releases the underlying client.
func (c *RedisCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%w: close: %v", ErrBackend, err)
	}
	return nil
}

func (c *RedisCache) versionedKey(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", fmt.Errorf("%w: read version: %v", ErrBackend, err)
	}
	return fmt.Sprintf("searchd:v%d:%s", v, key), nil
}
