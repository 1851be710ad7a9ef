package cache

import (
	"context"
	"sync"
	"time"

	"github.com/talentgrid/searchd/pkg/metrics"
)

// Option applies a configuration option to the MemoryCache.
type Option func(*MemoryCache)

// WithTTL overrides the default freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *MemoryCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithSweepInterval enables a background sweep that evicts expired entries
// to bound memory. Expiry itself is lazy; the sweep only reclaims space.
func WithSweepInterval(interval time.Duration) Option {
	return func(c *MemoryCache) {
		if interval > 0 {
			c.sweepInterval = interval
		}
	}
}

// WithClock sets the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *MemoryCache) {
		if now != nil {
			c.now = now
		}
	}
}

// timed wraps an entry with its expiry deadline.
type timed struct {
	entry   Entry
	expires time.Time
}

// MemoryCache implements Cache with a mutex-guarded map and lazy expiry.
// Suitable for single-process deployments.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]timed

	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewMemoryCache creates an in-memory cache with configuration options.
func NewMemoryCache(opts ...Option) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]timed),
		ttl:     DefaultTTL,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sweepInterval > 0 {
		go c.sweep()
	}
	return c
}

// Get returns the entry for key if present and fresh. Locks are held only
// for the map access, never across any other work.
func (c *MemoryCache) Get(_ context.Context, key string) (Entry, bool, error) {
	c.mu.RLock()
	t, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(t.expires) {
		return Entry{}, false, nil
	}
	return t.entry, true, nil
}

// Put stores an entry under key. Last writer wins.
func (c *MemoryCache) Put(_ context.Context, key string, e Entry) error {
	t := timed{entry: e, expires: c.now().Add(c.ttl)}
	c.mu.Lock()
	c.entries[key] = t
	size := len(c.entries)
	c.mu.Unlock()
	metrics.UpdateCacheSize(size)
	return nil
}

// Invalidate flushes the whole cache. Per-owner tracking would be an
// optimization; a full flush satisfies the invalidation contract.
func (c *MemoryCache) Invalidate(_ context.Context, _ string) error {
	c.mu.Lock()
	c.entries = make(map[string]timed)
	c.mu.Unlock()
	metrics.UpdateCacheSize(0)
	metrics.RecordCacheInvalidation()
	return nil
}

// Close stops the background sweep if one is running.
func (c *MemoryCache) Close() error {
	c.stopOnce.Do(func() { close(c.stopCh) })
	return nil
}

func (c *MemoryCache) sweep() {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			now := c.now()
			c.mu.Lock()
			for k, t := range c.entries {
				if now.After(t.expires) {
					delete(c.entries, k)
				}
			}
			size := len(c.entries)
			c.mu.Unlock()
			metrics.UpdateCacheSize(size)
		}
	}
}
