// Package cache memoizes intake results keyed by content fingerprint. The
// cache is bounded, evicts by oldest timestamp, expires entries after a
// configurable max-age and persists itself through the key-value
// collaborator on every write.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HRC-Manu/bewerbungs-core/internal/store"
)

const (
	// DefaultCapacity bounds the number of live entries.
	DefaultCapacity = 50

	// DefaultTextMaxAge is the lifetime of extracted-text entries.
	DefaultTextMaxAge = 7 * 24 * time.Hour

	// DefaultStructuredMaxAge is the lifetime of structured results.
	DefaultStructuredMaxAge = 24 * time.Hour
)

// Entry is one cached value with its creation time.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	Timestamp time.Time       `json:"timestamp"`
}

// Cache is a bounded, persisted result cache. Safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	name     string
	entries  map[string]Entry
	capacity int
	maxAge   time.Duration
	kv       store.KV
	now      func() time.Time
	logger   *zap.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithCapacity bounds the entry count.
func WithCapacity(capacity int) Option {
	return func(c *Cache) { c.capacity = capacity }
}

// WithMaxAge sets the entry lifetime.
func WithMaxAge(maxAge time.Duration) Option {
	return func(c *Cache) { c.maxAge = maxAge }
}

// WithClock injects a time source.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

// New builds a cache persisted under name in kv and restores any previous
// snapshot. A corrupt snapshot is discarded, not an error.
func New(ctx context.Context, name string, kv store.KV, opts ...Option) *Cache {
	c := &Cache{
		name:     name,
		entries:  make(map[string]Entry),
		capacity: DefaultCapacity,
		maxAge:   DefaultStructuredMaxAge,
		kv:       kv,
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.restore(ctx)
	return c
}

// Get returns the cached value for key if present and still fresh.
// Expired entries are dropped on access.
func (c *Cache) Get(ctx context.Context, key string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.Timestamp) >= c.maxAge {
		delete(c.entries, key)
		c.persist(ctx)
		return nil, false
	}
	return entry.Value, true
}

// GetInto decodes the cached value for key into out.
func (c *Cache) GetInto(ctx context.Context, key string, out any) bool {
	raw, ok := c.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Warn("cached value did not decode, dropping", zap.String("key", key), zap.Error(err))
		c.mu.Lock()
		delete(c.entries, key)
		c.persist(ctx)
		c.mu.Unlock()
		return false
	}
	return true
}

// Put stores value under key, evicting the oldest entry first when the
// cache is at capacity. The whole map is synchronously persisted; a full
// backing store clears the cache instead of failing the put.
func (c *Cache) Put(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		for c.capacity > 0 && len(c.entries) >= c.capacity {
			c.evictOldestLocked()
		}
	}
	c.entries[key] = Entry{Value: raw, Timestamp: c.now()}
	c.persist(ctx)
	return nil
}

// Clear drops every entry and the persisted snapshot.
func (c *Cache) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked(ctx)
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) evictOldestLocked() {
	oldestKey := ""
	var oldest time.Time
	first := true
	for key, entry := range c.entries {
		if first || entry.Timestamp.Before(oldest) {
			oldestKey = key
			oldest = entry.Timestamp
			first = false
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *Cache) clearLocked(ctx context.Context) {
	c.entries = make(map[string]Entry)
	if err := c.kv.Remove(ctx, c.name); err != nil {
		c.logger.Warn("failed to remove persisted cache", zap.String("cache", c.name), zap.Error(err))
	}
}

// persist writes the entire map to the KV collaborator. Quota exhaustion
// clears the cache and continues; other failures are logged only, since
// the in-memory cache stays valid.
func (c *Cache) persist(ctx context.Context) {
	raw, err := json.Marshal(c.entries)
	if err != nil {
		c.logger.Warn("failed to serialize cache", zap.String("cache", c.name), zap.Error(err))
		return
	}
	if err := c.kv.Set(ctx, c.name, string(raw)); err != nil {
		if errors.Is(err, store.ErrQuotaExceeded) {
			c.logger.Warn("storage quota exceeded, clearing cache", zap.String("cache", c.name))
			c.clearLocked(ctx)
			return
		}
		c.logger.Warn("failed to persist cache", zap.String("cache", c.name), zap.Error(err))
	}
}

func (c *Cache) restore(ctx context.Context) {
	raw, ok, err := c.kv.Get(ctx, c.name)
	if err != nil || !ok {
		return
	}
	var entries map[string]Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		c.logger.Warn("persisted cache is corrupt, starting empty", zap.String("cache", c.name), zap.Error(err))
		return
	}
	c.entries = entries
}
