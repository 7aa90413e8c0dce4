package cache_query

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var ErrTypeMismatch = errors.New("cached value has unexpected type")

type Key = string

// BuildKey joins logical key segments, e.g. BuildKey("auth", "user", sid).
func BuildKey(parts ...string) Key {
	return strings.Join(parts, "/")
}

type FetchFunc func(ctx context.Context) (any, error)

type entry struct {
	value      any
	fetchedAt  time.Time
	staleAfter time.Duration
}

func (e *entry) fresh(now time.Time) bool {
	return now.Sub(e.fetchedAt) < e.staleAfter
}

// Cache memoizes fetch results per logical key.
//
// Guarantees: at most one in-flight fetch per key (concurrent callers
// attach to the same pending call), values younger than their staleness
// window are served without fetching, older values are served immediately
// while a background refresh runs, and explicit invalidation forces the
// next read to hit the fetcher.
type Cache struct {
	mu        sync.RWMutex
	entries   map[Key]*entry
	group     singleflight.Group
	logger    *slog.Logger
	retention time.Duration
}

func New(retention time.Duration) *Cache {
	return &Cache{
		entries:   make(map[Key]*entry),
		logger:    slog.Default(),
		retention: retention,
	}
}

// Get returns the cached value for key, fetching it if missing.
// A stale value is returned as-is and refreshed in the background;
// the caller never blocks on revalidation of a value it already has.
func (c *Cache) Get(ctx context.Context, key Key, staleAfter time.Duration, fetch FetchFunc) (any, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		if e.fresh(time.Now()) {
			return e.value, nil
		}
		go c.refresh(context.WithoutCancel(ctx), key, staleAfter, fetch)
		return e.value, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v, staleAfter)
		return v, nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// refresh revalidates a stale entry. The entry itself is detached from
// any single caller, so a cancelled request must not abort it.
func (c *Cache) refresh(ctx context.Context, key Key, staleAfter time.Duration, fetch FetchFunc) {
	_, err, _ := c.group.Do(key, func() (any, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v, staleAfter)
		return v, nil
	})
	if err != nil {
		c.logger.Warn("background refresh failed, keeping stale value",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// Peek returns the cached value only while it is still fresh. It never
// triggers a fetch.
func (c *Cache) Peek(key Key) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !e.fresh(time.Now()) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key Key, value any, staleAfter time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{
		value:      value,
		fetchedAt:  time.Now(),
		staleAfter: staleAfter,
	}
}

func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidatePrefix drops every entry under a logical prefix,
// e.g. all "savedMovies/<uid>" pages at once.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

// Keys lists the cached keys under a logical prefix.
func (c *Cache) Keys(prefix string) []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var keys []Key
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys
}

// Run drives periodic eviction until ctx is cancelled.
func (c *Cache) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.evict(time.Now())
		}
	}
}

func (c *Cache) evict(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if now.Sub(e.fetchedAt) > c.retention {
			delete(c.entries, k)
		}
	}
}

// Lookup is a typed wrapper over Cache.Get.
func Lookup[T any](ctx context.Context, c *Cache, key Key, staleAfter time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	v, err := c.Get(ctx, key, staleAfter, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := v.(T)
	if !ok {
		return zero, ErrTypeMismatch
	}
	return typed, nil
}
