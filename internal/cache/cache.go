package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Clock abstracts time for expiry checks.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

type entry[V any] struct {
	value     V
	cachedAt  time.Time
	expiresAt time.Time
	hits      int
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries    int     `json:"entries"`
	MaxEntries int     `json:"max_entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	HitRatio   float64 `json:"hit_ratio"`
	TTLSeconds float64 `json:"ttl_seconds"`
}

// Cache memoizes computed values per key for a fixed TTL.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	ttl        time.Duration
	maxEntries int
	clock      Clock
	group      singleflight.Group
	hits       int64
	misses     int64

	// computeTimeout bounds a detached compute; zero means unbounded.
	computeTimeout time.Duration
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	clock          Clock
	computeTimeout time.Duration
}

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithComputeTimeout bounds every compute, independent of caller contexts.
func WithComputeTimeout(d time.Duration) Option {
	return func(o *options) { o.computeTimeout = d }
}

// New creates a cache. maxEntries <= 0 disables storage, every Get computes.
func New[V any](ttl time.Duration, maxEntries int, opts ...Option) *Cache[V] {
	o := options{clock: SystemClock}
	for _, opt := range opts {
		opt(&o)
	}
	return &Cache[V]{
		entries:    make(map[string]entry[V]),
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      o.clock,

		computeTimeout: o.computeTimeout,
	}
}

// Lookup returns a live cached value.
func (c *Cache[V]) Lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !c.clock.Now().Before(e.expiresAt) {
		if ok {
			delete(c.entries, key)
		}
		c.misses++
		var zero V
		return zero, false
	}
	e.hits++
	c.entries[key] = e
	c.hits++
	return e.value, true
}

// Get returns the cached value for key or computes it. Concurrent misses on
// the same key share one compute. Errors are returned and not stored.
func (c *Cache[V]) Get(ctx context.Context, key string, compute func(context.Context) (V, error)) (V, error) {
	v, _, err := c.Load(ctx, key, compute)
	return v, err
}

type result[V any] struct {
	value  V
	stored bool
}

// Load is Get that also reports whether the value was served from a stored
// entry. Callers that waited on another caller's compute get hit == false.
//
// The compute ignores the cancellation of the caller that started it. Each
// caller stops waiting when its own ctx is done. WithComputeTimeout bounds it.
func (c *Cache[V]) Load(ctx context.Context, key string, compute func(context.Context) (V, error)) (V, bool, error) {
	var zero V
	if v, ok := c.Lookup(key); ok {
		return v, true, nil
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		// A caller that queued behind a finished compute finds it stored.
		if v, ok := c.peek(key); ok {
			return result[V]{value: v, stored: true}, nil
		}

		computeCtx := context.WithoutCancel(ctx)
		if c.computeTimeout > 0 {
			var cancel context.CancelFunc
			computeCtx, cancel = context.WithTimeout(computeCtx, c.computeTimeout)
			defer cancel()
		}
		v, err := compute(computeCtx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return result[V]{value: v}, nil
	})

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, false, res.Err
		}
		r := res.Val.(result[V])
		return r.value, r.stored, nil
	}
}

func (c *Cache[V]) peek(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || !c.clock.Now().Before(e.expiresAt) {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores a value, evicting the oldest entry when full.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries <= 0 {
		return
	}
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}

	now := c.clock.Now()
	c.entries[key] = entry[V]{value: value, cachedAt: now, expiresAt: now.Add(c.ttl)}
}

// Invalidate removes one key.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidateFunc removes every key for which match returns true and reports
// how many were removed.
func (c *Cache[V]) InvalidateFunc(match func(key string) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key := range c.entries {
		if match(key) {
			delete(c.entries, key)
			n++
		}
	}
	return n
}

// Purge removes every entry.
func (c *Cache[V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Stats returns cache statistics.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	ratio := float64(0)
	if total > 0 {
		ratio = float64(c.hits) / float64(total)
	}
	return Stats{
		Entries:    len(c.entries),
		MaxEntries: c.maxEntries,
		Hits:       c.hits,
		Misses:     c.misses,
		HitRatio:   ratio,
		TTLSeconds: c.ttl.Seconds(),
	}
}

func (c *Cache[V]) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, e := range c.entries {
		if oldestKey == "" || e.cachedAt.Before(oldest) {
			oldestKey = key
			oldest = e.cachedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// SeasonsKey builds the cache key of a season range. Order is kept.
func SeasonsKey(seasons []int) string {
	parts := make([]string, len(seasons))
	for i, s := range seasons {
		parts[i] = strconv.Itoa(s)
	}
	return strings.Join(parts, ",")
}
