package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Key identifies one cached response: the route kind plus its symbol
// argument. Routes without an argument use an empty Symbol.
type Key struct {
	Route  string
	Symbol string
}

func (k Key) String() string {
	if k.Symbol == "" {
		return k.Route
	}
	return k.Route + "/" + k.Symbol
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Recorder is told about every lookup.
type Recorder interface {
	CacheLookup(route string, hit bool)
}

// LoadFunc produces a fresh value on a miss.
type LoadFunc func(ctx context.Context) (any, error)

// entry stores one value with its expiry.
type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is an in-memory TTL cache. Only successful loads are stored.
type Cache struct {
	clock        Clock
	recorder     Recorder
	singleFlight bool
	log          *zap.Logger

	mu    sync.RWMutex
	items map[Key]entry
	sf    singleflight.Group
}

type Option func(*Cache)

func WithClock(clock Clock) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(c *Cache) {
		c.recorder = r
	}
}

// WithSingleFlight controls whether concurrent misses on one key share a
// single load. It is on by default.
func WithSingleFlight(enabled bool) Option {
	return func(c *Cache) {
		c.singleFlight = enabled
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

func New(options ...Option) *Cache {
	c := &Cache{
		clock:        SystemClock{},
		singleFlight: true,
		log:          zap.NewNop(),
		items:        make(map[Key]entry),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Get returns the live value under key.
func (c *Cache) Get(key Key) (any, bool) {
	now := c.clock.Now()
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()
	if !ok || !now.Before(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key until now+ttl. A non-positive ttl stores nothing.
func (c *Cache) Set(key Key, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	expiry := c.clock.Now().Add(ttl)
	c.mu.Lock()
	c.items[key] = entry{value: value, expiresAt: expiry}
	c.mu.Unlock()
}

// GetOrLoad returns the live value under key, or calls load and stores its
// result for ttl. hit reports whether the value came from the cache. Errors
// from load are returned unchanged and never stored. A non-positive ttl
// bypasses the cache entirely.
func (c *Cache) GetOrLoad(ctx context.Context, key Key, ttl time.Duration, load LoadFunc) (value any, hit bool, err error) {
	if ttl <= 0 {
		value, err = load(ctx)
		return value, false, err
	}

	if v, ok := c.Get(key); ok {
		c.record(key, true)
		return v, true, nil
	}
	c.record(key, false)

	fill := func(ctx context.Context) (any, error) {
		// Another caller may have filled the entry while this one waited.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := load(ctx)
		if err != nil {
			c.log.Debug("load failed", zap.Stringer("key", key), zap.Error(err))
			return nil, err
		}
		c.Set(key, v, ttl)
		return v, nil
	}

	if !c.singleFlight {
		value, err = fill(ctx)
		return value, false, err
	}

	// The shared load outlives any one caller; its own timeouts bound it.
	shared := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(key.String(), func() (any, error) {
		return fill(shared)
	})
	select {
	case res := <-ch:
		if res.Shared {
			c.log.Debug("coalesced load", zap.Stringer("key", key))
		}
		return res.Val, false, res.Err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Len counts stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Purge drops expired entries and returns how many were removed.
func (c *Cache) Purge() int {
	now := c.clock.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.items {
		if !now.Before(e.expiresAt) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

func (c *Cache) record(key Key, hit bool) {
	if c.recorder != nil {
		c.recorder.CacheLookup(key.Route, hit)
	}
}
