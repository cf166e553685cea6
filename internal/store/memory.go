package store

import (
	"sync"
	"time"

	"github.com/i474232898/city-weather/internal/weather"
)

// DefaultTTL is how long a provider response is served from memory.
const DefaultTTL = 300 * time.Second

// MemoryCache is a concurrency-safe in-memory cache of provider responses,
// keyed by the exact city string.
type MemoryCache struct {
	mu sync.RWMutex

	// key: city as submitted
	data map[string]weather.RawResponse

	ttl time.Duration
	now func() time.Time
}

// Option customizes a MemoryCache.
type Option func(*MemoryCache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *MemoryCache) {
		c.now = now
	}
}

// NewMemoryCache creates a MemoryCache. A ttl <= 0 falls back to DefaultTTL.
func NewMemoryCache(ttl time.Duration, opts ...Option) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &MemoryCache{
		data: make(map[string]weather.RawResponse),
		ttl:  ttl,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the entry for city if it is younger than the TTL.
// A stale entry is evicted.
func (c *MemoryCache) Get(city string) (weather.RawResponse, bool) {
	c.mu.RLock()
	resp, ok := c.data[city]
	c.mu.RUnlock()
	if !ok {
		return weather.RawResponse{}, false
	}

	if c.fresh(resp) {
		return resp, true
	}

	c.mu.Lock()
	// Re-check under the write lock; a concurrent Put may have refreshed it.
	if cur, ok := c.data[city]; ok && !c.fresh(cur) {
		delete(c.data, city)
	}
	c.mu.Unlock()
	return weather.RawResponse{}, false
}

// Put stores resp under city, replacing any prior entry, and returns it as
// stored. FetchedAt is always stamped with the cache's own clock.
func (c *MemoryCache) Put(city string, resp weather.RawResponse) weather.RawResponse {
	resp.FetchedAt = c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[city] = resp
	return resp
}

// Purge drops every stale entry and reports how many were removed.
func (c *MemoryCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for city, resp := range c.data {
		if !c.fresh(resp) {
			delete(c.data, city)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries, stale or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func (c *MemoryCache) fresh(resp weather.RawResponse) bool {
	return c.now().Sub(resp.FetchedAt) < c.ttl
}
