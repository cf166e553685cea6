package store

import (
	"sync"
	"testing"
	"time"

	"github.com/i474232898/city-weather/internal/weather"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*MemoryCache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	return NewMemoryCache(ttl, WithClock(clock.Now)), clock
}

func TestMemoryCacheServesFreshEntries(t *testing.T) {
	c, clock := newTestCache(300 * time.Second)

	c.Put("Raleigh", weather.RawResponse{StatusCode: 200, Body: []byte(`{"name":"Raleigh"}`)})

	clock.Advance(299 * time.Second)
	got, ok := c.Get("Raleigh")
	if !ok {
		t.Fatalf("expected cache hit before TTL")
	}
	if got.StatusCode != 200 || string(got.Body) != `{"name":"Raleigh"}` {
		t.Fatalf("unexpected entry: %+v", got)
	}
	if !got.FetchedAt.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected FetchedAt to be stamped by Put, got %v", got.FetchedAt)
	}
}

func TestMemoryCacheExpiresAtTTL(t *testing.T) {
	c, clock := newTestCache(300 * time.Second)

	c.Put("Raleigh", weather.RawResponse{StatusCode: 200})
	clock.Advance(300 * time.Second)

	if _, ok := c.Get("Raleigh"); ok {
		t.Fatalf("expected miss once the entry is TTL old")
	}
	if c.Len() != 0 {
		t.Fatalf("expected stale entry to be evicted, len=%d", c.Len())
	}
}

func TestMemoryCacheKeysAreExact(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Put("Raleigh", weather.RawResponse{StatusCode: 200})

	for _, key := range []string{"raleigh", "Raleigh,US", " Raleigh"} {
		if _, ok := c.Get(key); ok {
			t.Errorf("expected miss for %q", key)
		}
	}
}

func TestMemoryCachePutIgnoresCallerTimestamp(t *testing.T) {
	c, clock := newTestCache(300 * time.Second)

	stored := c.Put("Raleigh", weather.RawResponse{
		StatusCode: 200,
		FetchedAt:  time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if !stored.FetchedAt.Equal(clock.Now()) {
		t.Fatalf("expected FetchedAt from the cache clock, got %v", stored.FetchedAt)
	}

	clock.Advance(299 * time.Second)
	if _, ok := c.Get("Raleigh"); !ok {
		t.Fatalf("expected entry to be fresh by the cache clock")
	}
}

func TestMemoryCachePutOverwrites(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Put("Paris", weather.RawResponse{StatusCode: 404})
	clock.Advance(30 * time.Second)
	c.Put("Paris", weather.RawResponse{StatusCode: 200})

	clock.Advance(45 * time.Second)
	got, ok := c.Get("Paris")
	if !ok {
		t.Fatalf("expected overwritten entry to still be fresh")
	}
	if got.StatusCode != 200 {
		t.Fatalf("expected status 200, got %d", got.StatusCode)
	}
}

func TestMemoryCachePurge(t *testing.T) {
	c, clock := newTestCache(time.Minute)

	c.Put("Oslo", weather.RawResponse{StatusCode: 200})
	clock.Advance(50 * time.Second)
	c.Put("Lima", weather.RawResponse{StatusCode: 200})
	clock.Advance(20 * time.Second)

	if removed := c.Purge(); removed != 1 {
		t.Fatalf("expected 1 purged entry, got %d", removed)
	}
	if _, ok := c.Get("Lima"); !ok {
		t.Fatalf("expected Lima to survive purge")
	}
}

func TestNewMemoryCacheDefaultTTL(t *testing.T) {
	c := NewMemoryCache(0)
	if c.ttl != DefaultTTL {
		t.Fatalf("expected default ttl %v, got %v", DefaultTTL, c.ttl)
	}
}
