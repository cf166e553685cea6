package weather

import (
	"context"
)

// Fetcher abstracts the upstream weather source (e.g. OpenWeatherMap).
// Fetch returns whatever status the provider answered with; only transport
// failures come back as errors.
type Fetcher interface {
	Name() string
	Configured() error
	Fetch(ctx context.Context, city string) (RawResponse, error)
}

// Cache is the contract for the time-bounded response cache owned by a Fetcher.
// Keys are the city strings exactly as submitted. Put stamps FetchedAt and
// returns the entry as stored.
type Cache interface {
	Get(city string) (RawResponse, bool)
	Put(city string, resp RawResponse) RawResponse
}
