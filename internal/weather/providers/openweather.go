package providers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/city-weather/internal/weather"
)

// DefaultOpenWeatherURL is the current-weather endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// MissingAPIKeyMessage is shown when no credential was configured.
const MissingAPIKeyMessage = "Missing OPENWEATHER_API_KEY. Add it to your .env or environment."

// OpenWeatherClient implements weather.Fetcher for OpenWeatherMap. It consults
// its cache before every request and stores every completed exchange.
type OpenWeatherClient struct {
	name    string
	apiKey  string
	baseURL string
	http    *resty.Client
	cache   weather.Cache
	circuit *gobreaker.CircuitBreaker
}

// Option customizes an OpenWeatherClient.
type Option func(*OpenWeatherClient)

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(u string) Option {
	return func(p *OpenWeatherClient) {
		if u != "" {
			p.baseURL = u
		}
	}
}

// NewOpenWeatherClient builds a client on top of the shared HTTP client, whose
// Timeout bounds each request. cache may be nil to disable caching.
func NewOpenWeatherClient(client *http.Client, apiKey string, cache weather.Cache, opts ...Option) *OpenWeatherClient {
	var rc *resty.Client
	if client != nil {
		rc = resty.NewWithClient(client)
	} else {
		rc = resty.New().SetTimeout(DefaultTimeout)
	}

	p := &OpenWeatherClient{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: DefaultOpenWeatherURL,
		http:    rc,
		cache:   cache,
		circuit: newCircuitBreaker("openweather"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OpenWeatherClient) Name() string {
	return p.name
}

// Health reports the provider's circuit state: closed, half-open or open.
func (p *OpenWeatherClient) Health() string {
	return p.circuit.State().String()
}

// Configured reports a configuration error when no API key is set.
func (p *OpenWeatherClient) Configured() error {
	if p.apiKey == "" {
		return weather.NewError(weather.ErrConfiguration, MissingAPIKeyMessage, nil)
	}
	return nil
}

// Fetch returns the provider's status and body for city, from cache when a
// fresh entry exists. One attempt per miss; failures are not retried.
func (p *OpenWeatherClient) Fetch(ctx context.Context, city string) (weather.RawResponse, error) {
	if err := p.Configured(); err != nil {
		return weather.RawResponse{}, err
	}

	if p.cache != nil {
		if raw, ok := p.cache.Get(city); ok {
			log.Printf("DEBUG: cache hit for %q (status %d)", city, raw.StatusCode)
			return raw, nil
		}
		log.Printf("DEBUG: cache miss for %q", city)
	}

	resp, err := doRequest(p.circuit, func() (*resty.Response, error) {
		return p.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"q":     city,
				"appid": p.apiKey,
				"units": "metric",
			}).
			Get(p.baseURL)
	})
	if err != nil {
		return weather.RawResponse{}, networkError(err)
	}

	raw := weather.RawResponse{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}
	log.Printf("DEBUG: %s answered %d for %q in %s", p.name, raw.StatusCode, city, resp.Time())

	if p.cache == nil {
		raw.FetchedAt = time.Now()
		return raw, nil
	}
	return p.cache.Put(city, raw), nil
}
