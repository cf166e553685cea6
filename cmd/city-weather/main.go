package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/i474232898/city-weather/internal/cli"
	"github.com/i474232898/city-weather/internal/config"
	"github.com/i474232898/city-weather/internal/store"
	"github.com/i474232898/city-weather/internal/weather"
	"github.com/i474232898/city-weather/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("INFO: OPENWEATHER_API_KEY is not set; lookups will fail until it is")
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Response cache owned by the provider client.
	cache := store.NewMemoryCache(cfg.CacheTTL)

	client := providers.NewOpenWeatherClient(httpClient, cfg.OpenWeatherAPIKey, cache,
		providers.WithBaseURL(cfg.OpenWeatherBaseURL))

	service := weather.NewService(client)

	cmd := cli.New(cli.App{
		Lookup:        service,
		Provider:      client,
		Cache:         cache,
		PurgeInterval: cfg.CachePurgeInterval,
		Port:          cfg.Port,
	})

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
