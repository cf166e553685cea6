package weather

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
)

// BlankCityMessage is the warning shown when no city was typed.
const BlankCityMessage = "Please type a city."

var validate = validator.New()

// Service runs the fetch-transform pipeline for a single city.
type Service struct {
	fetcher Fetcher
}

// NewService creates a new Service.
func NewService(fetcher Fetcher) *Service {
	return &Service{fetcher: fetcher}
}

// Lookup resolves city to a WeatherResult. The credential is checked first, then
// the city; neither failure reaches the network. The city is handed to the
// fetcher exactly as submitted.
func (s *Service) Lookup(ctx context.Context, city string) (WeatherResult, error) {
	if s.fetcher == nil {
		return WeatherResult{}, NewError(ErrConfiguration, "No weather provider configured.", nil)
	}
	if err := s.fetcher.Configured(); err != nil {
		log.Printf("ERROR: provider %s is not configured: %v", s.fetcher.Name(), err)
		return WeatherResult{}, err
	}
	if err := ValidateCity(city); err != nil {
		return WeatherResult{}, err
	}

	raw, err := s.fetcher.Fetch(ctx, city)
	if err != nil {
		log.Printf("ERROR: provider %s fetch failed for %q: %v", s.fetcher.Name(), city, err)
		return WeatherResult{}, err
	}

	result, err := Derive(raw.StatusCode, raw.Body)
	if err != nil {
		if errors.Is(err, ErrMalformedResponse) {
			log.Printf("ERROR: malformed response from %s for %q: %v", s.fetcher.Name(), city, err)
		}
		return WeatherResult{}, err
	}
	return result, nil
}

// ValidateCity rejects empty and whitespace-only city names.
func ValidateCity(city string) error {
	if err := validate.Var(strings.TrimSpace(city), "required"); err != nil {
		return NewError(ErrValidation, BlankCityMessage, err)
	}
	return nil
}
