package weather

import (
	"time"
)

// StandardPressureHpa is the sea-level reference used to classify pressure.
const StandardPressureHpa = 1013.25

// PressureClass buckets a barometric reading against standard pressure.
type PressureClass string

const (
	PressureHigh    PressureClass = "HIGH"
	PressureLow     PressureClass = "LOW"
	PressureAverage PressureClass = "AVERAGE"
)

// RawResponse is what the provider returned for one request: the HTTP status,
// the undecoded body and the time it was fetched.
type RawResponse struct {
	StatusCode int
	Body       []byte
	FetchedAt  time.Time
}

// WeatherResult is the derived view handed to presentation.
// It is only ever built from a response that passed validation.
type WeatherResult struct {
	City          string        `json:"city" yaml:"city"`
	TemperatureC  float64       `json:"tempC" yaml:"temp_c"`
	TemperatureF  float64       `json:"tempF" yaml:"temp_f"`
	HumidityPct   float64       `json:"humidityPercent" yaml:"humidity"`
	Description   string        `json:"description" yaml:"description"`
	PressureHpa   float64       `json:"pressureHpa" yaml:"pressure"`
	HoursOfSun    float64       `json:"hoursOfSun" yaml:"hours_of_sun"`
	PressureClass PressureClass `json:"pressureClass" yaml:"pressure_class"`
}
