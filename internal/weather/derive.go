package weather

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/i474232898/city-weather/internal/common"
)

// currentPayload mirrors the fields we need from the current-weather endpoint.
// Pointers distinguish "absent" from zero values.
type currentPayload struct {
	Name *string `json:"name"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
		Pressure *float64 `json:"pressure"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Sys *struct {
		Sunrise *int64 `json:"sunrise"`
		Sunset  *int64 `json:"sunset"`
	} `json:"sys"`
}

// Derive validates a provider response and computes the presentation record.
// Non-200 statuses fail with ErrUpstream; a 200 with missing or mistyped fields
// fails with ErrMalformedResponse. No partial result is ever returned.
func Derive(statusCode int, payload []byte) (WeatherResult, error) {
	if statusCode != http.StatusOK {
		return WeatherResult{}, upstreamError(statusCode, payload)
	}

	var p currentPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return WeatherResult{}, NewError(ErrMalformedResponse, "Unexpected response from weather provider.", err)
	}

	if missing := p.missingField(); missing != "" {
		return WeatherResult{}, NewError(ErrMalformedResponse,
			fmt.Sprintf("Unexpected response from weather provider: missing %s.", missing), nil)
	}

	tempC := *p.Main.Temp
	pressure := *p.Main.Pressure

	return WeatherResult{
		City:          *p.Name,
		TemperatureC:  tempC,
		TemperatureF:  Fahrenheit(tempC),
		HumidityPct:   *p.Main.Humidity,
		Description:   common.CapitalizeFirst(*p.Weather[0].Description),
		PressureHpa:   pressure,
		HoursOfSun:    DaylightHours(*p.Sys.Sunrise, *p.Sys.Sunset),
		PressureClass: ClassifyPressure(pressure),
	}, nil
}

func (p currentPayload) missingField() string {
	switch {
	case p.Name == nil:
		return "name"
	case p.Main == nil:
		return "main"
	case p.Main.Temp == nil:
		return "main.temp"
	case p.Main.Humidity == nil:
		return "main.humidity"
	case p.Main.Pressure == nil:
		return "main.pressure"
	case len(p.Weather) == 0:
		return "weather"
	case p.Weather[0].Description == nil:
		return "weather[0].description"
	case p.Sys == nil:
		return "sys"
	case p.Sys.Sunrise == nil:
		return "sys.sunrise"
	case p.Sys.Sunset == nil:
		return "sys.sunset"
	}
	return ""
}

// upstreamError takes the provider's own message when it sent one.
func upstreamError(statusCode int, payload []byte) *Error {
	msg := DefaultUpstreamMessage

	var body struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if s, ok := body.Message.(string); ok && s != "" {
			msg = s
		}
	}

	e := NewError(ErrUpstream, msg, fmt.Errorf("provider returned status %d", statusCode))
	e.StatusCode = statusCode
	return e
}

// Fahrenheit converts Celsius, rounded to two decimals.
func Fahrenheit(celsius float64) float64 {
	return common.Round(celsius*9/5+32, 2)
}

// DaylightHours is the sunrise-to-sunset span in hours, rounded to two decimals.
// Negative spans are returned as-is.
func DaylightHours(sunrise, sunset int64) float64 {
	return common.Round(float64(sunset-sunrise)/3600, 2)
}

// ClassifyPressure compares p against standard sea-level pressure.
func ClassifyPressure(p float64) PressureClass {
	switch {
	case p > StandardPressureHpa:
		return PressureHigh
	case p < StandardPressureHpa:
		return PressureLow
	default:
		return PressureAverage
	}
}
