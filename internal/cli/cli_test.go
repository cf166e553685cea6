package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/i474232898/city-weather/internal/weather"
)

type stubLookup struct {
	results map[string]weather.WeatherResult
	cities  []string
}

func (s *stubLookup) Lookup(ctx context.Context, city string) (weather.WeatherResult, error) {
	s.cities = append(s.cities, city)
	if err := weather.ValidateCity(city); err != nil {
		return weather.WeatherResult{}, err
	}
	r, ok := s.results[city]
	if !ok {
		e := weather.NewError(weather.ErrUpstream, "city not found", nil)
		e.StatusCode = http.StatusNotFound
		return weather.WeatherResult{}, e
	}
	return r, nil
}

func newStub() *stubLookup {
	return &stubLookup{results: map[string]weather.WeatherResult{
		"Raleigh": {
			City:          "Raleigh",
			TemperatureC:  20,
			TemperatureF:  68,
			HumidityPct:   50,
			Description:   "Clear sky",
			PressureHpa:   1000,
			HoursOfSun:    10,
			PressureClass: weather.PressureLow,
		},
		"New York": {City: "New York", PressureHpa: 1020, PressureClass: weather.PressureHigh},
	}}
}

func run(t *testing.T, app App, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := New(app)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestGetPrintsText(t *testing.T) {
	out, _, err := run(t, App{Lookup: newStub()}, "", "get", "Raleigh", "--more")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"Raleigh", "Clear sky", "LOW (1000 mbar)", "extra facts"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output\n%s", want, out)
		}
	}
}

func TestGetJoinsArgs(t *testing.T) {
	stub := newStub()
	out, _, err := run(t, App{Lookup: stub}, "", "get", "New", "York", "-o", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stub.cities[0] != "New York" {
		t.Fatalf("expected joined city, got %q", stub.cities[0])
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if decoded["pressureClass"] != "HIGH" {
		t.Fatalf("unexpected json %v", decoded)
	}
}

func TestGetReportsErrors(t *testing.T) {
	_, errOut, err := run(t, App{Lookup: newStub()}, "", "get", "Atlantis")
	if !errors.Is(err, weather.ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if !strings.Contains(errOut, "Error: city not found") {
		t.Fatalf("unexpected stderr %q", errOut)
	}

	_, errOut, err = run(t, App{Lookup: newStub()}, "", "get", "  ")
	if !errors.Is(err, weather.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(errOut, "Warning: "+weather.BlankCityMessage) {
		t.Fatalf("unexpected stderr %q", errOut)
	}
}

func TestInteractiveSession(t *testing.T) {
	stub := newStub()
	stdin := "Raleigh\n:more\n\nAtlantis\n:quit\n"

	out, _, err := run(t, App{Lookup: stub}, stdin, "interactive")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Submit a city to see weather.",
		"Clear sky",
		"Here are some extra facts:",
		"Warning: " + weather.BlankCityMessage,
		"Error: city not found",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output\n%s", want, out)
		}
	}
	if len(stub.cities) != 3 {
		t.Fatalf("expected 3 submissions, got %q", stub.cities)
	}
}

func TestInteractiveLooksUpCommandWords(t *testing.T) {
	stub := newStub()
	stdin := "more\nLess\nquit\nEXIT\n:quit\n"

	out, _, err := run(t, App{Lookup: stub}, stdin, "interactive")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"more", "Less", "quit", "EXIT"}
	if len(stub.cities) != len(want) {
		t.Fatalf("expected %q to be looked up, got %q", want, stub.cities)
	}
	for i := range want {
		if stub.cities[i] != want[i] {
			t.Fatalf("expected %q to be looked up, got %q", want, stub.cities)
		}
	}
	if !strings.Contains(out, ":more") {
		t.Fatalf("expected command help in output\n%s", out)
	}
}

type stubHealth string

func (s stubHealth) Health() string { return string(s) }

func TestServerHealthAndLookup(t *testing.T) {
	srv := NewServer(App{Lookup: newStub(), Provider: stubHealth("open")})

	resp, err := srv.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", resp.StatusCode)
	}
	var health map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health["status"] != "ok" || health["provider"] != "open" {
		t.Fatalf("unexpected health body %v", health)
	}

	resp, err = srv.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather/current?city=Atlantis", nil))
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "city not found") {
		t.Fatalf("unexpected body %s", body)
	}
}
