// Package render draws weather results for a terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/i474232898/city-weather/internal/session"
	"github.com/i474232898/city-weather/internal/weather"
)

// Output formats accepted by Result.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

const (
	barWidth        = 20
	pressureAxisMin = 950
	pressureAxisMax = 1050

	// EmptyMessage is shown before any city has been looked up.
	EmptyMessage = "Submit a city to see weather."
)

// Result writes r in the requested format. more adds the extra details block
// to text output and is ignored otherwise.
func Result(w io.Writer, r weather.WeatherResult, format string, more bool) error {
	switch format {
	case "", FormatText:
		return Text(w, r, more)
	case FormatJSON:
		return JSON(w, r)
	case FormatYAML:
		return YAML(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Snapshot renders whatever the session currently shows.
func Snapshot(w io.Writer, snap session.Snapshot, more bool) error {
	switch {
	case snap.Warning != "":
		_, err := fmt.Fprintf(w, "Warning: %s\n", snap.Warning)
		return err
	case snap.Error != "":
		_, err := fmt.Fprintf(w, "Error: %s\n", snap.Error)
		return err
	case snap.Result == nil:
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	return Text(w, *snap.Result, more)
}

// Text writes the metrics block, mini bar charts and, with more, extra details.
func Text(w io.Writer, r weather.WeatherResult, more bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\n", r.City)
	fmt.Fprintf(tw, "Temp (°C)\t%.1f\n", r.TemperatureC)
	fmt.Fprintf(tw, "Temp (°F)\t%.1f\n", r.TemperatureF)
	fmt.Fprintf(tw, "Humidity\t%.0f%%\n", r.HumidityPct)
	fmt.Fprintf(tw, "Conditions\t%s\n", r.Description)
	fmt.Fprintf(tw, "Daylight\t%s hours\n", formatFloat(r.HoursOfSun))
	fmt.Fprintf(tw, "Pressure\t%s (%.0f mbar)\n", r.PressureClass, r.PressureHpa)

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Weather Charts")
	fmt.Fprintf(tw, "Temp °C\t%s\t%.1f\n", Bar(r.TemperatureC, 0, math.Max(40, r.TemperatureC+5), barWidth), r.TemperatureC)
	fmt.Fprintf(tw, "Humidity %%\t%s\t%.0f\n", Bar(r.HumidityPct, 0, 100, barWidth), r.HumidityPct)
	fmt.Fprintf(tw, "Pressure\t%s\t%.0f\n", Bar(r.PressureHpa, pressureAxisMin, pressureAxisMax, barWidth), r.PressureHpa)

	fmt.Fprintln(tw)
	if more {
		fmt.Fprintln(tw, "Here are some extra facts:")
		fmt.Fprintf(tw, "- Temp (°F):\t%s\n", formatFloat(r.TemperatureF))
		fmt.Fprintf(tw, "- Hours of Daylight:\t%s\n", formatFloat(r.HoursOfSun))
		fmt.Fprintf(tw, "- Pressure:\t%s (%.0f mbar)\n", r.PressureClass, r.PressureHpa)
	} else {
		fmt.Fprintln(tw, "Okay! Ask for more data anytime to see extra details.")
	}

	return tw.Flush()
}

// Bar draws value on a [lo, hi] axis as a fixed-width bar. Values outside the
// axis are pinned to its ends.
func Bar(value, lo, hi float64, width int) string {
	if width <= 0 {
		return ""
	}
	frac := 0.0
	if hi > lo {
		frac = (value - lo) / (hi - lo)
	}
	frac = math.Min(1, math.Max(0, frac))

	filled := int(math.Round(frac * float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// JSON writes r as indented JSON.
func JSON(w io.Writer, r weather.WeatherResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// YAML writes r as a YAML document.
func YAML(w io.Writer, r weather.WeatherResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
