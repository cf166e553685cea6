package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/city-weather/internal/render"
	"github.com/i474232898/city-weather/internal/scheduler"
	"github.com/i474232898/city-weather/internal/weather"
)

// Lookup is the pipeline the commands drive.
type Lookup interface {
	Lookup(ctx context.Context, city string) (weather.WeatherResult, error)
}

// HealthReporter reports the upstream provider's circuit state.
type HealthReporter interface {
	Health() string
}

// App bundles what the commands need.
type App struct {
	Lookup        Lookup
	Provider      HealthReporter
	Cache         scheduler.Purger
	PurgeInterval time.Duration
	Port          string
}

// New builds the command tree.
func New(app App) *cobra.Command {
	root := &cobra.Command{
		Use:           "city-weather",
		Short:         "Current weather conditions for a city",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGetCmd(app), newInteractiveCmd(app), newServeCmd(app))
	return root
}

func newGetCmd(app App) *cobra.Command {
	var (
		format string
		more   bool
	)

	cmd := &cobra.Command{
		Use:   "get CITY",
		Short: "Print current conditions for CITY (e.g. Raleigh or Raleigh,US)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			city := strings.Join(args, " ")

			result, err := app.Lookup.Lookup(cmd.Context(), city)
			if err != nil {
				if errors.Is(err, weather.ErrValidation) {
					cmd.PrintErrf("Warning: %s\n", weather.UserMessage(err))
				} else {
					cmd.PrintErrf("Error: %s\n", weather.UserMessage(err))
				}
				return err
			}

			return render.Result(cmd.OutOrStdout(), result, format, more)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", render.FormatText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&more, "more", false, "show extra details")
	return cmd
}
