package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/i474232898/city-weather/internal/render"
	"github.com/i474232898/city-weather/internal/session"
)

const (
	cityPrompt   = "What city do you want weather data for? (e.g., Raleigh or Raleigh,US) "
	commandsHelp = "Commands: :more and :less toggle extra details, :quit exits. Anything else is looked up as a city."
)

// newInteractiveCmd reads one city per line and keeps the latest result on
// screen. Lines starting with ':' are commands, so every city name stays
// reachable.
func newInteractiveCmd(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Look up cities one line at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			sess := session.New(app.Lookup.Lookup)
			more := false

			fmt.Fprintln(out, commandsHelp)
			if err := render.Snapshot(out, sess.Snapshot(), more); err != nil {
				return err
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, cityPrompt)
				if !scanner.Scan() {
					fmt.Fprintln(out)
					return scanner.Err()
				}

				line := scanner.Text()
				switch strings.ToLower(strings.TrimSpace(line)) {
				case ":quit", ":exit":
					return nil
				case ":more":
					more = true
					if err := render.Snapshot(out, sess.Snapshot(), more); err != nil {
						return err
					}
					continue
				case ":less":
					more = false
					if err := render.Snapshot(out, sess.Snapshot(), more); err != nil {
						return err
					}
					continue
				}

				fmt.Fprintln(out, "Fetching weather...")
				if err := render.Snapshot(out, sess.Submit(cmd.Context(), line), more); err != nil {
					return err
				}
			}
		},
	}
}
