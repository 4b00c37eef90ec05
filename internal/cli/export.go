package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuadavidthomas/bihucal/internal/display"
	"github.com/joshuadavidthomas/bihucal/internal/logging"
)

// Export formats accepted by --format.
const (
	formatICS  = "ics"
	formatJSON = "json"
	formatYAML = "yaml"
)

var exportCmd = &cobra.Command{
	Use:   "export [year]",
	Short: "Export a year's holidays as iCalendar, JSON or YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := yearFromArgs(args)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		format = strings.ToLower(strings.TrimSpace(format))
		switch format {
		case formatICS, formatJSON, formatYAML:
		case "yml":
			format = formatYAML
		default:
			return fmt.Errorf("unknown export format %q (want ics, json or yaml)", format)
		}
		path, _ := cmd.Flags().GetString("output")

		outcome, err := fetchYear(cmd.Context(), year)
		if err != nil {
			return err
		}

		w, closeFn, err := openOutput(path)
		if err != nil {
			return err
		}

		switch format {
		case formatICS:
			err = display.WriteICS(w, year, outcome.Holidays, now())
		case formatJSON:
			err = display.OutputJSON(w, display.YearToJSON(outcome))
		case formatYAML:
			err = display.OutputYAML(w, display.YearToJSON(outcome))
		}
		if cerr := closeFn(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("exporting %d: %w", year, err)
		}

		logging.FromContext(cmd.Context()).Debug("exported holidays",
			"year", year, "format", format, "count", len(outcome.Holidays), "source", outcome.Source)
		if path != "" && path != "-" && !quiet {
			out("✓ Wrote %d holidays to %s\n", len(outcome.Holidays), path)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", formatICS, "Output format: ics, json or yaml")
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
