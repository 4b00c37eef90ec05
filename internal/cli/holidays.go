package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuadavidthomas/bihucal/internal/display"
	"github.com/joshuadavidthomas/bihucal/internal/models"
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays [year]",
	Short: "List the holidays of a year",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := yearFromArgs(args)
		if err != nil {
			return err
		}

		var cat models.Category
		if raw, _ := cmd.Flags().GetString("category"); raw != "" {
			if cat, err = models.ParseCategory(raw); err != nil {
				return err
			}
		}

		outcome, err := fetchYear(cmd.Context(), year)
		if err != nil {
			return err
		}
		if cat != "" {
			outcome.Holidays = models.FilterByCategory(outcome.Holidays, cat)
		}

		if jsonOutput {
			return display.OutputJSON(outWriter, display.YearToJSON(outcome))
		}
		if quiet {
			printHolidayLines(outcome)
			return nil
		}

		if len(outcome.Holidays) == 0 {
			if cat != "" {
				out("No %s holidays found for %d\n", strings.ToLower(cat.Label()), year)
			} else {
				out("No holidays found for %d\n", year)
			}
			return nil
		}

		outln(display.RenderHolidayTable(outcome.Holidays, display.TableOptions{
			Title:   fmt.Sprintf("Holidays %d (%s)", year, display.FormatSource(outcome.Source)),
			NoColor: noColor,
		}))
		return nil
	},
}

func init() {
	holidaysCmd.Flags().StringP("category", "c", "", "Only show one category: national, regional or other")
}
