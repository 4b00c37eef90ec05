package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/joshuadavidthomas/bihucal/internal/calendar"
	"github.com/joshuadavidthomas/bihucal/internal/config"
	"github.com/joshuadavidthomas/bihucal/internal/display"
	"github.com/joshuadavidthomas/bihucal/internal/holidays"
	"github.com/joshuadavidthomas/bihucal/internal/logging"
)

// version is injected at build time via -ldflags.
var version = "dev"

var (
	jsonOutput bool
	noColor    bool
	verbose    bool
	quiet      bool
	refresh    bool
)

// Replaced in tests to pin the default year and keep the spinner off.
var (
	now              = time.Now
	stdoutIsTerminal = display.StdoutIsTerminal
)

var rootCmd = &cobra.Command{
	Use:          "bihucal [year]",
	Short:        "Print a yearly calendar of Indian national and Assamese holidays",
	Long:         "Renders a twelve-month calendar with national holidays and Assamese festivals such as Bihu and Ambubachi. Holiday dates come from Gemini and are cached per year.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose && quiet {
			verbose = false
		}
		if noColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}
		l := newConfiguredLogger()
		ctx := logging.WithLogger(cmd.Context(), l)
		cmd.SetContext(ctx)

		// Load config from disk so malformed files surface a warning.
		if _, err := config.Init(); err != nil {
			l.Warn("config file is malformed, using defaults", "err", err)
		}
	},
	RunE: runCalendar,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&jsonOutput, "json", "j", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
	rootCmd.PersistentFlags().BoolVarP(&refresh, "refresh", "r", false, "Ignore cached holidays and fetch again")
	rootCmd.Flags().Bool("version", false, "Show version and exit")

	rootCmd.AddCommand(holidaysCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(initCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context.
// Commands access it via cmd.Context().
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// yearFromArgs returns the year named by the first argument, or the
// current year when there is none.
func yearFromArgs(args []string) (int, error) {
	if len(args) == 0 {
		return now().Year(), nil
	}
	return calendar.ParseYear(args[0])
}

func yearOptions(cfg config.Config) display.YearOptions {
	ws, err := calendar.ParseWeekStart(cfg.Display.WeekStart)
	if err != nil {
		ws = calendar.StartSunday
	}
	opts := display.YearOptions{
		WeekStart: ws,
		Columns:   cfg.Display.Columns,
		NoColor:   noColor,
	}
	if stdoutIsTerminal() {
		opts.Width = display.TerminalWidth()
	}
	return opts
}

func runCalendar(cmd *cobra.Command, args []string) error {
	if v, _ := cmd.Flags().GetBool("version"); v {
		out("bihucal %s\n", version)
		return nil
	}

	year, err := yearFromArgs(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	outcome, err := fetchYear(ctx, year)
	if err != nil {
		return err
	}

	if jsonOutput {
		return display.OutputJSON(outWriter, display.YearToJSON(outcome))
	}

	if quiet {
		printHolidayLines(outcome)
		return nil
	}

	// The grid looks the same whatever the source; --json reports it.
	outln(display.RenderYear(year, outcome.Holidays, yearOptions(config.Get())))
	outln()
	outln(display.RenderLegend(outcome.Holidays, noColor))
	return nil
}

func printHolidayLines(o holidays.Outcome) {
	for _, h := range o.Holidays {
		out("%s\t%s\t%s\n", h.Date, h.Name, h.Category.Label())
	}
}

// fetchYear looks up one year, showing a spinner on interactive terminals.
func fetchYear(ctx context.Context, year int) (holidays.Outcome, error) {
	p, closeFn := newProvider(ctx, config.Get())
	defer closeFn()

	opts := holidays.LookupOptions{Refresh: refresh}
	start := time.Now()

	var outcome holidays.Outcome
	if display.SpinnerShouldShow(quiet, jsonOutput, !stdoutIsTerminal()) {
		err := display.SpinnerRun([]int{year}, func(onComplete func(display.CompletionInfo)) {
			outcome = p.Lookup(ctx, year, opts)
			onComplete(outcomeToCompletion(outcome))
		})
		if err != nil {
			return outcome, fmt.Errorf("spinner error: %w", err)
		}
	} else {
		outcome = p.Lookup(ctx, year, opts)
	}

	logging.FromContext(ctx).Debug("lookup complete",
		"year", year,
		"source", outcome.Source,
		"count", len(outcome.Holidays),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return outcome, nil
}

func outcomeToCompletion(o holidays.Outcome) display.CompletionInfo {
	return display.CompletionInfo{
		Year:     o.Year,
		Source:   display.FormatSource(o.Source),
		Degraded: o.Source == holidays.SourceFallback,
	}
}
