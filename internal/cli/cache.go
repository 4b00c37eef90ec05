package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuadavidthomas/bihucal/internal/calendar"
	"github.com/joshuadavidthomas/bihucal/internal/config"
	"github.com/joshuadavidthomas/bihucal/internal/display"
	"github.com/joshuadavidthomas/bihucal/internal/holidays"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage cached holiday data",
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List cached years and their age",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.Get()
		store := openStore(ctx, cfg)
		defer func() { _ = store.Close() }()

		years, err := store.Years(ctx)
		if err != nil {
			return fmt.Errorf("listing cache: %w", err)
		}

		entries := make([]display.CacheEntryJSON, 0, len(years))
		for _, y := range years {
			snap, ok := store.Inspect(ctx, y)
			if !ok {
				continue
			}
			entries = append(entries, display.CacheEntryJSON{
				Year:      y,
				Count:     len(snap.Holidays),
				Timestamp: snap.Timestamp.UTC().Format(time.RFC3339),
				Age:       display.FormatAge(snap.Age(now())),
				Fresh:     store.Fresh(snap),
			})
		}

		if jsonOutput {
			return display.OutputJSON(outWriter, display.CacheJSON{
				Backend: cfg.Cache.Backend,
				Window:  store.Window().String(),
				Entries: entries,
			})
		}

		if quiet {
			for _, e := range entries {
				out("%d\t%d\t%s\n", e.Year, e.Count, e.Age)
			}
			return nil
		}

		if len(entries) == 0 {
			out("No cached years (%s backend)\n", cfg.Cache.Backend)
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			status := "fresh"
			if !e.Fresh {
				status = "stale"
			}
			rows = append(rows, []string{strconv.Itoa(e.Year), strconv.Itoa(e.Count), e.Age, status})
		}
		outln(display.NewTableWithOptions(
			[]string{"Year", "Holidays", "Age", "Status"},
			rows,
			display.TableOptions{Title: fmt.Sprintf("Cache (%s, window %s)", cfg.Cache.Backend, store.Window()), NoColor: noColor},
		))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [year]",
	Short: "Remove cached holidays for one year or all years",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store := openStore(ctx, config.Get())
		defer func() { _ = store.Close() }()

		if len(args) == 1 {
			year, err := calendar.ParseYear(args[0])
			if err != nil {
				return err
			}
			if err := store.Clear(ctx, year); err != nil {
				return fmt.Errorf("clearing %d: %w", year, err)
			}
			if jsonOutput {
				return display.OutputJSON(outWriter, map[string]any{"cleared": []int{year}})
			}
			if !quiet {
				out("✓ Cleared cache for %d\n", year)
			}
			return nil
		}

		years, _ := store.Years(ctx)
		n, err := store.ClearAll(ctx)
		if err != nil {
			return fmt.Errorf("clearing cache: %w", err)
		}
		if jsonOutput {
			if years == nil {
				years = []int{}
			}
			return display.OutputJSON(outWriter, map[string]any{"cleared": years[:n]})
		}
		if !quiet {
			out("✓ Cleared %d cached year(s)\n", n)
		}
		return nil
	},
}

var cacheWarmCmd = &cobra.Command{
	Use:   "warm year...",
	Short: "Fetch and cache several years at once",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		years := make([]int, 0, len(args))
		for _, a := range args {
			y, err := calendar.ParseYear(a)
			if err != nil {
				return err
			}
			years = append(years, y)
		}
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		ctx := cmd.Context()
		p, closeFn := newProvider(ctx, config.Get())
		defer closeFn()

		opts := holidays.LookupOptions{Refresh: refresh}
		var outcomes map[int]holidays.Outcome
		if display.SpinnerShouldShow(quiet, jsonOutput, !stdoutIsTerminal()) {
			err := display.SpinnerRun(years, func(onComplete func(display.CompletionInfo)) {
				outcomes = p.Prefetch(ctx, years, opts, concurrency, func(o holidays.Outcome) {
					onComplete(outcomeToCompletion(o))
				})
			})
			if err != nil {
				return fmt.Errorf("spinner error: %w", err)
			}
		} else {
			outcomes = p.Prefetch(ctx, years, opts, concurrency, nil)
		}

		if jsonOutput {
			list := make([]display.YearJSON, 0, len(years))
			for _, y := range years {
				list = append(list, display.YearToJSON(outcomes[y]))
			}
			return display.OutputJSON(outWriter, list)
		}

		failed := 0
		for _, y := range years {
			o := outcomes[y]
			if o.Source == holidays.SourceFallback {
				failed++
			}
			if !quiet {
				out("%d: %d holidays (%s)\n", y, len(o.Holidays), display.FormatSource(o.Source))
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d years could not be fetched", failed, len(years))
		}
		return nil
	},
}

func init() {
	cacheWarmCmd.Flags().Int("concurrency", 4, "Maximum parallel requests")
	cacheCmd.AddCommand(cacheShowCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheWarmCmd)
}
