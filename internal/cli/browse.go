package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/joshuadavidthomas/bihucal/internal/browse"
	"github.com/joshuadavidthomas/bihucal/internal/config"
	"github.com/joshuadavidthomas/bihucal/internal/holidays"
)

var browseCmd = &cobra.Command{
	Use:   "browse [year]",
	Short: "Browse years interactively",
	Long:  "Opens a full-screen calendar. Use ←/→ or h/l to change year, r to refetch, q to quit.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, err := yearFromArgs(args)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		cfg := config.Get()
		p, closeFn := newProvider(ctx, cfg)
		defer closeFn()

		load := func(ctx context.Context, year int, force bool) holidays.Outcome {
			return p.Lookup(ctx, year, holidays.LookupOptions{Refresh: force || refresh})
		}
		return browse.Run(ctx, browse.New(ctx, year, load, yearOptions(cfg)))
	},
}
