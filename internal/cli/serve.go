package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/joshuadavidthomas/bihucal/internal/config"
	"github.com/joshuadavidthomas/bihucal/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve holidays over HTTP",
	Long: `Starts an HTTP API:

  GET /api/holidays/:year        JSON {year, source, holidays}
  GET /api/holidays/:year/ics    iCalendar download
  GET /healthz                   liveness`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx := cmd.Context()
		p, closeFn := newProvider(ctx, config.Get())
		defer closeFn()

		if !quiet && !jsonOutput {
			out("Serving holidays on %s\n", addr)
		}
		return server.New(ctx, p).Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
}
