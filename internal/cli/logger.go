package cli

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/joshuadavidthomas/bihucal/internal/logging"
)

// newConfiguredLogger creates a stderr logger configured from the global
// flags. JSON mode also switches log lines to JSON so stdout stays parseable.
func newConfiguredLogger() *log.Logger {
	l := logging.NewLogger(os.Stderr)
	logging.Configure(l, logging.Flags{
		Verbose: verbose,
		Quiet:   quiet,
		NoColor: noColor,
		JSON:    jsonOutput,
	})
	l.SetPrefix("bihucal")
	return l
}
