package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// outWriter is the writer used for all command output.
// Tests can replace this to capture output.
var outWriter io.Writer = os.Stdout

// out prints formatted output to the configured writer.
func out(format string, a ...any) {
	_, _ = fmt.Fprintf(outWriter, format, a...)
}

// outln prints a line to the configured writer.
func outln(a ...any) {
	_, _ = fmt.Fprintln(outWriter, a...)
}

// openOutput returns outWriter for an empty path or "-", otherwise a new
// file at path. The returned close func must be called; for files it
// reports write errors that surface on close.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return outWriter, func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
