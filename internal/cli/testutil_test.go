package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joshuadavidthomas/bihucal/internal/config"
	"github.com/joshuadavidthomas/bihucal/internal/gemini"
	"github.com/joshuadavidthomas/bihucal/internal/logging"
	"github.com/joshuadavidthomas/bihucal/internal/prompt"
	"github.com/joshuadavidthomas/bihucal/internal/testenv"
)

const testAPIKey = "AIzaTestKey0123456789abcdef"

func newVerboseContext(logBuf *bytes.Buffer) context.Context {
	l := logging.NewLogger(logBuf)
	logging.Configure(l, logging.Flags{Verbose: true})
	return logging.WithLogger(context.Background(), l)
}

func newDefaultContext(logBuf *bytes.Buffer) context.Context {
	l := logging.NewLogger(logBuf)
	logging.Configure(l, logging.Flags{})
	return logging.WithLogger(context.Background(), l)
}

// setupCLI isolates config and cache dirs, installs cfg as the global
// config, captures command output and resets the global flags.
func setupCLI(t *testing.T, cfg config.Config) *bytes.Buffer {
	t.Helper()
	testenv.Apply(t.Setenv, t.TempDir())
	config.Override(t, cfg)

	var buf bytes.Buffer
	outWriter = &buf
	t.Cleanup(func() { outWriter = os.Stdout })

	oldJSON, oldQuiet, oldRefresh, oldNoColor, oldVerbose := jsonOutput, quiet, refresh, noColor, verbose
	jsonOutput, quiet, refresh, noColor, verbose = false, false, false, true, false
	t.Cleanup(func() {
		jsonOutput, quiet, refresh, noColor, verbose = oldJSON, oldQuiet, oldRefresh, oldNoColor, oldVerbose
	})

	oldNow, oldTTY := now, stdoutIsTerminal
	now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	stdoutIsTerminal = func() bool { return false }
	t.Cleanup(func() { now, stdoutIsTerminal = oldNow, oldTTY })

	return &buf
}

// memoryConfig returns defaults with an in-process cache.
func memoryConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Cache.Backend = config.BackendMemory
	return cfg
}

func useMockPrompter(t *testing.T, m *prompt.Mock) {
	t.Helper()
	old := prompt.Default
	prompt.SetDefault(m)
	t.Cleanup(func() { prompt.SetDefault(old) })
}

// fakeGemini serves text as the model answer to every generateContent call
// and points cfg at it. The returned counter reports how many calls were made.
func fakeGemini(t *testing.T, cfg *config.Config, text string) *atomic.Int32 {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get("x-goog-api-key") != testAPIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(gemini.GenerateContentResponse{
			Candidates: []gemini.Candidate{{
				Content:      gemini.Content{Role: "model", Parts: []gemini.Part{{Text: text}}},
				FinishReason: "STOP",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	cfg.Gemini.BaseURL = srv.URL
	return &calls
}

const remote2026 = `[
  {"date": "2026-01-26", "name": "Republic Day", "category": "National holiday"},
  {"date": "2026-04-14", "name": "Bohag Bihu", "category": "Assam state holiday"},
  {"date": "2026-06-22", "name": "Ambubachi Mela", "category": "Assamese festival"}
]`

type flagSetter interface {
	Set(name, value string) error
}

// setFlag sets a command flag for the duration of the test.
func setFlag(t *testing.T, flags flagSetter, name, value, reset string) {
	t.Helper()
	if err := flags.Set(name, value); err != nil {
		t.Fatalf("setting --%s: %v", name, err)
	}
	t.Cleanup(func() { _ = flags.Set(name, reset) })
}
