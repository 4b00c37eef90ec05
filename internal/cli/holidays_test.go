package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/joshuadavidthomas/bihucal/internal/config"
)

func TestHolidaysCmd_Table(t *testing.T) {
	cfg := memoryConfig()
	fakeGemini(t, &cfg, remote2026)
	buf := setupCLI(t, cfg)
	t.Setenv(config.GeminiKeyEnv, testAPIKey)

	var logBuf bytes.Buffer
	holidaysCmd.SetContext(newDefaultContext(&logBuf))
	if err := holidaysCmd.RunE(holidaysCmd, []string{"2026"}); err != nil {
		t.Fatalf("holidays error = %v", err)
	}

	output := buf.String()
	for _, want := range []string{"Holidays 2026 (live)", "Ambubachi Mela", "Mon", "Regional"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestHolidaysCmd_CategoryFilter(t *testing.T) {
	buf := setupCLI(t, memoryConfig())
	quiet = true
	setFlag(t, holidaysCmd.Flags(), "category", "regional", "")

	var logBuf bytes.Buffer
	holidaysCmd.SetContext(newDefaultContext(&logBuf))
	if err := holidaysCmd.RunE(holidaysCmd, []string{"2025"}); err != nil {
		t.Fatalf("holidays error = %v", err)
	}

	if got := strings.TrimSpace(buf.String()); got != "2025-04-14\tBohag Bihu\tRegional" {
		t.Errorf("output = %q", got)
	}
}

func TestHolidaysCmd_EmptyCategory(t *testing.T) {
	buf := setupCLI(t, memoryConfig())
	setFlag(t, holidaysCmd.Flags(), "category", "other", "")

	var logBuf bytes.Buffer
	holidaysCmd.SetContext(newDefaultContext(&logBuf))
	if err := holidaysCmd.RunE(holidaysCmd, []string{"2025"}); err != nil {
		t.Fatalf("holidays error = %v", err)
	}
	if !strings.Contains(buf.String(), "No other holidays found for 2025") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestHolidaysCmd_UnknownCategory(t *testing.T) {
	setupCLI(t, memoryConfig())
	setFlag(t, holidaysCmd.Flags(), "category", "bank", "")

	var logBuf bytes.Buffer
	holidaysCmd.SetContext(newDefaultContext(&logBuf))
	err := holidaysCmd.RunE(holidaysCmd, []string{"2025"})
	if err == nil || !strings.Contains(err.Error(), "bank") {
		t.Errorf("error = %v, want unknown category", err)
	}
}
