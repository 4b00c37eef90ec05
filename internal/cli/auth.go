package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuadavidthomas/bihucal/internal/config"
	"github.com/joshuadavidthomas/bihucal/internal/display"
	"github.com/joshuadavidthomas/bihucal/internal/prompt"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store or remove the Gemini API key",
	Long:  "Prompts for a Gemini API key and stores it under the config directory. GEMINI_API_KEY, when set, takes precedence over the stored key.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if del, _ := cmd.Flags().GetBool("delete"); del {
			return authDelete()
		}
		if status, _ := cmd.Flags().GetBool("status"); status {
			return authStatus()
		}
		key, _ := cmd.Flags().GetString("key")
		return authStore(key)
	},
}

func init() {
	authCmd.Flags().Bool("delete", false, "Remove the stored key")
	authCmd.Flags().Bool("status", false, "Show where the key comes from")
	authCmd.Flags().String("key", "", "Store this key without prompting")
}

type authStatusJSON struct {
	Configured bool   `json:"configured"`
	Source     string `json:"source,omitempty"`
	Path       string `json:"path"`
}

func sourceToLabel(source string) string {
	switch source {
	case config.SourceEnv:
		return "environment (" + config.GeminiKeyEnv + ")"
	case config.SourceFile:
		return "stored credential"
	default:
		return "—"
	}
}

func authStatus() error {
	key, source := config.LoadGeminiKey()
	if jsonOutput {
		return display.OutputJSON(outWriter, authStatusJSON{
			Configured: key != "",
			Source:     source,
			Path:       config.GeminiKeyPath(),
		})
	}
	if key == "" {
		outln("✗ No Gemini API key configured")
		if !quiet {
			outln("  Run 'bihucal auth' or set " + config.GeminiKeyEnv)
		}
		return nil
	}
	out("✓ Gemini API key from %s\n", sourceToLabel(source))
	return nil
}

func authStore(key string) error {
	if key == "" {
		if _, source := config.LoadGeminiKey(); source == config.SourceFile {
			ok, err := prompt.Default.Confirm(prompt.ConfirmConfig{
				Title:       "A Gemini API key is already stored. Replace it?",
				Affirmative: "Replace",
				Negative:    "Keep",
			})
			if err != nil {
				return err
			}
			if !ok {
				outln("Kept the existing key")
				return nil
			}
		}

		var err error
		key, err = prompt.Default.Input(prompt.InputConfig{
			Title:       "Gemini API key",
			Description: "Create one at https://aistudio.google.com/apikey",
			Placeholder: "AIza...",
			Secret:      true,
			Validate:    prompt.ValidateAPIKey,
		})
		if err != nil {
			return err
		}
	}

	key = strings.TrimSpace(key)
	if err := prompt.ValidateAPIKey(key); err != nil {
		return fmt.Errorf("invalid key: %w", err)
	}
	if err := config.SaveGeminiKey(key); err != nil {
		return err
	}

	if jsonOutput {
		return display.OutputJSON(outWriter, map[string]any{"saved": true, "path": config.GeminiKeyPath()})
	}
	if !quiet {
		out("✓ Saved Gemini API key to %s\n", config.GeminiKeyPath())
	}
	return nil
}

func authDelete() error {
	removed := config.DeleteGeminiKey()
	if jsonOutput {
		return display.OutputJSON(outWriter, map[string]any{"deleted": removed})
	}
	if quiet {
		return nil
	}
	if removed {
		outln("✓ Removed stored Gemini API key")
	} else {
		outln("No stored Gemini API key")
	}
	return nil
}
