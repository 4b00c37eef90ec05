package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuadavidthomas/bihucal/internal/config"
	"github.com/joshuadavidthomas/bihucal/internal/display"
	"github.com/joshuadavidthomas/bihucal/internal/prompt"
)

var backendOptions = []prompt.SelectOption{
	{Label: "File: one JSON file per year in the cache dir", Value: config.BackendFile},
	{Label: "SQLite: a single local database", Value: config.BackendSQLite},
	{Label: "Redis: shared cache (uses REDIS_ADDR)", Value: config.BackendRedis},
	{Label: "Memory: no persistence", Value: config.BackendMemory},
}

var weekStartOptions = []prompt.SelectOption{
	{Label: "Sunday", Value: "sunday"},
	{Label: "Monday", Value: "monday"},
}

type initStatusJSON struct {
	ConfigFile    string `json:"config_file"`
	ConfigExists  bool   `json:"config_exists"`
	KeyConfigured bool   `json:"key_configured"`
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Run first-time setup wizard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			key, _ := config.LoadGeminiKey()
			return display.OutputJSON(outWriter, initStatusJSON{
				ConfigFile:    config.ConfigFile(),
				ConfigExists:  fileExists(config.ConfigFile()),
				KeyConfigured: key != "",
			})
		}
		if quiet {
			outln("Run 'bihucal init' without --quiet to configure bihucal")
			return nil
		}
		return interactiveWizard()
	},
}

func interactiveWizard() error {
	cfg, err := config.Load("")
	if err != nil {
		cfg = config.DefaultConfig()
	}

	outln()
	outln("  Welcome to bihucal!")
	outln()

	backend, err := prompt.Default.Select(prompt.SelectConfig{
		Title:   "Where should fetched holidays be cached?",
		Options: backendOptions,
		Default: cfg.Cache.Backend,
	})
	if err != nil {
		return err
	}
	weekStart, err := prompt.Default.Select(prompt.SelectConfig{
		Title:   "First day of the week",
		Options: weekStartOptions,
		Default: cfg.Display.WeekStart,
	})
	if err != nil {
		return err
	}

	cfg.Cache.Backend = backend
	cfg.Display.WeekStart = weekStart
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg, ""); err != nil {
		return err
	}
	config.SetGlobal(cfg)
	out("  ✓ Saved %s\n", config.ConfigFile())

	if key, _ := config.LoadGeminiKey(); key == "" {
		ok, err := prompt.Default.Confirm(prompt.ConfirmConfig{
			Title:       "Add a Gemini API key now?",
			Description: "Without one, only the built-in fallback holidays are shown.",
			Default:     true,
		})
		if err != nil {
			return err
		}
		if ok {
			if err := authStore(""); err != nil {
				return fmt.Errorf("storing key: %w", err)
			}
		}
	}

	outln()
	outln("  Run 'bihucal' to see this year's calendar.")
	return nil
}
