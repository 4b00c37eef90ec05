package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/joshuadavidthomas/bihucal/internal/config"
	"github.com/joshuadavidthomas/bihucal/internal/display"
	"github.com/joshuadavidthomas/bihucal/internal/prompt"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration settings",
}

type configShowJSON struct {
	config.Config
	Path string `json:"path"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		cfgPath := config.ConfigFile()

		if jsonOutput {
			return display.OutputJSON(outWriter, configShowJSON{Config: cfg, Path: cfgPath})
		}

		if quiet {
			outln(cfgPath)
			return nil
		}

		// Never echo the Redis password.
		cfg.Cache.RedisPassword = ""
		out("Config: %s\n\n", cfgPath)
		return toml.NewEncoder(outWriter).Encode(cfg)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show directory paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		showCache, _ := cmd.Flags().GetBool("cache")
		showCreds, _ := cmd.Flags().GetBool("credentials")

		if jsonOutput {
			if showCache {
				return display.OutputJSON(outWriter, map[string]string{"cache_dir": config.CacheDir()})
			} else if showCreds {
				return display.OutputJSON(outWriter, map[string]string{"credentials_dir": config.CredentialsDir()})
			}
			return display.OutputJSON(outWriter, map[string]string{
				"config_dir":      config.ConfigDir(),
				"config_file":     config.ConfigFile(),
				"cache_dir":       config.CacheDir(),
				"credentials_dir": config.CredentialsDir(),
			})
		}

		switch {
		case showCache:
			outln(config.CacheDir())
		case showCreds:
			outln(config.CredentialsDir())
		case quiet:
			outln(config.ConfigDir())
		default:
			out("Config dir:    %s\n", config.ConfigDir())
			out("Config file:   %s\n", config.ConfigFile())
			out("Cache dir:     %s\n", config.CacheDir())
			out("Credentials:   %s\n", config.CredentialsDir())
		}
		return nil
	},
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset configuration to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		confirm, _ := cmd.Flags().GetBool("confirm")
		if !confirm && !jsonOutput {
			ok, err := prompt.Default.Confirm(prompt.ConfirmConfig{
				Title: "Reset configuration to defaults?",
			})
			if err != nil {
				return err
			}
			if !ok {
				outln("Reset cancelled")
				return nil
			}
		}

		cfgPath := config.ConfigFile()
		if err := os.Remove(cfgPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("resetting config: %w", err)
		}
		config.SetGlobal(config.DefaultConfig())

		if jsonOutput {
			return display.OutputJSON(outWriter, map[string]any{"reset": true, "path": cfgPath})
		}

		outln("✓ Configuration reset to defaults")
		return nil
	},
}

func init() {
	configPathCmd.Flags().Bool("cache", false, "Show only the cache directory")
	configPathCmd.Flags().Bool("credentials", false, "Show only the credentials directory")
	configResetCmd.Flags().Bool("confirm", false, "Skip the confirmation prompt")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configResetCmd)
}
