package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "bihucal"

func ConfigDir() string {
	if v := os.Getenv("BIHUCAL_CONFIG_DIR"); v != "" {
		return v
	}
	return filepath.Join(xdg.ConfigHome, appName)
}

func CacheDir() string {
	if v := os.Getenv("BIHUCAL_CACHE_DIR"); v != "" {
		return v
	}
	return filepath.Join(xdg.CacheHome, appName)
}

func CredentialsDir() string { return filepath.Join(ConfigDir(), "credentials") }
func HolidaysDir() string    { return filepath.Join(CacheDir(), "holidays") }
func SQLiteFile() string     { return filepath.Join(CacheDir(), "holidays.db") }
func ConfigFile() string     { return filepath.Join(ConfigDir(), "config.toml") }
