package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Cache backend identifiers accepted in [cache].backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

const (
	DefaultModel   = "gemini-3-flash-preview"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
)

type GeminiConfig struct {
	Model   string  `toml:"model" json:"model"`
	BaseURL string  `toml:"base_url" json:"base_url"`
	Timeout float64 `toml:"timeout" json:"timeout"`
}

type CacheConfig struct {
	Backend       string  `toml:"backend" json:"backend"`
	WindowHours   float64 `toml:"window_hours" json:"window_hours"`
	SQLitePath    string  `toml:"sqlite_path" json:"sqlite_path"`
	RedisAddr     string  `toml:"redis_addr" json:"redis_addr"`
	RedisUsername string  `toml:"redis_username" json:"redis_username"`
	RedisPassword string  `toml:"redis_password" json:"-"`
	RedisDB       int     `toml:"redis_db" json:"redis_db"`
}

// Window returns the freshness window as a duration.
func (c CacheConfig) Window() time.Duration {
	return time.Duration(c.WindowHours * float64(time.Hour))
}

// SQLiteFile returns the configured database path or the default under the cache dir.
func (c CacheConfig) SQLiteFile() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return SQLiteFile()
}

type DisplayConfig struct {
	WeekStart string `toml:"week_start" json:"week_start"`
	Columns   int    `toml:"columns" json:"columns"`
}

type Config struct {
	Gemini  GeminiConfig  `toml:"gemini" json:"gemini"`
	Cache   CacheConfig   `toml:"cache" json:"cache"`
	Display DisplayConfig `toml:"display" json:"display"`
}

func DefaultConfig() Config {
	return Config{
		Gemini: GeminiConfig{
			Model:   DefaultModel,
			BaseURL: DefaultBaseURL,
			Timeout: 60.0,
		},
		Cache: CacheConfig{
			Backend:     BackendFile,
			WindowHours: 24,
			RedisAddr:   "localhost:6379",
		},
		Display: DisplayConfig{
			WeekStart: "sunday",
			Columns:   3,
		},
	}
}

// Validate reports the first setting that cannot be used as-is.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown cache backend %q (want file, sqlite, redis or memory)", c.Cache.Backend)
	}
	if c.Cache.WindowHours <= 0 {
		return errors.New("cache.window_hours must be positive")
	}
	switch strings.ToLower(c.Display.WeekStart) {
	case "sunday", "monday":
	default:
		return fmt.Errorf("unknown display.week_start %q (want sunday or monday)", c.Display.WeekStart)
	}
	if c.Display.Columns < 1 || c.Display.Columns > 12 {
		return fmt.Errorf("display.columns must be between 1 and 12, got %d", c.Display.Columns)
	}
	if strings.TrimSpace(c.Gemini.Model) == "" {
		return errors.New("gemini.model must not be empty")
	}
	return nil
}

var (
	globalConfig *Config
	configMu     sync.RWMutex
)

// Init loads .env from the working directory (if present) and then the
// config file, replacing the global config. A malformed config file still
// leaves defaults in place; the parse error is returned for the caller to log.
func Init() (Config, error) {
	_ = godotenv.Load()
	return Reload()
}

func Get() Config {
	configMu.RLock()
	if c := globalConfig; c != nil {
		configMu.RUnlock()
		return *c
	}
	configMu.RUnlock()

	configMu.Lock()
	defer configMu.Unlock()
	if globalConfig != nil {
		return *globalConfig
	}
	c, _ := Load("")
	globalConfig = &c
	return c
}

func Reload() (Config, error) {
	configMu.Lock()
	defer configMu.Unlock()
	c, err := Load("")
	globalConfig = &c
	return c, err
}

// SetGlobal replaces the cached global config, e.g. after Save.
func SetGlobal(cfg Config) {
	configMu.Lock()
	defer configMu.Unlock()
	globalConfig = &cfg
}

func Load(path string) (Config, error) {
	if path == "" {
		path = ConfigFile()
	}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return applyEnvOverrides(cfg), nil
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return applyEnvOverrides(DefaultConfig()), fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg = applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return applyEnvOverrides(DefaultConfig()), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(cfg Config, path string) error {
	if path == "" {
		path = ConfigFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	defer func() { _ = f.Close() }()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg Config) Config {
	if v := strings.TrimSpace(os.Getenv("BIHUCAL_CACHE_BACKEND")); v != "" {
		cfg.Cache.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("BIHUCAL_GEMINI_MODEL")); v != "" {
		cfg.Gemini.Model = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("REDIS_USER"); v != "" {
		cfg.Cache.RedisUsername = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Cache.RedisPassword = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.RedisDB = n
		}
	}
	return cfg
}
