package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joshuadavidthomas/bihucal/internal/testenv"
)

func writeTestFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	testenv.Apply(t.Setenv, t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("backend = %q, want %q", cfg.Cache.Backend, BackendFile)
	}
	if cfg.Cache.Window() != 24*time.Hour {
		t.Errorf("window = %v, want 24h", cfg.Cache.Window())
	}
	if cfg.Gemini.Model != DefaultModel {
		t.Errorf("model = %q, want %q", cfg.Gemini.Model, DefaultModel)
	}
}

func TestLoad_ParsesTOML(t *testing.T) {
	testenv.Apply(t.Setenv, t.TempDir())
	writeTestFile(t, ConfigFile(), []byte(`
[gemini]
model = "gemini-2.5-pro"
timeout = 12.5

[cache]
backend = "sqlite"
window_hours = 6

[display]
week_start = "monday"
columns = 4
`))

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" || cfg.Gemini.Timeout != 12.5 {
		t.Errorf("gemini = %+v", cfg.Gemini)
	}
	if cfg.Cache.Backend != BackendSQLite || cfg.Cache.Window() != 6*time.Hour {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Gemini.BaseURL != DefaultBaseURL {
		t.Errorf("base_url = %q, want default preserved", cfg.Gemini.BaseURL)
	}
	if cfg.Display.WeekStart != "monday" || cfg.Display.Columns != 4 {
		t.Errorf("display = %+v", cfg.Display)
	}
}

func TestLoad_MalformedReturnsDefaultsAndError(t *testing.T) {
	testenv.Apply(t.Setenv, t.TempDir())
	writeTestFile(t, ConfigFile(), []byte("[cache\nbackend = "))

	cfg, err := Load("")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg.Cache.Backend != BackendFile {
		t.Errorf("backend = %q, want default", cfg.Cache.Backend)
	}
}

func TestLoad_InvalidBackendRejected(t *testing.T) {
	testenv.Apply(t.Setenv, t.TempDir())
	writeTestFile(t, ConfigFile(), []byte("[cache]\nbackend = \"memcached\"\n"))

	_, err := Load("")
	if err == nil || !strings.Contains(err.Error(), "memcached") {
		t.Fatalf("Load() error = %v, want unknown backend", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	testenv.Apply(t.Setenv, t.TempDir())
	t.Setenv("BIHUCAL_CACHE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache.internal:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("BIHUCAL_GEMINI_MODEL", "gemini-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Cache.Backend != BackendRedis {
		t.Errorf("backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.RedisAddr != "cache.internal:6380" || cfg.Cache.RedisDB != 3 {
		t.Errorf("redis = %s db %d", cfg.Cache.RedisAddr, cfg.Cache.RedisDB)
	}
	if cfg.Gemini.Model != "gemini-test" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	testenv.Apply(t.Setenv, t.TempDir())

	cfg := DefaultConfig()
	cfg.Cache.Backend = BackendMemory
	cfg.Display.Columns = 2
	if err := Save(cfg, ""); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero window", func(c *Config) { c.Cache.WindowHours = 0 }, false},
		{"bad week start", func(c *Config) { c.Display.WeekStart = "friday" }, false},
		{"monday mixed case", func(c *Config) { c.Display.WeekStart = "Monday" }, true},
		{"too many columns", func(c *Config) { c.Display.Columns = 13 }, false},
		{"empty model", func(c *Config) { c.Gemini.Model = " " }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestSQLiteFile_DefaultsUnderCacheDir(t *testing.T) {
	dirs := testenv.Apply(t.Setenv, t.TempDir())

	cfg := DefaultConfig()
	if got := cfg.Cache.SQLiteFile(); got != filepath.Join(dirs.Cache, "holidays.db") {
		t.Errorf("SQLiteFile() = %q", got)
	}
	cfg.Cache.SQLitePath = "/tmp/custom.db"
	if got := cfg.Cache.SQLiteFile(); got != "/tmp/custom.db" {
		t.Errorf("SQLiteFile() = %q, want custom path", got)
	}
}

func TestOverride_RestoresPrevious(t *testing.T) {
	testenv.Apply(t.Setenv, t.TempDir())
	before := Get()

	t.Run("inner", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Display.Columns = 6
		Override(t, cfg)
		if Get().Display.Columns != 6 {
			t.Errorf("override not applied")
		}
	})

	if Get() != before {
		t.Errorf("config not restored after Override cleanup")
	}
}

func TestGeminiKey_EnvBeatsFile(t *testing.T) {
	testenv.Apply(t.Setenv, t.TempDir())

	if key, _ := LoadGeminiKey(); key != "" {
		t.Fatalf("expected no key, got %q", key)
	}

	if err := SaveGeminiKey("  from-file  "); err != nil {
		t.Fatalf("SaveGeminiKey() error = %v", err)
	}
	key, source := LoadGeminiKey()
	if key != "from-file" || source != SourceFile {
		t.Errorf("LoadGeminiKey() = %q, %q", key, source)
	}

	info, err := os.Stat(GeminiKeyPath())
	if err != nil {
		t.Fatalf("stat key file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("key file perm = %o, want 600", perm)
	}

	t.Setenv(GeminiKeyEnv, "from-env")
	key, source = LoadGeminiKey()
	if key != "from-env" || source != SourceEnv {
		t.Errorf("LoadGeminiKey() = %q, %q, want env", key, source)
	}
}

func TestGeminiKey_LegacyTextFile(t *testing.T) {
	testenv.Apply(t.Setenv, t.TempDir())
	writeTestFile(t, legacyGeminiKeyPath(), []byte("legacy-key\n"))

	key, source := LoadGeminiKey()
	if key != "legacy-key" || source != SourceFile {
		t.Errorf("LoadGeminiKey() = %q, %q", key, source)
	}
	if !DeleteGeminiKey() {
		t.Error("DeleteGeminiKey() = false, want true")
	}
	if key, _ := LoadGeminiKey(); key != "" {
		t.Errorf("key still present after delete: %q", key)
	}
}
