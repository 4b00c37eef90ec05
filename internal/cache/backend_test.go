package cache

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/joshuadavidthomas/bihucal/internal/config"
	"github.com/joshuadavidthomas/bihucal/internal/testenv"
)

// exerciseBackend checks the Backend contract shared by every implementation.
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	if _, err := b.Get(ctx, "holidays_cache_2025"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	if err := b.Put(ctx, "holidays_cache_2025", []byte("one")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := b.Put(ctx, "holidays_cache_2025", []byte("two")); err != nil {
		t.Fatalf("Put() overwrite error = %v", err)
	}
	if err := b.Put(ctx, "holidays_cache_2024", []byte("old")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := b.Put(ctx, "other_2025", []byte("x")); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := b.Get(ctx, "holidays_cache_2025")
	if err != nil || string(got) != "two" {
		t.Errorf("Get() = %q, %v, want \"two\"", got, err)
	}

	keys, err := b.Keys(ctx, KeyPrefix)
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if want := []string{"holidays_cache_2024", "holidays_cache_2025"}; !reflect.DeepEqual(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}

	if err := b.Delete(ctx, "holidays_cache_2025"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := b.Delete(ctx, "holidays_cache_2025"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := b.Get(ctx, "holidays_cache_2025"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend())
}

func TestFileBackend(t *testing.T) {
	exerciseBackend(t, NewFileBackend(filepath.Join(t.TempDir(), "holidays")))
}

func TestFileBackend_KeysOnMissingDir(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "never-created"))
	keys, err := b.Keys(context.Background(), KeyPrefix)
	if err != nil || len(keys) != 0 {
		t.Errorf("Keys() = %v, %v, want empty", keys, err)
	}
}

func TestSQLiteBackend(t *testing.T) {
	b, err := OpenSQLite(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	defer func() { _ = b.Close() }()
	exerciseBackend(t, b)
}

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "holidays.db")
	ctx := context.Background()

	b, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("OpenSQLite() error = %v", err)
	}
	s := New(b)
	s.Write(ctx, 2025, sampleHolidays("2025"))
	_ = s.Close()

	b, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	s = New(b)
	defer func() { _ = s.Close() }()

	got, ok := s.Read(ctx, 2025)
	if !ok || !reflect.DeepEqual(got, sampleHolidays("2025")) {
		t.Errorf("Read() after reopen = %+v, %v", got, ok)
	}
}

func TestRedisBackend_UnreachableReadsAsMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := New(NewRedisBackend(client))
	defer func() { _ = s.Close() }()
	ctx := context.Background()

	s.Write(ctx, 2025, sampleHolidays("2025"))
	if _, ok := s.Read(ctx, 2025); ok {
		t.Error("expected miss when redis is unreachable")
	}
}

func TestOpen_SelectsBackend(t *testing.T) {
	testenv.Apply(t.Setenv, t.TempDir())
	ctx := context.Background()

	cfg := config.DefaultConfig().Cache
	s, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open(file) error = %v", err)
	}
	if _, ok := s.backend.(*FileBackend); !ok {
		t.Errorf("backend = %T, want *FileBackend", s.backend)
	}
	if s.Window() != 24*time.Hour {
		t.Errorf("window = %v", s.Window())
	}

	cfg.Backend = config.BackendSQLite
	s, err = Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open(sqlite) error = %v", err)
	}
	if _, ok := s.backend.(*SQLiteBackend); !ok {
		t.Errorf("backend = %T, want *SQLiteBackend", s.backend)
	}
	_ = s.Close()

	cfg.Backend = "etcd"
	if _, err := Open(ctx, cfg); err == nil {
		t.Error("expected error for unknown backend")
	}
}
