package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/joshuadavidthomas/bihucal/internal/config"
)

// Open builds the Store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.CacheConfig) (*Store, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Backend {
	case config.BackendFile, "":
		backend = NewFileBackend(config.HolidaysDir())
	case config.BackendMemory:
		backend = NewMemoryBackend()
	case config.BackendSQLite:
		backend, err = OpenSQLite(ctx, cfg.SQLiteFile())
	case config.BackendRedis:
		backend, err = OpenRedis(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Username: cfg.RedisUsername,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return New(backend, WithWindow(cfg.Window())), nil
}
