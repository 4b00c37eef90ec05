package cli

import (
	"context"

	"github.com/joshuadavidthomas/bihucal/internal/cache"
	"github.com/joshuadavidthomas/bihucal/internal/config"
	"github.com/joshuadavidthomas/bihucal/internal/gemini"
	"github.com/joshuadavidthomas/bihucal/internal/holidays"
	"github.com/joshuadavidthomas/bihucal/internal/logging"
)

// openStore opens the configured cache backend. If it cannot be opened the
// command still runs against an in-memory store.
func openStore(ctx context.Context, cfg config.Config) *cache.Store {
	store, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		logging.FromContext(ctx).Warn("cache unavailable, continuing without it",
			"backend", cfg.Cache.Backend, "err", err)
		return cache.New(cache.NewMemoryBackend(), cache.WithWindow(cfg.Cache.Window()))
	}
	return store
}

func newGeminiClient(cfg config.Config) *gemini.Client {
	key, _ := config.LoadGeminiKey()
	return gemini.New(key,
		gemini.WithModel(cfg.Gemini.Model),
		gemini.WithBaseURL(cfg.Gemini.BaseURL),
		gemini.WithTimeout(cfg.Gemini.Timeout),
	)
}

// newProvider wires the cache store and Gemini client from cfg. The
// returned func closes the store.
func newProvider(ctx context.Context, cfg config.Config) (*holidays.Provider, func()) {
	store := openStore(ctx, cfg)
	p := holidays.NewProvider(store, newGeminiClient(cfg))
	return p, func() {
		if err := store.Close(); err != nil {
			logging.FromContext(ctx).Debug("closing cache", "err", err)
		}
	}
}
