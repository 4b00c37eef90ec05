// Package cache keeps a per-year snapshot of holiday data with a freshness
// window. It is a soft cache: every storage or decode fault is logged and
// treated as a miss, never returned to the caller.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joshuadavidthomas/bihucal/internal/logging"
	"github.com/joshuadavidthomas/bihucal/internal/models"
)

// KeyPrefix namespaces snapshot keys; the year is appended.
const KeyPrefix = "holidays_cache_"

// DefaultWindow is how long a snapshot stays fresh.
const DefaultWindow = 24 * time.Hour

// Key returns the backend key for year.
func Key(year int) string {
	return KeyPrefix + strconv.Itoa(year)
}

// Store reads and writes year snapshots over a Backend.
type Store struct {
	backend Backend
	window  time.Duration
	now     func() time.Time
}

type Option func(*Store)

// WithWindow overrides DefaultWindow. Non-positive values are ignored.
func WithWindow(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.window = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{backend: backend, window: DefaultWindow, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Window returns the freshness window in use.
func (s *Store) Window() time.Duration { return s.window }

// Fresh reports whether snap is younger than the window.
func (s *Store) Fresh(snap Snapshot) bool {
	return snap.Age(s.now()) < s.window
}

// Read returns the cached holidays for year if a fresh, decodable snapshot
// exists. Missing, corrupt and stale entries all read as absent.
func (s *Store) Read(ctx context.Context, year int) ([]models.Holiday, bool) {
	logger := logging.FromContext(ctx)

	snap, ok := s.Inspect(ctx, year)
	if !ok {
		return nil, false
	}
	if !s.Fresh(snap) {
		logger.Debug("cache entry stale", "year", year, "age", snap.Age(s.now()).Round(time.Second))
		return nil, false
	}
	return snap.Holidays, true
}

// Write stores holidays for year stamped with the current time. Failures are
// logged and dropped; caching must never fail the caller.
func (s *Store) Write(ctx context.Context, year int, holidays []models.Holiday) {
	logger := logging.FromContext(ctx)

	data, err := json.Marshal(Snapshot{Year: year, Holidays: holidays, Timestamp: s.now()})
	if err != nil {
		logger.Debug("cache write failed", "year", year, "err", err)
		return
	}
	if err := s.backend.Put(ctx, Key(year), data); err != nil {
		logger.Debug("cache write failed", "year", year, "err", err)
		return
	}
	logger.Debug("cached holidays", "year", year, "count", len(holidays))
}

// Inspect returns the stored snapshot for year regardless of freshness.
func (s *Store) Inspect(ctx context.Context, year int) (Snapshot, bool) {
	logger := logging.FromContext(ctx)

	data, err := s.backend.Get(ctx, Key(year))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Debug("cache read failed", "year", year, "err", err)
		}
		return Snapshot{}, false
	}
	snap, err := decodeSnapshot(year, data)
	if err != nil {
		logger.Debug("cache entry unreadable", "year", year, "err", err)
		return Snapshot{}, false
	}
	return snap, true
}

// Years lists the years that have a stored snapshot, ascending.
func (s *Store) Years(ctx context.Context) ([]int, error) {
	keys, err := s.backend.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, err
	}
	years := make([]int, 0, len(keys))
	for _, k := range keys {
		y, err := strconv.Atoi(strings.TrimPrefix(k, KeyPrefix))
		if err != nil {
			continue
		}
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

// Clear removes the snapshot for year. Removing a missing entry is not an error.
func (s *Store) Clear(ctx context.Context, year int) error {
	err := s.backend.Delete(ctx, Key(year))
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}

// ClearAll removes every snapshot and returns how many were removed.
func (s *Store) ClearAll(ctx context.Context) (int, error) {
	years, err := s.Years(ctx)
	if err != nil {
		return 0, err
	}
	for i, y := range years {
		if err := s.Clear(ctx, y); err != nil {
			return i, err
		}
	}
	return len(years), nil
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
