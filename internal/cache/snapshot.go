package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/joshuadavidthomas/bihucal/internal/models"
)

// Snapshot is the persisted form of one year's holiday list.
type Snapshot struct {
	Year      int
	Holidays  []models.Holiday
	Timestamp time.Time
}

// snapshotJSON keeps the timestamp as epoch milliseconds on disk.
type snapshotJSON struct {
	Year      int              `json:"year"`
	Holidays  []models.Holiday `json:"holidays"`
	Timestamp int64            `json:"timestamp"`
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	holidays := s.Holidays
	if holidays == nil {
		holidays = []models.Holiday{}
	}
	return json.Marshal(snapshotJSON{
		Year:      s.Year,
		Holidays:  holidays,
		Timestamp: s.Timestamp.UnixMilli(),
	})
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var raw snapshotJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Timestamp <= 0 {
		return fmt.Errorf("snapshot for %d has no timestamp", raw.Year)
	}
	s.Year = raw.Year
	s.Holidays = raw.Holidays
	if s.Holidays == nil {
		s.Holidays = []models.Holiday{}
	}
	s.Timestamp = time.UnixMilli(raw.Timestamp)
	return nil
}

// Age is how long ago the snapshot was written, relative to now.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.Timestamp)
}

func decodeSnapshot(year int, data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if snap.Year != year {
		return Snapshot{}, fmt.Errorf("snapshot under key for %d claims year %d", year, snap.Year)
	}
	for _, h := range snap.Holidays {
		if !h.Category.Valid() {
			return Snapshot{}, fmt.Errorf("decoding snapshot: holiday %q: unknown category %q", h.Name, h.Category)
		}
	}
	return snap, nil
}
