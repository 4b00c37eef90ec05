package display

import "github.com/joshuadavidthomas/bihucal/internal/models"

// YearJSON is the JSON and YAML shape of one year's holidays.
type YearJSON struct {
	Year     int              `json:"year" yaml:"year"`
	Source   string           `json:"source" yaml:"source"`
	Holidays []models.Holiday `json:"holidays" yaml:"holidays"`
}

// CacheEntryJSON describes a stored snapshot.
type CacheEntryJSON struct {
	Year      int    `json:"year"`
	Count     int    `json:"count"`
	Timestamp string `json:"timestamp"`
	Age       string `json:"age"`
	Fresh     bool   `json:"fresh"`
}

// CacheJSON is the output of `cache show --json`.
type CacheJSON struct {
	Backend string           `json:"backend"`
	Window  string           `json:"window"`
	Entries []CacheEntryJSON `json:"entries"`
}
