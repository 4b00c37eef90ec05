package display

import (
	"fmt"
	"time"

	"github.com/joshuadavidthomas/bihucal/internal/holidays"
	"github.com/joshuadavidthomas/bihucal/internal/models"
)

// FormatWeekday returns the three-letter weekday of h, or "" if the date
// does not parse.
func FormatWeekday(h models.Holiday) string {
	t, err := h.Time()
	if err != nil {
		return ""
	}
	return t.Weekday().String()[:3]
}

// FormatSource describes where a year's data came from.
func FormatSource(s holidays.Source) string {
	switch s {
	case holidays.SourceCache:
		return "cached"
	case holidays.SourceRemote:
		return "live"
	case holidays.SourceFallback:
		return "offline fallback"
	default:
		return string(s)
	}
}

// FormatAge formats a duration as a compact human-readable age string.
func FormatAge(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d.Hours() >= 24 {
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
	if d.Hours() >= 1 {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	if d.Minutes() >= 1 {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return "just now"
}
