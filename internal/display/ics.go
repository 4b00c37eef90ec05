package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/joshuadavidthomas/bihucal/internal/models"
)

// BuildICS turns holidays into an iCalendar with one all-day event each.
// Entries whose date does not parse are skipped. stamp is used as DTSTAMP.
func BuildICS(year int, holidays []models.Holiday, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//bihucal//Holiday Calendar//EN")
	cal.SetXWRCalName(fmt.Sprintf("Holidays %d", year))

	for i, h := range holidays {
		day, err := h.Time()
		if err != nil {
			continue
		}
		ev := cal.AddEvent(fmt.Sprintf("%s-%d-%s@bihucal", h.Date, i, slug(h.Name)))
		ev.SetDtStampTime(stamp.UTC())
		ev.SetAllDayStartAt(day)
		ev.SetAllDayEndAt(day.AddDate(0, 0, 1))
		ev.SetSummary(h.Name)
		if h.Description != "" {
			ev.SetDescription(h.Description)
		}
		ev.SetProperty(ics.ComponentPropertyCategories, h.Category.Label())
		ev.SetProperty(ics.ComponentPropertyTransp, "TRANSPARENT")
	}
	return cal
}

// WriteICS serializes BuildICS to w.
func WriteICS(w io.Writer, year int, holidays []models.Holiday, stamp time.Time) error {
	return BuildICS(year, holidays, stamp).SerializeTo(w)
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
