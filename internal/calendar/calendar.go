// Package calendar lays out a year as month grids and matches days to holidays.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joshuadavidthomas/bihucal/internal/models"
)

// WeekStart is the first column of a month grid.
type WeekStart time.Weekday

const (
	StartSunday = WeekStart(time.Sunday)
	StartMonday = WeekStart(time.Monday)
)

// ParseWeekStart maps the config value to a WeekStart.
func ParseWeekStart(s string) (WeekStart, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sunday":
		return StartSunday, nil
	case "monday":
		return StartMonday, nil
	}
	return StartSunday, fmt.Errorf("unknown week start %q", s)
}

// DayLabels returns two-letter weekday headers starting at ws.
func (ws WeekStart) DayLabels() []string {
	names := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	out := make([]string, 7)
	for i := range out {
		out[i] = names[(int(ws)+i)%7]
	}
	return out
}

// MonthGrid is one month laid out in week rows. Zero entries in Weeks are
// blank cells before the 1st or after the last day.
type MonthGrid struct {
	Year   int
	Month  time.Month
	Days   int
	Offset int
	Start  WeekStart
	Weeks  [][]int
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// Month builds the grid for month of year.
func Month(year int, month time.Month, ws WeekStart) MonthGrid {
	days := DaysIn(year, month)
	first := time.Date(year, month, 1, 12, 0, 0, 0, time.UTC).Weekday()
	offset := (int(first) - int(ws) + 7) % 7

	g := MonthGrid{Year: year, Month: month, Days: days, Offset: offset, Start: ws}

	week := make([]int, 7)
	col := offset
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			g.Weeks = append(g.Weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		g.Weeks = append(g.Weeks, week)
	}
	return g
}

// Year builds all twelve month grids.
func Year(year int, ws WeekStart) []MonthGrid {
	out := make([]MonthGrid, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, Month(year, m, ws))
	}
	return out
}

// Weekday returns the weekday of a day in the grid's month.
func (g MonthGrid) Weekday(day int) time.Weekday {
	return time.Date(g.Year, g.Month, day, 12, 0, 0, 0, time.UTC).Weekday()
}

// Key returns the YYYY-MM-DD key of a day in the grid's month.
func (g MonthGrid) Key(day int) string {
	return DateKey(g.Year, g.Month, day)
}

// DateKey formats a calendar day the way Holiday.Date is stored.
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// HolidaysOn returns every holiday whose date equals key, in list order.
func HolidaysOn(list []models.Holiday, key string) []models.Holiday {
	var out []models.Holiday
	for _, h := range list {
		if h.Date == key {
			out = append(out, h)
		}
	}
	return out
}

// ByMonth groups holidays by month in list order. Entries whose date does
// not parse are skipped.
func ByMonth(list []models.Holiday) map[time.Month][]models.Holiday {
	out := make(map[time.Month][]models.Holiday)
	for _, h := range list {
		t, err := h.Time()
		if err != nil {
			continue
		}
		out[t.Month()] = append(out[t.Month()], h)
	}
	return out
}

// Year bounds accepted by ParseYear. Dates are stored as four-digit years.
const (
	MinYear = 1
	MaxYear = 9999
)

// ParseYear parses a command-line or URL year argument.
func ParseYear(s string) (int, error) {
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	if y < MinYear || y > MaxYear {
		return 0, fmt.Errorf("year %d out of range (%d-%d)", y, MinYear, MaxYear)
	}
	return y, nil
}
