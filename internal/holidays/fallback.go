package holidays

import (
	"fmt"

	"github.com/joshuadavidthomas/bihucal/internal/models"
)

var fallbackDays = []struct {
	monthDay string
	name     string
	category models.Category
}{
	{"01-26", "Republic Day", models.CategoryNational},
	{"04-14", "Bohag Bihu", models.CategoryRegional},
	{"08-15", "Independence Day", models.CategoryNational},
	{"10-02", "Gandhi Jayanti", models.CategoryNational},
}

// Fallback returns the fixed four-holiday list for year. It is what callers
// see when the remote service cannot be used.
func Fallback(year int) []models.Holiday {
	out := make([]models.Holiday, len(fallbackDays))
	for i, d := range fallbackDays {
		out[i] = models.Holiday{
			Date:     fmt.Sprintf("%04d-%s", year, d.monthDay),
			Name:     d.name,
			Category: d.category,
		}
	}
	return out
}
