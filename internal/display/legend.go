package display

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuadavidthomas/bihucal/internal/models"
)

// RenderHolidayTable lists holidays in input order with their weekday and
// category. Rows are tinted by category unless NoColor is set.
func RenderHolidayTable(holidays []models.Holiday, opts TableOptions) string {
	rows := make([][]string, 0, len(holidays))
	for _, h := range holidays {
		rows = append(rows, []string{h.Date, FormatWeekday(h), h.Name, h.Category.Label()})
	}
	opts.RowStyle = func(i int) lipgloss.Style {
		if i < 0 || i >= len(holidays) {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(categoryStyle(holidays[i].Category).GetForeground())
	}
	return NewTableWithOptions([]string{"Date", "Day", "Holiday", "Category"}, rows, opts)
}

// RenderLegend renders one swatch per category followed by its count.
func RenderLegend(holidays []models.Holiday, noColor bool) string {
	counts := make(map[models.Category]int, len(models.Categories))
	for _, h := range holidays {
		counts[h.Category]++
	}

	parts := make([]string, 0, len(models.Categories)+1)
	for _, c := range models.Categories {
		if c == models.CategoryOther && counts[c] == 0 {
			continue
		}
		swatch := "■"
		if !noColor {
			swatch = categoryStyle(c).Render(swatch)
		}
		parts = append(parts, swatch+" "+c.Label()+" ("+strconv.Itoa(counts[c])+")")
	}
	sunday := "■"
	if !noColor {
		sunday = sundayStyle.Render(sunday)
	}
	parts = append(parts, sunday+" Sunday")

	return strings.Join(parts, "   ")
}
