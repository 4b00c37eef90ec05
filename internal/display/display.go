package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/joshuadavidthomas/bihucal/internal/calendar"
	"github.com/joshuadavidthomas/bihucal/internal/models"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sundayStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	nationalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	regionalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	otherStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
)

// gridWidth is the printable width of seven two-character day cells.
const gridWidth = 7*3 - 1

// monthPanelWidth is a month panel including its border and padding.
const monthPanelWidth = gridWidth + 4

// YearOptions controls RenderYear.
type YearOptions struct {
	WeekStart calendar.WeekStart
	Columns   int
	// Width, when positive, caps Columns so rows fit the terminal.
	Width   int
	NoColor bool
}

func categoryStyle(c models.Category) lipgloss.Style {
	switch c {
	case models.CategoryNational:
		return nationalStyle
	case models.CategoryRegional:
		return regionalStyle
	default:
		return otherStyle
	}
}

// FitColumns returns how many month panels fit side by side in width,
// never more than want and never less than one.
func FitColumns(want, width int) int {
	if want < 1 {
		want = 1
	}
	if want > 12 {
		want = 12
	}
	if width <= 0 {
		return want
	}
	fit := (width + 1) / (monthPanelWidth + 1)
	return max(1, min(want, fit))
}

// RenderYear lays out twelve month panels in rows of opts.Columns.
func RenderYear(year int, holidays []models.Holiday, opts YearOptions) string {
	cols := FitColumns(opts.Columns, opts.Width)
	grids := calendar.Year(year, opts.WeekStart)
	byMonth := calendar.ByMonth(holidays)

	var b strings.Builder
	title := fmt.Sprintf("Holiday Calendar %d", year)
	if opts.NoColor {
		b.WriteString(title)
	} else {
		b.WriteString(titleStyle.Render(title))
	}
	b.WriteString("\n\n")

	for start := 0; start < len(grids); start += cols {
		end := min(start+cols, len(grids))
		bodies := make([][]string, 0, end-start)
		height := 0
		for _, g := range grids[start:end] {
			lines := monthBody(g, holidays, byMonth[g.Month], opts.NoColor)
			height = max(height, len(lines))
			bodies = append(bodies, lines)
		}

		panels := make([]string, 0, len(bodies))
		for i, lines := range bodies {
			for len(lines) < height {
				lines = append(lines, "")
			}
			g := grids[start+i]
			panels = append(panels, renderTitledPanel(" "+g.Month.String()+" ", strings.Join(lines, "\n"), gridWidth, opts.NoColor))
			if i < len(bodies)-1 {
				panels = append(panels, " ")
			}
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, panels...))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// RenderMonth renders a single month panel.
func RenderMonth(g calendar.MonthGrid, holidays []models.Holiday, noColor bool) string {
	var inMonth []models.Holiday
	for _, h := range holidays {
		if t, err := h.Time(); err == nil && t.Year() == g.Year && t.Month() == g.Month {
			inMonth = append(inMonth, h)
		}
	}
	title := fmt.Sprintf(" %s %d ", g.Month, g.Year)
	return renderTitledPanel(title, strings.Join(monthBody(g, holidays, inMonth, noColor), "\n"), gridWidth, noColor)
}

// monthBody returns the weekday header, six week rows and one line per
// holiday falling in the month. Days are matched against the full list.
func monthBody(g calendar.MonthGrid, all, inMonth []models.Holiday, noColor bool) []string {
	lines := make([]string, 0, 8+len(inMonth))

	header := strings.Join(g.Start.DayLabels(), " ")
	if noColor {
		lines = append(lines, header)
	} else {
		lines = append(lines, dimStyle.Render(header))
	}

	for _, week := range g.Weeks {
		cells := make([]string, len(week))
		for i, day := range week {
			cells[i] = renderDay(g, all, day, noColor)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	for len(lines) < 7 {
		lines = append(lines, "")
	}

	for _, h := range inMonth {
		t, err := h.Time()
		if err != nil || t.Year() != g.Year {
			continue
		}
		name := truncate(h.Name, gridWidth-3)
		day := fmt.Sprintf("%2d", t.Day())
		if !noColor {
			day = categoryStyle(h.Category).Render(day)
		}
		lines = append(lines, day+" "+name)
	}
	return lines
}

func renderDay(g calendar.MonthGrid, all []models.Holiday, day int, noColor bool) string {
	if day == 0 {
		return "  "
	}
	cell := fmt.Sprintf("%2d", day)
	if noColor {
		return cell
	}
	if hs := calendar.HolidaysOn(all, g.Key(day)); len(hs) > 0 {
		return categoryStyle(hs[0].Category).Render(cell)
	}
	if g.Weekday(day) == time.Sunday {
		return sundayStyle.Render(cell)
	}
	return cell
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func renderTitledPanel(title string, body string, minWidth int, noColor bool) string {
	border := func(s string) string {
		if noColor {
			return s
		}
		return separatorStyle.Render(s)
	}
	if !noColor {
		title = titleStyle.Render(title)
	}

	lines := strings.Split(body, "\n")

	bodyWidth := minWidth
	for _, line := range lines {
		bodyWidth = max(bodyWidth, lipgloss.Width(line))
	}

	innerWidth := max(bodyWidth+2, lipgloss.Width(title)+1)
	top := border("╭─") + title + border(strings.Repeat("─", max(0, innerWidth-lipgloss.Width(title)-1))+"╮")
	bottom := border("╰" + strings.Repeat("─", innerWidth) + "╯")

	rows := make([]string, 0, len(lines)+2)
	rows = append(rows, top)
	for _, line := range lines {
		pad := strings.Repeat(" ", max(0, bodyWidth-lipgloss.Width(line)))
		rows = append(rows, border("│")+" "+line+pad+" "+border("│"))
	}
	rows = append(rows, bottom)

	return strings.Join(rows, "\n")
}
