// Package browse is the interactive year browser.
package browse

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joshuadavidthomas/bihucal/internal/calendar"
	"github.com/joshuadavidthomas/bihucal/internal/display"
	"github.com/joshuadavidthomas/bihucal/internal/holidays"
)

// Loader fetches one year. It must not fail; degraded results come back as
// a fallback Outcome.
type Loader func(ctx context.Context, year int, refresh bool) holidays.Outcome

// loadedMsg carries a finished load tagged with the sequence number it was
// issued under.
type loadedMsg struct {
	seq     uint64
	outcome holidays.Outcome
}

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true)
)

type Model struct {
	ctx  context.Context
	load Loader
	opts display.YearOptions

	year    int
	seq     uint64
	loading bool
	outcome *holidays.Outcome
	dropped int

	spinner  spinner.Model
	quitting bool
}

func New(ctx context.Context, year int, load Loader, opts display.YearOptions) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		ctx:     ctx,
		load:    load,
		opts:    opts,
		year:    clampYear(year),
		seq:     1,
		loading: true,
		spinner: s,
	}
}

// Run starts the browser full screen and blocks until the user quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running browser: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(m.seq, m.year, false))
}

// Year is the year currently selected.
func (m Model) Year() int { return m.year }

// Outcome is the last accepted load, or nil before the first arrives.
func (m Model) Outcome() *holidays.Outcome { return m.outcome }

// Loading reports whether the latest issued load is still outstanding.
func (m Model) Loading() bool { return m.loading }

func (m Model) loadCmd(seq uint64, year int, refresh bool) tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		return loadedMsg{seq: seq, outcome: load(ctx, year, refresh)}
	}
}

// issue starts a load for year. Only the most recently issued load is
// accepted; earlier ones still run but their results are dropped.
func (m Model) issue(year int, refresh bool) (Model, tea.Cmd) {
	m.year = clampYear(year)
	m.seq++
	m.loading = true
	return m, m.loadCmd(m.seq, m.year, refresh)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "left", "h":
			return m.issue(m.year-1, false)
		case "right", "l":
			return m.issue(m.year+1, false)
		case "r":
			return m.issue(m.year, true)
		}

	case loadedMsg:
		if msg.seq != m.seq {
			m.dropped++
			return m, nil
		}
		o := msg.outcome
		m.outcome = &o
		m.loading = false
		return m, nil

	case tea.WindowSizeMsg:
		m.opts.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("◀ %d ▶", m.year)))
	if m.loading {
		b.WriteString("  " + m.spinner.View() + " loading")
	}
	b.WriteString("\n\n")

	if m.outcome != nil && m.outcome.Year == m.year {
		b.WriteString(display.RenderYear(m.year, m.outcome.Holidays, m.opts))
		b.WriteString("\n\n")
		b.WriteString(display.RenderLegend(m.outcome.Holidays, m.opts.NoColor))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("←/h previous  →/l next  r refresh  q quit"))
	return b.String()
}

func clampYear(y int) int {
	return max(calendar.MinYear, min(calendar.MaxYear, y))
}
