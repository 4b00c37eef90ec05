package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CompletionInfo describes a finished year lookup.
type CompletionInfo struct {
	Year   int
	Source string
	// Degraded is set when the year fell back to the fixed list.
	Degraded bool
}

// SpinnerShouldShow returns true if the spinner should be displayed.
// The spinner is hidden for quiet mode, JSON output, or non-TTY (piped) output.
func SpinnerShouldShow(quiet, json, nonTTY bool) bool {
	return !quiet && !json && !nonTTY
}

// SpinnerRun shows a spinner per year while fetchFn runs. fetchFn must call
// onComplete once per year. SpinnerRun blocks until every year reports.
func SpinnerRun(years []int, fetchFn func(onComplete func(CompletionInfo))) error {
	if len(years) == 0 {
		fetchFn(func(CompletionInfo) {})
		return nil
	}

	m := newSpinnerModel(years)
	p := tea.NewProgram(m)

	done := make(chan struct{})
	go func() {
		fetchFn(func(info CompletionInfo) {
			p.Send(spinnerCompletionMsg(info))
		})
		close(done)
	}()

	_, err := p.Run()
	<-done
	if err != nil {
		return fmt.Errorf("running spinner: %w", err)
	}
	return nil
}

// spinnerCompletionMsg is sent to the model when a year lookup completes.
type spinnerCompletionMsg CompletionInfo

type spinnerModel struct {
	spinner     spinner.Model
	years       []int
	pending     map[int]bool
	completions map[int]CompletionInfo
	quitting    bool
}

var (
	spinnerCheckStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	spinnerWarnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func newSpinnerModel(years []int) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	pending := make(map[int]bool, len(years))
	for _, y := range years {
		pending[y] = true
	}

	return spinnerModel{
		spinner:     s,
		years:       append([]int(nil), years...),
		pending:     pending,
		completions: make(map[int]CompletionInfo),
	}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerCompletionMsg:
		info := CompletionInfo(msg)
		if !m.pending[info.Year] {
			return m, nil
		}

		m.completions[info.Year] = info
		delete(m.pending, info.Year)

		if len(m.pending) == 0 {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m spinnerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	for i, y := range m.years {
		if i > 0 {
			b.WriteString("\n")
		}
		if c, done := m.completions[y]; done {
			if c.Degraded {
				b.WriteString(spinnerWarnStyle.Render("!"))
			} else {
				b.WriteString(spinnerCheckStyle.Render("✓"))
			}
			fmt.Fprintf(&b, " %d (%s)", y, c.Source)
		} else {
			b.WriteString(m.spinner.View())
			fmt.Fprintf(&b, " Fetching holidays for %d", y)
		}
	}
	return b.String()
}
