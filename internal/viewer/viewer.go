// Package viewer implements the recorded-telemetry browser TUI with
// time scrubbing and day navigation.
package viewer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/thermopipe/internal/chart"
	"github.com/luki/thermopipe/internal/history"
	"github.com/luki/thermopipe/internal/telemetry"
)

// Run launches the telemetry browser over the given data directory.
// An empty dir selects the default telemetry directory.
func Run(dir string) error {
	searched := dir
	if searched == "" {
		searched = telemetry.DefaultDir()
	}

	days, err := telemetry.ListDays(dir)
	if err != nil {
		return fmt.Errorf("list telemetry in %s: %w", searched, err)
	}
	if len(days) == 0 {
		return fmt.Errorf("no telemetry found in %s", searched)
	}

	p := tea.NewProgram(initModel(dir, days), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorCrit     = lipgloss.Color("196")
)

// ── Model ────────────────────────────────────────────────────────────

type model struct {
	dir     string
	days    []string
	dayIdx  int
	records []telemetry.Record
	cursor  int // index into records
	width   int
	height  int
	err     error
}

func initModel(dir string, days []string) model {
	m := model{dir: dir, days: days}
	m.loadDay()
	return m
}

func (m *model) loadDay() {
	records, err := telemetry.LoadDay(m.dir, m.days[m.dayIdx])
	if err != nil {
		m.err = err
		return
	}
	m.records = records
	m.err = nil
	if len(records) > 0 {
		m.cursor = len(records) - 1
	}
}

// ── Init / Update ────────────────────────────────────────────────────

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "left", "h":
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			if m.cursor < len(m.records)-1 {
				m.cursor++
			}
		case "shift+left", "H":
			m.cursor -= 60
			if m.cursor < 0 {
				m.cursor = 0
			}
		case "shift+right", "L":
			m.cursor += 60
			if m.cursor >= len(m.records) {
				m.cursor = len(m.records) - 1
			}
		case "home":
			m.cursor = 0
		case "end":
			if len(m.records) > 0 {
				m.cursor = len(m.records) - 1
			}

		case "[":
			if m.dayIdx < len(m.days)-1 {
				m.dayIdx++
				m.loadDay()
			}
		case "]":
			if m.dayIdx > 0 {
				m.dayIdx--
				m.loadDay()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// ── View ─────────────────────────────────────────────────────────────

func (m model) View() string {
	if m.width == 0 {
		return "  Loading..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections := []string{m.renderTitleBar(contentWidth)}

	if m.err != nil {
		errBox := lipgloss.NewStyle().
			Foreground(colorCrit).
			Bold(true).
			Width(contentWidth).
			Padding(0, 1).
			Render(fmt.Sprintf(" ERROR: %v", m.err))
		sections = append(sections, errBox)
	} else if len(m.records) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(contentWidth).
			Align(lipgloss.Center).
			Padding(2, 0).
			Render("No records for this day")
		sections = append(sections, empty)
	} else {
		sections = append(sections, m.renderChartPanel(contentWidth))
	}

	sections = append(sections, m.renderFooter(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("THERMOPIPE REPLAY")

	day := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("%s (%d/%d)", m.days[m.dayIdx], m.dayIdx+1, len(m.days)))

	gap := width - lipgloss.Width(logo) - lipgloss.Width(day) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + strings.Repeat(" ", gap) + day)
}

func (m model) renderChartPanel(width int) string {
	innerWidth := width - 4
	chartWidth := innerWidth
	if chartWidth < 15 {
		chartWidth = 15
	}

	rec := m.records[m.cursor]

	labelS := lipgloss.NewStyle().Foreground(colorLabel)
	dimS := lipgloss.NewStyle().Foreground(colorDim)

	header := labelS.Render(rec.Time.Format("15:04:05")) +
		dimS.Render("  mean ") + chart.RenderMeanValue(rec.Mean) +
		dimS.Render("  pattern ") +
		lipgloss.NewStyle().Foreground(chart.BandColor(rec.Mean)).Bold(true).Render(rec.Pattern.String()) +
		dimS.Render(fmt.Sprintf("  samples %d", rec.Samples))

	// Scrub window: everything up to the cursor, newest at the right
	// edge, mirroring how the live dashboard fills.
	points := make([]history.Point, 0, m.cursor+1)
	rangeMin, rangeMax := 15.0, 35.0
	for _, r := range m.records[:m.cursor+1] {
		points = append(points, history.Point{Mean: r.Mean, Time: r.Time})
		if r.Mean < rangeMin {
			rangeMin = r.Mean
		}
		if r.Mean > rangeMax {
			rangeMax = r.Mean
		}
	}
	if len(points) > chartWidth {
		points = points[len(points)-chartWidth:]
	}

	rows := []string{
		header,
		chart.RenderSparkline(points, chartWidth, rangeMin, rangeMax),
		chart.RenderTimeline(points, chartWidth),
		chart.RenderBandScale(rec.Mean, rangeMin, rangeMax, chartWidth),
		dimS.Render(fmt.Sprintf("record %d/%d", m.cursor+1, len(m.records))),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width).
		Render(content)
}

func (m model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	keyS := lipgloss.NewStyle().Foreground(colorLabel)

	keys := dimS.Render("h/l") + keyS.Render(":scrub") +
		dimS.Render("  H/L") + keyS.Render(":jump") +
		dimS.Render("  [/]") + keyS.Render(":day") +
		dimS.Render("  q") + keyS.Render(":quit")

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(keys)
}
