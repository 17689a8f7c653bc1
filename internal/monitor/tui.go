package monitor

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/thermopipe/internal/chart"
	"github.com/luki/thermopipe/internal/history"
)

const (
	tickInterval = 1 * time.Second
	historySize  = 600 // 10 minutes at 1s interval
)

// RunTUI runs the live dashboard until the user quits. The pipeline
// behind src keeps running; the dashboard only polls its health.
func RunTUI(src HealthSource) error {
	p := tea.NewProgram(newModel(src), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// ── Messages ─────────────────────────────────────────────────────────

type tickMsg time.Time

// ── Model ────────────────────────────────────────────────────────────

type model struct {
	src       HealthSource
	snap      Snapshot
	hist      *history.Buffer
	width     int
	height    int
	paused    bool
	startTime time.Time
}

func newModel(src HealthSource) model {
	return model{
		src:       src,
		hist:      history.NewBuffer(historySize),
		startTime: time.Now(),
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ── Init / Update ────────────────────────────────────────────────────

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		if m.paused {
			return m, tickCmd()
		}
		m.snap = sample(m.src)
		if m.snap.SampleCount > 0 {
			m.hist.Push(m.snap.Mean, m.snap.Time)
		}
		return m, tickCmd()
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorLabel    = lipgloss.Color("252")
	colorValue    = lipgloss.Color("250")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorDropped  = lipgloss.Color("208")
	colorPaused   = lipgloss.Color("196")
)

// ── View ─────────────────────────────────────────────────────────────

func (m model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	sections := []string{
		m.renderTitleBar(contentWidth),
		m.renderMeanPanel(contentWidth),
		m.renderQueuePanel(contentWidth),
		m.renderSystemPanel(contentWidth),
		m.renderFooter(contentWidth),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("THERMOPIPE")

	var statusParts []string

	uptime := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("up %s", fmtDuration(time.Since(m.startTime))))
	statusParts = append(statusParts, uptime)

	if !m.snap.Time.IsZero() {
		ts := lipgloss.NewStyle().
			Foreground(colorDim).
			Render(m.snap.Time.Format("15:04:05"))
		statusParts = append(statusParts, ts)
	}

	if m.paused {
		p := lipgloss.NewStyle().
			Foreground(colorPaused).
			Bold(true).
			Render("PAUSED")
		statusParts = append(statusParts, p)
	}

	sep := lipgloss.NewStyle().Foreground(colorDim).Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + strings.Repeat(" ", gap) + right)
}

func (m model) renderMeanPanel(width int) string {
	innerWidth := width - 4
	chartWidth := innerWidth - 10
	if chartWidth < 15 {
		chartWidth = 15
	}

	labelS := lipgloss.NewStyle().Foreground(colorLabel)
	dimS := lipgloss.NewStyle().Foreground(colorDim)

	var rows []string

	if m.snap.SampleCount == 0 {
		rows = append(rows, dimS.Render("Waiting for the first summary..."))
	} else {
		header := labelS.Render("mean ") + chart.RenderMeanValue(m.snap.Mean) +
			dimS.Render("  pattern ") +
			lipgloss.NewStyle().Foreground(chart.BandColor(m.snap.Mean)).Bold(true).Render(m.snap.Pattern.String()) +
			dimS.Render(fmt.Sprintf("  samples %d", m.snap.SampleCount))
		rows = append(rows, header)

		rangeMin, rangeMax := 15.0, 35.0
		if m.hist.Min < rangeMin {
			rangeMin = m.hist.Min
		}
		if m.hist.Peak > rangeMax {
			rangeMax = m.hist.Peak
		}

		pts := m.hist.LastNPoints(chartWidth)
		rows = append(rows, chart.RenderSparkline(pts, chartWidth, rangeMin, rangeMax))
		rows = append(rows, chart.RenderTimeline(pts, chartWidth))
		rows = append(rows, chart.RenderBandScale(m.snap.Mean, rangeMin, rangeMax, chartWidth))
	}

	return panel(width, rows)
}

func (m model) renderQueuePanel(width int) string {
	rows := []string{
		renderQueueRow("readings ", m.snap.ReadingsLen, m.snap.ReadingsCap, m.snap.DroppedReadings),
		renderQueueRow("summaries", m.snap.SummariesLen, m.snap.SummariesCap, m.snap.DroppedSummaries),
	}
	return panel(width, rows)
}

func renderQueueRow(name string, length, capacity int, dropped uint64) string {
	labelS := lipgloss.NewStyle().Foreground(colorLabel)
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(colorValue)

	gaugeWidth := 20
	filled := 0
	if capacity > 0 {
		filled = length * gaugeWidth / capacity
	}
	if filled > gaugeWidth {
		filled = gaugeWidth
	}

	gaugeColor := lipgloss.Color("78")
	if length == capacity {
		gaugeColor = colorDropped
	}
	gauge := lipgloss.NewStyle().Foreground(gaugeColor).Render(strings.Repeat("█", filled)) +
		dimS.Render(strings.Repeat("─", gaugeWidth-filled))

	row := labelS.Render(name) + " " + gauge + valS.Render(fmt.Sprintf(" %2d/%-2d", length, capacity))
	if dropped > 0 {
		row += lipgloss.NewStyle().Foreground(colorDropped).Render(fmt.Sprintf("  dropped %d", dropped))
	}
	return row
}

func (m model) renderSystemPanel(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(colorValue)

	row := dimS.Render("readings ") + valS.Render(fmt.Sprintf("%d", m.snap.Readings)) +
		dimS.Render("  device writes ") + valS.Render(fmt.Sprintf("%d", m.snap.DeviceWrites)) +
		dimS.Render("  goroutines ") + valS.Render(fmt.Sprintf("%d", m.snap.Goroutines)) +
		dimS.Render("  free mem ") + valS.Render(fmtBytes(m.snap.FreeMemory))

	return panel(width, []string{row})
}

func panel(width int, rows []string) string {
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

	legend := lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Render("██") + dimS.Render(" slow ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("78")).Render("██") + dimS.Render(" solid ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Render("██") + dimS.Render(" fast ") +
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("██") + dimS.Render(" emergency")

	keys := dimS.Render("q") + keyS.Render(":quit") +
		dimS.Render("  p") + keyS.Render(":pause")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + strings.Repeat(" ", gap) + keys)
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	min := d / time.Minute
	d -= min * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, min, s)
	}
	return fmt.Sprintf("%dm%02ds", min, s)
}

func fmtBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1fGiB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1fMiB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1fKiB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%dB", b)
	}
}
