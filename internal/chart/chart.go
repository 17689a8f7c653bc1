// Package chart renders sparkline charts of the smoothed mean with
// band coloring that matches the LED classifier.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/thermopipe/internal/history"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Classifier band boundaries, mirrored from the presenter.
const (
	bandSolid     = 20.0
	bandFastBlink = 25.0
	bandEmergency = 30.0
)

// BandColor returns the color for a mean value, one per LED band.
func BandColor(mean float64) lipgloss.Color {
	switch {
	case mean >= bandEmergency:
		return lipgloss.Color("196") // emergency: red
	case mean >= bandFastBlink:
		return lipgloss.Color("208") // fast blink: orange
	case mean >= bandSolid:
		return lipgloss.Color("78") // solid: green
	default:
		return lipgloss.Color("39") // slow blink: cool blue
	}
}

// RenderSparkline renders a sparkline of the mean history with
// band-colored blocks and a subtle pipe at each minute boundary.
func RenderSparkline(points []history.Point, width int, rangeMin, rangeMax float64) string {
	if width <= 0 {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	if len(points) == 0 {
		return dim.Render(strings.Repeat("╌", width))
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)
	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	var sb strings.Builder
	for i := 0; i < padLen; i++ {
		sb.WriteString(dim.Render("╌"))
	}

	tickStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))

	for i, p := range points {
		norm := (p.Mean - rangeMin) / span
		norm = math.Max(0, math.Min(1, norm))

		idx := int(norm * 7)
		if idx > 7 {
			idx = 7
		}

		if isMinuteTick(points, i) {
			sb.WriteString(tickStyle.Render("│"))
			continue
		}

		style := lipgloss.NewStyle().Foreground(BandColor(p.Mean))
		if p.Mean >= bandEmergency {
			style = style.Bold(true)
		}
		sb.WriteString(style.Render(string(sparkBlocks[idx])))
	}

	return sb.String()
}

func isMinuteTick(points []history.Point, i int) bool {
	p := points[i]
	if p.Time.IsZero() {
		return false
	}
	if p.Time.Second() == 0 {
		return true
	}
	return i > 0 && !points[i-1].Time.IsZero() && p.Time.Minute() != points[i-1].Time.Minute()
}

// RenderTimeline renders HH:MM labels under the sparkline at each
// minute tick position.
func RenderTimeline(points []history.Point, width int) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}

	if len(points) > width {
		points = points[len(points)-width:]
	}

	padLen := width - len(points)

	line := make([]rune, width)
	for i := range line {
		line[i] = ' '
	}

	type tick struct {
		pos   int
		label string
	}
	var ticks []tick

	for i, p := range points {
		if isMinuteTick(points, i) {
			ticks = append(ticks, tick{pos: padLen + i, label: p.Time.Format("15:04")})
		}
	}

	// Sentinel below -1 so a label clamped to column 0 still renders.
	lastEnd := -2
	for _, t := range ticks {
		start := t.pos - 2
		if start < 0 {
			start = 0
		}
		end := start + len(t.label)
		if end > width {
			continue
		}
		if start <= lastEnd+1 {
			continue
		}
		for j, ch := range t.label {
			line[start+j] = ch
		}
		lastEnd = end
	}

	return lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Render(string(line))
}

// RenderBandScale renders a scale bar marking the classifier
// boundaries with the current mean as a diamond.
func RenderBandScale(current, rangeMin, rangeMax float64, width int) string {
	if width <= 0 {
		return ""
	}

	span := rangeMax - rangeMin
	if span <= 0 {
		span = 1
	}

	pos := func(v float64) int {
		p := int(float64(width-1) * (v - rangeMin) / span)
		if p < 0 || p >= width {
			return -1
		}
		return p
	}

	marks := map[int]lipgloss.Color{}
	for _, b := range []float64{bandSolid, bandFastBlink, bandEmergency} {
		if p := pos(b); p >= 0 {
			marks[p] = BandColor(b)
		}
	}

	curPos := int(float64(width-1) * (current - rangeMin) / span)
	if curPos < 0 {
		curPos = 0
	}
	if curPos >= width {
		curPos = width - 1
	}

	dotStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("236"))
	var sb strings.Builder
	for i := 0; i < width; i++ {
		switch {
		case i == curPos:
			style := lipgloss.NewStyle().Foreground(BandColor(current)).Bold(true)
			sb.WriteString(style.Render("◆"))
		case marks[i] != "":
			sb.WriteString(lipgloss.NewStyle().Foreground(marks[i]).Render("▪"))
		default:
			sb.WriteString(dotStyle.Render("·"))
		}
	}

	return sb.String()
}

// RenderMeanValue renders the mean with band color coding.
func RenderMeanValue(mean float64) string {
	s := fmt.Sprintf("%5.1f°C", mean)
	style := lipgloss.NewStyle().Foreground(BandColor(mean))
	if mean >= bandEmergency {
		style = style.Bold(true)
	}
	return style.Render(s)
}
