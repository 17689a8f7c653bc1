package chart

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luki/thermopipe/internal/history"
)

func TestSparkline(t *testing.T) {
	base := time.Date(2026, 8, 20, 14, 0, 50, 0, time.Local)
	var pts []history.Point
	for i := 0; i < 20; i++ {
		pts = append(pts, history.Point{
			Mean: float64(18 + i%5),
			Time: base.Add(time.Duration(i) * time.Second),
		})
	}

	result := RenderSparkline(pts, 20, 15, 35)
	require.NotEmpty(t, result)
	require.Contains(t, result, "│", "expected minute tick mark")
	t.Logf("Sparkline: %s", result)
}

func TestSparklineEmpty(t *testing.T) {
	result := RenderSparkline(nil, 10, 15, 35)
	require.NotEmpty(t, result)
	require.Empty(t, RenderSparkline(nil, 0, 15, 35))
}

func TestTimelineLabels(t *testing.T) {
	base := time.Date(2026, 8, 20, 14, 0, 58, 0, time.Local)
	var pts []history.Point
	for i := 0; i < 20; i++ {
		pts = append(pts, history.Point{
			Mean: 22.0,
			Time: base.Add(time.Duration(i) * time.Second),
		})
	}

	result := RenderTimeline(pts, 20)
	require.Contains(t, result, "14:01")
}

func TestTimelineLabelAtLeftEdge(t *testing.T) {
	// A minute tick in the first columns clamps its label to column 0;
	// it must still render.
	base := time.Date(2026, 8, 20, 14, 1, 0, 0, time.Local)
	var pts []history.Point
	for i := 0; i < 20; i++ {
		pts = append(pts, history.Point{
			Mean: 22.0,
			Time: base.Add(time.Duration(i) * time.Second),
		})
	}

	result := RenderTimeline(pts, 20)
	require.Contains(t, result, "14:01")
}

func TestBandScale(t *testing.T) {
	result := RenderBandScale(23.2, 15, 35, 40)
	require.NotEmpty(t, result)
	require.True(t, strings.Contains(result, "◆"), "expected current-value marker")
}
