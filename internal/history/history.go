// Package history provides a ring buffer of smoothed means with
// min/peak statistics for chart rendering.
package history

import (
	"math"
	"time"
)

// Point is a single data point in the mean history.
type Point struct {
	Mean float64
	Time time.Time
}

// Buffer stores a ring buffer of smoothed means.
type Buffer struct {
	Points []Point
	Max    int // capacity
	Min    float64
	Peak   float64
}

// NewBuffer creates a history ring buffer with the given capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		Points: make([]Point, 0, capacity),
		Max:    capacity,
		Min:    math.MaxFloat64,
		Peak:   -math.MaxFloat64,
	}
}

// Push adds a new mean to the history.
func (b *Buffer) Push(mean float64, t time.Time) {
	p := Point{Mean: mean, Time: t}
	if len(b.Points) >= b.Max {
		copy(b.Points, b.Points[1:])
		b.Points[len(b.Points)-1] = p
	} else {
		b.Points = append(b.Points, p)
	}

	if mean < b.Min {
		b.Min = mean
	}
	if mean > b.Peak {
		b.Peak = mean
	}
}

// Last returns the most recent mean, or 0 if empty.
func (b *Buffer) Last() float64 {
	if len(b.Points) == 0 {
		return 0
	}
	return b.Points[len(b.Points)-1].Mean
}

// LastNPoints returns the last n points (with timestamps).
func (b *Buffer) LastNPoints(n int) []Point {
	if n <= 0 || len(b.Points) == 0 {
		return nil
	}
	start := len(b.Points) - n
	if start < 0 {
		start = 0
	}
	out := make([]Point, len(b.Points[start:]))
	copy(out, b.Points[start:])
	return out
}
