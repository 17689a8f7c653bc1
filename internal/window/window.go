// Package window implements the fixed-size sliding window the
// aggregator uses to smooth the reading stream.
package window

// Window is a fixed-capacity circular buffer over the most recent
// values. The backing slice never grows; once full, each new value
// overwrites the oldest slot.
type Window struct {
	values  []float64
	cursor  int
	filled  int    // occupied slots, caps at len(values)
	samples uint32 // total values ever pushed, wraps at the uint32 limit
}

// New creates a window over the last size values.
func New(size int) *Window {
	return &Window{values: make([]float64, size)}
}

// Push stores v, overwriting the oldest value once the window is full.
// The sample counter wraps via Go's defined unsigned arithmetic; the
// fill level is tracked separately so a wrapped counter never affects
// which slots count toward the mean.
func (w *Window) Push(v float64) {
	w.values[w.cursor] = v
	w.cursor = (w.cursor + 1) % len(w.values)
	if w.filled < len(w.values) {
		w.filled++
	}
	w.samples++
}

// Mean returns the average of the occupied slots. Slots that have
// never been written do not contribute.
func (w *Window) Mean() float64 {
	if w.filled == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range w.values[:w.filled] {
		sum += v
	}
	return sum / float64(w.filled)
}

// Samples returns the total number of values ever pushed.
func (w *Window) Samples() uint32 { return w.samples }

// Filled returns the number of occupied slots.
func (w *Window) Filled() int { return w.filled }

// Size returns the window capacity.
func (w *Window) Size() int { return len(w.values) }
