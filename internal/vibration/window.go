// Package vibration maintains a rolling window of acceleration magnitudes
// and summarizes it statistically, flagging elevated shock levels for
// downstream consumers.
package vibration

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Shock classification thresholds on the window's standard deviation, in
// m/s². Normal riding vibration sits well under 1; falls and potholes push
// double digits.
const (
	elevatedStdDev = 2.0
	criticalStdDev = 8.0
)

// Summary describes the current window.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Max    float64 `json:"max"`
	Level  string  `json:"level"` // nominal, elevated, critical
}

// Window is a fixed-capacity ring of acceleration magnitudes. Not safe for
// concurrent use; the collector owns it.
type Window struct {
	samples []float64
	next    int
	full    bool
}

// NewWindow creates a window holding up to capacity samples.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{samples: make([]float64, 0, capacity)}
}

// Observe records the magnitude of an acceleration vector.
func (w *Window) Observe(ax, ay, az float64) {
	magnitude := math.Sqrt(ax*ax + ay*ay + az*az)
	if !w.full {
		w.samples = append(w.samples, magnitude)
		if len(w.samples) == cap(w.samples) {
			w.full = true
		}
		return
	}
	w.samples[w.next] = magnitude
	w.next = (w.next + 1) % len(w.samples)
}

// Summarize computes statistics over the current window contents.
func (w *Window) Summarize() Summary {
	n := len(w.samples)
	if n == 0 {
		return Summary{Level: "nominal"}
	}

	mean, std := stat.MeanStdDev(w.samples, nil)
	if n == 1 {
		std = 0
	}

	maxMag := w.samples[0]
	for _, m := range w.samples[1:] {
		if m > maxMag {
			maxMag = m
		}
	}

	level := "nominal"
	switch {
	case std >= criticalStdDev:
		level = "critical"
	case std >= elevatedStdDev:
		level = "elevated"
	}

	return Summary{
		Count:  n,
		Mean:   mean,
		StdDev: std,
		Max:    maxMag,
		Level:  level,
	}
}
