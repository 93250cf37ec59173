package vibration

import (
	"math"
	"testing"
)

func TestEmptyWindow(t *testing.T) {
	w := NewWindow(10)
	s := w.Summarize()

	if s.Count != 0 || s.Level != "nominal" {
		t.Errorf("empty window summary = %+v, want zero count and nominal level", s)
	}
}

func TestConstantInputHasZeroSpread(t *testing.T) {
	w := NewWindow(50)
	for i := 0; i < 50; i++ {
		w.Observe(0, 0, 9.8)
	}

	s := w.Summarize()
	if math.Abs(s.Mean-9.8) > 1e-9 {
		t.Errorf("Mean = %v, want 9.8", s.Mean)
	}
	if s.StdDev != 0 {
		t.Errorf("StdDev = %v for constant input, want 0", s.StdDev)
	}
	if s.Level != "nominal" {
		t.Errorf("Level = %q, want nominal", s.Level)
	}
}

func TestSingleSample(t *testing.T) {
	w := NewWindow(10)
	w.Observe(3, 4, 0) // magnitude 5

	s := w.Summarize()
	if s.Count != 1 || s.Mean != 5 || s.StdDev != 0 || s.Max != 5 {
		t.Errorf("single-sample summary = %+v", s)
	}
}

func TestImpactSpikesRaiseLevel(t *testing.T) {
	w := NewWindow(20)
	for i := 0; i < 15; i++ {
		w.Observe(0.1, 0.1, 9.8)
	}
	// A fall-style impact burst.
	for i := 0; i < 5; i++ {
		w.Observe(30, 2, 7)
	}

	s := w.Summarize()
	if s.Level == "nominal" {
		t.Errorf("Level = nominal after impact burst, summary %+v", s)
	}
	if s.Max < 30 {
		t.Errorf("Max = %v, want at least the impact magnitude", s.Max)
	}
}

func TestRingWrapKeepsCapacity(t *testing.T) {
	w := NewWindow(4)
	for i := 0; i < 10; i++ {
		w.Observe(float64(i), 0, 0)
	}

	s := w.Summarize()
	if s.Count != 4 {
		t.Errorf("Count = %d after wrap, want 4", s.Count)
	}
	// Only the last four magnitudes (6,7,8,9) remain.
	if math.Abs(s.Mean-7.5) > 1e-9 {
		t.Errorf("Mean = %v after wrap, want 7.5", s.Mean)
	}
	if s.Max != 9 {
		t.Errorf("Max = %v after wrap, want 9", s.Max)
	}
}
