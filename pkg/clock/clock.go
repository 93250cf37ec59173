// Package clock provides an injectable time source so simulations can be
// replayed deterministically instead of depending on the wall clock.
package clock

import "time"

// Clock supplies the current time. Simulators advance their internal state
// by the difference between successive Now() values, so any monotonic
// implementation works, including a manually-stepped one.
type Clock interface {
	Now() time.Time
}

// WallClock reads the system clock.
type WallClock struct{}

// New returns a Clock backed by the system clock.
func New() Clock {
	return WallClock{}
}

func (WallClock) Now() time.Time {
	return time.Now()
}

// Manual is a hand-advanced Clock for tests and replay. It is not safe for
// concurrent use; the owner advances it between reads.
type Manual struct {
	current time.Time
}

// NewManual returns a Manual clock starting at the given instant.
func NewManual(start time.Time) *Manual {
	return &Manual{current: start}
}

func (m *Manual) Now() time.Time {
	return m.current
}

// Advance moves the clock forward by d.
func (m *Manual) Advance(d time.Duration) {
	m.current = m.current.Add(d)
}

// Set jumps the clock to t.
func (m *Manual) Set(t time.Time) {
	m.current = t
}
