// Package randsource provides an injectable uniform randomness source for
// the simulators. Production code seeds it from the current time; tests
// seed it with a fixed value to get reproducible trajectories.
package randsource

import (
	"math/rand"
	"time"
)

// Source yields uniform random values. Implementations are not required to
// be safe for concurrent use; each simulator owns its own Source.
type Source interface {
	// Float64 returns a value uniform in [0, 1).
	Float64() float64
}

type mathRand struct {
	r *rand.Rand
}

// New returns a Source seeded from the current time.
func New() Source {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Source with a fixed seed.
func NewSeeded(seed int64) Source {
	return &mathRand{r: rand.New(rand.NewSource(seed))}
}

func (m *mathRand) Float64() float64 {
	return m.r.Float64()
}

// Uniform returns a value uniform in [lo, hi).
func Uniform(s Source, lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Centered returns a value uniform in [-halfWidth, halfWidth).
func Centered(s Source, halfWidth float64) float64 {
	return (s.Float64() - 0.5) * 2 * halfWidth
}

// Chance reports true with probability p.
func Chance(s Source, p float64) bool {
	return s.Float64() < p
}
