package powertrain

import (
	"math"
	"time"

	"github.com/evrig/rigsim/internal/types"
	"github.com/evrig/rigsim/pkg/clock"
	"github.com/evrig/rigsim/pkg/randsource"
)

// Thermal simulates the ambient and motor-controller temperatures. The
// controller runs hotter than ambient in proportion to the load reported
// by LoadWatts, with a first-order lag.
type Thermal struct {
	clk clock.Clock
	rng randsource.Source

	// LoadWatts reports the controller's electrical throughput. Defaults
	// to no load when nil.
	LoadWatts func() float64

	ambient    float64
	controller float64
	lastUpdate time.Time
}

// NewThermal creates a thermal model at the given ambient temperature.
func NewThermal(clk clock.Clock, rng randsource.Source, ambient float64) *Thermal {
	return &Thermal{
		clk:        clk,
		rng:        rng,
		ambient:    ambient,
		controller: ambient,
		lastUpdate: clk.Now(),
	}
}

// State advances the thermal model by the elapsed wall time and returns
// the ambient and controller temperatures.
func (t *Thermal) State() types.ThermalState {
	now := t.clk.Now()
	elapsed := now.Sub(t.lastUpdate).Seconds()
	t.lastUpdate = now

	load := 0.0
	if t.LoadWatts != nil {
		load = math.Max(0, t.LoadWatts())
	}

	// Ambient drifts slowly and stays in a plausible outdoor band.
	t.ambient = clamp(t.ambient+randsource.Centered(t.rng, 0.02)*elapsed, -10, 45)

	// Controller temperature lags toward ambient plus a load-dependent
	// rise (MOSFET dissipation scales with throughput).
	targetTemp := t.ambient + load*0.06
	t.controller += (targetTemp - t.controller) * math.Min(1, 0.05*elapsed)

	return types.ThermalState{
		Ambient:    t.ambient,
		Controller: t.controller,
	}
}
