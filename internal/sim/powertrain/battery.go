package powertrain

import (
	"math"
	"time"

	"github.com/evrig/rigsim/internal/types"
	"github.com/evrig/rigsim/pkg/clock"
	"github.com/evrig/rigsim/pkg/randsource"
)

// Battery pack voltage window for a 36V-class pack.
const (
	packVoltageFull  = 42.0
	packVoltageEmpty = 33.0
)

// Battery simulates a lithium pack discharging under the load reported by
// LoadWatts. Capacity is expressed directly in watt-hours; the remaining
// energy used for range estimation is Level/100 * Capacity.
type Battery struct {
	clk clock.Clock
	rng randsource.Source

	// LoadWatts reports the instantaneous electrical draw. Defaults to no
	// load when nil.
	LoadWatts func() float64

	capacity    float64 // Wh
	level       float64 // percent
	temperature float64
	lastUpdate  time.Time
}

// NewBattery creates a fully-charged pack of the given capacity in Wh.
func NewBattery(clk clock.Clock, rng randsource.Source, capacityWh float64) *Battery {
	return &Battery{
		clk:         clk,
		rng:         rng,
		capacity:    capacityWh,
		level:       100.0,
		temperature: 25.0,
		lastUpdate:  clk.Now(),
	}
}

// State advances the discharge model by the elapsed wall time and returns
// the pack state.
func (b *Battery) State() types.BatteryState {
	now := b.clk.Now()
	elapsed := now.Sub(b.lastUpdate).Seconds()
	b.lastUpdate = now

	load := 0.0
	if b.LoadWatts != nil {
		load = math.Max(0, b.LoadWatts())
	}

	if elapsed > 0 && b.capacity > 0 {
		drawnWh := load * elapsed / 3600
		b.level = math.Max(0, b.level-drawnWh/b.capacity*100)
	}

	voltage := packVoltageEmpty + (packVoltageFull-packVoltageEmpty)*b.level/100
	current := 0.0
	if voltage > 0 {
		current = load / voltage
	}

	// Cell temperature rises with current and relaxes toward ambient.
	targetTemp := 25.0 + current*1.5
	b.temperature += (targetTemp-b.temperature)*math.Min(1, 0.01*elapsed) + randsource.Centered(b.rng, 0.02)*elapsed

	return types.BatteryState{
		Level:       b.level,
		Voltage:     voltage,
		Current:     current,
		Temperature: b.temperature,
		Charging:    false,
		Capacity:    b.capacity,
	}
}
