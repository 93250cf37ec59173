// Package powertrain simulates the rig's battery, motor, and thermal
// subsystems. These are the state providers consumed by the telemetry
// aggregator; like the sensor simulators they integrate elapsed wall time
// on each poll and are owned by a single goroutine.
package powertrain

import (
	"math"
	"time"

	"github.com/evrig/rigsim/internal/types"
	"github.com/evrig/rigsim/pkg/clock"
	"github.com/evrig/rigsim/pkg/randsource"
)

// Motor behavior constants for a small EV hub motor.
const (
	maxAccelKmhPerSec = 3.0  // acceleration toward target
	maxDecelKmhPerSec = 5.0  // braking toward target
	rpmPerKmh         = 21.2 // ~10" wheel
	idlePowerWatts    = 15.0
)

// Motor tracks a settable target speed with bounded acceleration and
// derives power, rpm, torque, and efficiency from the current speed.
type Motor struct {
	clk clock.Clock
	rng randsource.Source

	targetSpeed float64
	speed       float64
	power       float64
	temperature float64
	lastUpdate  time.Time
}

// NewMotor creates a motor at rest at ambient temperature.
func NewMotor(clk clock.Clock, rng randsource.Source) *Motor {
	return &Motor{
		clk:         clk,
		rng:         rng,
		temperature: 25.0,
		lastUpdate:  clk.Now(),
	}
}

// SetTargetSpeed sets the commanded speed in km/h. Negative targets are
// treated as zero.
func (m *Motor) SetTargetSpeed(kmh float64) {
	m.targetSpeed = math.Max(0, kmh)
}

// Power returns the electrical draw in watts as of the last State call
// without advancing the simulation. The battery simulator polls this.
func (m *Motor) Power() float64 {
	return m.power
}

// State advances the motor by the elapsed wall time and returns its state.
func (m *Motor) State() types.MotorState {
	now := m.clk.Now()
	elapsed := now.Sub(m.lastUpdate).Seconds()
	m.lastUpdate = now

	// Track the target with bounded accel/decel.
	if m.speed < m.targetSpeed {
		m.speed = math.Min(m.targetSpeed, m.speed+maxAccelKmhPerSec*elapsed)
	} else if m.speed > m.targetSpeed {
		m.speed = math.Max(m.targetSpeed, m.speed-maxDecelKmhPerSec*elapsed)
	}

	// Rolling + aerodynamic load, plus an acceleration surcharge while
	// below target.
	m.power = 0.0
	if m.speed > 0 {
		m.power = idlePowerWatts + 4.0*m.speed + 0.06*m.speed*m.speed
		if m.speed < m.targetSpeed {
			m.power += 80.0
		}
		m.power += randsource.Centered(m.rng, 5.0)
		m.power = math.Max(0, m.power)
	}

	rpm := m.speed * rpmPerKmh
	torque := 0.0
	if rpm > 0 {
		// P = torque * angular velocity
		torque = m.power / (rpm * 2 * math.Pi / 60)
	}

	// Winding temperature follows load with a slow first-order lag.
	targetTemp := 25.0 + m.power*0.05
	m.temperature += (targetTemp - m.temperature) * math.Min(1, 0.02*elapsed)

	efficiency := 0.0
	if m.power > 0 {
		efficiency = clamp(0.88-0.0008*m.power+randsource.Centered(m.rng, 0.01), 0.60, 0.95)
	}

	return types.MotorState{
		Power:       m.power,
		Speed:       m.speed,
		TargetSpeed: m.targetSpeed,
		Temperature: m.temperature,
		RPM:         rpm,
		Torque:      torque,
		Efficiency:  efficiency,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
