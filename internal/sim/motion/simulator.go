// Package motion simulates an MPU6050-class inertial sensor for a vehicle
// test rig: baseline riding vibration with injected fall and pothole
// anomaly events driven by a discrete scenario state machine.
package motion

import (
	"math"
	"time"

	"github.com/evrig/rigsim/internal/types"
	"github.com/evrig/rigsim/pkg/clock"
	"github.com/evrig/rigsim/pkg/randsource"
)

const gravity = 9.8 // m/s²

// Simulator generates acceleration, rotation-rate, and temperature samples.
// Tick advances the simulation and updates all derived values atomically;
// the getters are order-free and return the state of the most recent Tick.
// Instances are not internally locked; a single goroutine must own each one.
type Simulator struct {
	clk clock.Clock
	rng randsource.Source

	accelX, accelY, accelZ float64
	gyroX, gyroY, gyroZ    float64
	temperature            float64

	lastUpdate time.Time

	// active is non-nil while an anomaly event is in progress; next holds
	// the already-scheduled upcoming event.
	active   *event
	next     event
	progress float64
}

// NewSimulator creates an inertial simulator at rest, flat, with gravity on
// the z axis, and schedules the first anomaly event.
func NewSimulator(clk clock.Clock, rng randsource.Source) *Simulator {
	now := clk.Now()
	s := &Simulator{
		clk:         clk,
		rng:         rng,
		accelZ:      gravity,
		temperature: 25.0,
		lastUpdate:  now,
	}
	s.next = scheduleEvent(s.rng, now)
	return s
}

// Tick advances the simulation by the wall time elapsed since the last
// call, updating acceleration, rotation, temperature, and the scenario
// state machine in one step.
func (s *Simulator) Tick() {
	now := s.clk.Now()
	elapsed := now.Sub(s.lastUpdate).Seconds()
	s.lastUpdate = now

	s.temperature = clamp(s.temperature+randsource.Centered(s.rng, 0.05)*elapsed, 15, 45)

	if s.active == nil && !now.Before(s.next.start) {
		ev := s.next
		s.active = &ev
		s.progress = 0
	}

	if s.active == nil {
		s.updateNormal()
		return
	}

	s.progress = math.Min(1.0, now.Sub(s.active.start).Seconds()/s.active.duration.Seconds())
	switch s.active.kind {
	case eventFall:
		s.updateFall(s.progress)
	case eventPothole:
		s.updatePothole(s.progress)
	}

	if s.progress >= 1.0 {
		s.active = nil
		s.progress = 0
		s.next = scheduleEvent(s.rng, now)
	}
}

// Acceleration returns the x, y, z acceleration in m/s² from the last Tick.
func (s *Simulator) Acceleration() (x, y, z float64) {
	return s.accelX, s.accelY, s.accelZ
}

// Rotation returns the x, y, z rotation rates in rad/s from the last Tick.
func (s *Simulator) Rotation() (x, y, z float64) {
	return s.gyroX, s.gyroY, s.gyroZ
}

// Temperature returns the sensor temperature in °C from the last Tick.
func (s *Simulator) Temperature() float64 {
	return s.temperature
}

// Scenario names the scenario in effect after the last Tick.
func (s *Simulator) Scenario() string {
	if s.active == nil {
		return "normal"
	}
	return s.active.kind.String()
}

// Progress reports the normalized position within the active event, or 0
// during normal riding.
func (s *Simulator) Progress() float64 {
	return s.progress
}

// Read ticks the simulation and returns the resulting sample.
func (s *Simulator) Read() types.MotionReading {
	s.Tick()
	return types.MotionReading{
		Timestamp:   s.lastUpdate,
		AccelX:      s.accelX,
		AccelY:      s.accelY,
		AccelZ:      s.accelZ,
		GyroX:       s.gyroX,
		GyroY:       s.gyroY,
		GyroZ:       s.gyroZ,
		Temperature: s.temperature,
		Scenario:    s.Scenario(),
	}
}

// updateNormal produces baseline riding vibration with occasional turns.
func (s *Simulator) updateNormal() {
	s.accelX = randsource.Uniform(s.rng, -0.5, 0.5)
	s.accelY = randsource.Uniform(s.rng, -0.5, 0.5)
	s.accelZ = gravity + randsource.Uniform(s.rng, -0.3, 0.3)

	s.gyroX = randsource.Uniform(s.rng, -0.2, 0.2)
	s.gyroY = randsource.Uniform(s.rng, -0.2, 0.2)
	s.gyroZ = randsource.Uniform(s.rng, -0.1, 0.1)

	// 5% of reads synthesize a turn.
	if randsource.Chance(s.rng, 0.05) {
		direction := 1.0
		if randsource.Chance(s.rng, 0.5) {
			direction = -1.0
		}
		s.gyroZ = direction * randsource.Uniform(s.rng, 0.5, 1.5)
	}
}

// updateFall plays out a fall: lean, free fall, impact, then resting tilted.
func (s *Simulator) updateFall(progress float64) {
	switch {
	case progress < 0.1:
		leanAngle := progress * 10 * math.Pi / 180
		s.accelX = gravity * math.Sin(leanAngle)
		s.accelZ = gravity * math.Cos(leanAngle)
		s.gyroX = randsource.Uniform(s.rng, 0.5, 1.0)

	case progress < 0.3:
		s.accelX = randsource.Uniform(s.rng, -1.0, 1.0)
		s.accelY = randsource.Uniform(s.rng, -1.0, 1.0)
		s.accelZ = randsource.Uniform(s.rng, -1.0, 1.0)
		s.gyroX = randsource.Uniform(s.rng, 2.0, 5.0)
		s.gyroY = randsource.Uniform(s.rng, -2.0, 2.0)

	case progress < 0.4:
		// Impact lands on the side or the front.
		if randsource.Chance(s.rng, 0.5) {
			s.accelX = randsource.Uniform(s.rng, 25.0, 35.0)
			s.accelY = randsource.Uniform(s.rng, -5.0, 5.0)
		} else {
			s.accelX = randsource.Uniform(s.rng, -5.0, 5.0)
			s.accelY = randsource.Uniform(s.rng, 25.0, 35.0)
		}
		s.accelZ = randsource.Uniform(s.rng, 5.0, 10.0)
		s.gyroX = randsource.Uniform(s.rng, -10.0, 10.0)
		s.gyroY = randsource.Uniform(s.rng, -10.0, 10.0)
		s.gyroZ = randsource.Uniform(s.rng, -10.0, 10.0)

	default:
		fallAngle := randsource.Uniform(s.rng, 60, 90) * math.Pi / 180
		s.accelX = gravity * math.Sin(fallAngle)
		s.accelY = randsource.Uniform(s.rng, -1.0, 1.0)
		s.accelZ = gravity * math.Cos(fallAngle)
		s.gyroX = randsource.Uniform(s.rng, -0.1, 0.1)
		s.gyroY = randsource.Uniform(s.rng, -0.1, 0.1)
		s.gyroZ = randsource.Uniform(s.rng, -0.1, 0.1)
	}
}

// updatePothole plays out a pothole hit: wheel drop, rebound, damped settle.
func (s *Simulator) updatePothole(progress float64) {
	switch {
	case progress < 0.3:
		s.accelZ = -gravity - randsource.Uniform(s.rng, 5.0, 15.0)
		s.accelX = randsource.Uniform(s.rng, -2.0, 2.0)
		s.accelY = randsource.Uniform(s.rng, -2.0, 2.0)
		s.gyroX = randsource.Uniform(s.rng, 2.0, 4.0)
		s.gyroY = randsource.Uniform(s.rng, -0.5, 0.5)
		s.gyroZ = randsource.Uniform(s.rng, -0.5, 0.5)

	case progress < 0.7:
		s.accelZ = gravity + randsource.Uniform(s.rng, 5.0, 15.0)
		s.accelX = randsource.Uniform(s.rng, -3.0, 3.0)
		s.accelY = randsource.Uniform(s.rng, -3.0, 3.0)
		s.gyroX = randsource.Uniform(s.rng, -3.0, -1.0)
		s.gyroY = randsource.Uniform(s.rng, -0.5, 0.5)
		s.gyroZ = randsource.Uniform(s.rng, -0.5, 0.5)

	default:
		damping := (1.0 - progress) * 2
		s.accelZ = gravity + randsource.Uniform(s.rng, -2.0, 2.0)*damping
		s.accelX = randsource.Uniform(s.rng, -1.0, 1.0) * damping
		s.accelY = randsource.Uniform(s.rng, -1.0, 1.0) * damping
		s.gyroX = randsource.Uniform(s.rng, -1.0, 1.0) * damping
		s.gyroY = randsource.Uniform(s.rng, -0.5, 0.5) * damping
		s.gyroZ = randsource.Uniform(s.rng, -0.5, 0.5) * damping
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
