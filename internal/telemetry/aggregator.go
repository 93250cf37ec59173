// Package telemetry fuses battery, motor, and thermal provider state into
// a single health-scored snapshot with accumulated energy, distance,
// efficiency, and range metrics.
package telemetry

import (
	"math"
	"time"

	"github.com/evrig/rigsim/internal/types"
	"github.com/evrig/rigsim/pkg/clock"
)

// BatteryProvider supplies battery pack state. Providers are trusted
// collaborators; the aggregator does not defend against malformed state.
type BatteryProvider interface {
	State() types.BatteryState
}

// MotorProvider supplies motor state.
type MotorProvider interface {
	State() types.MotorState
}

// ThermalProvider supplies ambient and controller temperatures.
type ThermalProvider interface {
	State() types.ThermalState
}

// Health score thresholds and penalty weights.
const (
	lowBatteryLevel     = 20.0
	batteryTempLimit    = 40.0
	motorTempLimit      = 60.0
	controllerTempLimit = 70.0

	batteryTempPenalty    = 2.0
	motorTempPenalty      = 1.5
	controllerTempPenalty = 1.5
)

// Aggregator polls the three providers and integrates elapsed time into
// accumulated energy and distance. The accumulators are private to the
// instance; a single goroutine must own each Aggregator.
type Aggregator struct {
	clk     clock.Clock
	battery BatteryProvider
	motor   MotorProvider
	thermal ThermalProvider

	startTime     time.Time
	lastUpdate    time.Time
	totalEnergy   float64 // Wh, monotonic non-decreasing
	totalDistance float64 // km, monotonic non-decreasing
}

// NewAggregator creates an aggregator over the given providers.
func NewAggregator(clk clock.Clock, battery BatteryProvider, motor MotorProvider, thermal ThermalProvider) *Aggregator {
	now := clk.Now()
	return &Aggregator{
		clk:        clk,
		battery:    battery,
		motor:      motor,
		thermal:    thermal,
		startTime:  now,
		lastUpdate: now,
	}
}

// Aggregate polls all providers, advances the accumulators by the elapsed
// wall time, and returns the fused snapshot.
func (a *Aggregator) Aggregate() types.TelemetrySnapshot {
	now := a.clk.Now()
	elapsed := now.Sub(a.lastUpdate).Seconds()
	a.lastUpdate = now

	battery := a.battery.State()
	motor := a.motor.State()
	thermal := a.thermal.State()

	if elapsed > 0 {
		// Power (W) x time (h) = energy (Wh); speed (km/h) x time (h) = km.
		a.totalEnergy += motor.Power * elapsed / 3600
		a.totalDistance += motor.Speed * elapsed / 3600
	}

	whPerKm := 0.0
	if a.totalDistance > 0 {
		whPerKm = a.totalEnergy / a.totalDistance
	}

	rangeEstimate := 0.0
	if whPerKm > 0 {
		// Capacity is defined in Wh, so remaining energy is just the
		// level fraction of capacity.
		remainingWh := battery.Level / 100 * battery.Capacity
		rangeEstimate = remainingWh / whPerKm
	}

	return types.TelemetrySnapshot{
		Timestamp: now,
		Uptime:    now.Sub(a.startTime).Seconds(),

		BatteryLevel:       battery.Level,
		BatteryVoltage:     battery.Voltage,
		BatteryCurrent:     battery.Current,
		BatteryTemperature: battery.Temperature,
		BatteryCharging:    battery.Charging,

		Speed:            motor.Speed,
		TargetSpeed:      motor.TargetSpeed,
		MotorPower:       motor.Power,
		MotorTemperature: motor.Temperature,
		MotorRPM:         motor.RPM,
		MotorTorque:      motor.Torque,
		MotorEfficiency:  motor.Efficiency,

		AmbientTemperature:    thermal.Ambient,
		ControllerTemperature: thermal.Controller,

		TotalEnergy:      a.totalEnergy,
		TotalDistance:    a.totalDistance,
		EnergyEfficiency: whPerKm,
		EstimatedRange:   rangeEstimate,
		SystemHealth:     systemHealth(battery, motor, thermal),
	}
}

// systemHealth scores overall condition from 0 (critical) to 100 (nominal).
func systemHealth(battery types.BatteryState, motor types.MotorState, thermal types.ThermalState) float64 {
	health := 100.0

	if battery.Level < lowBatteryLevel {
		health -= lowBatteryLevel - battery.Level
	}
	if battery.Temperature > batteryTempLimit {
		health -= (battery.Temperature - batteryTempLimit) * batteryTempPenalty
	}
	if motor.Temperature > motorTempLimit {
		health -= (motor.Temperature - motorTempLimit) * motorTempPenalty
	}
	if thermal.Controller > controllerTempLimit {
		health -= (thermal.Controller - controllerTempLimit) * controllerTempPenalty
	}

	return math.Max(0, math.Min(100, health))
}
