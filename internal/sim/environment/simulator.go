// Package environment simulates a BME680-class environmental sensor,
// producing temperature, pressure, humidity, and gas-resistance samples
// with daily cycles and slow bounded drift.
package environment

import (
	"math"
	"time"

	"github.com/evrig/rigsim/internal/types"
	"github.com/evrig/rigsim/pkg/clock"
	"github.com/evrig/rigsim/pkg/randsource"
)

// Oversample settings, mirroring the BME680 register values. Recorded but
// not functional in simulation.
const (
	OversampleNone = 0
	Oversample1x   = 1
	Oversample2x   = 2
	Oversample4x   = 3
	Oversample8x   = 4
	Oversample16x  = 5
)

// IIR filter settings, mirroring the BME680 register values.
const (
	FilterSize0   = 0
	FilterSize1   = 1
	FilterSize3   = 2
	FilterSize7   = 3
	FilterSize15  = 4
	FilterSize31  = 5
	FilterSize63  = 6
	FilterSize127 = 7
)

// Heater thresholds for a stable gas measurement.
const (
	heatStableMinTemp     = 200 // °C
	heatStableMinDuration = 100 // ms
)

// Simulator generates environmental samples. It holds mutable trend state
// advanced once per Sample call; a single goroutine must own each instance.
type Simulator struct {
	clk clock.Clock
	rng randsource.Source

	humidityOversample    int
	pressureOversample    int
	temperatureOversample int
	filterSize            int

	gasEnabled        bool
	gasHeaterTemp     int
	gasHeaterDuration int
	gasHeaterProfile  int

	lastUpdate     time.Time
	timeOfDayHours float64

	tempTrend     float64
	pressureTrend float64
	humidityTrend float64
}

// NewSimulator creates an environmental simulator. The time-of-day phase
// starts from the clock's current UTC second of day, so daily cycles line
// up with real time when driven by a wall clock.
func NewSimulator(clk clock.Clock, rng randsource.Source) *Simulator {
	now := clk.Now()
	return &Simulator{
		clk:            clk,
		rng:            rng,
		lastUpdate:     now,
		timeOfDayHours: float64(now.Unix()%86400) / 3600,
	}
}

func (s *Simulator) SetHumidityOversample(v int)    { s.humidityOversample = v }
func (s *Simulator) SetPressureOversample(v int)    { s.pressureOversample = v }
func (s *Simulator) SetTemperatureOversample(v int) { s.temperatureOversample = v }
func (s *Simulator) SetFilter(v int)                { s.filterSize = v }
func (s *Simulator) SetGasMeasurement(enabled bool) { s.gasEnabled = enabled }
func (s *Simulator) SetGasHeaterTemperature(v int)  { s.gasHeaterTemp = v }
func (s *Simulator) SetGasHeaterDuration(v int)     { s.gasHeaterDuration = v }
func (s *Simulator) SelectGasHeaterProfile(v int)   { s.gasHeaterProfile = v }

// Sample advances the simulation by the wall time elapsed since the last
// call and returns a fresh reading.
func (s *Simulator) Sample() types.EnvironmentalReading {
	now := s.clk.Now()
	elapsed := now.Sub(s.lastUpdate).Seconds()
	s.lastUpdate = now

	s.timeOfDayHours = math.Mod(s.timeOfDayHours+elapsed/3600, 24)

	// Daily phase peaks at 14:00 and bottoms at 02:00.
	dailyPhase := math.Sin((s.timeOfDayHours - 8) / 24 * 2 * math.Pi)

	s.tempTrend = clamp(s.tempTrend+randsource.Centered(s.rng, 0.05)*elapsed, -2, 2)
	temperature := round2(25.0 + s.tempTrend + 5.0*dailyPhase + randsource.Centered(s.rng, 0.15))

	// Pressure drifts against the temperature trend.
	s.pressureTrend = clamp(s.pressureTrend-s.tempTrend*0.5+randsource.Centered(s.rng, 0.25)*elapsed, -10, 10)
	pressure := round2(1013.25 + s.pressureTrend + randsource.Centered(s.rng, 0.25))

	// Humidity runs against the daily temperature cycle.
	s.humidityTrend = clamp(s.humidityTrend+randsource.Centered(s.rng, 0.25)*elapsed, -20, 20)
	humidity := round2(clamp(50.0+s.humidityTrend-10.0*dailyPhase+randsource.Centered(s.rng, 1.0), 0, 100))

	reading := types.EnvironmentalReading{
		Timestamp:   now,
		Temperature: temperature,
		Pressure:    pressure,
		Humidity:    humidity,
	}

	if s.gasEnabled {
		reading.GasValid = true
		reading.GasResistance = s.gasResistance(humidity)
		reading.HeatStable = s.gasHeaterTemp > heatStableMinTemp && s.gasHeaterDuration > heatStableMinDuration
	}

	return reading
}

// gasResistance models air quality: resistance drops with humidity and
// during commute rush hours.
func (s *Simulator) gasResistance(humidity float64) float64 {
	humidityFactor := 1.0 - humidity/150.0

	rushHourFactor := 1.0
	morningRush := math.Abs(s.timeOfDayHours-8.0) < 2.0
	eveningRush := math.Abs(s.timeOfDayHours-18.0) < 2.0
	if morningRush || eveningRush {
		rushHourFactor = 0.7
	}

	resistance := 50000.0*humidityFactor*rushHourFactor + randsource.Uniform(s.rng, -3000, 7000)
	return math.Max(5000.0, resistance)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
