package powertrain

import (
	"testing"
	"time"

	"github.com/evrig/rigsim/pkg/clock"
	"github.com/evrig/rigsim/pkg/randsource"
)

func TestMotorConvergesToTarget(t *testing.T) {
	clk := clock.NewManual(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	motor := NewMotor(clk, randsource.NewSeeded(1))
	motor.SetTargetSpeed(25)

	var state = motor.State()
	for i := 0; i < 30; i++ {
		clk.Advance(time.Second)
		state = motor.State()
	}

	// 25 km/h at 3 km/h/s is reached within 9 seconds.
	if state.Speed != 25 {
		t.Errorf("Speed = %v after 30s, want 25", state.Speed)
	}
	if state.Power <= 0 {
		t.Errorf("Power = %v while cruising, want positive", state.Power)
	}
	if state.RPM != 25*rpmPerKmh {
		t.Errorf("RPM = %v, want %v", state.RPM, 25*rpmPerKmh)
	}
	if state.Torque <= 0 {
		t.Errorf("Torque = %v while cruising, want positive", state.Torque)
	}
	if state.Efficiency < 0.60 || state.Efficiency > 0.95 {
		t.Errorf("Efficiency = %v outside [0.60,0.95]", state.Efficiency)
	}
}

func TestMotorBrakesToZero(t *testing.T) {
	clk := clock.NewManual(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	motor := NewMotor(clk, randsource.NewSeeded(2))
	motor.SetTargetSpeed(25)
	for i := 0; i < 15; i++ {
		clk.Advance(time.Second)
		motor.State()
	}

	motor.SetTargetSpeed(0)
	var state = motor.State()
	for i := 0; i < 10; i++ {
		clk.Advance(time.Second)
		state = motor.State()
	}

	if state.Speed != 0 {
		t.Errorf("Speed = %v after braking, want 0", state.Speed)
	}
	if state.Power != 0 {
		t.Errorf("Power = %v at standstill, want 0", state.Power)
	}
}

func TestBatteryDischargesUnderLoad(t *testing.T) {
	clk := clock.NewManual(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	battery := NewBattery(clk, randsource.NewSeeded(3), 500)
	battery.LoadWatts = func() float64 { return 250 }

	last := battery.State().Level
	for i := 0; i < 60; i++ {
		clk.Advance(time.Minute)
		state := battery.State()
		if state.Level > last {
			t.Fatalf("minute %d: level rose %.3f -> %.3f while discharging", i, last, state.Level)
		}
		last = state.Level
	}

	// 250 W for 1 h out of 500 Wh is half the pack.
	if last < 49.9 || last > 50.1 {
		t.Errorf("Level = %.2f after an hour at 250W, want ~50", last)
	}
}

func TestBatteryLevelNeverNegative(t *testing.T) {
	clk := clock.NewManual(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	battery := NewBattery(clk, randsource.NewSeeded(4), 100)
	battery.LoadWatts = func() float64 { return 1000 }

	clk.Advance(10 * time.Hour)
	state := battery.State()

	if state.Level != 0 {
		t.Errorf("Level = %v after overdraw, want clamp at 0", state.Level)
	}
	if state.Voltage != packVoltageEmpty {
		t.Errorf("Voltage = %v at empty, want %v", state.Voltage, packVoltageEmpty)
	}
}

func TestControllerRunsHotterUnderLoad(t *testing.T) {
	clk := clock.NewManual(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	thermal := NewThermal(clk, randsource.NewSeeded(5), 22)
	thermal.LoadWatts = func() float64 { return 500 }

	var state = thermal.State()
	for i := 0; i < 120; i++ {
		clk.Advance(time.Second)
		state = thermal.State()
	}

	if state.Controller <= state.Ambient+5 {
		t.Errorf("Controller = %.1f not clearly above ambient %.1f under sustained load", state.Controller, state.Ambient)
	}
}
