package collector

import (
	"testing"
	"time"

	"github.com/evrig/rigsim/internal/sim/environment"
	"github.com/evrig/rigsim/internal/sim/motion"
	"github.com/evrig/rigsim/internal/sim/powertrain"
	"github.com/evrig/rigsim/internal/telemetry"
	"github.com/evrig/rigsim/internal/types"
	"github.com/evrig/rigsim/internal/vibration"
	"github.com/evrig/rigsim/pkg/clock"
	"github.com/evrig/rigsim/pkg/randsource"
	"go.uber.org/zap"
)

func newTestCollector(distributor chan types.TelemetryRecord) (*Collector, *clock.Manual, *powertrain.Motor) {
	clk := clock.NewManual(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))

	env := environment.NewSimulator(clk, randsource.NewSeeded(1))
	env.SetGasMeasurement(true)
	env.SetGasHeaterTemperature(320)
	env.SetGasHeaterDuration(150)

	motionSim := motion.NewSimulator(clk, randsource.NewSeeded(2))

	motor := powertrain.NewMotor(clk, randsource.NewSeeded(3))
	motor.SetTargetSpeed(20)
	battery := powertrain.NewBattery(clk, randsource.NewSeeded(4), 500)
	battery.LoadWatts = motor.Power
	thermal := powertrain.NewThermal(clk, randsource.NewSeeded(5), 22)

	agg := telemetry.NewAggregator(clk, battery, motor, thermal)
	window := vibration.NewWindow(32)

	col := New(time.Second, env, motionSim, agg, window, distributor, zap.NewNop().Sugar())
	return col, clk, motor
}

func TestCollectProducesCompleteRecord(t *testing.T) {
	distributor := make(chan types.TelemetryRecord, 1)
	col, clk, _ := newTestCollector(distributor)

	clk.Advance(time.Second)
	record := col.Collect()

	if record.ID == "" {
		t.Error("record has no ID")
	}
	if record.Environment.Timestamp.IsZero() || record.Motion.Timestamp.IsZero() {
		t.Error("sensor samples missing timestamps")
	}
	if !record.Environment.HeatStable {
		t.Error("heat-stable gas reading expected with configured heater")
	}
	if record.Snapshot.SystemHealth < 0 || record.Snapshot.SystemHealth > 100 {
		t.Errorf("SystemHealth = %v outside [0,100]", record.Snapshot.SystemHealth)
	}

	select {
	case got := <-distributor:
		if got.ID != record.ID {
			t.Errorf("distributed record ID %q, want %q", got.ID, record.ID)
		}
	default:
		t.Error("record was not sent to the distributor")
	}
}

func TestLatestTracksMostRecentRecord(t *testing.T) {
	col, clk, _ := newTestCollector(nil)

	if _, ok := col.Latest(); ok {
		t.Error("Latest reported data before any collection")
	}

	var lastID string
	for i := 0; i < 5; i++ {
		clk.Advance(time.Second)
		lastID = col.Collect().ID
	}

	latest, ok := col.Latest()
	if !ok {
		t.Fatal("Latest reported no data after collections")
	}
	if latest.ID != lastID {
		t.Errorf("Latest ID = %q, want most recent %q", latest.ID, lastID)
	}

	vibes := col.Vibration()
	if vibes.Count != 5 {
		t.Errorf("vibration window count = %d, want 5", vibes.Count)
	}
}

func TestEnqueuedCommandsApplyBeforeSampling(t *testing.T) {
	col, clk, motor := newTestCollector(nil)

	// The helper commands 20 km/h; a queued stop must be visible in the
	// very next pass, not the one after.
	col.Enqueue(func() { motor.SetTargetSpeed(0) })

	clk.Advance(time.Second)
	record := col.Collect()
	if record.Snapshot.TargetSpeed != 0 {
		t.Errorf("TargetSpeed = %v after queued stop, want 0", record.Snapshot.TargetSpeed)
	}
}

func TestEnqueuedCommandsRunInOrder(t *testing.T) {
	col, clk, motor := newTestCollector(nil)

	col.Enqueue(func() { motor.SetTargetSpeed(5) })
	col.Enqueue(func() { motor.SetTargetSpeed(15) })

	clk.Advance(time.Second)
	record := col.Collect()
	if record.Snapshot.TargetSpeed != 15 {
		t.Errorf("TargetSpeed = %v, want last queued command 15", record.Snapshot.TargetSpeed)
	}
}

func TestRecordIDsAreUnique(t *testing.T) {
	col, clk, _ := newTestCollector(nil)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		clk.Advance(time.Second)
		id := col.Collect().ID
		if seen[id] {
			t.Fatalf("duplicate record ID %q", id)
		}
		seen[id] = true
	}
}
