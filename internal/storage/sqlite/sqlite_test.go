package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/evrig/rigsim/internal/types"
)

func testRecord(id string) types.TelemetryRecord {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return types.TelemetryRecord{
		ID: id,
		Snapshot: types.TelemetrySnapshot{
			Timestamp:     now,
			Uptime:        12.5,
			BatteryLevel:  80,
			Speed:         20,
			MotorPower:    150,
			TotalEnergy:   1.25,
			TotalDistance: 0.4,
			SystemHealth:  100,
		},
		Environment: types.EnvironmentalReading{
			Timestamp:     now,
			Temperature:   24.5,
			Pressure:      1013.1,
			Humidity:      48.2,
			GasResistance: 31000,
			GasValid:      true,
			HeatStable:    true,
		},
		Motion: types.MotionReading{
			Timestamp: now,
			AccelZ:    9.8,
			Scenario:  "normal",
		},
	}
}

func TestStoreAndCountRecords(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i, id := range []string{"rec-1", "rec-2", "rec-3"} {
		if err := s.StoreRecord(testRecord(id)); err != nil {
			t.Fatalf("StoreRecord %d: %v", i, err)
		}
	}

	n, err := s.CountRecords()
	if err != nil {
		t.Fatalf("CountRecords: %v", err)
	}
	if n != 3 {
		t.Errorf("CountRecords = %d, want 3", n)
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := s.StoreRecord(testRecord("rec-1")); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := s.StoreRecord(testRecord("rec-1")); err == nil {
		t.Error("duplicate primary key insert succeeded, want error")
	}
}

func TestStorageEngineConsumesChannel(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	c := s.StartStorageEngine(ctx, &wg)
	c <- testRecord("rec-1")
	c <- testRecord("rec-2")

	// Wait for the processor to drain the channel.
	deadline := time.Now().Add(2 * time.Second)
	for {
		n, err := s.CountRecords()
		if err != nil {
			t.Fatalf("CountRecords: %v", err)
		}
		if n == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("engine stored %d records before deadline, want 2", n)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	wg.Wait()
}
