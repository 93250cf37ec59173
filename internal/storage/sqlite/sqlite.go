// Package sqlite stores telemetry records in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/evrig/rigsim/internal/log"
	"github.com/evrig/rigsim/internal/types"
	_ "modernc.org/sqlite"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS telemetry (
	id TEXT PRIMARY KEY,
	ts INTEGER NOT NULL,
	uptime REAL,
	battery_level REAL,
	battery_voltage REAL,
	battery_temperature REAL,
	speed REAL,
	motor_power REAL,
	motor_temperature REAL,
	controller_temperature REAL,
	total_energy REAL,
	total_distance REAL,
	energy_efficiency REAL,
	estimated_range REAL,
	system_health REAL,
	env_temperature REAL,
	env_pressure REAL,
	env_humidity REAL,
	gas_resistance REAL,
	heat_stable INTEGER,
	accel_x REAL,
	accel_y REAL,
	accel_z REAL,
	gyro_x REAL,
	gyro_y REAL,
	gyro_z REAL,
	scenario TEXT
)`

const insertSQL = `
INSERT INTO telemetry (
	id, ts, uptime,
	battery_level, battery_voltage, battery_temperature,
	speed, motor_power, motor_temperature, controller_temperature,
	total_energy, total_distance, energy_efficiency, estimated_range, system_health,
	env_temperature, env_pressure, env_humidity, gas_resistance, heat_stable,
	accel_x, accel_y, accel_z, gyro_x, gyro_y, gyro_z, scenario
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Storage is a SQLite storage backend for telemetry records.
type Storage struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and ensures the
// telemetry table exists. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// A single connection avoids writer contention and keeps ":memory:"
	// databases from being recreated per pooled connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		return nil, fmt.Errorf("failed to create telemetry table: %w", err)
	}

	return &Storage{db: db}, nil
}

// StartStorageEngine creates a goroutine loop to receive records and write
// them to SQLite.
func (s *Storage) StartStorageEngine(ctx context.Context, wg *sync.WaitGroup) chan<- types.TelemetryRecord {
	log.Infof("starting SQLite storage engine...")
	recordChan := make(chan types.TelemetryRecord, 10)
	go s.processRecords(ctx, wg, recordChan)
	return recordChan
}

func (s *Storage) processRecords(ctx context.Context, wg *sync.WaitGroup, rchan <-chan types.TelemetryRecord) {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case r := <-rchan:
			if err := s.StoreRecord(r); err != nil {
				log.Errorf("could not store telemetry record: %v", err)
			}
		case <-ctx.Done():
			log.Infof("cancellation request received, stopping SQLite record processor")
			s.db.Close()
			return
		}
	}
}

// StoreRecord inserts one telemetry record.
func (s *Storage) StoreRecord(r types.TelemetryRecord) error {
	heatStable := 0
	if r.Environment.HeatStable {
		heatStable = 1
	}

	_, err := s.db.Exec(insertSQL,
		r.ID, r.Snapshot.Timestamp.UnixMilli(), r.Snapshot.Uptime,
		r.Snapshot.BatteryLevel, r.Snapshot.BatteryVoltage, r.Snapshot.BatteryTemperature,
		r.Snapshot.Speed, r.Snapshot.MotorPower, r.Snapshot.MotorTemperature, r.Snapshot.ControllerTemperature,
		r.Snapshot.TotalEnergy, r.Snapshot.TotalDistance, r.Snapshot.EnergyEfficiency, r.Snapshot.EstimatedRange, r.Snapshot.SystemHealth,
		r.Environment.Temperature, r.Environment.Pressure, r.Environment.Humidity, r.Environment.GasResistance, heatStable,
		r.Motion.AccelX, r.Motion.AccelY, r.Motion.AccelZ, r.Motion.GyroX, r.Motion.GyroY, r.Motion.GyroZ, r.Motion.Scenario,
	)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

// CountRecords returns the number of stored telemetry rows.
func (s *Storage) CountRecords() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM telemetry").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
