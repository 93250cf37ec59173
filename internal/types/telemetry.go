package types

import "time"

// EnvironmentalReading is a single sample from the environmental sensor
// simulator. A fresh value is produced on every sample; readings carry no
// persisted identity.
type EnvironmentalReading struct {
	Timestamp     time.Time `json:"timestamp"`
	Temperature   float64   `json:"temperature"`    // °C
	Pressure      float64   `json:"pressure"`       // hPa
	Humidity      float64   `json:"humidity"`       // %RH, always within [0,100]
	GasResistance float64   `json:"gas_resistance"` // Ohms; meaningful only when GasValid
	GasValid      bool      `json:"gas_valid"`      // gas measurement was enabled for this sample
	HeatStable    bool      `json:"heat_stable"`
}

// MotionReading is a snapshot of the inertial sensor simulator taken after
// a tick. Acceleration in m/s², rotation rate in rad/s.
type MotionReading struct {
	Timestamp   time.Time `json:"timestamp"`
	AccelX      float64   `json:"accel_x"`
	AccelY      float64   `json:"accel_y"`
	AccelZ      float64   `json:"accel_z"`
	GyroX       float64   `json:"gyro_x"`
	GyroY       float64   `json:"gyro_y"`
	GyroZ       float64   `json:"gyro_z"`
	Temperature float64   `json:"temperature"` // °C, within [15,45]
	Scenario    string    `json:"scenario"`    // normal, fall, pothole
}

// BatteryState is the battery provider contract consumed by the aggregator.
type BatteryState struct {
	Level       float64 `json:"level"`   // percent, 0-100
	Voltage     float64 `json:"voltage"` // V
	Current     float64 `json:"current"` // A
	Temperature float64 `json:"temperature"`
	Charging    bool    `json:"charging"`
	// Capacity is the pack's nominal capacity in watt-hours. Remaining
	// energy for the range estimate is Level/100 * Capacity.
	Capacity float64 `json:"capacity"`
}

// MotorState is the motor provider contract consumed by the aggregator.
type MotorState struct {
	Power       float64 `json:"power"`        // W
	Speed       float64 `json:"speed"`        // km/h
	TargetSpeed float64 `json:"target_speed"` // km/h
	Temperature float64 `json:"temperature"`
	RPM         float64 `json:"rpm"`
	Torque      float64 `json:"torque"` // Nm
	Efficiency  float64 `json:"efficiency"`
}

// ThermalState is the ambient/controller temperature provider contract.
type ThermalState struct {
	Ambient    float64 `json:"ambient"`
	Controller float64 `json:"controller"`
}

// TelemetrySnapshot is the fused output of one aggregation pass: every
// provider field plus the derived metrics. Snapshots are values, immutable
// once returned.
type TelemetrySnapshot struct {
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime"` // seconds since the aggregator started

	BatteryLevel       float64 `json:"battery_level"`
	BatteryVoltage     float64 `json:"battery_voltage"`
	BatteryCurrent     float64 `json:"battery_current"`
	BatteryTemperature float64 `json:"battery_temperature"`
	BatteryCharging    bool    `json:"battery_charging"`

	Speed            float64 `json:"speed"`
	TargetSpeed      float64 `json:"target_speed"`
	MotorPower       float64 `json:"motor_power"`
	MotorTemperature float64 `json:"motor_temperature"`
	MotorRPM         float64 `json:"motor_rpm"`
	MotorTorque      float64 `json:"motor_torque"`
	MotorEfficiency  float64 `json:"motor_efficiency"`

	AmbientTemperature    float64 `json:"ambient_temperature"`
	ControllerTemperature float64 `json:"controller_temperature"`

	TotalEnergy      float64 `json:"total_energy_consumed"` // Wh, monotonic
	TotalDistance    float64 `json:"total_distance"`        // km, monotonic
	EnergyEfficiency float64 `json:"energy_efficiency"`     // Wh/km
	EstimatedRange   float64 `json:"estimated_range"`       // km
	SystemHealth     float64 `json:"system_health"`         // 0-100
}

// TelemetryRecord is one collected observation: the fused snapshot plus
// the raw sensor samples taken in the same pass, tagged with a unique ID
// for downstream storage.
type TelemetryRecord struct {
	ID          string               `json:"id"`
	Snapshot    TelemetrySnapshot    `json:"snapshot"`
	Environment EnvironmentalReading `json:"environment"`
	Motion      MotionReading        `json:"motion"`
}
