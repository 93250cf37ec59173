// Package main runs the EV test-rig telemetry simulator: synthetic
// environmental, inertial, and powertrain data collected on an interval,
// stored to SQLite, and served over HTTP.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/evrig/rigsim/internal/collector"
	"github.com/evrig/rigsim/internal/log"
	"github.com/evrig/rigsim/internal/managers"
	"github.com/evrig/rigsim/internal/server"
	"github.com/evrig/rigsim/internal/sim/environment"
	"github.com/evrig/rigsim/internal/sim/motion"
	"github.com/evrig/rigsim/internal/sim/powertrain"
	"github.com/evrig/rigsim/internal/storage/sqlite"
	"github.com/evrig/rigsim/internal/telemetry"
	"github.com/evrig/rigsim/internal/vibration"
	"github.com/evrig/rigsim/pkg/clock"
	"github.com/evrig/rigsim/pkg/randsource"
)

const (
	defaultInterval   = 1 * time.Second
	defaultListenAddr = ":8080"
	defaultCapacityWh = 500.0
	vibrationSamples  = 120
)

func main() {
	var (
		interval   = flag.Duration("interval", defaultInterval, "Telemetry collection interval")
		listenAddr = flag.String("listen", defaultListenAddr, "HTTP listen address for the telemetry API")
		dbPath     = flag.String("db", "telemetry.db", "Path to the SQLite telemetry database (empty to disable storage)")
		capacity   = flag.Float64("capacity", defaultCapacityWh, "Battery pack capacity in Wh")
		seed       = flag.Int64("seed", 0, "Randomness seed (0 seeds from the current time)")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	baseSeed := *seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	log.Infof("simulation randomness seed: %d", baseSeed)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg := sync.WaitGroup{}

	clk := clock.New()

	// Each simulator gets its own randomness stream so their draw
	// sequences stay independent of polling order.
	envSim := environment.NewSimulator(clk, randsource.NewSeeded(baseSeed))
	configureEnvironmentSensor(envSim)

	motionSim := motion.NewSimulator(clk, randsource.NewSeeded(baseSeed+1))

	motor := powertrain.NewMotor(clk, randsource.NewSeeded(baseSeed+2))
	battery := powertrain.NewBattery(clk, randsource.NewSeeded(baseSeed+3), *capacity)
	battery.LoadWatts = motor.Power
	thermal := powertrain.NewThermal(clk, randsource.NewSeeded(baseSeed+4), 22.0)
	thermal.LoadWatts = motor.Power

	aggregator := telemetry.NewAggregator(clk, battery, motor, thermal)
	window := vibration.NewWindow(vibrationSamples)

	storageManager := managers.NewStorageManager(ctx, &wg)
	if *dbPath != "" {
		engine, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("could not open telemetry database: %v", err)
		}
		storageManager.AddEngine(ctx, &wg, engine)
	}

	col := collector.New(*interval, envSim, motionSim, aggregator, window,
		storageManager.RecordDistributor, log.GetSugaredLogger())
	col.Start(ctx, &wg)

	restController := server.NewController(ctx, &wg, *listenAddr, col, log.GetSugaredLogger())
	if err := restController.StartController(); err != nil {
		log.Fatalf("could not start REST server: %v", err)
	}

	wg.Add(1)
	go drivePattern(ctx, &wg, col, motor, randsource.NewSeeded(baseSeed+5))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigs
	log.Infof("received %v, shutting down...", sig)

	cancel()
	wg.Wait()
}

// configureEnvironmentSensor applies the rig's standard BME680 setup.
func configureEnvironmentSensor(s *environment.Simulator) {
	s.SetHumidityOversample(environment.Oversample2x)
	s.SetPressureOversample(environment.Oversample4x)
	s.SetTemperatureOversample(environment.Oversample8x)
	s.SetFilter(environment.FilterSize3)
	s.SetGasMeasurement(true)
	s.SetGasHeaterTemperature(320)
	s.SetGasHeaterDuration(150)
	s.SelectGasHeaterProfile(0)
}

// drivePattern varies the motor's commanded speed so the powertrain and
// the derived energy metrics have something to do: cruise segments with
// occasional full stops. Speed changes are enqueued on the collector so
// the motor is only ever touched from the collection loop.
func drivePattern(ctx context.Context, wg *sync.WaitGroup, col *collector.Collector, motor *powertrain.Motor, rng randsource.Source) {
	defer wg.Done()

	for {
		target := rng.Float64() * 30
		if randsource.Chance(rng, 0.2) {
			target = 0
		}
		col.Enqueue(func() { motor.SetTargetSpeed(target) })

		hold := time.Duration(randsource.Uniform(rng, 10, 30) * float64(time.Second))
		select {
		case <-time.After(hold):
		case <-ctx.Done():
			return
		}
	}
}
