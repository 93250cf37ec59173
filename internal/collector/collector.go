// Package collector runs the rig's driving loop: on every interval it
// ticks the sensor simulators, aggregates telemetry, and hands the
// combined record to the storage distributor.
package collector

import (
	"context"
	"sync"
	"time"

	"github.com/evrig/rigsim/internal/sim/environment"
	"github.com/evrig/rigsim/internal/sim/motion"
	"github.com/evrig/rigsim/internal/telemetry"
	"github.com/evrig/rigsim/internal/types"
	"github.com/evrig/rigsim/internal/vibration"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Collector is the exclusive owner of the simulators it polls; the core
// simulation types are not internally locked, so all sampling goes through
// the collector's single loop goroutine.
type Collector struct {
	interval    time.Duration
	env         *environment.Simulator
	motion      *motion.Simulator
	aggregator  *telemetry.Aggregator
	window      *vibration.Window
	distributor chan<- types.TelemetryRecord
	logger      *zap.SugaredLogger

	commands chan func()

	mu             sync.RWMutex
	latest         types.TelemetryRecord
	hasLatest      bool
	latestVibes    vibration.Summary
	collectedCount int
}

// New creates a collector polling at the given interval.
func New(interval time.Duration, env *environment.Simulator, mot *motion.Simulator, agg *telemetry.Aggregator, window *vibration.Window, distributor chan<- types.TelemetryRecord, logger *zap.SugaredLogger) *Collector {
	return &Collector{
		interval:    interval,
		env:         env,
		motion:      mot,
		aggregator:  agg,
		window:      window,
		distributor: distributor,
		logger:      logger,
		commands:    make(chan func(), 8),
	}
}

// Enqueue hands a command to the collection loop. Queued commands run on
// the loop goroutine at the start of the next pass, before any sampling,
// so callers can adjust the simulators without touching them directly.
func (c *Collector) Enqueue(cmd func()) {
	select {
	case c.commands <- cmd:
	default:
		c.logger.Warnf("command queue full, dropping command")
	}
}

// Start launches the collection loop goroutine.
func (c *Collector) Start(ctx context.Context, wg *sync.WaitGroup) {
	c.logger.Infof("starting telemetry collector with %v interval", c.interval)

	wg.Add(1)
	go c.run(ctx, wg)
}

func (c *Collector) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.Collect()
		case <-ctx.Done():
			c.logger.Infof("collector stopped after %d records", c.collectedCount)
			return
		}
	}
}

// Collect performs one collection pass and publishes the record. It is
// called from the loop goroutine; tests may call it directly instead of
// running the loop.
func (c *Collector) Collect() types.TelemetryRecord {
drain:
	for {
		select {
		case cmd := <-c.commands:
			cmd()
		default:
			break drain
		}
	}

	motionSample := c.motion.Read()
	envSample := c.env.Sample()
	snapshot := c.aggregator.Aggregate()

	c.window.Observe(motionSample.AccelX, motionSample.AccelY, motionSample.AccelZ)

	record := types.TelemetryRecord{
		ID:          uuid.New().String(),
		Snapshot:    snapshot,
		Environment: envSample,
		Motion:      motionSample,
	}

	c.mu.Lock()
	c.latest = record
	c.hasLatest = true
	c.latestVibes = c.window.Summarize()
	c.collectedCount++
	count := c.collectedCount
	c.mu.Unlock()

	if c.distributor != nil {
		select {
		case c.distributor <- record:
		default:
			c.logger.Warnf("record distributor full, dropping record %s", record.ID)
		}
	}

	if count%10 == 0 {
		c.logger.Infof("collected %d telemetry records so far", count)
	}

	return record
}

// Latest returns the most recently collected record, if any.
func (c *Collector) Latest() (types.TelemetryRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest, c.hasLatest
}

// Vibration returns the vibration summary as of the last collection pass.
func (c *Collector) Vibration() vibration.Summary {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latestVibes
}
