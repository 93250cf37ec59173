// Package managers wires collected telemetry to the configured storage
// backends.
package managers

import (
	"context"
	"sync"

	"github.com/evrig/rigsim/internal/storage"
	"github.com/evrig/rigsim/internal/types"
)

// StorageManager holds our active storage backends
type StorageManager struct {
	Engines           []StorageEngine
	RecordDistributor chan types.TelemetryRecord
}

// StorageEngine holds a backend storage engine's interface as well as
// a channel for passing records to the engine
type StorageEngine struct {
	Engine storage.Engine
	C      chan<- types.TelemetryRecord
}

// NewStorageManager creates a StorageManager and starts the record
// distributor goroutine.
func NewStorageManager(ctx context.Context, wg *sync.WaitGroup) *StorageManager {
	s := &StorageManager{
		RecordDistributor: make(chan types.TelemetryRecord, 20),
	}

	go s.startRecordDistributor(ctx, wg)

	return s
}

// AddEngine starts the given storage engine and registers it for fan-out.
func (s *StorageManager) AddEngine(ctx context.Context, wg *sync.WaitGroup, e storage.Engine) {
	s.Engines = append(s.Engines, StorageEngine{
		Engine: e,
		C:      e.StartStorageEngine(ctx, wg),
	})
}

// startRecordDistributor receives records from the collector and fans them
// out to the storage backends. Records are discarded silently when no
// engine is configured.
func (s *StorageManager) startRecordDistributor(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	defer wg.Done()

	for {
		select {
		case r := <-s.RecordDistributor:
			for _, e := range s.Engines {
				e.C <- r
			}
		case <-ctx.Done():
			return
		}
	}
}
