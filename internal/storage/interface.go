// Package storage defines the contract for telemetry record storage
// backends.
package storage

import (
	"context"
	"sync"

	"github.com/evrig/rigsim/internal/types"
)

// Engine is a storage backend. StartStorageEngine launches the backend's
// processing goroutine and returns the channel records are sent on; the
// goroutine exits when the context is cancelled.
type Engine interface {
	StartStorageEngine(context.Context, *sync.WaitGroup) chan<- types.TelemetryRecord
}
