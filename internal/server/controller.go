// Package server exposes the latest collected telemetry over HTTP.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/evrig/rigsim/internal/collector"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Controller represents the REST telemetry server
type Controller struct {
	ctx       context.Context
	wg        *sync.WaitGroup
	Server    http.Server
	collector *collector.Collector
	logger    *zap.SugaredLogger
	handlers  *Handlers
}

// NewController creates a new REST server controller serving the given
// collector's data on addr.
func NewController(ctx context.Context, wg *sync.WaitGroup, addr string, col *collector.Collector, logger *zap.SugaredLogger) *Controller {
	ctrl := &Controller{
		ctx:       ctx,
		wg:        wg,
		collector: col,
		logger:    logger,
	}
	ctrl.handlers = NewHandlers(ctrl)

	ctrl.Server.Addr = addr
	ctrl.Server.Handler = ctrl.setupRouter()

	return ctrl
}

// StartController starts the REST server
func (c *Controller) StartController() error {
	c.logger.Infof("Starting REST server on %s...", c.Server.Addr)
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		if err := c.Server.ListenAndServe(); err != http.ErrServerClosed {
			c.logger.Errorf("REST server error: %v", err)
		}
	}()

	go func() {
		<-c.ctx.Done()
		c.logger.Infof("Shutting down the REST server...")
		c.Server.Shutdown(context.Background())
	}()

	return nil
}

// setupRouter configures the HTTP router with all endpoints
func (c *Controller) setupRouter() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/telemetry/latest", c.handlers.GetTelemetryLatest)
	router.HandleFunc("/environment/latest", c.handlers.GetEnvironmentLatest)
	router.HandleFunc("/motion/latest", c.handlers.GetMotionLatest)
	router.HandleFunc("/vibration", c.handlers.GetVibration)
	router.HandleFunc("/health", c.handlers.GetHealth)

	return router
}
