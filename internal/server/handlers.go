package server

import (
	"encoding/json"
	"net/http"

	"github.com/evrig/rigsim/pkg/responseformat"
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// GetTelemetryLatest returns the most recently collected record: the fused
// snapshot together with the raw sensor samples from the same pass.
func (h *Handlers) GetTelemetryLatest(w http.ResponseWriter, req *http.Request) {
	record, ok := h.controller.collector.Latest()
	if !ok {
		h.noData(w, req)
		return
	}
	h.formatter.WriteResponse(w, req, record)
}

// GetEnvironmentLatest returns the environmental sample from the most
// recent collection pass.
func (h *Handlers) GetEnvironmentLatest(w http.ResponseWriter, req *http.Request) {
	record, ok := h.controller.collector.Latest()
	if !ok {
		h.noData(w, req)
		return
	}
	h.formatter.WriteResponse(w, req, record.Environment)
}

// GetMotionLatest returns the inertial sample from the most recent
// collection pass.
func (h *Handlers) GetMotionLatest(w http.ResponseWriter, req *http.Request) {
	record, ok := h.controller.collector.Latest()
	if !ok {
		h.noData(w, req)
		return
	}
	h.formatter.WriteResponse(w, req, record.Motion)
}

// GetVibration returns rolling vibration statistics.
func (h *Handlers) GetVibration(w http.ResponseWriter, req *http.Request) {
	h.formatter.WriteResponse(w, req, h.controller.collector.Vibration())
}

type healthResponse struct {
	Status       string  `json:"status"`
	SystemHealth float64 `json:"system_health"`
	Uptime       float64 `json:"uptime"`
}

// GetHealth reports the rig's composite health score.
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	record, ok := h.controller.collector.Latest()
	if !ok {
		h.noData(w, req)
		return
	}

	status := "ok"
	if record.Snapshot.SystemHealth < 50 {
		status = "degraded"
	}

	h.formatter.WriteResponse(w, req, healthResponse{
		Status:       status,
		SystemHealth: record.Snapshot.SystemHealth,
		Uptime:       record.Snapshot.Uptime,
	})
}

func (h *Handlers) noData(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(errorResponse{Error: "no telemetry collected yet"})
}
