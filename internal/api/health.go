package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResponse represents a comprehensive health check response
type HealthCheckResponse struct {
	Status         HealthStatus `json:"status"`
	Timestamp      string       `json:"timestamp"`
	EngineVersion  string       `json:"engine_version"`
	GitCommit      string       `json:"git_commit,omitempty"`
	BuildTime      string       `json:"build_time,omitempty"`
	Uptime         string       `json:"uptime"`
	ActiveSessions int          `json:"active_sessions"`
	StoreEnabled   bool         `json:"store_enabled"`
	System         SystemInfo   `json:"system"`
	RequestID      string       `json:"request_id,omitempty"`
}

// SystemInfo contains system information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	MemoryAlloc   uint64 `json:"memory_alloc_bytes"`
	MemorySys     uint64 `json:"memory_sys_bytes"`
	GCCycles      uint32 `json:"gc_cycles"`
}

// handleHealthCheck provides the comprehensive health check endpoint
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetReqID(r.Context())

	status := HealthStatusHealthy
	if s.db == nil {
		// Simulation still works without the store.
		status = HealthStatusDegraded
	}

	response := HealthCheckResponse{
		Status:         status,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		EngineVersion:  EngineVersion,
		GitCommit:      GitCommit,
		BuildTime:      BuildTime,
		Uptime:         time.Since(s.startTime).String(),
		ActiveSessions: s.sessions.count(),
		StoreEnabled:   s.db != nil,
		System:         getSystemInfo(),
		RequestID:      requestID,
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleLiveness provides the liveness probe endpoint
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"alive":          true,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"engine_version": EngineVersion,
		"uptime":         time.Since(s.startTime).String(),
	})
}

// handleReadiness provides the readiness probe endpoint
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ready":          true,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"engine_version": EngineVersion,
	})
}

// getSystemInfo collects system information
func getSystemInfo() SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		MemoryAlloc:   m.Alloc,
		MemorySys:     m.Sys,
		GCCycles:      m.NumGC,
	}
}
