package api

import (
	"github.com/MJE43/wheel-sim-go/internal/sim"
	"github.com/MJE43/wheel-sim-go/internal/stats"
	"github.com/MJE43/wheel-sim-go/internal/store"
	"github.com/MJE43/wheel-sim-go/internal/wheel"
)

// EngineError represents a structured error response with context
type EngineError struct {
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e EngineError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	// Input validation errors
	ErrTypeValidation    = "validation_error"
	ErrTypeInvalidConfig = "invalid_config"
	ErrTypeInvalidCount  = "invalid_count"

	// Resource errors
	ErrTypeSessionNotFound = "session_not_found"
	ErrTypeConfigNotFound  = "config_not_found"

	// Engine errors
	ErrTypeNoStopCondition = "no_stop_condition"
	ErrTypeEngine          = "engine_error"

	// System errors
	ErrTypeInternal = "internal_error"
)

// ErrorCategory represents error categories for monitoring
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryResource   ErrorCategory = "resource"
	CategoryEngine     ErrorCategory = "engine"
	CategorySystem     ErrorCategory = "system"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeValidation, ErrTypeInvalidConfig, ErrTypeInvalidCount:
		return CategoryValidation
	case ErrTypeSessionNotFound, ErrTypeConfigNotFound:
		return CategoryResource
	case ErrTypeNoStopCondition, ErrTypeEngine:
		return CategoryEngine
	default:
		return CategorySystem
	}
}

// VersionInfo contains engine version information
type VersionInfo struct {
	EngineVersion string `json:"engine_version"`
	GitCommit     string `json:"git_commit,omitempty"`
	BuildTime     string `json:"build_time,omitempty"`
}

// CreateSessionRequest starts a simulation session from either an inline
// wheel configuration or a stored configuration id (exactly one of the two).
type CreateSessionRequest struct {
	Config       *wheel.Config `json:"config,omitempty"`
	ConfigID     string        `json:"config_id,omitempty"`
	Seed         *int64        `json:"seed,omitempty"`
	HistoryLimit int           `json:"history_limit,omitempty"`
}

// SessionResponse describes a created or inspected session
type SessionResponse struct {
	SessionID     string       `json:"session_id"`
	Config        wheel.Config `json:"config"`
	EngineVersion string       `json:"engine_version"`
}

// SpinResponse is the outcome of a single spin
type SpinResponse struct {
	Outcome       sim.SpinOutcome  `json:"outcome"`
	Stats         stats.HouseStats `json:"stats"`
	EngineVersion string           `json:"engine_version"`
}

// CountRequest carries the batch size for spin and break runs
type CountRequest struct {
	Count int `json:"count"`
}

// SpinBatchResponse is the outcome of a spin batch
type SpinBatchResponse struct {
	Outcomes      []sim.SpinOutcome `json:"outcomes"`
	TotalCost     float64           `json:"total_cost"`
	Stats         stats.HouseStats  `json:"stats"`
	EngineVersion string            `json:"engine_version"`
}

// BreaksResponse is the outcome of a break run
type BreaksResponse struct {
	Result        sim.BreaksResult `json:"result"`
	Stats         stats.HouseStats `json:"stats"`
	EngineVersion string           `json:"engine_version"`
}

// StatsResponse is a session stats snapshot
type StatsResponse struct {
	Stats         stats.HouseStats `json:"stats"`
	EngineVersion string           `json:"engine_version"`
}

// HistoryResponse is the retained spin history of a session. Total counts
// every spin ever run, including entries already evicted from the window.
type HistoryResponse struct {
	Entries       []sim.SpinOutcome `json:"entries"`
	Total         int               `json:"total"`
	EngineVersion string            `json:"engine_version"`
}

// ResetRequest selects which parts of a session to reset
type ResetRequest struct {
	Stats   bool `json:"stats"`
	History bool `json:"history"`
}

// RiskResponse is the short-term risk estimate for a session
type RiskResponse struct {
	Mode               stats.Mode               `json:"mode"`
	Risk               float64                  `json:"risk"`
	BreakProbabilities stats.BreakProbabilities `json:"break_probabilities"`
	EngineVersion      string                   `json:"engine_version"`
}

// SaveConfigRequest stores a named wheel configuration
type SaveConfigRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	IsPublic    bool         `json:"is_public,omitempty"`
	Config      wheel.Config `json:"config"`
}

// ConfigResponse is a stored configuration record
type ConfigResponse struct {
	Record        store.ConfigRecord `json:"record"`
	EngineVersion string             `json:"engine_version"`
}

// ConfigsListResponse is a page of stored configurations
type ConfigsListResponse struct {
	Records       []store.ConfigRecord `json:"records"`
	Limit         int                  `json:"limit"`
	Offset        int                  `json:"offset"`
	EngineVersion string               `json:"engine_version"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status        string `json:"status"`
	EngineVersion string `json:"engine_version"`
	Timestamp     string `json:"timestamp"`
}
