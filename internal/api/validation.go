package api

import (
	"fmt"

	"github.com/MJE43/wheel-sim-go/internal/wheel"
)

// Batch size ceilings keep a single request from monopolizing the server.
const (
	maxBatchSpins = 1_000_000
	maxBreakRuns  = 100_000

	defaultListLimit = 50
	maxListLimit     = 500
)

// ValidateCreateSessionRequest validates a session creation request.
// Exactly one of config / config_id must be present. The inline config's
// commission percent is clamped to [0, 100] here, at the boundary, so the
// engine never sees an out-of-range value.
func ValidateCreateSessionRequest(req *CreateSessionRequest) error {
	if req.Config == nil && req.ConfigID == "" {
		return fmt.Errorf("either config or config_id is required")
	}
	if req.Config != nil && req.ConfigID != "" {
		return fmt.Errorf("config and config_id are mutually exclusive")
	}

	if req.Config != nil {
		req.Config.CommissionPercent = wheel.ClampCommission(req.Config.CommissionPercent)
		if err := req.Config.Validate(); err != nil {
			return err
		}
	}

	if req.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must be >= 0")
	}

	return nil
}

// ValidateCountRequest validates a batch count against a ceiling
func ValidateCountRequest(req *CountRequest, max int) error {
	if req.Count < 1 {
		return fmt.Errorf("count must be >= 1")
	}
	if req.Count > max {
		return fmt.Errorf("count too large (max %d)", max)
	}
	return nil
}

// ValidateSaveConfigRequest validates a configuration save request. The
// commission percent is clamped before validation, matching session
// creation.
func ValidateSaveConfigRequest(req *SaveConfigRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	req.Config.CommissionPercent = wheel.ClampCommission(req.Config.CommissionPercent)
	return req.Config.Validate()
}

// normalizePagination applies defaults and ceilings to list parameters
func normalizePagination(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
