package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MJE43/wheel-sim-go/internal/engine"
	"github.com/MJE43/wheel-sim-go/internal/sim"
	"github.com/MJE43/wheel-sim-go/internal/stats"
	"github.com/MJE43/wheel-sim-go/internal/store"
	"github.com/MJE43/wheel-sim-go/internal/wheel"
)

// handleCreateSession starts a simulation session from an inline config or
// a stored configuration id
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	if err := ValidateCreateSessionRequest(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	cfg := req.Config
	if cfg == nil {
		if s.db == nil {
			s.writeError(w, r, http.StatusServiceUnavailable, ErrTypeInternal, "Configuration store unavailable", nil)
			return
		}
		rec, err := s.db.GetConfig(req.ConfigID)
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, r, http.StatusNotFound, ErrTypeConfigNotFound, "Configuration not found", map[string]interface{}{
				"config_id": req.ConfigID,
			})
			return
		}
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
			return
		}
		cfg, err = rec.ToConfig()
		if err != nil {
			s.writeError(w, r, http.StatusUnprocessableEntity, ErrTypeInvalidConfig, err.Error(), map[string]interface{}{
				"config_id": req.ConfigID,
			})
			return
		}
	}

	var rng engine.Rand
	if req.Seed != nil {
		rng = engine.NewRand(*req.Seed)
	}

	session, err := sim.NewSession(*cfg, rng, req.HistoryLimit)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidConfig, err.Error(), nil)
		return
	}

	id := s.sessions.add(session)

	s.logger.Printf(
		"session_created session_id=%s total_slots=%d prizes=%d seeded=%t active_sessions=%d",
		id, cfg.TotalSlots, len(cfg.Prizes), req.Seed != nil, s.sessions.count(),
	)

	s.writeJSON(w, http.StatusCreated, SessionResponse{
		SessionID:     id,
		Config:        session.Config(),
		EngineVersion: EngineVersion,
	})
}

// handleDeleteSession removes a session from the registry
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.sessions.remove(id) {
		s.writeError(w, r, http.StatusNotFound, ErrTypeSessionNotFound, "Session not found", nil)
		return
	}

	s.logger.Printf("session_deleted session_id=%s active_sessions=%d", id, s.sessions.count())
	w.WriteHeader(http.StatusNoContent)
}

// sessionFromRequest resolves the session entry for the request, writing a
// 404 when the id is unknown.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (string, *sessionEntry, bool) {
	id := chi.URLParam(r, "sessionID")
	entry, ok := s.sessions.get(id)
	if !ok {
		s.writeError(w, r, http.StatusNotFound, ErrTypeSessionNotFound, "Session not found", map[string]interface{}{
			"session_id": id,
		})
		return id, nil, false
	}
	return id, entry, true
}

// handleSpin runs a single Normal Mode spin
func (s *Server) handleSpin(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var outcome sim.SpinOutcome
	var snapshot stats.HouseStats
	err := entry.withSession(func(sess *sim.Session) error {
		var err error
		if outcome, err = sess.SpinOnce(); err != nil {
			return err
		}
		snapshot = sess.Stats()
		return nil
	})
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	s.logger.Printf(
		"spin_completed session_id=%s slot=%d prize=%q profit=%f",
		id, outcome.Slot, outcome.PrizeName, outcome.Profit,
	)

	s.writeJSON(w, http.StatusOK, SpinResponse{
		Outcome:       outcome,
		Stats:         snapshot,
		EngineVersion: EngineVersion,
	})
}

// handleSpinBatch runs a batch of Normal Mode spins
func (s *Server) handleSpinBatch(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req CountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := ValidateCountRequest(&req, maxBatchSpins); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidCount, err.Error(), nil)
		return
	}

	var result sim.BatchResult
	var snapshot stats.HouseStats
	err := entry.withSession(func(sess *sim.Session) error {
		var err error
		if result, err = sess.SpinBatch(req.Count); err != nil {
			return err
		}
		snapshot = sess.Stats()
		return nil
	})
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	s.logger.Printf(
		"batch_completed session_id=%s spins=%d total_cost=%f total_earnings=%f",
		id, req.Count, result.TotalCost, snapshot.TotalEarnings,
	)

	s.writeJSON(w, http.StatusOK, SpinBatchResponse{
		Outcomes:      result.Outcomes,
		TotalCost:     result.TotalCost,
		Stats:         snapshot,
		EngineVersion: EngineVersion,
	})
}

// handleBreaks runs a batch of Remove-Hit-Slots Mode breaks
func (s *Server) handleBreaks(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req CountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := ValidateCountRequest(&req, maxBreakRuns); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeInvalidCount, err.Error(), nil)
		return
	}

	var result sim.BreaksResult
	var snapshot stats.HouseStats
	err := entry.withSession(func(sess *sim.Session) error {
		var err error
		if result, err = sess.RunBreaks(req.Count); err != nil {
			return err
		}
		snapshot = sess.Stats()
		return nil
	})
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}

	s.logger.Printf(
		"breaks_completed session_id=%s breaks=%d total_spins=%d total_profit=%f",
		id, req.Count, result.TotalSpins, result.TotalProfit,
	)

	s.writeJSON(w, http.StatusOK, BreaksResponse{
		Result:        result,
		Stats:         snapshot,
		EngineVersion: EngineVersion,
	})
}

// handleStats returns the session's running aggregate
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	_, entry, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var snapshot stats.HouseStats
	entry.withSession(func(sess *sim.Session) error {
		snapshot = sess.Stats()
		return nil
	})

	s.writeJSON(w, http.StatusOK, StatsResponse{
		Stats:         snapshot,
		EngineVersion: EngineVersion,
	})
}

// handleHistory returns the session's retained spin outcomes
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	_, entry, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var entries []sim.SpinOutcome
	var total int
	entry.withSession(func(sess *sim.Session) error {
		entries = sess.History()
		total = sess.HistoryTotal()
		return nil
	})

	s.writeJSON(w, http.StatusOK, HistoryResponse{
		Entries:       entries,
		Total:         total,
		EngineVersion: EngineVersion,
	})
}

// handleReset clears session stats and/or history. A request naming
// neither resets both.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	var req ResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if !req.Stats && !req.History {
		req.Stats = true
		req.History = true
	}

	var snapshot stats.HouseStats
	entry.withSession(func(sess *sim.Session) error {
		if req.Stats {
			sess.ResetStats()
		}
		if req.History {
			sess.ClearHistory()
		}
		snapshot = sess.Stats()
		return nil
	})

	s.logger.Printf(
		"session_reset session_id=%s stats=%t history=%t",
		id, req.Stats, req.History,
	)

	s.writeJSON(w, http.StatusOK, StatsResponse{
		Stats:         snapshot,
		EngineVersion: EngineVersion,
	})
}

// handleRisk returns the short-term risk estimate plus break recurrence
// probabilities for the session
func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	id, entry, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}

	mode := stats.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = stats.ModeNormal
	}
	if mode != stats.ModeNormal && mode != stats.ModeRemoveHit {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "mode must be 'normal' or 'remove_hit'", map[string]interface{}{
			"mode": string(mode),
		})
		return
	}

	var snapshot stats.HouseStats
	var params stats.RiskParams
	entry.withSession(func(sess *sim.Session) error {
		snapshot = sess.Stats()
		params = sess.RiskParams(mode)
		return nil
	})

	risk, err := stats.ShortTermRisk(snapshot, params)
	if err != nil {
		s.writeEngineError(w, r, err)
		return
	}
	probs := stats.BreakProbs(snapshot.BestBreak, snapshot.WorstBreak, snapshot.TotalBreaks, params.TotalSlots)

	s.logger.Printf(
		"risk_computed session_id=%s mode=%s risk=%f total_earnings=%f",
		id, mode, risk, snapshot.TotalEarnings,
	)

	s.writeJSON(w, http.StatusOK, RiskResponse{
		Mode:               mode,
		Risk:               risk,
		BreakProbabilities: probs,
		EngineVersion:      EngineVersion,
	})
}

// handleSaveConfig stores a named wheel configuration
func (s *Server) handleSaveConfig(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, ErrTypeInternal, "Configuration store unavailable", nil)
		return
	}

	var req SaveConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "Invalid JSON format", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	if err := ValidateSaveConfigRequest(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	rec, err := store.FromConfig(req.Name, req.Description, req.IsPublic, &req.Config)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}
	if err := s.db.SaveConfig(rec); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}

	s.logger.Printf("config_saved config_id=%s name=%q total_slots=%d is_public=%t", rec.ID, rec.Name, rec.TotalSlots, rec.IsPublic)

	s.writeJSON(w, http.StatusCreated, ConfigResponse{
		Record:        *rec,
		EngineVersion: EngineVersion,
	})
}

// handleListConfigs returns a page of stored configurations
func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, ErrTypeInternal, "Configuration store unavailable", nil)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, offset = normalizePagination(limit, offset)

	records, err := s.db.ListConfigs(limit, offset)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}

	s.writeJSON(w, http.StatusOK, ConfigsListResponse{
		Records:       records,
		Limit:         limit,
		Offset:        offset,
		EngineVersion: EngineVersion,
	})
}

// handleGetConfig retrieves one stored configuration
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, ErrTypeInternal, "Configuration store unavailable", nil)
		return
	}

	id := chi.URLParam(r, "configID")
	rec, err := s.db.GetConfig(id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, ErrTypeConfigNotFound, "Configuration not found", map[string]interface{}{
			"config_id": id,
		})
		return
	}
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}

	s.writeJSON(w, http.StatusOK, ConfigResponse{
		Record:        *rec,
		EngineVersion: EngineVersion,
	})
}

// handleDeleteConfig removes one stored configuration
func (s *Server) handleDeleteConfig(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.writeError(w, r, http.StatusServiceUnavailable, ErrTypeInternal, "Configuration store unavailable", nil)
		return
	}

	id := chi.URLParam(r, "configID")
	err := s.db.DeleteConfig(id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, r, http.StatusNotFound, ErrTypeConfigNotFound, "Configuration not found", map[string]interface{}{
			"config_id": id,
		})
		return
	}
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, ErrTypeInternal, err.Error(), nil)
		return
	}

	s.logger.Printf("config_deleted config_id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}

// writeEngineError maps engine errors onto API error types and statuses
func (s *Server) writeEngineError(w http.ResponseWriter, r *http.Request, err error) {
	errType := ErrTypeInternal
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, sim.ErrNoStopCondition):
		errType = ErrTypeNoStopCondition
		status = http.StatusUnprocessableEntity
	case errors.Is(err, sim.ErrInvalidCount):
		errType = ErrTypeInvalidCount
		status = http.StatusBadRequest
	case errors.Is(err, wheel.ErrInvalidSlot),
		errors.Is(err, wheel.ErrInvalidCommission),
		errors.Is(err, engine.ErrSlotSpaceExhausted):
		errType = ErrTypeEngine
	case errors.Is(err, wheel.ErrInvalidConfig),
		errors.Is(err, wheel.ErrCapacityExceeded):
		errType = ErrTypeInvalidConfig
		status = http.StatusBadRequest
	}

	s.writeError(w, r, status, errType, err.Error(), nil)
}
