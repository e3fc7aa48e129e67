package sim

import (
	"fmt"

	"github.com/MJE43/wheel-sim-go/internal/engine"
	"github.com/MJE43/wheel-sim-go/internal/stats"
	"github.com/MJE43/wheel-sim-go/internal/wheel"
)

// progressChunk is how many iterations run between progress callbacks
// during a batch. Small enough that a CLI bar stays live, large enough
// that the callback never dominates the loop.
const progressChunk = 256

// Session owns one wheel configuration, one random source, and the
// aggregate state they produce. All engine cores are pure; the session is
// the only place outcomes get committed to history and stats, and every
// operation validates its inputs before committing anything.
//
// A session is single-writer: it does no locking of its own, callers that
// share one across goroutines must serialize access.
type Session struct {
	cfg     wheel.Config
	rng     engine.Rand
	pool    *engine.SlotPool
	history *History
	house   stats.HouseStats

	// progress, when set, is called with (done, total) during batches so
	// callers can render without the engine knowing about terminals.
	progress func(done, total int)
}

// NewSession validates the configuration and builds a session around it.
// A nil rng selects an entropy-seeded source; historyLimit <= 0 selects
// DefaultHistoryLimit.
func NewSession(cfg wheel.Config, rng engine.Rand, historyLimit int) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = engine.NewRand(engine.RandomSeed())
	}
	return &Session{
		cfg:     cfg.Clone(),
		rng:     rng,
		pool:    engine.NewSlotPool(cfg.TotalSlots),
		history: NewHistory(historyLimit),
		house:   stats.NewHouseStats(),
	}, nil
}

// Config returns a copy of the session's wheel configuration.
func (s *Session) Config() wheel.Config {
	return s.cfg.Clone()
}

// SetProgress installs a batch progress callback.
func (s *Session) SetProgress(fn func(done, total int)) {
	s.progress = fn
}

// Stats returns a snapshot of the running aggregate.
func (s *Session) Stats() stats.HouseStats {
	return s.house.Clone()
}

// History returns a copy of the retained spin outcomes, oldest first.
func (s *Session) History() []SpinOutcome {
	return s.history.Entries()
}

// HistoryTotal returns how many spins were ever recorded, retained in the
// window or not.
func (s *Session) HistoryTotal() int {
	return s.history.Total()
}

// ClearHistory drops the outcome log and restarts attempt numbering.
// Stats are untouched.
func (s *Session) ClearHistory() {
	s.history.Reset()
}

// ResetStats zeroes the aggregate. History is untouched.
func (s *Session) ResetStats() {
	s.house = stats.NewHouseStats()
}

// SpinOnce runs one Normal Mode spin and commits it.
func (s *Session) SpinOnce() (SpinOutcome, error) {
	out, err := spinOnce(&s.cfg, s.rng, s.history.Total()+1)
	if err != nil {
		return SpinOutcome{}, err
	}
	s.commitSpin(out)
	return out, nil
}

// SpinBatch runs n Normal Mode spins and commits each one. TotalCost is
// the cumulative price players paid for the batch.
func (s *Session) SpinBatch(n int) (BatchResult, error) {
	if n < 1 {
		return BatchResult{}, fmt.Errorf("%w: spins=%d", ErrInvalidCount, n)
	}

	outcomes := make([]SpinOutcome, 0, n)
	for i := 0; i < n; i++ {
		out, err := spinOnce(&s.cfg, s.rng, s.history.Total()+1)
		if err != nil {
			return BatchResult{}, err
		}
		s.commitSpin(out)
		outcomes = append(outcomes, out)

		if s.progress != nil && ((i+1)%progressChunk == 0 || i+1 == n) {
			s.progress(i+1, n)
		}
	}

	return BatchResult{
		Outcomes:  outcomes,
		TotalCost: float64(n) * s.cfg.PricePerSpin,
	}, nil
}

// RunBreaks executes count independent breaks back-to-back. Each break
// draws without replacement from a fresh slot space and terminates once
// every stop-flagged slot has been drawn.
//
// A configuration without any stop-flagged range is rejected up front with
// ErrNoStopCondition before any state mutation, since it would otherwise
// loop forever.
func (s *Session) RunBreaks(count int) (BreaksResult, error) {
	if count < 1 {
		return BreaksResult{}, fmt.Errorf("%w: breaks=%d", ErrInvalidCount, count)
	}
	if !s.cfg.HasStopCondition() {
		return BreaksResult{}, ErrNoStopCondition
	}

	var result BreaksResult
	result.Outcomes = make([]stats.BreakOutcome, 0, count)

	for i := 0; i < count; i++ {
		spins, outcome, err := runBreak(&s.cfg, s.rng, s.pool, s.history.Total()+1)
		if err != nil {
			return BreaksResult{}, err
		}

		// The break completed: commit it as one event.
		for _, bs := range spins {
			s.commitSpin(bs.outcome)
		}
		s.house = stats.FoldBreaks(s.house, []stats.BreakOutcome{outcome})

		result.Outcomes = append(result.Outcomes, outcome)
		result.TotalSpins += outcome.SpinCount
		result.TotalProfit += outcome.TotalProfit

		if s.progress != nil && ((i+1)%progressChunk == 0 || i+1 == count) {
			s.progress(i+1, count)
		}
	}

	return result, nil
}

// commitSpin appends one outcome to history and folds it into the
// aggregate.
func (s *Session) commitSpin(out SpinOutcome) {
	s.history.Push(out)
	s.house = stats.FoldSpin(s.house, out.PrizeName, out.Profit)
}

// RiskParams assembles the estimator inputs for this session's wheel.
func (s *Session) RiskParams(mode stats.Mode) stats.RiskParams {
	cfg := s.cfg
	return stats.RiskParams{
		Mode:              mode,
		TotalSlots:        cfg.TotalSlots,
		PricePerSpin:      cfg.PricePerSpin,
		CommissionPercent: cfg.CommissionPercent,
		DefaultPrizeValue: cfg.DefaultPrizeValue,
		Prizes:            s.Config().Prizes,
	}
}
