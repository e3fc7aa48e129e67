package sim

import (
	"github.com/MJE43/wheel-sim-go/internal/engine"
	"github.com/MJE43/wheel-sim-go/internal/stats"
	"github.com/MJE43/wheel-sim-go/internal/wheel"
)

// BreaksResult summarizes one RunBreaks call.
type BreaksResult struct {
	Outcomes    []stats.BreakOutcome `json:"outcomes"`
	TotalSpins  int                  `json:"total_spins"`
	TotalProfit float64              `json:"total_profit"`
}

// breakSpin is one draw inside a break, kept so the session can fold it
// into history and per-spin totals.
type breakSpin struct {
	outcome SpinOutcome
	// stopHit is true when the draw consumed a slot of a stop-flagged
	// range.
	stopHit bool
}

// runBreak plays one break: draws without replacement from the full slot
// space until every slot belonging to a stop-flagged range has been drawn.
// Pass-through prizes and default slots cost money but never terminate the
// break.
//
// The caller must have checked HasStopCondition; the pool guards the
// cannot-happen exhaustion case anyway so a bad configuration fails
// instead of spinning forever.
func runBreak(cfg *wheel.Config, r engine.Rand, pool *engine.SlotPool, startAttempt int) ([]breakSpin, stats.BreakOutcome, error) {
	pool.Reset(cfg.TotalSlots)
	remainingRequired := cfg.StopSlots()

	var spins []breakSpin
	var totalProfit float64

	for remainingRequired > 0 {
		slot, err := pool.Draw(r)
		if err != nil {
			return nil, stats.BreakOutcome{}, err
		}

		prize, err := wheel.ResolvePrize(slot, cfg)
		if err != nil {
			return nil, stats.BreakOutcome{}, err
		}
		profit, _, err := wheel.ComputeProfit(cfg.PricePerSpin, prize.UnitCost, cfg.CommissionPercent)
		if err != nil {
			return nil, stats.BreakOutcome{}, err
		}

		stopHit := prize.Special && cfg.Prizes[prize.RangeIndex].StopWhenHit
		if stopHit {
			remainingRequired--
		}

		totalProfit += profit
		spins = append(spins, breakSpin{
			outcome: SpinOutcome{
				AttemptIndex: startAttempt + len(spins),
				Slot:         slot,
				PrizeName:    prize.Name,
				UnitCost:     prize.UnitCost,
				Profit:       profit,
			},
			stopHit: stopHit,
		})
	}

	return spins, stats.BreakOutcome{
		SpinCount:   len(spins),
		TotalProfit: totalProfit,
	}, nil
}
