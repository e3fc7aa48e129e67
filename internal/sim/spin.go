package sim

import (
	"github.com/MJE43/wheel-sim-go/internal/engine"
	"github.com/MJE43/wheel-sim-go/internal/wheel"
)

// SpinOutcome is one completed spin from the house's perspective.
// Immutable once produced.
type SpinOutcome struct {
	AttemptIndex int     `json:"attempt_index"`
	Slot         int     `json:"slot"`
	PrizeName    string  `json:"prize_name"`
	UnitCost     float64 `json:"unit_cost"`
	Profit       float64 `json:"profit"`
}

// BatchResult is the outcome list of one spin batch plus the cumulative
// amount players paid for it.
type BatchResult struct {
	Outcomes  []SpinOutcome `json:"outcomes"`
	TotalCost float64       `json:"total_cost"`
}

// spinOnce draws one unconstrained slot (slots may repeat across calls)
// and resolves it to an outcome. Pure over its inputs plus the random
// source: no shared state is touched here.
func spinOnce(cfg *wheel.Config, r engine.Rand, attemptIndex int) (SpinOutcome, error) {
	slot := r.Intn(cfg.TotalSlots) + 1

	prize, err := wheel.ResolvePrize(slot, cfg)
	if err != nil {
		return SpinOutcome{}, err
	}
	profit, _, err := wheel.ComputeProfit(cfg.PricePerSpin, prize.UnitCost, cfg.CommissionPercent)
	if err != nil {
		return SpinOutcome{}, err
	}

	return SpinOutcome{
		AttemptIndex: attemptIndex,
		Slot:         slot,
		PrizeName:    prize.Name,
		UnitCost:     prize.UnitCost,
		Profit:       profit,
	}, nil
}
