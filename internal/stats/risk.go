package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/MJE43/wheel-sim-go/internal/wheel"
)

// Mode selects which trial unit the risk estimate models: a single spin in
// Normal Mode, a whole break in Remove-Hit-Slots Mode.
type Mode string

const (
	ModeNormal    Mode = "normal"
	ModeRemoveHit Mode = "remove_hit"
)

// highRiskCeiling is the fixed constant reported when the expected cost of
// the next break meets or exceeds current earnings. It is part of the
// legacy formula and deliberately not derived from anything.
const highRiskCeiling = 0.75

// RiskParams carries the wheel parameters the estimators need.
type RiskParams struct {
	Mode              Mode
	TotalSlots        int
	PricePerSpin      float64
	CommissionPercent float64
	DefaultPrizeValue float64
	Prizes            []wheel.PrizeRange
}

// ShortTermRisk estimates the probability that the next trial unit pushes
// cumulative earnings negative. It is a heuristic, not a closed-form
// guarantee; the formula is fixed so outputs stay comparable with the
// legacy simulator.
func ShortTermRisk(s HouseStats, p RiskParams) (float64, error) {
	if s.TotalEarnings <= 0 {
		// Already at or below zero: report maximal risk.
		return 1, nil
	}
	if p.Mode == ModeRemoveHit {
		return breakModeRisk(s, p)
	}
	return spinModeRisk(s, p)
}

// spinModeRisk models Normal Mode: the chance that enough consecutive
// worst-case spins land to erase current earnings.
func spinModeRisk(s HouseStats, p RiskParams) (float64, error) {
	worstCost := p.DefaultPrizeValue
	worstSlots := p.TotalSlots
	for _, pr := range p.Prizes {
		worstSlots -= pr.SlotCount
	}
	for _, pr := range p.Prizes {
		if pr.UnitCost > worstCost {
			worstCost = pr.UnitCost
			worstSlots = pr.SlotCount
		}
	}

	worstProfit, _, err := wheel.ComputeProfit(p.PricePerSpin, worstCost, p.CommissionPercent)
	if err != nil {
		return 0, err
	}
	if worstProfit >= 0 {
		// No single spin can go negative.
		return 0, nil
	}

	hitsToNegative := math.Ceil(s.TotalEarnings / math.Abs(worstProfit))
	pWorst := float64(worstSlots) / float64(p.TotalSlots)
	return math.Pow(pWorst, hitsToNegative), nil
}

// breakModeRisk models Remove-Hit-Slots Mode via the expected cost of one
// full break relative to current earnings.
func breakModeRisk(s HouseStats, p RiskParams) (float64, error) {
	netPrice := p.PricePerSpin - p.PricePerSpin*p.CommissionPercent/100

	expectedBreakCost := 0.0
	stopRanges := 0
	for _, pr := range p.Prizes {
		if !pr.StopWhenHit {
			continue
		}
		stopRanges++
		expectedBreakCost += float64(p.TotalSlots) / float64(pr.SlotCount) * (netPrice - p.DefaultPrizeValue)
	}
	if stopRanges == 0 {
		return 0, nil
	}

	switch {
	case expectedBreakCost <= 0:
		return 0, nil
	case expectedBreakCost >= s.TotalEarnings:
		return highRiskCeiling, nil
	default:
		return expectedBreakCost / s.TotalEarnings * 0.5, nil
	}
}

// BreakProbability pairs the two distinct notions of "how likely is this
// break again": the empirical recurrence frequency over observed breaks,
// and the theoretical probability of the exact independent-draw sequence.
// They answer different questions and must not be conflated.
type BreakProbability struct {
	Empirical float64 `json:"empirical"`
	Sequence  float64 `json:"sequence"`
	CI        CI      `json:"ci"`
}

// BreakProbabilities holds recurrence estimates for the best and worst
// observed breaks.
type BreakProbabilities struct {
	Best  BreakProbability `json:"best"`
	Worst BreakProbability `json:"worst"`
}

// CI is a confidence interval on a probability.
type CI struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// BreakProbs computes recurrence estimates for the recorded best and worst
// breaks. With zero observed breaks both empirical estimates are 0; the
// Clopper-Pearson interval makes the small-sample uncertainty explicit
// instead of letting 1/n masquerade as a confident point estimate.
func BreakProbs(best, worst *BreakOutcome, totalBreaks, totalSlots int) BreakProbabilities {
	var out BreakProbabilities
	if best != nil {
		out.Best = breakProbability(best.SpinCount, totalBreaks, totalSlots)
	}
	if worst != nil {
		out.Worst = breakProbability(worst.SpinCount, totalBreaks, totalSlots)
	}
	return out
}

func breakProbability(spins, totalBreaks, totalSlots int) BreakProbability {
	var p BreakProbability
	if totalBreaks > 0 {
		p.Empirical = 1 / float64(totalBreaks)
	}
	if totalSlots > 0 && spins > 0 {
		p.Sequence = math.Pow(1/float64(totalSlots), float64(spins))
	}
	p.CI = RecurrenceCI(1, totalBreaks, 0.95)
	return p
}

// RecurrenceCI is the Clopper-Pearson exact interval for k occurrences out
// of n trials.
func RecurrenceCI(k, n int, confidence float64) CI {
	if n == 0 {
		return CI{Lo: 0, Hi: 1}
	}
	if k > n {
		k = n
	}
	alpha := 1 - confidence

	var ci CI
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return ci
}
