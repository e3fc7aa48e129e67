package stats

// BreakOutcome summarizes one complete break cycle from the house's
// perspective.
type BreakOutcome struct {
	SpinCount   int     `json:"spin_count"`
	TotalProfit float64 `json:"total_profit"`
}

// ProfitPerSpin is the ranking key for best/worst break comparisons.
func (b BreakOutcome) ProfitPerSpin() float64 {
	if b.SpinCount == 0 {
		return 0
	}
	return b.TotalProfit / float64(b.SpinCount)
}

// HouseStats is the running aggregate for one simulation session. It is
// threaded through the fold functions as a value: callers own the latest
// copy, and a fold never mutates its input.
type HouseStats struct {
	TotalEarnings     float64        `json:"total_earnings"`
	TotalSpins        int            `json:"total_spins"`
	TotalBreaks       int            `json:"total_breaks"`
	PrizeDistribution map[string]int `json:"prize_distribution"`
	BestBreak         *BreakOutcome  `json:"best_break,omitempty"`
	WorstBreak        *BreakOutcome  `json:"worst_break,omitempty"`
}

// NewHouseStats returns a zeroed aggregate.
func NewHouseStats() HouseStats {
	return HouseStats{PrizeDistribution: map[string]int{}}
}

// Clone deep-copies the aggregate so no caller ever shares the histogram
// map or break records with another copy.
func (s HouseStats) Clone() HouseStats {
	cp := s
	cp.PrizeDistribution = make(map[string]int, len(s.PrizeDistribution)+1)
	for name, count := range s.PrizeDistribution {
		cp.PrizeDistribution[name] = count
	}
	if s.BestBreak != nil {
		best := *s.BestBreak
		cp.BestBreak = &best
	}
	if s.WorstBreak != nil {
		worst := *s.WorstBreak
		cp.WorstBreak = &worst
	}
	return cp
}

// FoldSpin returns the aggregate with one spin applied: earnings, spin
// count, and the prize histogram. Break records are untouched, so Normal
// Mode runs never lose previously recorded best/worst breaks.
func FoldSpin(s HouseStats, prizeName string, profit float64) HouseStats {
	out := s.Clone()
	out.TotalSpins++
	out.TotalEarnings += profit
	out.PrizeDistribution[prizeName]++
	return out
}

// FoldBreaks returns the aggregate with a batch of completed breaks
// applied: the break counter plus best/worst championship. Per-spin
// totals inside each break are folded separately via FoldSpin.
func FoldBreaks(s HouseStats, outcomes []BreakOutcome) HouseStats {
	out := s.Clone()
	for _, b := range outcomes {
		out.TotalBreaks++
		// Strict comparisons: ties keep the incumbent champion.
		if out.BestBreak == nil || b.ProfitPerSpin() > out.BestBreak.ProfitPerSpin() {
			best := b
			out.BestBreak = &best
		}
		if out.WorstBreak == nil || b.ProfitPerSpin() < out.WorstBreak.ProfitPerSpin() {
			worst := b
			out.WorstBreak = &worst
		}
	}
	return out
}
