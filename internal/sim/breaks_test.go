package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/MJE43/wheel-sim-go/internal/engine"
	"github.com/MJE43/wheel-sim-go/internal/wheel"
)

func TestRunBreaksRequiresStopCondition(t *testing.T) {
	cfg := testConfig()
	cfg.Prizes[0].StopWhenHit = false

	s, err := NewSession(cfg, engine.NewRand(1), 0)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	_, err = s.RunBreaks(1)
	if !errors.Is(err, ErrNoStopCondition) {
		t.Fatalf("Expected ErrNoStopCondition, got %v", err)
	}

	// The failure happens before any state mutation.
	if st := s.Stats(); st.TotalSpins != 0 || st.TotalBreaks != 0 {
		t.Errorf("Expected untouched stats, got %+v", st)
	}
	if len(s.History()) != 0 {
		t.Errorf("Expected empty history, got %d entries", len(s.History()))
	}
}

func TestRunBreaksRejectsInvalidCount(t *testing.T) {
	s := newTestSession(t, 1)
	if _, err := s.RunBreaks(0); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("Expected ErrInvalidCount, got %v", err)
	}
}

func TestBreakDrawsWithoutReplacement(t *testing.T) {
	s := newTestSession(t, 17)

	res, err := s.RunBreaks(1)
	if err != nil {
		t.Fatalf("RunBreaks failed: %v", err)
	}
	if len(res.Outcomes) != 1 {
		t.Fatalf("Expected 1 break outcome, got %d", len(res.Outcomes))
	}

	// Every drawn slot within the break must be distinct.
	hist := s.History()
	seen := make(map[int]bool, len(hist))
	for _, out := range hist {
		if seen[out.Slot] {
			t.Fatalf("Slot %d drawn twice within one break", out.Slot)
		}
		seen[out.Slot] = true
	}

	// The single stop slot must be the final draw.
	last := hist[len(hist)-1]
	if last.Slot != 1 {
		t.Errorf("Expected break to terminate on slot 1, got slot %d", last.Slot)
	}
	if last.PrizeName != "Prize X" {
		t.Errorf("Expected terminating prize %q, got %q", "Prize X", last.PrizeName)
	}
	if res.Outcomes[0].SpinCount != len(hist) {
		t.Errorf("Expected break spin count %d, got %d", len(hist), res.Outcomes[0].SpinCount)
	}
}

func TestBreakTerminatesAfterAllStopSlots(t *testing.T) {
	cfg := wheel.Config{
		TotalSlots:        10,
		PricePerSpin:      5,
		DefaultPrizeValue: 1,
		Prizes: []wheel.PrizeRange{
			{Name: "Grand", UnitCost: 20, SlotCount: 3, StopWhenHit: true},
			{Name: "Minor", UnitCost: 2, SlotCount: 2},
		},
	}
	s, err := NewSession(cfg, engine.NewRand(23), 0)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	res, err := s.RunBreaks(1)
	if err != nil {
		t.Fatalf("RunBreaks failed: %v", err)
	}

	hist := s.History()
	stopHits := 0
	for _, out := range hist {
		if out.Slot <= 3 {
			stopHits++
		}
	}
	if stopHits != 3 {
		t.Errorf("Expected all 3 stop slots drawn, got %d", stopHits)
	}
	if hist[len(hist)-1].Slot > 3 {
		t.Errorf("Expected final draw to be a stop slot, got slot %d", hist[len(hist)-1].Slot)
	}
	if res.TotalSpins < 3 || res.TotalSpins > 10 {
		t.Errorf("Expected between 3 and 10 spins, got %d", res.TotalSpins)
	}
}

func TestRunBreaksAccumulatesStats(t *testing.T) {
	s := newTestSession(t, 11)

	res, err := s.RunBreaks(20)
	if err != nil {
		t.Fatalf("RunBreaks failed: %v", err)
	}
	if len(res.Outcomes) != 20 {
		t.Fatalf("Expected 20 break outcomes, got %d", len(res.Outcomes))
	}

	var wantSpins int
	var wantProfit float64
	for _, b := range res.Outcomes {
		wantSpins += b.SpinCount
		wantProfit += b.TotalProfit
	}
	if res.TotalSpins != wantSpins {
		t.Errorf("Expected total spins %d, got %d", wantSpins, res.TotalSpins)
	}
	if math.Abs(res.TotalProfit-wantProfit) > 1e-9 {
		t.Errorf("Expected total profit %v, got %v", wantProfit, res.TotalProfit)
	}

	st := s.Stats()
	if st.TotalBreaks != 20 {
		t.Errorf("Expected 20 breaks recorded, got %d", st.TotalBreaks)
	}
	if st.TotalSpins != wantSpins {
		t.Errorf("Expected %d spins recorded, got %d", wantSpins, st.TotalSpins)
	}
	if math.Abs(st.TotalEarnings-wantProfit) > 1e-9 {
		t.Errorf("Expected earnings %v, got %v", wantProfit, st.TotalEarnings)
	}

	if st.BestBreak == nil || st.WorstBreak == nil {
		t.Fatal("Expected best and worst breaks recorded")
	}
	if st.BestBreak.ProfitPerSpin() < st.WorstBreak.ProfitPerSpin() {
		t.Errorf("Expected best %v >= worst %v",
			st.BestBreak.ProfitPerSpin(), st.WorstBreak.ProfitPerSpin())
	}
}

func TestBreaksThenSpinsKeepBreakRecords(t *testing.T) {
	s := newTestSession(t, 31)

	if _, err := s.RunBreaks(5); err != nil {
		t.Fatalf("RunBreaks failed: %v", err)
	}
	best := s.Stats().BestBreak
	if best == nil {
		t.Fatal("Expected a best break after RunBreaks")
	}

	if _, err := s.SpinBatch(50); err != nil {
		t.Fatalf("SpinBatch failed: %v", err)
	}

	st := s.Stats()
	if st.BestBreak == nil || *st.BestBreak != *best {
		t.Errorf("Expected best break preserved across spin batch, got %+v", st.BestBreak)
	}
	if st.TotalBreaks != 5 {
		t.Errorf("Expected 5 breaks, got %d", st.TotalBreaks)
	}
}
