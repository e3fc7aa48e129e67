package stats

import (
	"strings"
	"testing"
)

func TestFoldSpin(t *testing.T) {
	s := NewHouseStats()

	s = FoldSpin(s, "Default Prize", 15)
	s = FoldSpin(s, "Prize X", -25)
	s = FoldSpin(s, "Default Prize", 15)

	if s.TotalSpins != 3 {
		t.Errorf("Expected 3 spins, got %d", s.TotalSpins)
	}
	if s.TotalEarnings != 5 {
		t.Errorf("Expected earnings 5, got %v", s.TotalEarnings)
	}
	if s.PrizeDistribution["Default Prize"] != 2 || s.PrizeDistribution["Prize X"] != 1 {
		t.Errorf("Unexpected distribution: %v", s.PrizeDistribution)
	}
}

func TestFoldSpinDoesNotMutateInput(t *testing.T) {
	before := NewHouseStats()
	before = FoldSpin(before, "A", 1)

	after := FoldSpin(before, "A", 1)

	if before.TotalSpins != 1 || before.PrizeDistribution["A"] != 1 {
		t.Errorf("Input aggregate was mutated: %+v", before)
	}
	if after.TotalSpins != 2 || after.PrizeDistribution["A"] != 2 {
		t.Errorf("Output aggregate wrong: %+v", after)
	}
}

func TestFoldSpinPreservesBreakRecords(t *testing.T) {
	s := NewHouseStats()
	s = FoldBreaks(s, []BreakOutcome{{SpinCount: 4, TotalProfit: 20}})

	s = FoldSpin(s, "A", 1)

	if s.BestBreak == nil || s.WorstBreak == nil {
		t.Fatal("FoldSpin dropped break records")
	}
	if s.BestBreak.SpinCount != 4 {
		t.Errorf("Best break corrupted: %+v", s.BestBreak)
	}
}

func TestFoldBreaksChampionship(t *testing.T) {
	s := NewHouseStats()

	// 30 profit over 3 spins, then 30 over 2: the second becomes best
	// because 15/spin beats 10/spin.
	s = FoldBreaks(s, []BreakOutcome{{SpinCount: 3, TotalProfit: 30}})
	s = FoldBreaks(s, []BreakOutcome{{SpinCount: 2, TotalProfit: 30}})

	if s.TotalBreaks != 2 {
		t.Errorf("Expected 2 breaks, got %d", s.TotalBreaks)
	}
	if s.BestBreak.SpinCount != 2 {
		t.Errorf("Expected best break with 2 spins, got %+v", s.BestBreak)
	}
	if s.WorstBreak.SpinCount != 3 {
		t.Errorf("Expected worst break with 3 spins, got %+v", s.WorstBreak)
	}
}

func TestFoldBreaksTiesKeepIncumbent(t *testing.T) {
	s := NewHouseStats()

	first := BreakOutcome{SpinCount: 2, TotalProfit: 10}
	second := BreakOutcome{SpinCount: 4, TotalProfit: 20} // same 5/spin
	s = FoldBreaks(s, []BreakOutcome{first, second})

	if s.BestBreak.SpinCount != 2 {
		t.Errorf("Tie should keep first-seen best, got %+v", s.BestBreak)
	}
	if s.WorstBreak.SpinCount != 2 {
		t.Errorf("Tie should keep first-seen worst, got %+v", s.WorstBreak)
	}
}

func TestProfitPerSpinZeroSpins(t *testing.T) {
	if got := (BreakOutcome{}).ProfitPerSpin(); got != 0 {
		t.Errorf("Expected 0 for empty break, got %v", got)
	}
}

func TestWriteReport(t *testing.T) {
	s := NewHouseStats()
	s = FoldSpin(s, "Prize X", -25)
	s = FoldSpin(s, "Default Prize", 15)
	s = FoldBreaks(s, []BreakOutcome{{SpinCount: 2, TotalProfit: -10}})

	var b strings.Builder
	if err := WriteReport(&b, "Test Wheel", s); err != nil {
		t.Fatalf("WriteReport failed: %v", err)
	}

	out := b.String()
	for _, want := range []string{"Test Wheel", "Total Spins", "Prize X", "Best Break"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}

	// Every line of the box should have the same display width.
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	for _, line := range lines[1:] {
		if len(line) != len(lines[0]) {
			t.Errorf("Ragged table:\n%s", out)
			break
		}
	}
}
