package wheel

import (
	"errors"
	"testing"
)

func TestComputeProfit(t *testing.T) {
	testCases := []struct {
		name           string
		price          float64
		prizeCost      float64
		commission     float64
		wantProfit     float64
		wantCommission float64
	}{
		{"reference example", 25, 50, 0, -25, 0},
		{"no prize", 25, 0, 0, 25, 0},
		{"with commission", 100, 20, 10, 70, 10},
		{"full commission", 100, 0, 100, 0, 100},
		{"free spin", 0, 5, 0, -5, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			profit, commission, err := ComputeProfit(tc.price, tc.prizeCost, tc.commission)
			if err != nil {
				t.Fatalf("ComputeProfit failed: %v", err)
			}
			if profit != tc.wantProfit {
				t.Errorf("Expected profit %v, got %v", tc.wantProfit, profit)
			}
			if commission != tc.wantCommission {
				t.Errorf("Expected commission %v, got %v", tc.wantCommission, commission)
			}
		})
	}
}

func TestComputeProfitInvalidCommission(t *testing.T) {
	for _, pct := range []float64{-0.1, -10, 100.5, 200} {
		if _, _, err := ComputeProfit(10, 0, pct); !errors.Is(err, ErrInvalidCommission) {
			t.Errorf("Expected ErrInvalidCommission for %v, got %v", pct, err)
		}
	}
}

func TestClampCommission(t *testing.T) {
	testCases := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{150, 100},
	}

	for _, tc := range testCases {
		if got := ClampCommission(tc.in); got != tc.want {
			t.Errorf("ClampCommission(%v): expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
