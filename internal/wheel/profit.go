package wheel

import "fmt"

// ComputeProfit returns the house profit and commission amount for one spin.
// Positive profit means the house gains.
//
// The commission percent must already be clamped to [0, 100] by the caller;
// this function performs no clamping and fails with ErrInvalidCommission on
// an out-of-range value.
func ComputeProfit(pricePerSpin, prizeCost, commissionPercent float64) (profit, commission float64, err error) {
	if commissionPercent < 0 || commissionPercent > 100 {
		return 0, 0, fmt.Errorf("%w: got %v", ErrInvalidCommission, commissionPercent)
	}
	commission = pricePerSpin * commissionPercent / 100
	profit = pricePerSpin - commission - prizeCost
	return profit, commission, nil
}

// ClampCommission forces a commission percent into [0, 100]. Callers apply
// this at the input boundary before invoking ComputeProfit.
func ClampCommission(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
