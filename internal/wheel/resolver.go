package wheel

import "fmt"

// Prize is the resolved outcome for a single slot.
type Prize struct {
	Name     string  `json:"name"`
	UnitCost float64 `json:"unit_cost"`
	// Special is true when the slot belongs to a named prize range rather
	// than the default prize.
	Special bool `json:"special"`
	// RangeIndex is the index of the matched range in Config.Prizes, or -1
	// for the default prize.
	RangeIndex int `json:"range_index"`
}

// ResolvePrize maps a 1-based slot to the prize occupying it. Ranges are
// walked in list order with a running cumulative offset; the first range
// whose block contains the slot wins. Slots past the named prefix resolve
// to the default prize.
//
// The slot must lie in [1, TotalSlots]; anything else is a caller contract
// violation and fails with ErrInvalidSlot.
func ResolvePrize(slot int, cfg *Config) (Prize, error) {
	if slot < 1 || slot > cfg.TotalSlots {
		return Prize{}, fmt.Errorf("%w: slot=%d total_slots=%d", ErrInvalidSlot, slot, cfg.TotalSlots)
	}

	consumed := 0
	for i, p := range cfg.Prizes {
		if slot <= consumed+p.SlotCount {
			return Prize{
				Name:       p.Name,
				UnitCost:   p.UnitCost,
				Special:    true,
				RangeIndex: i,
			}, nil
		}
		consumed += p.SlotCount
	}

	return Prize{
		Name:       DefaultPrizeName,
		UnitCost:   cfg.DefaultPrizeValue,
		Special:    false,
		RangeIndex: -1,
	}, nil
}
