package engine

import "errors"

// ErrSlotSpaceExhausted is returned when a draw is requested from an empty
// pool.
var ErrSlotSpaceExhausted = errors.New("slot space exhausted")

// SlotPool is the live set of slots still available within one break.
// Draws remove the drawn slot with a swap-to-end, so every remaining slot
// stays equally likely and a draw is O(1) with no rejection sampling.
type SlotPool struct {
	slots []int
}

// NewSlotPool returns a pool holding slots 1..totalSlots.
func NewSlotPool(totalSlots int) *SlotPool {
	slots := make([]int, totalSlots)
	for i := range slots {
		slots[i] = i + 1
	}
	return &SlotPool{slots: slots}
}

// Remaining returns how many slots have not been drawn yet.
func (p *SlotPool) Remaining() int {
	return len(p.slots)
}

// Draw removes and returns a uniformly random slot from the pool.
func (p *SlotPool) Draw(r Rand) (int, error) {
	n := len(p.slots)
	if n == 0 {
		return 0, ErrSlotSpaceExhausted
	}

	idx := r.Intn(n)
	slot := p.slots[idx]
	p.slots[idx] = p.slots[n-1]
	p.slots = p.slots[:n-1]
	return slot, nil
}

// Reset refills the pool with slots 1..totalSlots, reusing the backing
// array when it is large enough.
func (p *SlotPool) Reset(totalSlots int) {
	if cap(p.slots) < totalSlots {
		p.slots = make([]int, totalSlots)
	} else {
		p.slots = p.slots[:totalSlots]
	}
	for i := range p.slots {
		p.slots[i] = i + 1
	}
}
