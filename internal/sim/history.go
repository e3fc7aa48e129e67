package sim

// DefaultHistoryLimit caps retained spin outcomes so repeated large-batch
// runs stay bounded in memory.
const DefaultHistoryLimit = 500

// History is the bounded most-recent log of spin outcomes for one session.
// The backing slice is allowed to grow to twice the limit before the old
// prefix is dropped, so pushes stay amortized O(1) during large batches.
type History struct {
	entries []SpinOutcome
	limit   int
	// total counts every outcome ever pushed, including ones already
	// evicted; AttemptIndex numbering derives from it.
	total int
}

// NewHistory returns a history keeping the most recent limit entries. A
// non-positive limit selects DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push appends an outcome, evicting the oldest entries once the backing
// slice reaches double the limit.
func (h *History) Push(o SpinOutcome) {
	h.total++
	h.entries = append(h.entries, o)
	if len(h.entries) >= h.limit*2 {
		// Copy into a fresh slice so the evicted prefix can be collected.
		kept := make([]SpinOutcome, h.limit)
		copy(kept, h.entries[len(h.entries)-h.limit:])
		h.entries = kept
	}
}

// Len returns the number of retained entries, at most the limit.
func (h *History) Len() int {
	if len(h.entries) > h.limit {
		return h.limit
	}
	return len(h.entries)
}

// Total returns how many outcomes were ever recorded, retained or not.
func (h *History) Total() int {
	return h.total
}

// Entries returns a copy of the retained outcomes, oldest first.
func (h *History) Entries() []SpinOutcome {
	n := h.Len()
	out := make([]SpinOutcome, n)
	copy(out, h.entries[len(h.entries)-n:])
	return out
}

// Reset drops all entries and restarts attempt numbering.
func (h *History) Reset() {
	h.entries = nil
	h.total = 0
}
