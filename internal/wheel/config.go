package wheel

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultPrizeName is the display name for slots not covered by a named range.
const DefaultPrizeName = "Default Prize"

// PrizeRange is one named prize occupying a contiguous block of slots.
// Range order is significant: ranges partition a prefix of the slot space
// in list order, so reordering ranges changes which slots they own.
type PrizeRange struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	UnitCost    float64 `json:"unit_cost" yaml:"unit_cost"`
	SlotCount   int     `json:"slot_count" yaml:"slot_count"`
	StopWhenHit bool    `json:"stop_when_hit" yaml:"stop_when_hit"`
}

// prizeRangeWire accepts both the current unit_cost field and the legacy
// value field that older saved configurations carry.
type prizeRangeWire struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	UnitCost    *float64 `json:"unit_cost" yaml:"unit_cost"`
	LegacyValue *float64 `json:"value" yaml:"value"`
	SlotCount   int      `json:"slot_count" yaml:"slot_count"`
	StopWhenHit bool     `json:"stop_when_hit" yaml:"stop_when_hit"`
}

func (p *PrizeRange) fromWire(w prizeRangeWire) {
	p.ID = w.ID
	p.Name = w.Name
	p.SlotCount = w.SlotCount
	p.StopWhenHit = w.StopWhenHit
	switch {
	case w.UnitCost != nil:
		p.UnitCost = *w.UnitCost
	case w.LegacyValue != nil:
		p.UnitCost = *w.LegacyValue
	default:
		p.UnitCost = 0
	}
}

// UnmarshalJSON decodes a prize range, tolerating the legacy "value" key.
func (p *PrizeRange) UnmarshalJSON(data []byte) error {
	var w prizeRangeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	p.fromWire(w)
	return nil
}

// UnmarshalYAML decodes a prize range, tolerating the legacy "value" key.
func (p *PrizeRange) UnmarshalYAML(node *yaml.Node) error {
	var w prizeRangeWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	p.fromWire(w)
	return nil
}

// Config describes one wheel: the slot space, the price of a spin, and the
// ordered prize ranges occupying a prefix of the slots. Slots past the
// prize prefix pay out DefaultPrizeValue.
type Config struct {
	TotalSlots        int          `json:"total_slots" yaml:"total_slots"`
	PricePerSpin      float64      `json:"price_per_spin" yaml:"price_per_spin"`
	CommissionPercent float64      `json:"commission_percent" yaml:"commission_percent"`
	DefaultPrizeValue float64      `json:"default_prize" yaml:"default_prize"`
	Prizes            []PrizeRange `json:"prizes" yaml:"prizes"`
}

// PrizeSlots returns the number of slots occupied by named prize ranges.
func (c *Config) PrizeSlots() int {
	total := 0
	for _, p := range c.Prizes {
		total += p.SlotCount
	}
	return total
}

// DefaultSlots returns the number of slots that pay the default prize.
func (c *Config) DefaultSlots() int {
	return c.TotalSlots - c.PrizeSlots()
}

// StopSlots returns the number of slots belonging to stop-flagged ranges.
// A break terminates once every one of these slots has been drawn.
func (c *Config) StopSlots() int {
	total := 0
	for _, p := range c.Prizes {
		if p.StopWhenHit {
			total += p.SlotCount
		}
	}
	return total
}

// HasStopCondition reports whether at least one range is stop-flagged.
// Without one, a break can never terminate.
func (c *Config) HasStopCondition() bool {
	return c.StopSlots() > 0
}

// Validate checks the configuration invariants. Capacity violations are
// rejected here, at configuration time, never at resolve time.
func (c *Config) Validate() error {
	if c.TotalSlots < 1 {
		return fmt.Errorf("%w: total_slots must be >= 1, got %d", ErrInvalidConfig, c.TotalSlots)
	}
	if c.PricePerSpin < 0 {
		return fmt.Errorf("%w: price_per_spin must be >= 0, got %v", ErrInvalidConfig, c.PricePerSpin)
	}
	if c.DefaultPrizeValue < 0 {
		return fmt.Errorf("%w: default_prize must be >= 0, got %v", ErrInvalidConfig, c.DefaultPrizeValue)
	}
	if c.CommissionPercent < 0 || c.CommissionPercent > 100 {
		return fmt.Errorf("%w: got %v", ErrInvalidCommission, c.CommissionPercent)
	}

	seen := make(map[string]int, len(c.Prizes))
	for i, p := range c.Prizes {
		if p.Name == "" {
			return fmt.Errorf("%w: prize %d has no name", ErrInvalidConfig, i)
		}
		if p.SlotCount < 1 {
			return fmt.Errorf("%w: prize %q slot_count must be >= 1, got %d", ErrInvalidConfig, p.Name, p.SlotCount)
		}
		if p.UnitCost < 0 {
			return fmt.Errorf("%w: prize %q unit_cost must be >= 0, got %v", ErrInvalidConfig, p.Name, p.UnitCost)
		}
		if p.ID != "" {
			if prev, dup := seen[p.ID]; dup {
				return fmt.Errorf("%w: duplicate prize id %q (prizes %d and %d)", ErrInvalidConfig, p.ID, prev, i)
			}
			seen[p.ID] = i
		}
	}

	if used := c.PrizeSlots(); used > c.TotalSlots {
		return fmt.Errorf("%w: %d prize slots, %d total", ErrCapacityExceeded, used, c.TotalSlots)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() Config {
	cp := *c
	cp.Prizes = make([]PrizeRange, len(c.Prizes))
	copy(cp.Prizes, c.Prizes)
	return cp
}

// ParseYAML decodes and validates a wheel configuration from YAML.
func ParseYAML(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse wheel config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseJSON decodes and validates a wheel configuration from JSON.
func ParseJSON(raw []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse wheel config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
