package wheel

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestValidateCapacity(t *testing.T) {
	cfg := &Config{
		TotalSlots:        10,
		DefaultPrizeValue: 1,
		Prizes: []PrizeRange{
			{ID: "a", Name: "A", UnitCost: 5, SlotCount: 6},
			{ID: "b", Name: "B", UnitCost: 5, SlotCount: 5},
		},
	}

	if err := cfg.Validate(); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Expected ErrCapacityExceeded, got %v", err)
	}

	// Exactly full is allowed.
	cfg.Prizes[1].SlotCount = 4
	if err := cfg.Validate(); err != nil {
		t.Errorf("Full partition should be valid: %v", err)
	}
	if cfg.DefaultSlots() != 0 {
		t.Errorf("Expected 0 default slots, got %d", cfg.DefaultSlots())
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	testCases := []struct {
		name string
		cfg  Config
	}{
		{"zero slots", Config{TotalSlots: 0}},
		{"negative price", Config{TotalSlots: 5, PricePerSpin: -1}},
		{"negative default prize", Config{TotalSlots: 5, DefaultPrizeValue: -1}},
		{"commission above 100", Config{TotalSlots: 5, CommissionPercent: 101}},
		{"negative commission", Config{TotalSlots: 5, CommissionPercent: -1}},
		{"zero slot count", Config{TotalSlots: 5, Prizes: []PrizeRange{{ID: "a", Name: "A", SlotCount: 0}}}},
		{"negative unit cost", Config{TotalSlots: 5, Prizes: []PrizeRange{{ID: "a", Name: "A", UnitCost: -1, SlotCount: 1}}}},
		{"unnamed prize", Config{TotalSlots: 5, Prizes: []PrizeRange{{ID: "a", SlotCount: 1}}}},
		{"duplicate ids", Config{TotalSlots: 5, Prizes: []PrizeRange{
			{ID: "a", Name: "A", SlotCount: 1},
			{ID: "a", Name: "B", SlotCount: 1},
		}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestPrizeRangeLegacyValueJSON(t *testing.T) {
	raw := []byte(`{"id":"a","name":"A","value":12.5,"slot_count":2,"stop_when_hit":true}`)

	var p PrizeRange
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("Failed to unmarshal legacy prize: %v", err)
	}
	if p.UnitCost != 12.5 {
		t.Errorf("Expected legacy value mapped to unit cost 12.5, got %v", p.UnitCost)
	}
	if !p.StopWhenHit || p.SlotCount != 2 {
		t.Errorf("Expected stop_when_hit=true slot_count=2, got %t / %d", p.StopWhenHit, p.SlotCount)
	}

	// unit_cost wins when both keys are present.
	raw = []byte(`{"id":"a","name":"A","unit_cost":3,"value":9,"slot_count":1}`)
	if err := json.Unmarshal(raw, &p); err != nil {
		t.Fatalf("Failed to unmarshal prize: %v", err)
	}
	if p.UnitCost != 3 {
		t.Errorf("Expected unit_cost to win over value, got %v", p.UnitCost)
	}
}

func TestPrizeRangeLegacyValueYAML(t *testing.T) {
	raw := []byte("id: a\nname: A\nvalue: 7\nslot_count: 1\n")

	var p PrizeRange
	if err := yaml.Unmarshal(raw, &p); err != nil {
		t.Fatalf("Failed to unmarshal legacy prize: %v", err)
	}
	if p.UnitCost != 7 {
		t.Errorf("Expected legacy value mapped to unit cost 7, got %v", p.UnitCost)
	}
}

func TestParseYAML(t *testing.T) {
	raw := []byte(`
total_slots: 25
price_per_spin: 25
default_prize: 10
prizes:
  - id: px
    name: Prize X
    unit_cost: 50
    slot_count: 1
    stop_when_hit: true
`)

	cfg, err := ParseYAML(raw)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if cfg.TotalSlots != 25 || len(cfg.Prizes) != 1 {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if !cfg.HasStopCondition() || cfg.StopSlots() != 1 {
		t.Errorf("Expected one stop slot, got %d", cfg.StopSlots())
	}

	// Invalid configs are rejected at parse time.
	bad := []byte("total_slots: 2\nprizes:\n  - {id: a, name: A, unit_cost: 1, slot_count: 5}\n")
	if _, err := ParseYAML(bad); !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("Expected ErrCapacityExceeded, got %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	cfg := exampleConfig()
	cp := cfg.Clone()
	cp.Prizes[0].UnitCost = 999

	if cfg.Prizes[0].UnitCost == 999 {
		t.Error("Clone shares the prizes slice with the original")
	}
}
