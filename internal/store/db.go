package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MJE43/wheel-sim-go/internal/wheel"
)

// ErrNotFound is returned when a configuration id does not exist.
var ErrNotFound = errors.New("configuration not found")

// DB represents the configuration store interface
type DB interface {
	Close() error
	Migrate() error
	SaveConfig(rec *ConfigRecord) error
	GetConfig(id string) (*ConfigRecord, error)
	ListConfigs(limit, offset int) ([]ConfigRecord, error)
	DeleteConfig(id string) error
}

// ConfigRecord is a saved wheel configuration. Money fields are kept as
// exact decimals in the record layer and converted to float64 only at the
// engine boundary.
type ConfigRecord struct {
	ID                string          `json:"id" db:"id"`
	Name              string          `json:"name" db:"name"`
	Description       string          `json:"description" db:"description"`
	IsPublic          bool            `json:"is_public" db:"is_public"`
	TotalSlots        int             `json:"total_slots" db:"total_slots"`
	PricePerSpin      decimal.Decimal `json:"price_per_spin" db:"price_per_spin"`
	CommissionPercent decimal.Decimal `json:"commission_percent" db:"commission_percent"`
	DefaultPrize      decimal.Decimal `json:"default_prize" db:"default_prize"`
	PrizesJSON        string          `json:"prizes_json" db:"prizes_json"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
}

// FromConfig builds a record from an engine configuration.
func FromConfig(name, description string, isPublic bool, cfg *wheel.Config) (*ConfigRecord, error) {
	prizes, err := json.Marshal(cfg.Prizes)
	if err != nil {
		return nil, fmt.Errorf("encode prizes: %w", err)
	}
	return &ConfigRecord{
		Name:              name,
		Description:       description,
		IsPublic:          isPublic,
		TotalSlots:        cfg.TotalSlots,
		PricePerSpin:      decimal.NewFromFloat(cfg.PricePerSpin),
		CommissionPercent: decimal.NewFromFloat(cfg.CommissionPercent),
		DefaultPrize:      decimal.NewFromFloat(cfg.DefaultPrizeValue),
		PrizesJSON:        string(prizes),
	}, nil
}

// ToConfig converts the record back into a validated engine configuration.
// Prize decoding tolerates the legacy "value" field in older records.
func (r *ConfigRecord) ToConfig() (*wheel.Config, error) {
	var prizes []wheel.PrizeRange
	if r.PrizesJSON != "" {
		if err := json.Unmarshal([]byte(r.PrizesJSON), &prizes); err != nil {
			return nil, fmt.Errorf("decode prizes: %w", err)
		}
	}
	cfg := wheel.Config{
		TotalSlots:        r.TotalSlots,
		PricePerSpin:      r.PricePerSpin.InexactFloat64(),
		CommissionPercent: r.CommissionPercent.InexactFloat64(),
		DefaultPrizeValue: r.DefaultPrize.InexactFloat64(),
		Prizes:            prizes,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
