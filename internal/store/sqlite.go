package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements the DB interface using SQLite
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations. Money columns are stored as decimal
// strings so round-tripping a saved price never drifts.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS configurations (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			is_public INTEGER NOT NULL DEFAULT 0,
			total_slots INTEGER NOT NULL,
			price_per_spin TEXT NOT NULL,
			commission_percent TEXT NOT NULL,
			default_prize TEXT NOT NULL,
			prizes_json TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_configurations_name ON configurations(name)`,
		`CREATE INDEX IF NOT EXISTS idx_configurations_created_at ON configurations(created_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// SaveConfig saves a configuration record, assigning an id when absent.
func (s *SQLiteDB) SaveConfig(rec *ConfigRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	query := `INSERT INTO configurations (
		id, name, description, is_public, total_slots,
		price_per_spin, commission_percent, default_prize, prizes_json
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		rec.ID, rec.Name, rec.Description, rec.IsPublic, rec.TotalSlots,
		rec.PricePerSpin.String(), rec.CommissionPercent.String(),
		rec.DefaultPrize.String(), rec.PrizesJSON,
	)

	return err
}

// GetConfig retrieves a configuration by ID
func (s *SQLiteDB) GetConfig(id string) (*ConfigRecord, error) {
	query := `SELECT id, name, description, is_public, total_slots,
		price_per_spin, commission_percent, default_prize, prizes_json, created_at
		FROM configurations WHERE id = ?`

	rec, err := scanConfig(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// ListConfigs retrieves configurations with pagination, newest first.
func (s *SQLiteDB) ListConfigs(limit, offset int) ([]ConfigRecord, error) {
	query := `SELECT id, name, description, is_public, total_slots,
		price_per_spin, commission_percent, default_prize, prizes_json, created_at
		FROM configurations
		ORDER BY created_at DESC, id LIMIT ? OFFSET ?`

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ConfigRecord
	for rows.Next() {
		rec, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

// DeleteConfig removes a configuration by ID
func (s *SQLiteDB) DeleteConfig(id string) error {
	res, err := s.db.Exec(`DELETE FROM configurations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConfig(row rowScanner) (*ConfigRecord, error) {
	var rec ConfigRecord
	var price, commission, defaultPrize string

	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Description, &rec.IsPublic, &rec.TotalSlots,
		&price, &commission, &defaultPrize, &rec.PrizesJSON, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rec.PricePerSpin, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("decode price_per_spin: %w", err)
	}
	if rec.CommissionPercent, err = decimal.NewFromString(commission); err != nil {
		return nil, fmt.Errorf("decode commission_percent: %w", err)
	}
	if rec.DefaultPrize, err = decimal.NewFromString(defaultPrize); err != nil {
		return nil, fmt.Errorf("decode default_prize: %w", err)
	}

	return &rec, nil
}
