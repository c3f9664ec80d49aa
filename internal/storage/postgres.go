package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// PostgresSlot stores the blob in a single-row-per-key table, for
// deployments where the server has no durable filesystem.
type PostgresSlot struct {
	db  *sql.DB
	key string
}

// NewPostgresSlot opens a connection pool, verifies it and ensures the
// backing table exists.
func NewPostgresSlot(databaseURL, key string) (*PostgresSlot, error) {
	if databaseURL == "" {
		return nil, errors.New("database URL is required")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresSlot{db: db, key: key}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresSlot) migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS presentation_state (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating presentation_state table: %w", err)
	}
	return nil
}

// Load reads the slot row. A missing row returns (nil, nil).
func (s *PostgresSlot) Load() ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM presentation_state WHERE key = $1`, s.key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading slot %s: %w", s.key, err)
	}
	return data, nil
}

// Save upserts the slot row.
func (s *PostgresSlot) Save(data []byte) error {
	query := `
		INSERT INTO presentation_state (key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.Exec(query, s.key, data); err != nil {
		return fmt.Errorf("saving slot %s: %w", s.key, err)
	}
	return nil
}

// Delete removes the slot row. Deleting an absent row is not an error.
func (s *PostgresSlot) Delete() error {
	if _, err := s.db.Exec(`DELETE FROM presentation_state WHERE key = $1`, s.key); err != nil {
		return fmt.Errorf("deleting slot %s: %w", s.key, err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresSlot) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database connection: %w", err)
	}
	return nil
}
