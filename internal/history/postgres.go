package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"benchci/internal/benchmark"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL, for runners that share
// history across machines.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to dsn and applies migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS checks (
			id SERIAL PRIMARY KEY,
			group_name TEXT NOT NULL,
			base_ns DOUBLE PRECISION NOT NULL,
			new_ns DOUBLE PRECISION NOT NULL,
			base_files INTEGER NOT NULL,
			new_files INTEGER NOT NULL,
			improvement DOUBLE PRECISION NOT NULL,
			threshold DOUBLE PRECISION NOT NULL,
			passed BOOLEAN NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS summaries (
			id SERIAL PRIMARY KEY,
			benchmark TEXT NOT NULL,
			mean_seconds DOUBLE PRECISION NOT NULL,
			std_dev_seconds DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE INDEX IF NOT EXISTS idx_checks_group ON checks (group_name, created_at);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			slog.Error("Migration failed", "query", q, "error", err)
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveCheck records a comparison outcome.
func (s *PostgresStore) SaveCheck(ctx context.Context, c benchmark.Comparison) error {
	r := newCheckRecord(c, time.Now().UTC())
	query := `INSERT INTO checks (group_name, base_ns, new_ns, base_files, new_files, improvement, threshold, passed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := s.db.ExecContext(ctx, query, r.Group, r.BaseNs, r.NewNs, r.BaseFiles, r.NewFiles,
		r.Improvement, r.Threshold, r.Passed, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save check: %w", err)
	}
	return nil
}

// SaveSummary records every row of a summary run with a shared timestamp.
func (s *PostgresStore) SaveSummary(ctx context.Context, results []benchmark.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	query := `INSERT INTO summaries (benchmark, mean_seconds, std_dev_seconds, created_at) VALUES ($1, $2, $3, $4)`
	for _, r := range results {
		if _, err := tx.ExecContext(ctx, query, r.Name, r.MeanSeconds, r.StdDevSeconds, now); err != nil {
			return fmt.Errorf("failed to save summary row %s: %w", r.Name, err)
		}
	}

	return tx.Commit()
}

// QueryChecks retrieves the most recent checks.
func (s *PostgresStore) QueryChecks(ctx context.Context, group string, limit int) ([]CheckRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if group != "" {
		query := `SELECT ` + checkColumns + ` FROM checks WHERE group_name = $1 ORDER BY created_at DESC, id DESC LIMIT $2`
		rows, err = s.db.QueryContext(ctx, query, group, limit)
	} else {
		query := `SELECT ` + checkColumns + ` FROM checks ORDER BY created_at DESC, id DESC LIMIT $1`
		rows, err = s.db.QueryContext(ctx, query, limit)
	}
	if err != nil {
		return nil, err
	}
	return scanChecks(rows)
}

// QuerySummaries retrieves the most recent summary rows.
func (s *PostgresStore) QuerySummaries(ctx context.Context, name string, limit int) ([]SummaryRecord, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if name != "" {
		query := `SELECT ` + summaryColumns + ` FROM summaries WHERE benchmark = $1 ORDER BY created_at DESC, id DESC LIMIT $2`
		rows, err = s.db.QueryContext(ctx, query, name, limit)
	} else {
		query := `SELECT ` + summaryColumns + ` FROM summaries ORDER BY created_at DESC, id DESC LIMIT $1`
		rows, err = s.db.QueryContext(ctx, query, limit)
	}
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}
