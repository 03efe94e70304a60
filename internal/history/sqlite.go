package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"benchci/internal/benchmark"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at path and applies migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS checks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		group_name TEXT NOT NULL,
		base_ns REAL NOT NULL,
		new_ns REAL NOT NULL,
		base_files INTEGER NOT NULL,
		new_files INTEGER NOT NULL,
		improvement REAL NOT NULL,
		threshold REAL NOT NULL,
		passed BOOLEAN NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS summaries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		benchmark TEXT NOT NULL,
		mean_seconds REAL NOT NULL,
		std_dev_seconds REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveCheck records a comparison outcome.
func (s *SQLiteStore) SaveCheck(ctx context.Context, c benchmark.Comparison) error {
	r := newCheckRecord(c, time.Now().UTC())
	query := `INSERT INTO checks (group_name, base_ns, new_ns, base_files, new_files, improvement, threshold, passed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, r.Group, r.BaseNs, r.NewNs, r.BaseFiles, r.NewFiles,
		r.Improvement, r.Threshold, r.Passed, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save check: %w", err)
	}
	return nil
}

// SaveSummary records every row of a summary run with a shared timestamp.
func (s *SQLiteStore) SaveSummary(ctx context.Context, results []benchmark.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	query := `INSERT INTO summaries (benchmark, mean_seconds, std_dev_seconds, created_at) VALUES (?, ?, ?, ?)`
	for _, r := range results {
		if _, err := tx.ExecContext(ctx, query, r.Name, r.MeanSeconds, r.StdDevSeconds, now); err != nil {
			return fmt.Errorf("failed to save summary row %s: %w", r.Name, err)
		}
	}

	return tx.Commit()
}

// QueryChecks retrieves the most recent checks.
func (s *SQLiteStore) QueryChecks(ctx context.Context, group string, limit int) ([]CheckRecord, error) {
	query := `SELECT ` + checkColumns + ` FROM checks`
	args := []any{}
	if group != "" {
		query += ` WHERE group_name = ?`
		args = append(args, group)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanChecks(rows)
}

// QuerySummaries retrieves the most recent summary rows.
func (s *SQLiteStore) QuerySummaries(ctx context.Context, name string, limit int) ([]SummaryRecord, error) {
	query := `SELECT ` + summaryColumns + ` FROM summaries`
	args := []any{}
	if name != "" {
		query += ` WHERE benchmark = ?`
		args = append(args, name)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}
