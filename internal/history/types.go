package history

import (
	"context"
	"time"

	"benchci/internal/benchmark"
)

// CheckRecord is one recorded baseline comparison.
type CheckRecord struct {
	ID          int64     `json:"id"`
	Group       string    `json:"group"`
	BaseNs      float64   `json:"base_ns"`
	NewNs       float64   `json:"new_ns"`
	BaseFiles   int       `json:"base_files"`
	NewFiles    int       `json:"new_files"`
	Improvement float64   `json:"improvement"`
	Threshold   float64   `json:"threshold"`
	Passed      bool      `json:"passed"`
	CreatedAt   time.Time `json:"created_at"`
}

// SummaryRecord is one benchmark row of a recorded summary run.
type SummaryRecord struct {
	ID            int64     `json:"id"`
	Benchmark     string    `json:"benchmark"`
	MeanSeconds   float64   `json:"mean_seconds"`
	StdDevSeconds float64   `json:"std_dev_seconds"`
	CreatedAt     time.Time `json:"created_at"`
}

// Store persists benchmark outcomes across CI runs.
type Store interface {
	Close() error
	SaveCheck(ctx context.Context, c benchmark.Comparison) error
	SaveSummary(ctx context.Context, results []benchmark.Result) error
	// QueryChecks returns the newest checks first. An empty group matches all.
	QueryChecks(ctx context.Context, group string, limit int) ([]CheckRecord, error)
	// QuerySummaries returns the newest rows first. An empty name matches all.
	QuerySummaries(ctx context.Context, name string, limit int) ([]SummaryRecord, error)
}

func newCheckRecord(c benchmark.Comparison, now time.Time) CheckRecord {
	return CheckRecord{
		Group:       c.Group,
		BaseNs:      c.Base.MeanNs,
		NewNs:       c.New.MeanNs,
		BaseFiles:   c.Base.Files,
		NewFiles:    c.New.Files,
		Improvement: c.Improvement,
		Threshold:   c.Threshold,
		Passed:      c.Passed(),
		CreatedAt:   now,
	}
}
