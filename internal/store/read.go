package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tlind/krakenprobe/internal/report"
)

// RunSummary is one row of the run history listing.
type RunSummary struct {
	ID         string    `json:"id"`
	BaseURL    string    `json:"base_url"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Passed     int       `json:"passed"`
	Failed     int       `json:"failed"`
	Total      int       `json:"total"`
}

// ListRuns returns up to limit runs, newest first.
// Ordering is deterministic: started_at descending, id descending as a
// tiebreaker (UUIDv7 ids sort by creation time).
//
// Returns an empty slice (not nil) when no runs are recorded.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, base_url, started_at, finished_at, passed, failed, total
		FROM runs
		ORDER BY started_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var r RunSummary
		var started, finished string
		if err := rows.Scan(&r.ID, &r.BaseURL, &started, &finished, &r.Passed, &r.Failed, &r.Total); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(timeFormat, started); err != nil {
			return nil, fmt.Errorf("parse started_at %q: %w", started, err)
		}
		if r.FinishedAt, err = time.Parse(timeFormat, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at %q: %w", finished, err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// ReadOutcomes returns the outcomes of one run, ordered by scenario
// name for determinism.
//
// Returns an empty slice (not nil) when the run is unknown.
func (s *Store) ReadOutcomes(ctx context.Context, runID string) ([]report.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scenario, pass, code, message, status, duration_ms
		FROM outcomes
		WHERE run_id = ?
		ORDER BY scenario ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	outcomes := []report.Outcome{}
	for rows.Next() {
		var o report.Outcome
		if err := rows.Scan(&o.Scenario, &o.Pass, &o.Code, &o.Message, &o.Status, &o.DurationMS); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}

	return outcomes, nil
}
