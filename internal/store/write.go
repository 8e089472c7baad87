package store

import (
	"context"
	"fmt"
	"time"

	"github.com/tlind/krakenprobe/internal/report"
)

// timeFormat is how timestamps are stored; RFC 3339 strings sort
// chronologically in SQLite.
const timeFormat = time.RFC3339

// WriteReport records a run and its outcomes atomically.
// Uses ON CONFLICT DO NOTHING for idempotency: writing the same run
// twice is a no-op.
func (s *Store) WriteReport(ctx context.Context, r *report.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write report: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, base_url, started_at, finished_at, passed, failed, total)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		r.RunID,
		r.BaseURL,
		r.StartedAt.UTC().Format(timeFormat),
		r.FinishedAt.UTC().Format(timeFormat),
		r.Passed,
		r.Failed,
		r.Total(),
	)
	if err != nil {
		return fmt.Errorf("write report: insert run: %w", err)
	}

	for _, o := range r.Outcomes {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO outcomes
			(run_id, scenario, pass, code, message, status, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(run_id, scenario) DO NOTHING
		`,
			r.RunID,
			o.Scenario,
			o.Pass,
			o.Code,
			o.Message,
			o.Status,
			o.DurationMS,
		)
		if err != nil {
			return fmt.Errorf("write report: insert outcome %s: %w", o.Scenario, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write report: commit: %w", err)
	}

	return nil
}
