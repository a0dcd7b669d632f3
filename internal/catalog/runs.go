package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// BeginResolutionRun records the start of an auto-link sweep.
func (s *Store) BeginResolutionRun(ctx context.Context, runID string, autoThreshold float64) error {
	if runID == "" {
		return Wrap(ErrValidation, "begin resolution run", "run id required", nil)
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO resolution_run (run_id, started_at, auto_threshold, status)
         VALUES (?, ?, ?, ?)`,
		runID,
		time.Now().UTC().Format(time.RFC3339Nano),
		autoThreshold,
		RunRunning,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return Wrap(ErrConflict, "begin resolution run", fmt.Sprintf("run %s already exists", runID), err)
		}
		return classify("begin resolution run", err)
	}
	return nil
}

// FinishResolutionRun finalizes a run with its outcome counters.
func (s *Store) FinishResolutionRun(ctx context.Context, runID string, status RunStatus, created, skipped, errCount int) error {
	if status != RunCompleted && status != RunFailed {
		return Wrap(ErrValidation, "finish resolution run", fmt.Sprintf("status %q is not terminal", status), nil)
	}
	result, err := s.db.ExecContext(
		ctx,
		`UPDATE resolution_run
         SET finished_at = ?, status = ?, links_created = ?, links_skipped = ?, link_errors = ?
         WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		status,
		created,
		skipped,
		errCount,
		runID,
	)
	if err != nil {
		return classify("finish resolution run", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish resolution run: %w", err)
	}
	if affected == 0 {
		return Wrap(ErrNotFound, "finish resolution run", fmt.Sprintf("run %s", runID), nil)
	}
	return nil
}

// RecentResolutionRuns returns the newest runs first, up to limit.
func (s *Store) RecentResolutionRuns(ctx context.Context, limit int) ([]ResolutionRun, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT run_id, started_at, finished_at, auto_threshold, status,
               links_created, links_skipped, link_errors
        FROM resolution_run
        ORDER BY started_at DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query resolution runs: %w", err)
	}
	defer rows.Close()

	var runs []ResolutionRun
	for rows.Next() {
		var (
			run         ResolutionRun
			startedRaw  string
			finishedRaw sql.NullString
			status      string
		)
		if err := rows.Scan(&run.RunID, &startedRaw, &finishedRaw, &run.AutoThreshold, &status,
			&run.Created, &run.Skipped, &run.Errors); err != nil {
			return nil, fmt.Errorf("scan resolution run: %w", err)
		}
		run.Status = RunStatus(status)
		if started, err := parseTimeString(startedRaw); err == nil {
			run.StartedAt = started
		}
		if finishedRaw.Valid {
			if finished, err := parseTimeString(finishedRaw.String); err == nil {
				run.FinishedAt = &finished
			}
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
