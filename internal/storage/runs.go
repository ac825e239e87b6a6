package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/maddens360/asayomi/internal/models"
)

// InsertRun records the outcome of one digest run and returns the new
// row's ID.
func (s *Store) InsertRun(ctx context.Context, run *models.RunRecord) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO digest_runs
			(started_at, finished_at, item_count, extract_failures,
			 summary_failures, message_chars, truncated, delivered)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.ItemCount,
		run.ExtractFailures,
		run.SummaryFailures,
		run.MessageChars,
		boolToInt(run.Truncated),
		boolToInt(run.Delivered),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted run id: %w", err)
	}
	return id, nil
}

// ListRecentRuns returns up to limit run records, most recent first.
func (s *Store) ListRecentRuns(ctx context.Context, limit int) ([]models.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, item_count, extract_failures,
		        summary_failures, message_chars, truncated, delivered, created_at
		 FROM digest_runs
		 ORDER BY id DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying run records: %w", err)
	}
	defer rows.Close()

	var runs []models.RunRecord
	for rows.Next() {
		var (
			run                              models.RunRecord
			startedAt, finishedAt, createdAt string
			truncated, delivered             int
		)
		if err := rows.Scan(
			&run.ID, &startedAt, &finishedAt, &run.ItemCount,
			&run.ExtractFailures, &run.SummaryFailures, &run.MessageChars,
			&truncated, &delivered, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning run record: %w", err)
		}
		run.StartedAt = parseTime(startedAt)
		run.FinishedAt = parseTime(finishedAt)
		run.CreatedAt = parseTime(createdAt)
		run.Truncated = truncated != 0
		run.Delivered = delivered != 0
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run records: %w", err)
	}

	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
