package repository

import (
	"context"
	"database/sql"
	"fmt"

	"FarmPulse/internal/domain/models"
	"FarmPulse/internal/domain/repository"
)

// ClickHouseRunLog is the append-only audit log of collection runs.
type ClickHouseRunLog struct {
	db *sql.DB
}

func NewClickHouseRunLog(db *sql.DB) repository.RunLog {
	return &ClickHouseRunLog{db: db}
}

func (l *ClickHouseRunLog) Append(ctx context.Context, run models.CollectionRun) error {
	const q = `INSERT INTO collection_runs
		(source_name, operation, records_collected, status, error_message, duration_seconds, collected_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := l.db.ExecContext(ctx, q,
		run.SourceName,
		string(run.Operation),
		int32(run.RecordsCollected),
		string(run.Status),
		run.ErrorMessage,
		run.DurationSeconds,
		run.CollectedAt,
	)
	if err != nil {
		return fmt.Errorf("append run: %w", err)
	}
	return nil
}

func (l *ClickHouseRunLog) Recent(ctx context.Context, limit int) ([]models.CollectionRun, error) {
	const q = `SELECT source_name, operation, records_collected, status, error_message, duration_seconds, collected_at
		FROM collection_runs ORDER BY collected_at DESC LIMIT ?`

	rows, err := l.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	defer rows.Close()

	var runs []models.CollectionRun
	for rows.Next() {
		var r models.CollectionRun
		var op, status string
		var collected int32
		if err := rows.Scan(&r.SourceName, &op, &collected, &status, &r.ErrorMessage, &r.DurationSeconds, &r.CollectedAt); err != nil {
			return nil, err
		}
		r.Operation = models.RunOperation(op)
		r.Status = models.RunStatus(status)
		r.RecordsCollected = int(collected)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (l *ClickHouseRunLog) PurgeOlderThan(ctx context.Context, days int) (int, error) {
	var count int
	err := l.db.QueryRowContext(ctx,
		`SELECT count() FROM collection_runs WHERE collected_at < now() - INTERVAL ? DAY`, days).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("run log purge count: %w", err)
	}
	if count == 0 {
		return 0, nil
	}
	if _, err := l.db.ExecContext(ctx,
		`DELETE FROM collection_runs WHERE collected_at < now() - INTERVAL ? DAY`, days); err != nil {
		return 0, fmt.Errorf("run log purge delete: %w", err)
	}
	return count, nil
}
