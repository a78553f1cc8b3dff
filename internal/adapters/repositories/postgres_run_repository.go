package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
)

// Postgres-backed implementation of the RunRepository port.
type PostgresRunRepository struct{ DB *sql.DB }

func NewPostgresRunRepository(db *sql.DB) *PostgresRunRepository {
	return &PostgresRunRepository{DB: db}
}

// Record one completed solve. Replays of the same run id are ignored.
func (p *PostgresRunRepository) RecordRun(ctx context.Context, run domain.SolveRun) error {
	if p.DB == nil {
		return errors.New("postgres run repository: DB is nil")
	}
	if run.RunID == "" {
		return errors.New("record run: run id must not be empty")
	}

	query := `
	INSERT INTO solve_runs (
		run_id,
		requested_at,
		k_zones,
		seed,
		hour,
		stop_count,
		total_km,
		improvement_pct,
		converged,
		duration_ms
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (run_id) DO NOTHING;
	`
	_, err := p.DB.ExecContext(ctx, query,
		run.RunID,
		run.RequestedAt,
		run.KZones,
		run.Seed,
		run.Hour,
		run.StopCount,
		run.TotalKm,
		run.ImprovementPct,
		run.Converged,
		run.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.RunID, err)
	}
	return nil
}

// Retrieve the most recent runs, newest first.
func (p *PostgresRunRepository) ListRuns(ctx context.Context, limit int) ([]domain.SolveRun, error) {
	if p.DB == nil {
		return nil, errors.New("postgres run repository: DB is nil")
	}
	if limit < 1 {
		limit = 20
	}

	query := `
	SELECT
		run_id,
		requested_at,
		k_zones,
		seed,
		hour,
		stop_count,
		total_km,
		improvement_pct,
		converged,
		duration_ms
	FROM solve_runs
	ORDER BY requested_at DESC
	LIMIT $1;
	`
	rows, err := p.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: query solve_runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.SolveRun, 0, limit)
	for rows.Next() {
		var r domain.SolveRun
		err := rows.Scan(
			&r.RunID,
			&r.RequestedAt,
			&r.KZones,
			&r.Seed,
			&r.Hour,
			&r.StopCount,
			&r.TotalKm,
			&r.ImprovementPct,
			&r.Converged,
			&r.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}
