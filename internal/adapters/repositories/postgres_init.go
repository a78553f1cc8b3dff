package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		location_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		locality TEXT NOT NULL DEFAULT '',
		package_count INTEGER NOT NULL DEFAULT 0,
		is_depot BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createSolveRunsQuery := `
	CREATE TABLE IF NOT EXISTS solve_runs (
		run_id TEXT PRIMARY KEY,
		requested_at TIMESTAMPTZ NOT NULL,
		k_zones INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		hour INTEGER NOT NULL,
		stop_count INTEGER NOT NULL,
		total_km DOUBLE PRECISION NOT NULL,
		improvement_pct DOUBLE PRECISION NOT NULL,
		converged BOOLEAN NOT NULL,
		duration_ms BIGINT NOT NULL
	);
	`

	createRunsIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_solve_runs_requested_at
    ON solve_runs(requested_at DESC);
	`

	statements := []string{
		createLocationsQuery,
		createSolveRunsQuery,
		createRunsIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate a Postgres database with location data from a JSON file.
func SeedPostgresFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed locations: DB is nil")
	}

	locations, err := loadLocationSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO locations (
		location_id,
		name,
		latitude,
		longitude,
		locality,
		package_count,
		is_depot
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (location_id) DO UPDATE
	SET name = EXCLUDED.name,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		locality = EXCLUDED.locality,
		package_count = EXCLUDED.package_count,
		is_depot = EXCLUDED.is_depot;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range locations {
		if _, err := stmt.ExecContext(ctx, l.ID, l.Name, l.Latitude, l.Longitude, l.Locality, l.PackageCount, l.IsDepot); err != nil {
			return fmt.Errorf("seed locations: insert location_id=%d: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return nil
}
