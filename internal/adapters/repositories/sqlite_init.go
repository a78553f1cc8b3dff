package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSQLiteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
		location_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		locality TEXT NOT NULL DEFAULT '',
		package_count INTEGER NOT NULL DEFAULT 0,
		is_depot INTEGER NOT NULL DEFAULT 0
	);
	`

	createLocalityIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_locations_locality
    ON locations(locality);
	`

	statements := []string{
		createLocationsQuery,
		createLocalityIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate a SQLite database with location data from a JSON file.
func SeedSQLiteFromJSON(db *sql.DB, jsonPath string) error {
	if db == nil {
		return errors.New("seed locations: DB is nil")
	}

	locations, err := loadLocationSeeds(jsonPath)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT OR REPLACE INTO locations (
		location_id,
		name,
		latitude,
		longitude,
		locality,
		package_count,
		is_depot
	)
	VALUES (?, ?, ?, ?, ?, ?, ?);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range locations {
		if _, err := stmt.Exec(l.ID, l.Name, l.Latitude, l.Longitude, l.Locality, l.PackageCount, l.IsDepot); err != nil {
			return fmt.Errorf("seed locations: insert location_id=%d: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed locations: commit tx: %w", err)
	}

	return nil
}
