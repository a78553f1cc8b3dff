package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"route-optimizer-service/internal/domain"
)

// Postgres-backed implementation of the LocationRepository port.
type PostgresLocationRepository struct{ DB *sql.DB }

func NewPostgresLocationRepository(db *sql.DB) *PostgresLocationRepository {
	return &PostgresLocationRepository{DB: db}
}

// Return all locations stored in the database, depot included.
func (p *PostgresLocationRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	if p.DB == nil {
		return nil, errors.New("postgres location repository: DB is nil")
	}

	query := `
	SELECT
		location_id,
		name,
		latitude,
		longitude,
		locality,
		package_count,
		is_depot
	FROM locations
	ORDER BY location_id;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0, 64)
	for rows.Next() {
		var l domain.Location
		err := rows.Scan(&l.ID, &l.Name, &l.Latitude, &l.Longitude, &l.Locality, &l.PackageCount, &l.IsDepot)
		if err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		locations = append(locations, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}
