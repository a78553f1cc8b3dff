package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Port: a boundary for retrieving Location entities from a data source.
type LocationRepository interface {
	// Retrieve every location available for routing, depot included.
	ListLocations(ctx context.Context) ([]domain.Location, error)
}
