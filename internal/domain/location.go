package domain

import (
	"fmt"
	"math"
)

// Represents a single delivery stop handled by the system.
// A Location has a unique, stable identifier and already-resolved
// coordinates; geocoding of raw addresses happens upstream of the engine.
// Exactly one location in any working set is the depot, the fixed start and
// end of every route. Locations are immutable once loaded.
type Location struct {
	ID           int
	Name         string
	Latitude     float64
	Longitude    float64
	Locality     string
	PackageCount int
	IsDepot      bool
}

// Coordinates returns the location's position as a value type.
func (l Location) Coordinates() Coordinates {
	return Coordinates{Lat: l.Latitude, Lon: l.Longitude}
}

// ValidateLocations checks the structural invariants of a working set:
// every coordinate in range, no duplicate ids, exactly one depot, and no
// negative package counts. It does not require a minimum set size; callers
// that need one check it separately.
func ValidateLocations(locations []Location) error {
	seen := make(map[int]struct{}, len(locations))
	depots := 0

	for _, l := range locations {
		if math.IsNaN(l.Latitude) || l.Latitude < -90 || l.Latitude > 90 {
			return &ValidationError{
				Field:  "latitude",
				Reason: fmt.Sprintf("location %d: must be between -90 and 90, got %v", l.ID, l.Latitude),
			}
		}
		if math.IsNaN(l.Longitude) || l.Longitude < -180 || l.Longitude > 180 {
			return &ValidationError{
				Field:  "longitude",
				Reason: fmt.Sprintf("location %d: must be between -180 and 180, got %v", l.ID, l.Longitude),
			}
		}
		if l.PackageCount < 0 {
			return &ValidationError{
				Field:  "package_count",
				Reason: fmt.Sprintf("location %d: must not be negative, got %d", l.ID, l.PackageCount),
			}
		}
		if _, dup := seen[l.ID]; dup {
			return &ValidationError{
				Field:  "id",
				Reason: fmt.Sprintf("duplicate location id %d", l.ID),
			}
		}
		seen[l.ID] = struct{}{}

		if l.IsDepot {
			depots++
		}
	}

	if depots != 1 {
		return &ValidationError{
			Field:  "is_depot",
			Reason: fmt.Sprintf("exactly one depot required, got %d", depots),
		}
	}

	return nil
}
