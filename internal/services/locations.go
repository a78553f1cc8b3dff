package services

import (
	"sort"

	"route-optimizer-service/internal/domain"
)

// nonDepot returns the non-depot locations sorted ascending by id. The
// engine processes stops in this order everywhere determinism depends on
// iteration order.
func nonDepot(locations []domain.Location) []domain.Location {
	stops := make([]domain.Location, 0, len(locations))
	for _, l := range locations {
		if !l.IsDepot {
			stops = append(stops, l)
		}
	}
	sort.Slice(stops, func(i, j int) bool { return stops[i].ID < stops[j].ID })
	return stops
}

// depotOf returns the depot location. Callers run ValidateLocations first,
// which guarantees exactly one exists.
func depotOf(locations []domain.Location) (domain.Location, bool) {
	for _, l := range locations {
		if l.IsDepot {
			return l, true
		}
	}
	return domain.Location{}, false
}
