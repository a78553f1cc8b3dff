package services

import (
	"fmt"
	"math/rand"

	"route-optimizer-service/internal/domain"
)

// NaiveRoute visits every stop in ascending id order. It is the weakest
// sensible baseline: deterministic, ignores geography entirely.
func NaiveRoute(locations []domain.Location) (domain.Route, error) {
	depot, stops, err := splitDepot(locations)
	if err != nil {
		return domain.Route{}, err
	}

	route := make([]int, 0, len(stops)+2)
	route = append(route, depot.ID)
	for _, s := range stops {
		route = append(route, s.ID)
	}
	route = append(route, depot.ID)
	return domain.Route{Stops: route}, nil
}

// RandomRoute visits the stops in a seeded shuffle order, so the same seed
// reproduces the same "random" baseline across runs.
func RandomRoute(locations []domain.Location, seed int64) (domain.Route, error) {
	depot, stops, err := splitDepot(locations)
	if err != nil {
		return domain.Route{}, err
	}

	ids := make([]int, len(stops))
	for i, s := range stops {
		ids[i] = s.ID
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	route := make([]int, 0, len(ids)+2)
	route = append(route, depot.ID)
	route = append(route, ids...)
	route = append(route, depot.ID)
	return domain.Route{Stops: route}, nil
}

func splitDepot(locations []domain.Location) (domain.Location, []domain.Location, error) {
	depot, ok := depotOf(locations)
	if !ok {
		return domain.Location{}, nil, &domain.ValidationError{Field: "is_depot", Reason: "exactly one depot location is required"}
	}
	stops := nonDepot(locations)
	if len(stops) == 0 {
		return domain.Location{}, nil, fmt.Errorf("baseline route: %w", domain.ErrInsufficientData)
	}
	return depot, stops, nil
}
