package services

import (
	"context"
	"fmt"
	"math/rand"

	"route-optimizer-service/internal/domain"
)

// Decomposition is the outcome of one zone decomposition run. Converged is
// false when the iteration cap or the context budget stopped refinement
// early; the partition returned is still the best known and usable as-is.
type Decomposition struct {
	Zones      []domain.Zone
	Iterations int
	Converged  bool
}

// Decompose partitions the non-depot locations into k geographic zones
// with Lloyd's method over (lat, lon) space.
//
// Runs are fully deterministic for identical (locations, k, seed): the
// initial centroids come from a seeded permutation of the id-sorted stops,
// assignment processes stops in ascending id order, and distance ties go
// to the lowest centroid index. A centroid left with no members keeps its
// previous position rather than being reseeded.
func Decompose(ctx context.Context, locations []domain.Location, k int, seed int64, cfg Config) (*Decomposition, error) {
	if err := domain.ValidateLocations(locations); err != nil {
		return nil, fmt.Errorf("decompose: %w", err)
	}

	stops := nonDepot(locations)
	if k < 1 || k > len(stops) {
		return nil, &domain.ValidationError{
			Field:  "k",
			Reason: fmt.Sprintf("must be between 1 and %d, got %d", len(stops), k),
		}
	}

	centroids := seedCentroids(stops, k, seed)

	// Assign once up front so a zero-iteration budget still yields a
	// complete partition of the stops.
	assign := make([]int, len(stops))
	for i := range assign {
		assign[i] = -1
	}
	assignStops(stops, centroids, assign)

	iterations := 0
	converged := false
	for iterations < cfg.MaxKMeansIterations {
		// Context budget exhausted: hand back the best-known partition.
		if ctx.Err() != nil {
			break
		}

		updateCentroids(stops, assign, centroids)
		moved := assignStops(stops, centroids, assign)
		iterations++

		if !moved {
			converged = true
			break
		}
	}

	zones := make([]domain.Zone, k)
	for c := 0; c < k; c++ {
		zones[c] = domain.Zone{ZoneID: c, MemberIDs: []int{}, Centroid: centroids[c]}
	}
	for i, s := range stops {
		z := assign[i]
		zones[z].MemberIDs = append(zones[z].MemberIDs, s.ID)
	}

	return &Decomposition{Zones: zones, Iterations: iterations, Converged: converged}, nil
}

// seedCentroids picks k starting centroids from a seeded permutation of
// the stops, preferring distinct coordinates so coincident duplicates do
// not collapse the initial spread. Positions are reused only when fewer
// than k distinct coordinates exist.
func seedCentroids(stops []domain.Location, k int, seed int64) []domain.Coordinates {
	order := make([]int, len(stops))
	for i := range order {
		order[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	centroids := make([]domain.Coordinates, 0, k)
	taken := make(map[domain.Coordinates]struct{}, k)
	for _, i := range order {
		if len(centroids) == k {
			break
		}
		c := stops[i].Coordinates()
		if _, dup := taken[c]; dup {
			continue
		}
		taken[c] = struct{}{}
		centroids = append(centroids, c)
	}
	for i := 0; len(centroids) < k; i++ {
		centroids = append(centroids, stops[order[i%len(order)]].Coordinates())
	}
	return centroids
}

// assignStops reassigns every stop to its nearest centroid and reports
// whether any assignment changed. Ties keep the lowest centroid index.
func assignStops(stops []domain.Location, centroids []domain.Coordinates, assign []int) bool {
	moved := false
	for i, s := range stops {
		best := 0
		bestDist := squaredEuclidean(s.Coordinates(), centroids[0])
		for c := 1; c < len(centroids); c++ {
			d := squaredEuclidean(s.Coordinates(), centroids[c])
			if d < bestDist {
				bestDist = d
				best = c
			}
		}
		if assign[i] != best {
			assign[i] = best
			moved = true
		}
	}
	return moved
}

// updateCentroids moves each centroid to the coordinate-wise mean of its
// members. A centroid with no members retains its previous position.
func updateCentroids(stops []domain.Location, assign []int, centroids []domain.Coordinates) {
	for c := range centroids {
		var latSum, lonSum float64
		n := 0
		for i, s := range stops {
			if assign[i] == c {
				latSum += s.Latitude
				lonSum += s.Longitude
				n++
			}
		}
		if n == 0 {
			continue
		}
		centroids[c] = domain.Coordinates{Lat: latSum / float64(n), Lon: lonSum / float64(n)}
	}
}

func squaredEuclidean(a, b domain.Coordinates) float64 {
	dLat := a.Lat - b.Lat
	dLon := a.Lon - b.Lon
	return dLat*dLat + dLon*dLon
}
