package services

import (
	"fmt"
	"math"

	"route-optimizer-service/internal/domain"
)

// nearestNeighborTour constructs a closed tour over every index of dist,
// starting and ending at start: at each step it moves to the closest
// unvisited index. Ties keep the lowest index, which keeps runs
// deterministic when distances repeat (coincident stops). The greedy step
// minimizes immediate travel only; 2-opt cleans up afterwards. O(n²).
func nearestNeighborTour(dist [][]float64, start int) []int {
	n := len(dist)
	tour := make([]int, 0, n+1)
	visited := make([]bool, n)

	tour = append(tour, start)
	visited[start] = true
	current := start

	for len(tour) < n {
		next := -1
		best := math.MaxFloat64
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if dist[current][j] < best {
				best = dist[current][j]
				next = j
			}
		}

		tour = append(tour, next)
		visited[next] = true
		current = next
	}

	tour = append(tour, start)
	return tour
}

// tourLength sums consecutive edge distances over a closed tour.
func tourLength(dist [][]float64, tour []int) float64 {
	total := 0.0
	for i := 0; i < len(tour)-1; i++ {
		total += dist[tour[i]][tour[i+1]]
	}
	return total
}

// subMatrix extracts the dense distance block for ids, in order, from m.
// Index i of the result corresponds to ids[i].
func subMatrix(m *domain.DistanceMatrix, ids []int) ([][]float64, error) {
	offsets := make([]int, len(ids))
	for i, id := range ids {
		off, ok := m.IndexOf(id)
		if !ok {
			return nil, &domain.ValidationError{
				Field:  "matrix",
				Reason: fmt.Sprintf("location id %d not covered by the distance matrix", id),
			}
		}
		offsets[i] = off
	}

	dist := make([][]float64, len(ids))
	for i := range ids {
		dist[i] = make([]float64, len(ids))
		for j := range ids {
			dist[i][j] = m.AtIndex(offsets[i], offsets[j])
		}
	}
	return dist, nil
}
