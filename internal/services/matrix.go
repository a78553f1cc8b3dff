package services

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"

	"route-optimizer-service/internal/domain"
)

// BuildDistanceMatrix computes the full pairwise haversine distance matrix
// for a location set, O(n²) time and space. Each pair is computed once and
// mirrored, so the result is symmetric by construction with a zero
// diagonal. At least two locations are required.
//
// The matrix carries the set fingerprint so callers can cache it and reuse
// it across solver invocations on the same location set.
func BuildDistanceMatrix(locations []domain.Location) (*domain.DistanceMatrix, error) {
	if len(locations) < 2 {
		return nil, fmt.Errorf(
			"build distance matrix: need at least 2 locations, got %d: %w",
			len(locations), domain.ErrInsufficientData,
		)
	}
	if err := domain.ValidateLocations(locations); err != nil {
		return nil, fmt.Errorf("build distance matrix: %w", err)
	}

	n := len(locations)
	ids := make([]int, n)
	for i, l := range locations {
		ids[i] = l.ID
	}

	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := domain.Haversine(locations[i].Coordinates(), locations[j].Coordinates())
			rows[i][j] = d
			rows[j][i] = d
		}
	}

	m, err := domain.NewDistanceMatrix(ids, rows, MatrixFingerprint(locations))
	if err != nil {
		return nil, fmt.Errorf("build distance matrix: %w", err)
	}
	return m, nil
}

// MatrixFingerprint hashes the ordered location ids and raw coordinate
// bits. Any change to the ordering, an id, or a coordinate produces a
// different key, which is what invalidates cached matrices.
func MatrixFingerprint(locations []domain.Location) string {
	h := xxhash.New()
	var buf [8]byte
	for _, l := range locations {
		binary.BigEndian.PutUint64(buf[:], uint64(int64(l.ID)))
		_, _ = h.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(l.Latitude))
		_, _ = h.Write(buf[:])
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(l.Longitude))
		_, _ = h.Write(buf[:])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
