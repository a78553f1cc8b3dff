package domain

import "fmt"

// DistanceMatrix holds the full pairwise great-circle distances for one
// ordered location set, in kilometers. It is symmetric with a zero
// diagonal, built once per set, and immutable afterwards, so a single
// instance is safely shared by concurrent readers.
type DistanceMatrix struct {
	ids         []int
	index       map[int]int
	distances   [][]float64
	fingerprint string
}

// NewDistanceMatrix assembles a matrix over ids with row/column order
// matching the id order. The distance rows must form an n×n square.
func NewDistanceMatrix(ids []int, distances [][]float64, fingerprint string) (*DistanceMatrix, error) {
	n := len(ids)
	if len(distances) != n {
		return nil, &ValidationError{
			Field:  "matrix",
			Reason: fmt.Sprintf("got %d rows for %d ids", len(distances), n),
		}
	}
	for i, row := range distances {
		if len(row) != n {
			return nil, &ValidationError{
				Field:  "matrix",
				Reason: fmt.Sprintf("row %d has %d columns, want %d", i, len(row), n),
			}
		}
	}

	index := make(map[int]int, n)
	for i, id := range ids {
		if _, dup := index[id]; dup {
			return nil, &ValidationError{
				Field:  "matrix",
				Reason: fmt.Sprintf("duplicate location id %d", id),
			}
		}
		index[id] = i
	}

	return &DistanceMatrix{
		ids:         append([]int(nil), ids...),
		index:       index,
		distances:   distances,
		fingerprint: fingerprint,
	}, nil
}

// Size returns the number of locations the matrix covers.
func (m *DistanceMatrix) Size() int { return len(m.ids) }

// IDs returns the location ids in row/column order.
func (m *DistanceMatrix) IDs() []int { return append([]int(nil), m.ids...) }

// Fingerprint identifies the exact location set (ordered ids plus
// coordinates) the matrix was built from; callers use it as a cache key.
func (m *DistanceMatrix) Fingerprint() string { return m.fingerprint }

// IndexOf returns the row/column offset for a location id.
func (m *DistanceMatrix) IndexOf(id int) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// AtIndex returns the distance between two row/column offsets.
func (m *DistanceMatrix) AtIndex(i, j int) float64 { return m.distances[i][j] }

// Distance returns the distance between two location ids. The second
// return value is false when either id is not covered by the matrix.
func (m *DistanceMatrix) Distance(fromID, toID int) (float64, bool) {
	i, ok := m.index[fromID]
	if !ok {
		return 0, false
	}
	j, ok := m.index[toID]
	if !ok {
		return 0, false
	}
	return m.distances[i][j], true
}
