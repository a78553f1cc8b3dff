package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"route-optimizer-service/internal/domain"
)

// MatrixLRU keeps recently built distance matrices in memory, keyed by
// location-set fingerprint. A matrix over n locations holds n² float64s,
// so the cache is bounded by entry count and stale location sets fall out
// on their own.
type MatrixLRU struct {
	entries *lru.Cache[string, *domain.DistanceMatrix]
}

func NewMatrixLRU(size int) (*MatrixLRU, error) {
	entries, err := lru.New[string, *domain.DistanceMatrix](size)
	if err != nil {
		return nil, fmt.Errorf("matrix cache: %w", err)
	}
	return &MatrixLRU{entries: entries}, nil
}

func (c *MatrixLRU) Get(fingerprint string) (*domain.DistanceMatrix, bool) {
	return c.entries.Get(fingerprint)
}

func (c *MatrixLRU) Add(fingerprint string, m *domain.DistanceMatrix) {
	c.entries.Add(fingerprint, m)
}
