package ports

import "route-optimizer-service/internal/domain"

// Port: an in-process cache for built distance matrices, keyed by the
// location-set fingerprint. No context because lookups never leave the
// process.
type MatrixCache interface {
	Get(fingerprint string) (*domain.DistanceMatrix, bool)
	Add(fingerprint string, m *domain.DistanceMatrix)
}
