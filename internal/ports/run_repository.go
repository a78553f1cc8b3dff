package ports

import (
	"context"

	"route-optimizer-service/internal/domain"
)

// Port: a boundary for persisting solve run history.
type RunRepository interface {
	// Record one completed solve.
	RecordRun(ctx context.Context, run domain.SolveRun) error
	// Retrieve the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.SolveRun, error)
}
