package domain

import "time"

// SolveRun is the audit record of one optimization request: the parameters
// it ran with and the headline outcome. Written best-effort after a solve;
// a failed write never fails the request.
type SolveRun struct {
	RunID          string
	RequestedAt    time.Time
	KZones         int
	Seed           int64
	Hour           int
	StopCount      int
	TotalKm        float64
	ImprovementPct float64
	Converged      bool
	DurationMs     int64
}
