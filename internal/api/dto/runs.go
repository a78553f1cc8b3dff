package dto

import "time"

type RunResponse struct {
	RunID          string    `json:"run_id"`
	RequestedAt    time.Time `json:"requested_at"`
	KZones         int       `json:"k_zones"`
	Seed           int64     `json:"seed"`
	Hour           int       `json:"hour"`
	StopCount      int       `json:"stop_count"`
	TotalKm        float64   `json:"total_km"`
	ImprovementPct float64   `json:"improvement_pct"`
	Converged      bool      `json:"converged"`
	DurationMs     int64     `json:"duration_ms"`
}

type ListRunsResponse struct {
	Runs []RunResponse `json:"runs"`
}
