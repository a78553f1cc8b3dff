package dto

import "time"

// Pointer fields distinguish "omitted, use the configured default" from an
// explicit zero.
type OptimizeRequest struct {
	KZones              *int       `json:"k_zones"`
	Seed                *int64     `json:"seed"`
	Hour                *int       `json:"hour"`
	DepartAt            *time.Time `json:"depart_at"`
	MaxTwoOptPasses     *int       `json:"max_two_opt_passes"`
	MaxKMeansIterations *int       `json:"max_kmeans_iterations"`
	SpeedKmph           *float64   `json:"speed_kmph"`
	UseCache            *bool      `json:"use_cache"`
}

type StopResponse struct {
	Position     int     `json:"position"`
	LocationID   int     `json:"location_id"`
	Name         string  `json:"name"`
	Locality     string  `json:"locality"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	PackageCount int     `json:"package_count"`
	IsDepot      bool    `json:"is_depot"`
}

type SegmentResponse struct {
	FromID      int     `json:"from_id"`
	ToID        int     `json:"to_id"`
	DistanceKm  float64 `json:"distance_km"`
	TimeMinutes float64 `json:"time_minutes"`
}

type MetricsResponse struct {
	TotalDistanceKm      float64           `json:"total_distance_km"`
	TotalTimeMinutes     float64           `json:"total_time_minutes"`
	TotalTimeFormatted   string            `json:"total_time_formatted"`
	FuelCost             float64           `json:"fuel_cost"`
	CO2Kg                float64           `json:"co2_kg"`
	StopCount            int               `json:"stop_count"`
	AvgDistanceKmPerStop float64           `json:"avg_distance_km_per_stop"`
	Segments             []SegmentResponse `json:"segments"`
	StopTimes            []time.Time       `json:"stop_times,omitempty"`
}

type ZoneResponse struct {
	ZoneID      int     `json:"zone_id"`
	MemberIDs   []int   `json:"member_ids"`
	CentroidLat float64 `json:"centroid_lat"`
	CentroidLon float64 `json:"centroid_lon"`
}

type StatsResponse struct {
	ConstructionKm   float64 `json:"construction_km"`
	OptimizedKm      float64 `json:"optimized_km"`
	ImprovementKm    float64 `json:"improvement_km"`
	ImprovementPct   float64 `json:"improvement_pct"`
	TwoOptPasses     int     `json:"two_opt_passes"`
	TwoOptMoves      int     `json:"two_opt_moves"`
	ZonesSolved      int     `json:"zones_solved"`
	KMeansIterations int     `json:"kmeans_iterations"`
	DurationMs       int64   `json:"duration_ms"`
}

type OptimizeResponse struct {
	RunID     string          `json:"run_id"`
	Route     []int           `json:"route"`
	Stops     []StopResponse  `json:"stops"`
	Zones     []ZoneResponse  `json:"zones"`
	Metrics   MetricsResponse `json:"metrics"`
	Stats     StatsResponse   `json:"stats"`
	Converged bool            `json:"converged"`
	FromCache bool            `json:"from_cache"`
}
