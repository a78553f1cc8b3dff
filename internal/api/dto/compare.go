package dto

type CompareRequest struct {
	KZones              *int     `json:"k_zones"`
	Seed                *int64   `json:"seed"`
	Hour                *int     `json:"hour"`
	MaxTwoOptPasses     *int     `json:"max_two_opt_passes"`
	MaxKMeansIterations *int     `json:"max_kmeans_iterations"`
	SpeedKmph           *float64 `json:"speed_kmph"`
}

type StrategyPlanResponse struct {
	Strategy string          `json:"strategy"`
	Route    []int           `json:"route"`
	Metrics  MetricsResponse `json:"metrics"`
}

type ImprovementResponse struct {
	Strategy string  `json:"strategy"`
	KmSaved  float64 `json:"km_saved"`
	Percent  float64 `json:"percent"`
}

type CompareResponse struct {
	Plans        []StrategyPlanResponse `json:"plans"`
	Best         string                 `json:"best"`
	Improvements []ImprovementResponse  `json:"improvements"`
	Converged    bool                   `json:"converged"`
}
