package services

import (
	"context"
	"fmt"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// Route strategies ranked in a comparison.
const (
	StrategyNaive     = "naive"
	StrategyRandom    = "random"
	StrategyNearest   = "nearest_neighbor"
	StrategyOptimized = "optimized"
)

// RoutePlan is one strategy's route priced at the comparison hour.
type RoutePlan struct {
	Strategy string               `json:"strategy"`
	Route    domain.Route         `json:"route"`
	Metrics  *domain.RouteMetrics `json:"metrics"`
}

// Improvement measures the optimized route against one baseline.
type Improvement struct {
	Strategy string  `json:"strategy"`
	KmSaved  float64 `json:"km_saved"`
	Percent  float64 `json:"percent"`
}

// Comparison holds every strategy's plan plus the optimized route's edge
// over each baseline. Best names the strategy with the shortest total
// distance; with a single zone that is always the optimized route, while
// multi-zone splicing can rarely leave nearest_neighbor ahead.
type Comparison struct {
	Plans        []RoutePlan   `json:"plans"`
	Best         string        `json:"best"`
	Improvements []Improvement `json:"improvements"`
	Converged    bool          `json:"converged"`
}

// CompareRoutes prices four strategies over the same matrix and hour:
// ascending-id naive, seeded random, nearest neighbor without refinement,
// and the full zoned solve. The zone decomposition is computed once and
// shared by the two solver strategies so they differ only in refinement.
func CompareRoutes(ctx context.Context, m *domain.DistanceMatrix, locations []domain.Location, hour int, cfg Config) (c *Comparison, err error) {
	defer obs.Time(ctx, "compare_routes")(&err)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("compare routes: %w", err)
	}

	naive, err := NaiveRoute(locations)
	if err != nil {
		return nil, fmt.Errorf("compare routes: %w", err)
	}
	random, err := RandomRoute(locations, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("compare routes: %w", err)
	}

	k := clampZones(cfg.KZones, len(nonDepot(locations)))
	dec, err := Decompose(ctx, locations, k, cfg.Seed, cfg)
	if err != nil {
		return nil, fmt.Errorf("compare routes: %w", err)
	}

	nnCfg := cfg
	nnCfg.MaxTwoOptPasses = 0
	nearest, err := SolveRoute(ctx, m, locations, *dec, nnCfg)
	if err != nil {
		return nil, fmt.Errorf("compare routes: %w", err)
	}
	optimized, err := SolveRoute(ctx, m, locations, *dec, cfg)
	if err != nil {
		return nil, fmt.Errorf("compare routes: %w", err)
	}

	plans := []RoutePlan{
		{Strategy: StrategyNaive, Route: naive},
		{Strategy: StrategyRandom, Route: random},
		{Strategy: StrategyNearest, Route: nearest.Route},
		{Strategy: StrategyOptimized, Route: optimized.Route},
	}
	for i := range plans {
		metrics, err := ComputeMetrics(m, plans[i].Route, hour, cfg)
		if err != nil {
			return nil, fmt.Errorf("compare routes: %s: %w", plans[i].Strategy, err)
		}
		plans[i].Metrics = metrics
	}

	// Ties go to the optimized route, so a baseline must strictly beat
	// it to be named best.
	best := plans[len(plans)-1]
	for _, p := range plans[:len(plans)-1] {
		if p.Metrics.TotalDistanceKm < best.Metrics.TotalDistanceKm {
			best = p
		}
	}

	opt := plans[len(plans)-1].Metrics.TotalDistanceKm
	improvements := make([]Improvement, 0, len(plans)-1)
	for _, p := range plans[:len(plans)-1] {
		imp := Improvement{
			Strategy: p.Strategy,
			KmSaved:  p.Metrics.TotalDistanceKm - opt,
		}
		if p.Metrics.TotalDistanceKm > 0 {
			imp.Percent = imp.KmSaved / p.Metrics.TotalDistanceKm * 100
		}
		improvements = append(improvements, imp)
	}

	return &Comparison{
		Plans:        plans,
		Best:         best.Strategy,
		Improvements: improvements,
		Converged:    optimized.Converged,
	}, nil
}

// clampZones bounds a requested zone count to what the stop set can hold.
func clampZones(k, stops int) int {
	if k < 1 {
		return 1
	}
	if k > stops {
		return stops
	}
	return k
}
