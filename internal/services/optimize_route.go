package services

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
)

// SolveStats reports how much work the solver did and how far it moved the
// tour from its greedy construction.
type SolveStats struct {
	ConstructionKm float64       `json:"construction_km"`
	OptimizedKm    float64       `json:"optimized_km"`
	ImprovementKm  float64       `json:"improvement_km"`
	ImprovementPct float64       `json:"improvement_pct"`
	TwoOptPasses   int           `json:"two_opt_passes"`
	TwoOptMoves    int           `json:"two_opt_moves"`
	ZonesSolved    int           `json:"zones_solved"`
	Duration       time.Duration `json:"duration"`
}

// SolveResult is the solved depot round trip plus solver accounting.
// Converged is false when the zone decomposition or any 2-opt refinement
// ran out of budget; the route is still the best one found.
type SolveResult struct {
	Route     domain.Route `json:"route"`
	TotalKm   float64      `json:"total_km"`
	Converged bool         `json:"converged"`
	Stats     SolveStats   `json:"stats"`
}

type zoneResult struct {
	order     []int
	nnOrder   []int
	passes    int
	moves     int
	converged bool
}

// SolveRoute turns a zone decomposition into a single depot round trip.
// Each occupied zone is solved independently (nearest neighbor construction
// refined by 2-opt, depot anchored), zones are sequenced by a tour over
// their centroids, and the per-zone chains are spliced in that order
// between the depot endpoints. Zone solves run concurrently; the output is
// deterministic because every tie in construction breaks toward the lowest
// index and results are joined by zone position, not completion order.
func SolveRoute(ctx context.Context, m *domain.DistanceMatrix, locations []domain.Location, dec Decomposition, cfg Config) (res *SolveResult, err error) {
	defer obs.Time(ctx, "solve_route")(&err)
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("solve route: %w", err)
	}
	depot, ok := depotOf(locations)
	if !ok {
		return nil, &domain.ValidationError{Field: "is_depot", Reason: "exactly one depot location is required"}
	}
	stops := nonDepot(locations)
	if len(stops) == 0 {
		return nil, fmt.Errorf("solve route: %w", domain.ErrInsufficientData)
	}
	if err := validateZonePartition(dec.Zones, stops); err != nil {
		return nil, fmt.Errorf("solve route: %w", err)
	}

	results := make([]zoneResult, len(dec.Zones))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, zone := range dec.Zones {
		i, zone := i, zone
		if zone.Empty() {
			continue
		}
		g.Go(func() error {
			r, err := solveZone(gctx, m, depot.ID, zone.MemberIDs, cfg)
			if err != nil {
				return fmt.Errorf("zone %d: %w", zone.ZoneID, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("solve route: %w", err)
	}

	order, nnOrder, outerPasses, outerMoves, outerConverged := zoneVisitOrder(ctx, depot.Coordinates(), dec.Zones, cfg)

	routeStops := spliceChains(depot.ID, order, results, false)
	constructionStops := spliceChains(depot.ID, nnOrder, results, true)

	totalKm, err := RouteDistanceKm(m, domain.Route{Stops: routeStops})
	if err != nil {
		return nil, fmt.Errorf("solve route: %w", err)
	}
	constructionKm, err := RouteDistanceKm(m, domain.Route{Stops: constructionStops})
	if err != nil {
		return nil, fmt.Errorf("solve route: %w", err)
	}

	stats := SolveStats{
		ConstructionKm: constructionKm,
		OptimizedKm:    totalKm,
		ImprovementKm:  constructionKm - totalKm,
		TwoOptPasses:   outerPasses,
		TwoOptMoves:    outerMoves,
		ZonesSolved:    len(order),
		Duration:       time.Since(start),
	}
	if constructionKm > 0 {
		stats.ImprovementPct = stats.ImprovementKm / constructionKm * 100
	}

	converged := dec.Converged && outerConverged
	for _, i := range order {
		stats.TwoOptPasses += results[i].passes
		stats.TwoOptMoves += results[i].moves
		converged = converged && results[i].converged
	}

	return &SolveResult{
		Route:     domain.Route{Stops: routeStops},
		TotalKm:   totalKm,
		Converged: converged,
		Stats:     stats,
	}, nil
}

// solveZone tours the depot plus one zone's members. The depot occupies
// index 0 of the sub-matrix and members follow in ascending id order, so
// nearest-neighbor ties resolve toward lower ids.
func solveZone(ctx context.Context, m *domain.DistanceMatrix, depotID int, memberIDs []int, cfg Config) (zoneResult, error) {
	ids := make([]int, 0, len(memberIDs)+1)
	ids = append(ids, depotID)
	ids = append(ids, memberIDs...)

	dist, err := subMatrix(m, ids)
	if err != nil {
		return zoneResult{}, err
	}

	tour := nearestNeighborTour(dist, 0)
	nnOrder := interiorIDs(ids, tour)
	passes, moves, converged := twoOptImprove(ctx, dist, tour, cfg.MaxTwoOptPasses)

	return zoneResult{
		order:     interiorIDs(ids, tour),
		nnOrder:   nnOrder,
		passes:    passes,
		moves:     moves,
		converged: converged,
	}, nil
}

// zoneVisitOrder sequences the occupied zones by touring their centroids
// from the depot, with the same construct-then-refine pair used inside
// zones. It returns the refined order, the construction-only order, and
// the refinement accounting.
func zoneVisitOrder(ctx context.Context, depot domain.Coordinates, zones []domain.Zone, cfg Config) (order, nnOrder []int, passes, moves int, converged bool) {
	occupied := make([]int, 0, len(zones))
	for i, z := range zones {
		if !z.Empty() {
			occupied = append(occupied, i)
		}
	}
	if len(occupied) <= 1 {
		return occupied, occupied, 0, 0, true
	}

	pts := make([]domain.Coordinates, 0, len(occupied)+1)
	pts = append(pts, depot)
	for _, i := range occupied {
		pts = append(pts, zones[i].Centroid)
	}
	dist := make([][]float64, len(pts))
	for i := range pts {
		dist[i] = make([]float64, len(pts))
		for j := range pts {
			dist[i][j] = domain.Haversine(pts[i], pts[j])
		}
	}

	tour := nearestNeighborTour(dist, 0)
	nnOrder = interiorZones(occupied, tour)
	passes, moves, converged = twoOptImprove(ctx, dist, tour, cfg.MaxTwoOptPasses)
	return interiorZones(occupied, tour), nnOrder, passes, moves, converged
}

// spliceChains concatenates per-zone stop chains in visit order and wraps
// them with the depot endpoints.
func spliceChains(depotID int, order []int, results []zoneResult, construction bool) []int {
	stops := make([]int, 0, 2)
	stops = append(stops, depotID)
	for _, i := range order {
		if construction {
			stops = append(stops, results[i].nnOrder...)
		} else {
			stops = append(stops, results[i].order...)
		}
	}
	return append(stops, depotID)
}

// interiorIDs maps the interior of an index tour back to location ids.
func interiorIDs(ids []int, tour []int) []int {
	out := make([]int, 0, len(tour)-2)
	for _, idx := range tour[1 : len(tour)-1] {
		out = append(out, ids[idx])
	}
	return out
}

// interiorZones maps the interior of a centroid tour back to zone indices.
func interiorZones(occupied []int, tour []int) []int {
	out := make([]int, 0, len(tour)-2)
	for _, idx := range tour[1 : len(tour)-1] {
		out = append(out, occupied[idx-1])
	}
	return out
}

func validateZonePartition(zones []domain.Zone, stops []domain.Location) error {
	seen := make(map[int]bool, len(stops))
	for _, s := range stops {
		seen[s.ID] = false
	}
	for _, z := range zones {
		for _, id := range z.MemberIDs {
			visited, ok := seen[id]
			if !ok {
				return &domain.ValidationError{
					Field:  "zones",
					Reason: fmt.Sprintf("zone %d references unknown location id %d", z.ZoneID, id),
				}
			}
			if visited {
				return &domain.ValidationError{
					Field:  "zones",
					Reason: fmt.Sprintf("location id %d assigned to more than one zone", id),
				}
			}
			seen[id] = true
		}
	}
	for _, s := range stops {
		if !seen[s.ID] {
			return &domain.ValidationError{
				Field:  "zones",
				Reason: fmt.Sprintf("location id %d missing from every zone", s.ID),
			}
		}
	}
	return nil
}
