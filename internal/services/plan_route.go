package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
)

type PlanRouteRequest struct {
	// Hour of day priced when Departure is nil.
	Hour int
	// Departure switches metrics to a rolling clock starting here.
	Departure *time.Time
	// Fully resolved engine knobs, request overrides already applied.
	Config Config
}

// PlanRouteOutcome is the full result of one optimize request. It is what
// gets cached, so everything in it must round-trip through JSON.
type PlanRouteOutcome struct {
	RunID            string               `json:"run_id"`
	Route            domain.Route         `json:"route"`
	Stops            []StopDetail         `json:"stops"`
	Zones            []domain.Zone        `json:"zones"`
	KMeansIterations int                  `json:"kmeans_iterations"`
	Metrics          *domain.RouteMetrics `json:"metrics"`
	Stats            SolveStats           `json:"stats"`
	Converged        bool                 `json:"converged"`
	FromCache        bool                 `json:"-"`
}

// PlanRoute runs the optimize pipeline end to end: load locations, reuse
// or build the distance matrix, decompose into zones, solve, price, and
// record the run. The route cache is consulted first and both caches are
// best-effort: a failing cache or history store degrades to recomputation,
// never to an error.
func PlanRoute(
	ctx context.Context,
	req PlanRouteRequest,
	repo ports.LocationRepository,
	matrices ports.MatrixCache,
	routes ports.RouteCache,
	runs ports.RunRepository,
) (out *PlanRouteOutcome, err error) {
	defer obs.Time(ctx, "plan_route")(&err)

	cfg := req.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	m, locations, err := loadMatrix(ctx, repo, matrices)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	k := clampZones(cfg.KZones, len(nonDepot(locations)))
	cacheKey := planCacheKey(m.Fingerprint(), k, req.Hour, req.Departure, cfg)

	if routes != nil {
		payload, cacheErr := routes.Get(ctx, cacheKey)
		switch {
		case cacheErr == nil:
			var cached PlanRouteOutcome
			if jsonErr := json.Unmarshal(payload, &cached); jsonErr != nil {
				log.Printf("plan route: decode cached outcome: %v", jsonErr)
			} else {
				cached.FromCache = true
				return &cached, nil
			}
		case !errors.Is(cacheErr, ports.ErrCacheMiss):
			log.Printf("plan route: route cache get: %v", cacheErr)
		}
	}

	dec, err := Decompose(ctx, locations, k, cfg.Seed, cfg)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}
	res, err := SolveRoute(ctx, m, locations, *dec, cfg)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	var metrics *domain.RouteMetrics
	if req.Departure != nil {
		metrics, err = ComputeMetricsAt(m, res.Route, *req.Departure, cfg)
	} else {
		metrics, err = ComputeMetrics(m, res.Route, req.Hour, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	details, err := RouteDetails(res.Route, locations)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	out = &PlanRouteOutcome{
		RunID:            uuid.NewString(),
		Route:            res.Route,
		Stops:            details,
		Zones:            dec.Zones,
		KMeansIterations: dec.Iterations,
		Metrics:          metrics,
		Stats:            res.Stats,
		Converged:        res.Converged,
	}

	if runs != nil {
		run := domain.SolveRun{
			RunID:          out.RunID,
			RequestedAt:    time.Now().UTC(),
			KZones:         k,
			Seed:           cfg.Seed,
			Hour:           req.Hour,
			StopCount:      metrics.StopCount,
			TotalKm:        res.TotalKm,
			ImprovementPct: res.Stats.ImprovementPct,
			Converged:      res.Converged,
			DurationMs:     res.Stats.Duration.Milliseconds(),
		}
		if recErr := runs.RecordRun(ctx, run); recErr != nil {
			log.Printf("plan route: record run %s: %v", run.RunID, recErr)
		}
	}

	if routes != nil {
		if payload, jsonErr := json.Marshal(out); jsonErr != nil {
			log.Printf("plan route: encode outcome for cache: %v", jsonErr)
		} else if setErr := routes.Set(ctx, cacheKey, payload); setErr != nil {
			log.Printf("plan route: route cache set: %v", setErr)
		}
	}

	return out, nil
}

type CompareRequest struct {
	Hour   int
	Config Config
}

// PlanCompare loads the location set and ranks all route strategies over
// it at the requested hour.
func PlanCompare(
	ctx context.Context,
	req CompareRequest,
	repo ports.LocationRepository,
	matrices ports.MatrixCache,
) (c *Comparison, err error) {
	defer obs.Time(ctx, "plan_compare")(&err)

	m, locations, err := loadMatrix(ctx, repo, matrices)
	if err != nil {
		return nil, fmt.Errorf("plan compare: %w", err)
	}
	return CompareRoutes(ctx, m, locations, req.Hour, req.Config)
}

// loadMatrix lists the working location set and returns its distance
// matrix, reusing a fingerprint-matched one from the cache when possible.
func loadMatrix(
	ctx context.Context,
	repo ports.LocationRepository,
	matrices ports.MatrixCache,
) (*domain.DistanceMatrix, []domain.Location, error) {
	locations, err := repo.ListLocations(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list locations: %w", err)
	}

	fp := MatrixFingerprint(locations)
	if matrices != nil {
		if m, ok := matrices.Get(fp); ok {
			return m, locations, nil
		}
	}

	m, err := BuildDistanceMatrix(locations)
	if err != nil {
		return nil, nil, err
	}
	if matrices != nil {
		matrices.Add(fp, m)
	}
	return m, locations, nil
}

// planCacheKey names a cached outcome by everything that can change it:
// the location set, the clamped zone count, the pricing hour, and each of
// the request-tunable solver and speed knobs. A knob missing here would
// replay one request's answer for a different one.
func planCacheKey(fingerprint string, k, hour int, departure *time.Time, cfg Config) string {
	key := fmt.Sprintf("%s:k=%d:seed=%d:hour=%d:passes=%d:iters=%d:speed=%g",
		fingerprint, k, cfg.Seed, hour, cfg.MaxTwoOptPasses, cfg.MaxKMeansIterations, cfg.SpeedKmph)
	if departure != nil {
		key += ":depart=" + departure.UTC().Format(time.RFC3339)
	}
	return key
}
