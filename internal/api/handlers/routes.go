package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// RoutesHandler exposes the solver over HTTP. Config carries the engine
// defaults; request bodies may override the tuning knobs per call.
type RoutesHandler struct {
	Repo         ports.LocationRepository
	Matrices     ports.MatrixCache
	Routes       ports.RouteCache
	Runs         ports.RunRepository
	Config       services.Config
	SolveTimeout time.Duration
}

// Optimize computes the best route over the stored locations and returns
// it with metrics, zones, and solver accounting.
func (h *RoutesHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	cfg, hour, ok := h.resolveOverrides(w, r, tuningOverrides{
		kZones:              req.KZones,
		seed:                req.Seed,
		hour:                req.Hour,
		maxTwoOptPasses:     req.MaxTwoOptPasses,
		maxKMeansIterations: req.MaxKMeansIterations,
		speedKmph:           req.SpeedKmph,
	})
	if !ok {
		return
	}

	routeCache := h.Routes
	if req.UseCache != nil && !*req.UseCache {
		routeCache = nil
	}

	ctx := r.Context()
	if h.SolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.SolveTimeout)
		defer cancel()
	}

	out, err := services.PlanRoute(ctx, services.PlanRouteRequest{
		Hour:      hour,
		Departure: req.DepartAt,
		Config:    cfg,
	}, h.Repo, h.Matrices, routeCache, h.Runs)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if out.FromCache {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}

	res := dto.OptimizeResponse{
		RunID:     out.RunID,
		Route:     out.Route.Stops,
		Stops:     make([]dto.StopResponse, 0, len(out.Stops)),
		Zones:     make([]dto.ZoneResponse, 0, len(out.Zones)),
		Metrics:   metricsResponse(out.Metrics),
		Converged: out.Converged,
		FromCache: out.FromCache,
		Stats: dto.StatsResponse{
			ConstructionKm:   round(out.Stats.ConstructionKm, 2),
			OptimizedKm:      round(out.Stats.OptimizedKm, 2),
			ImprovementKm:    round(out.Stats.ImprovementKm, 2),
			ImprovementPct:   round(out.Stats.ImprovementPct, 1),
			TwoOptPasses:     out.Stats.TwoOptPasses,
			TwoOptMoves:      out.Stats.TwoOptMoves,
			ZonesSolved:      out.Stats.ZonesSolved,
			KMeansIterations: out.KMeansIterations,
			DurationMs:       out.Stats.Duration.Milliseconds(),
		},
	}
	for _, s := range out.Stops {
		res.Stops = append(res.Stops, dto.StopResponse{
			Position:     s.Position,
			LocationID:   s.ID,
			Name:         s.Name,
			Locality:     s.Locality,
			Latitude:     s.Latitude,
			Longitude:    s.Longitude,
			PackageCount: s.PackageCount,
			IsDepot:      s.IsDepot,
		})
	}
	for _, z := range out.Zones {
		res.Zones = append(res.Zones, dto.ZoneResponse{
			ZoneID:      z.ZoneID,
			MemberIDs:   z.MemberIDs,
			CentroidLat: z.Centroid.Lat,
			CentroidLon: z.Centroid.Lon,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Compare ranks the optimized route against naive, random, and
// nearest-neighbor baselines over the same location set.
func (h *RoutesHandler) Compare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.CompareRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	cfg, hour, ok := h.resolveOverrides(w, r, tuningOverrides{
		kZones:              req.KZones,
		seed:                req.Seed,
		hour:                req.Hour,
		maxTwoOptPasses:     req.MaxTwoOptPasses,
		maxKMeansIterations: req.MaxKMeansIterations,
		speedKmph:           req.SpeedKmph,
	})
	if !ok {
		return
	}

	ctx := r.Context()
	if h.SolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.SolveTimeout)
		defer cancel()
	}

	comparison, err := services.PlanCompare(ctx, services.CompareRequest{
		Hour:   hour,
		Config: cfg,
	}, h.Repo, h.Matrices)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.CompareResponse{
		Plans:        make([]dto.StrategyPlanResponse, 0, len(comparison.Plans)),
		Best:         comparison.Best,
		Improvements: make([]dto.ImprovementResponse, 0, len(comparison.Improvements)),
		Converged:    comparison.Converged,
	}
	for _, p := range comparison.Plans {
		res.Plans = append(res.Plans, dto.StrategyPlanResponse{
			Strategy: p.Strategy,
			Route:    p.Route.Stops,
			Metrics:  metricsResponse(p.Metrics),
		})
	}
	for _, imp := range comparison.Improvements {
		res.Improvements = append(res.Improvements, dto.ImprovementResponse{
			Strategy: imp.Strategy,
			KmSaved:  round(imp.KmSaved, 2),
			Percent:  round(imp.Percent, 1),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// tuningOverrides are the per-request engine knobs shared by the optimize
// and compare bodies. Nil means "keep the configured default".
type tuningOverrides struct {
	kZones              *int
	seed                *int64
	hour                *int
	maxTwoOptPasses     *int
	maxKMeansIterations *int
	speedKmph           *float64
}

// resolveOverrides folds request overrides into the configured defaults
// and validates the caller-supplied values. Reports false after writing an
// error response.
func (h *RoutesHandler) resolveOverrides(w http.ResponseWriter, r *http.Request, o tuningOverrides) (services.Config, int, bool) {
	cfg := h.Config

	if o.kZones != nil {
		if *o.kZones < 1 {
			writeError(w, r, http.StatusBadRequest, "k_zones must be at least 1")
			return cfg, 0, false
		}
		cfg.KZones = *o.kZones
	}
	if o.seed != nil {
		cfg.Seed = *o.seed
	}
	if o.maxTwoOptPasses != nil {
		if *o.maxTwoOptPasses < 0 {
			writeError(w, r, http.StatusBadRequest, "max_two_opt_passes must not be negative")
			return cfg, 0, false
		}
		cfg.MaxTwoOptPasses = *o.maxTwoOptPasses
	}
	if o.maxKMeansIterations != nil {
		if *o.maxKMeansIterations < 0 {
			writeError(w, r, http.StatusBadRequest, "max_kmeans_iterations must not be negative")
			return cfg, 0, false
		}
		cfg.MaxKMeansIterations = *o.maxKMeansIterations
	}
	if o.speedKmph != nil {
		if *o.speedKmph <= 0 {
			writeError(w, r, http.StatusBadRequest, "speed_kmph must be positive")
			return cfg, 0, false
		}
		cfg.SpeedKmph = *o.speedKmph
	}

	resolved := 9
	if o.hour != nil {
		if *o.hour < 0 || *o.hour > 23 {
			writeError(w, r, http.StatusBadRequest, "hour must be between 0 and 23")
			return cfg, 0, false
		}
		resolved = *o.hour
	}
	return cfg, resolved, true
}
