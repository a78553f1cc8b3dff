package services

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
)

type stubLocationRepo struct {
	locations []domain.Location
	err       error
	calls     int
}

func (s *stubLocationRepo) ListLocations(ctx context.Context) ([]domain.Location, error) {
	s.calls++
	return s.locations, s.err
}

type memMatrixCache struct {
	entries map[string]*domain.DistanceMatrix
	hits    int
}

func newMemMatrixCache() *memMatrixCache {
	return &memMatrixCache{entries: map[string]*domain.DistanceMatrix{}}
}

func (c *memMatrixCache) Get(fingerprint string) (*domain.DistanceMatrix, bool) {
	m, ok := c.entries[fingerprint]
	if ok {
		c.hits++
	}
	return m, ok
}

func (c *memMatrixCache) Add(fingerprint string, m *domain.DistanceMatrix) {
	c.entries[fingerprint] = m
}

type memRouteCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newMemRouteCache() *memRouteCache {
	return &memRouteCache{entries: map[string][]byte{}}
}

func (c *memRouteCache) Get(ctx context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	payload, ok := c.entries[key]
	if !ok {
		return nil, ports.ErrCacheMiss
	}
	return payload, nil
}

func (c *memRouteCache) Set(ctx context.Context, key string, payload []byte) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = payload
	return nil
}

type memRunRepo struct {
	runs []domain.SolveRun
	err  error
}

func (r *memRunRepo) RecordRun(ctx context.Context, run domain.SolveRun) error {
	if r.err != nil {
		return r.err
	}
	r.runs = append(r.runs, run)
	return nil
}

func (r *memRunRepo) ListRuns(ctx context.Context, limit int) ([]domain.SolveRun, error) {
	return r.runs, nil
}

func TestPlanRouteRecordsRunAndCaches(t *testing.T) {
	repo := &stubLocationRepo{locations: lineSet()}
	matrices := newMemMatrixCache()
	routes := newMemRouteCache()
	runs := &memRunRepo{}

	cfg := DefaultConfig()
	cfg.KZones = 2
	req := PlanRouteRequest{Hour: 9, Config: cfg}

	first, err := PlanRoute(context.Background(), req, repo, matrices, routes, runs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.FromCache {
		t.Fatal("first solve must not come from cache")
	}
	if first.RunID == "" {
		t.Fatal("missing run id")
	}
	if err := first.Route.Validate(0, []int{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("invalid route: %v", err)
	}

	if len(runs.runs) != 1 {
		t.Fatalf("recorded runs = %d, want 1", len(runs.runs))
	}
	run := runs.runs[0]
	if run.RunID != first.RunID {
		t.Fatalf("run id mismatch: %q vs %q", run.RunID, first.RunID)
	}
	if run.KZones != 2 || run.Hour != 9 || run.Seed != cfg.Seed {
		t.Fatalf("run parameters wrong: %+v", run)
	}
	if run.StopCount != 5 {
		t.Fatalf("run stop count = %d, want 5", run.StopCount)
	}
	if len(routes.entries) != 1 {
		t.Fatalf("cached outcomes = %d, want 1", len(routes.entries))
	}

	second, err := PlanRoute(context.Background(), req, repo, matrices, routes, runs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.FromCache {
		t.Fatal("second solve should hit the route cache")
	}
	if second.RunID != first.RunID {
		t.Fatalf("cache replayed a different run: %q vs %q", second.RunID, first.RunID)
	}
	if !reflect.DeepEqual(second.Route, first.Route) {
		t.Fatalf("cached route differs: %v vs %v", second.Route.Stops, first.Route.Stops)
	}
	if len(runs.runs) != 1 {
		t.Fatalf("cache hit recorded a new run, total %d", len(runs.runs))
	}
	if matrices.hits == 0 {
		t.Fatal("second call should reuse the cached matrix")
	}
}

func TestPlanRouteCacheKeyedByTuning(t *testing.T) {
	repo := &stubLocationRepo{locations: zigzagSet()}
	routes := newMemRouteCache()

	cfg := DefaultConfig()
	cfg.KZones = 1

	refined, err := PlanRoute(context.Background(), PlanRouteRequest{Hour: 12, Config: cfg}, repo, nil, routes, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(refined.Route.Stops, []int{0, 2, 1, 3, 0}) {
		t.Fatalf("refined route = %v", refined.Route.Stops)
	}

	// A zero pass budget keeps the greedy tour; serving it from the
	// refined entry would hand back the wrong route and a stale
	// converged flag.
	raw := cfg
	raw.MaxTwoOptPasses = 0
	unrefined, err := PlanRoute(context.Background(), PlanRouteRequest{Hour: 12, Config: raw}, repo, nil, routes, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unrefined.FromCache {
		t.Fatal("pass budget override must not hit the refined entry")
	}
	if !reflect.DeepEqual(unrefined.Route.Stops, []int{0, 1, 2, 3, 0}) {
		t.Fatalf("unrefined route = %v", unrefined.Route.Stops)
	}
	if unrefined.Converged {
		t.Fatal("spent pass budget must report non-convergence")
	}

	fast := cfg
	fast.SpeedKmph = 2 * cfg.SpeedKmph
	quick, err := PlanRoute(context.Background(), PlanRouteRequest{Hour: 12, Config: fast}, repo, nil, routes, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quick.FromCache {
		t.Fatal("speed override must not hit the refined entry")
	}
	if math.Abs(quick.Metrics.TotalTimeMinutes*2-refined.Metrics.TotalTimeMinutes) > 1e-9 {
		t.Fatalf("doubled speed priced %v minutes, want half of %v", quick.Metrics.TotalTimeMinutes, refined.Metrics.TotalTimeMinutes)
	}

	if len(routes.entries) != 3 {
		t.Fatalf("cached outcomes = %d, want one per tuning", len(routes.entries))
	}

	replay, err := PlanRoute(context.Background(), PlanRouteRequest{Hour: 12, Config: raw}, repo, nil, routes, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !replay.FromCache {
		t.Fatal("repeat of the pass budget request should hit its own entry")
	}
	if !reflect.DeepEqual(replay.Route.Stops, unrefined.Route.Stops) || replay.Converged {
		t.Fatalf("replayed outcome drifted: %v converged=%v", replay.Route.Stops, replay.Converged)
	}
}

func TestPlanRouteWithoutOptionalDependencies(t *testing.T) {
	repo := &stubLocationRepo{locations: lineSet()}
	cfg := DefaultConfig()
	cfg.KZones = 1

	out, err := PlanRoute(context.Background(), PlanRouteRequest{Hour: 12, Config: cfg}, repo, nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.FromCache {
		t.Fatal("no cache to hit")
	}
	if len(out.Stops) != len(out.Route.Stops) {
		t.Fatalf("stop details = %d, want %d", len(out.Stops), len(out.Route.Stops))
	}
	if out.Metrics == nil || out.Metrics.TotalDistanceKm <= 0 {
		t.Fatalf("missing metrics: %+v", out.Metrics)
	}
	if len(out.Zones) != 1 {
		t.Fatalf("zones = %d, want 1", len(out.Zones))
	}
}

func TestPlanRouteDegradesOnCacheFailure(t *testing.T) {
	repo := &stubLocationRepo{locations: lineSet()}
	routes := newMemRouteCache()
	routes.getErr = errors.New("connection refused")
	routes.setErr = errors.New("connection refused")
	runs := &memRunRepo{err: errors.New("connection refused")}

	cfg := DefaultConfig()
	cfg.KZones = 1

	out, err := PlanRoute(context.Background(), PlanRouteRequest{Hour: 9, Config: cfg}, repo, nil, routes, runs)
	if err != nil {
		t.Fatalf("cache failure must not fail the solve: %v", err)
	}
	if out.FromCache {
		t.Fatal("degraded cache cannot serve a hit")
	}
}

func TestPlanRouteRepositoryErrorPropagates(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &stubLocationRepo{err: repoErr}

	_, err := PlanRoute(context.Background(), PlanRouteRequest{Hour: 9, Config: DefaultConfig()}, repo, nil, nil, nil)
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected the repository error, got %v", err)
	}
}

func TestPlanRouteRejectsInvalidConfig(t *testing.T) {
	repo := &stubLocationRepo{locations: lineSet()}
	cfg := DefaultConfig()
	cfg.SpeedKmph = 0

	_, err := PlanRoute(context.Background(), PlanRouteRequest{Hour: 9, Config: cfg}, repo, nil, nil, nil)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if repo.calls != 0 {
		t.Fatal("invalid config must fail before loading locations")
	}
}

func TestPlanRouteDepartureProducesStopTimes(t *testing.T) {
	repo := &stubLocationRepo{locations: lineSet()}
	cfg := DefaultConfig()
	cfg.KZones = 1
	depart := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)

	out, err := PlanRoute(context.Background(), PlanRouteRequest{Departure: &depart, Config: cfg}, repo, nil, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Metrics.StopTimes) != len(out.Route.Stops) {
		t.Fatalf("stop times = %d, want %d", len(out.Metrics.StopTimes), len(out.Route.Stops))
	}
	if !out.Metrics.StopTimes[0].Equal(depart) {
		t.Fatalf("first stop time = %v, want departure %v", out.Metrics.StopTimes[0], depart)
	}
}

func TestPlanCompare(t *testing.T) {
	repo := &stubLocationRepo{locations: lineSet()}
	matrices := newMemMatrixCache()

	c, err := PlanCompare(context.Background(), CompareRequest{Hour: 12, Config: DefaultConfig()}, repo, matrices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.Plans) != 4 {
		t.Fatalf("plans = %d, want 4", len(c.Plans))
	}
	if len(matrices.entries) != 1 {
		t.Fatalf("matrix cache entries = %d, want 1", len(matrices.entries))
	}
}

func TestPlanCacheKey(t *testing.T) {
	cfg := DefaultConfig()

	base := planCacheKey("abc123", 4, 9, nil, cfg)
	if base != "abc123:k=4:seed=42:hour=9:passes=1000:iters=100:speed=30" {
		t.Fatalf("key = %q", base)
	}

	depart := time.Date(2026, 3, 2, 7, 30, 0, 0, time.UTC)
	key := planCacheKey("abc123", 4, 9, &depart, cfg)
	if key != "abc123:k=4:seed=42:hour=9:passes=1000:iters=100:speed=30:depart=2026-03-02T07:30:00Z" {
		t.Fatalf("key = %q", key)
	}

	for name, tune := range map[string]func(*Config){
		"passes": func(c *Config) { c.MaxTwoOptPasses = 0 },
		"iters":  func(c *Config) { c.MaxKMeansIterations = 5 },
		"speed":  func(c *Config) { c.SpeedKmph = 34.5 },
	} {
		tuned := DefaultConfig()
		tune(&tuned)
		if planCacheKey("abc123", 4, 9, nil, tuned) == base {
			t.Fatalf("%s override does not change the key", name)
		}
	}
}
