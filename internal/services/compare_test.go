package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"route-optimizer-service/internal/domain"
)

func TestCompareRoutesRanksStrategies(t *testing.T) {
	locs := zigzagSet()
	m := mustMatrix(t, locs)
	cfg := DefaultConfig()
	cfg.KZones = 1

	c, err := CompareRoutes(context.Background(), m, locs, 12, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(c.Plans) != 4 {
		t.Fatalf("plans = %d, want 4", len(c.Plans))
	}
	wantOrder := []string{StrategyNaive, StrategyRandom, StrategyNearest, StrategyOptimized}
	for i, want := range wantOrder {
		if c.Plans[i].Strategy != want {
			t.Fatalf("plan %d strategy = %q, want %q", i, c.Plans[i].Strategy, want)
		}
		if c.Plans[i].Metrics == nil {
			t.Fatalf("plan %q missing metrics", want)
		}
		if err := c.Plans[i].Route.Validate(0, []int{1, 2, 3}); err != nil {
			t.Fatalf("plan %q invalid: %v", want, err)
		}
	}

	opt := c.Plans[3].Metrics.TotalDistanceKm
	for _, p := range c.Plans[:3] {
		if opt > p.Metrics.TotalDistanceKm+1e-9 {
			t.Fatalf("optimized %v longer than %s at %v", opt, p.Strategy, p.Metrics.TotalDistanceKm)
		}
	}
	if c.Best != StrategyOptimized {
		t.Fatalf("best = %q, want %q", c.Best, StrategyOptimized)
	}
	if !c.Converged {
		t.Fatal("expected convergence")
	}
}

func TestCompareRoutesImprovementAccounting(t *testing.T) {
	locs := zigzagSet()
	m := mustMatrix(t, locs)
	cfg := DefaultConfig()
	cfg.KZones = 1

	c, err := CompareRoutes(context.Background(), m, locs, 12, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(c.Improvements) != 3 {
		t.Fatalf("improvements = %d, want one per baseline", len(c.Improvements))
	}
	opt := c.Plans[3].Metrics.TotalDistanceKm
	for i, imp := range c.Improvements {
		base := c.Plans[i].Metrics.TotalDistanceKm
		if imp.Strategy != c.Plans[i].Strategy {
			t.Fatalf("improvement %d strategy = %q, want %q", i, imp.Strategy, c.Plans[i].Strategy)
		}
		if imp.KmSaved != base-opt {
			t.Fatalf("%s km saved = %v, want %v", imp.Strategy, imp.KmSaved, base-opt)
		}
		if imp.KmSaved < 0 {
			t.Fatalf("%s saving is negative: %v", imp.Strategy, imp.KmSaved)
		}
	}

	// The greedy tour crosses itself on this layout, so the optimized
	// route must save real distance over it.
	nn := c.Improvements[2]
	if nn.KmSaved <= 0 || nn.Percent <= 0 {
		t.Fatalf("expected a real saving over nearest neighbor, got %+v", nn)
	}
}

func TestCompareRoutesNearestMatchesUnrefinedSolve(t *testing.T) {
	locs := zigzagSet()
	m := mustMatrix(t, locs)
	cfg := DefaultConfig()
	cfg.KZones = 1

	c, err := CompareRoutes(context.Background(), m, locs, 12, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{0, 1, 2, 3, 0}
	if !reflect.DeepEqual(c.Plans[2].Route.Stops, want) {
		t.Fatalf("nearest neighbor route = %v, want %v", c.Plans[2].Route.Stops, want)
	}
	want = []int{0, 2, 1, 3, 0}
	if !reflect.DeepEqual(c.Plans[3].Route.Stops, want) {
		t.Fatalf("optimized route = %v, want %v", c.Plans[3].Route.Stops, want)
	}
}

func TestCompareRoutesNaiveAscending(t *testing.T) {
	locs := clusteredSet()
	m := mustMatrix(t, locs)

	c, err := CompareRoutes(context.Background(), m, locs, 12, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{0, 1, 2, 3, 4, 5, 6, 0}
	if !reflect.DeepEqual(c.Plans[0].Route.Stops, want) {
		t.Fatalf("naive route = %v, want %v", c.Plans[0].Route.Stops, want)
	}
}

func TestCompareRoutesDeterministic(t *testing.T) {
	locs := clusteredSet()
	m := mustMatrix(t, locs)
	cfg := DefaultConfig()

	a, err := CompareRoutes(context.Background(), m, locs, 9, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := CompareRoutes(context.Background(), m, locs, 9, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range a.Plans {
		if !reflect.DeepEqual(a.Plans[i].Route, b.Plans[i].Route) {
			t.Fatalf("%s routes differ between runs", a.Plans[i].Strategy)
		}
	}
	if a.Best != b.Best {
		t.Fatalf("best differs: %q vs %q", a.Best, b.Best)
	}
}

func TestCompareRoutesClampsZoneCount(t *testing.T) {
	locs := zigzagSet() // three stops, default config asks for four zones
	m := mustMatrix(t, locs)

	c, err := CompareRoutes(context.Background(), m, locs, 12, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Plans[3].Route.Validate(0, []int{1, 2, 3}); err != nil {
		t.Fatalf("invalid optimized route: %v", err)
	}
}

func TestCompareRoutesRequiresStops(t *testing.T) {
	full := lineSet()
	m := mustMatrix(t, full)

	_, err := CompareRoutes(context.Background(), m, full[:1], 12, DefaultConfig())
	if !errors.Is(err, domain.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestBaselineRoutes(t *testing.T) {
	locs := clusteredSet()

	naive, err := NaiveRoute(locs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(naive.Stops, []int{0, 1, 2, 3, 4, 5, 6, 0}) {
		t.Fatalf("naive route = %v", naive.Stops)
	}

	r1, err := RandomRoute(locs, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r2, err := RandomRoute(locs, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(r1.Stops, r2.Stops) {
		t.Fatalf("same seed produced different shuffles: %v vs %v", r1.Stops, r2.Stops)
	}
	if err := r1.Validate(0, []int{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatalf("invalid random route: %v", err)
	}
}
