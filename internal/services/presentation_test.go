package services

import (
	"errors"
	"reflect"
	"testing"

	"route-optimizer-service/internal/domain"
)

func TestFormatMinutes(t *testing.T) {
	cases := []struct {
		minutes float64
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{59.4, "59m"},
		{59.6, "1h 0m"},
		{60, "1h 0m"},
		{135, "2h 15m"},
		{600, "10h 0m"},
	}
	for _, tc := range cases {
		if got := FormatMinutes(tc.minutes); got != tc.want {
			t.Errorf("FormatMinutes(%v) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestRouteDetails(t *testing.T) {
	locs := lineSet()
	route := domain.Route{Stops: []int{0, 2, 1, 3, 4, 5, 0}}

	details, err := RouteDetails(route, locs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(details) != len(route.Stops) {
		t.Fatalf("details = %d rows, want %d", len(details), len(route.Stops))
	}
	for i, d := range details {
		if d.Position != i {
			t.Errorf("row %d position = %d", i, d.Position)
		}
		if d.ID != route.Stops[i] {
			t.Errorf("row %d id = %d, want %d", i, d.ID, route.Stops[i])
		}
	}
	if !details[0].IsDepot || !details[len(details)-1].IsDepot {
		t.Fatal("first and last rows must be the depot")
	}
	if details[1].Name != "Stop 2" {
		t.Fatalf("row 1 name = %q, want %q", details[1].Name, "Stop 2")
	}
}

func TestRouteDetailsUnknownStop(t *testing.T) {
	_, err := RouteDetails(domain.Route{Stops: []int{0, 9, 0}}, lineSet())
	var ire *domain.InvalidRouteError
	if !errors.As(err, &ire) {
		t.Fatalf("expected *InvalidRouteError, got %v", err)
	}
}

func TestLocalitySummary(t *testing.T) {
	locs := []domain.Location{
		{ID: 0, Name: "Depot", Locality: "Center", IsDepot: true},
		{ID: 1, Locality: "North", PackageCount: 3},
		{ID: 2, Locality: "North", PackageCount: 4},
		{ID: 3, Locality: "East", PackageCount: 9},
		{ID: 4, Locality: "West", PackageCount: 1},
		{ID: 5, Locality: "West", PackageCount: 2},
	}

	summary := LocalitySummary(locs)

	// Busiest first; North beats West on the name tiebreak; the depot's
	// locality never appears.
	want := []LocalityCount{
		{Locality: "North", Stops: 2, TotalPackages: 7},
		{Locality: "West", Stops: 2, TotalPackages: 3},
		{Locality: "East", Stops: 1, TotalPackages: 9},
	}
	if !reflect.DeepEqual(summary, want) {
		t.Fatalf("summary = %+v, want %+v", summary, want)
	}
}

func TestLocalitySummaryEmpty(t *testing.T) {
	if got := LocalitySummary(nil); len(got) != 0 {
		t.Fatalf("summary of nothing = %+v", got)
	}
}
