package domain

import (
	"fmt"
	"time"
)

// Route is an ordered visiting sequence of location ids. The first and
// last element are always the depot id and every non-depot id appears
// exactly once, making the route a Hamiltonian cycle anchored at the depot.
// Routes are produced by the solver and never mutated afterwards.
type Route struct {
	Stops []int
}

// Validate checks the route against the expected depot and stop id set.
// It returns an *InvalidRouteError describing the first structural defect
// found: wrong endpoints, a depot appearing mid-route, a duplicated stop,
// or a stop missing from or foreign to the expected set.
func (r Route) Validate(depotID int, stopIDs []int) error {
	if len(r.Stops) < 3 {
		return &InvalidRouteError{
			Reason: fmt.Sprintf("got %d stops, need at least depot, one stop, depot", len(r.Stops)),
		}
	}
	if r.Stops[0] != depotID || r.Stops[len(r.Stops)-1] != depotID {
		return &InvalidRouteError{
			Reason: fmt.Sprintf("must start and end at depot %d", depotID),
		}
	}

	expected := make(map[int]bool, len(stopIDs))
	for _, id := range stopIDs {
		expected[id] = false
	}

	for _, id := range r.Stops[1 : len(r.Stops)-1] {
		if id == depotID {
			return &InvalidRouteError{
				Reason: fmt.Sprintf("depot %d appears mid-route", depotID),
			}
		}
		visited, ok := expected[id]
		if !ok {
			return &InvalidRouteError{
				Reason: fmt.Sprintf("unknown stop id %d", id),
			}
		}
		if visited {
			return &InvalidRouteError{
				Reason: fmt.Sprintf("stop %d visited more than once", id),
			}
		}
		expected[id] = true
	}

	for id, visited := range expected {
		if !visited {
			return &InvalidRouteError{
				Reason: fmt.Sprintf("stop %d missing from route", id),
			}
		}
	}

	return nil
}

// RouteSegment is one leg of a route: the edge between two consecutive
// stops with its distance and estimated travel time.
type RouteSegment struct {
	FromID      int
	ToID        int
	DistanceKm  float64
	TimeMinutes float64
}

// RouteMetrics is the summary a route reduces to: totals for distance,
// time, fuel cost and emissions, plus the ordered per-segment breakdown
// for auditability. Derived data, recomputed from a Route, never mutated
// in place. StopTimes is populated only by departure-time aggregation,
// holding the departure instant followed by each arrival.
type RouteMetrics struct {
	TotalDistanceKm      float64
	TotalTimeMinutes     float64
	FuelCost             float64
	CO2Kg                float64
	StopCount            int
	AvgDistanceKmPerStop float64
	Segments             []RouteSegment
	StopTimes            []time.Time
}
