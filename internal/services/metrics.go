package services

import (
	"fmt"
	"time"

	"route-optimizer-service/internal/domain"
)

// RouteDistanceKm walks consecutive stop pairs and sums their matrix
// distances, including the closing leg back to the depot.
func RouteDistanceKm(m *domain.DistanceMatrix, route domain.Route) (float64, error) {
	total := 0.0
	for i := 0; i < len(route.Stops)-1; i++ {
		d, ok := m.Distance(route.Stops[i], route.Stops[i+1])
		if !ok {
			return 0, &domain.InvalidRouteError{
				Reason: fmt.Sprintf("no matrix distance between %d and %d", route.Stops[i], route.Stops[i+1]),
			}
		}
		total += d
	}
	return total, nil
}

// ComputeMetrics prices a route at a fixed hour of day: every segment uses
// the same traffic multiplier. Totals are kept unrounded so they sum
// exactly; presentation layers round for display.
func ComputeMetrics(m *domain.DistanceMatrix, route domain.Route, hour int, cfg Config) (*domain.RouteMetrics, error) {
	if err := validateRouteAgainstMatrix(m, route); err != nil {
		return nil, err
	}

	metrics := &domain.RouteMetrics{
		StopCount: len(route.Stops) - 2,
		Segments:  make([]domain.RouteSegment, 0, len(route.Stops)-1),
	}
	for i := 0; i < len(route.Stops)-1; i++ {
		from, to := route.Stops[i], route.Stops[i+1]
		d, ok := m.Distance(from, to)
		if !ok {
			return nil, &domain.InvalidRouteError{Reason: fmt.Sprintf("no matrix distance between %d and %d", from, to)}
		}
		t, err := EstimateTravelTime(d, hour, cfg)
		if err != nil {
			return nil, fmt.Errorf("compute metrics: %w", err)
		}
		metrics.Segments = append(metrics.Segments, domain.RouteSegment{
			FromID:      from,
			ToID:        to,
			DistanceKm:  d,
			TimeMinutes: t,
		})
		metrics.TotalDistanceKm += d
		metrics.TotalTimeMinutes += t
	}

	fuel, co2, err := EstimateCost(metrics.TotalDistanceKm, cfg)
	if err != nil {
		return nil, fmt.Errorf("compute metrics: %w", err)
	}
	metrics.FuelCost = fuel
	metrics.CO2Kg = co2
	metrics.AvgDistanceKmPerStop = metrics.TotalDistanceKm / float64(metrics.StopCount)
	return metrics, nil
}

// ComputeMetricsAt prices a route against a rolling clock instead of a
// fixed hour: each segment is charged the multiplier for the hour the
// vehicle actually enters it, and the clock advances by the segment's
// travel time. StopTimes holds the arrival instant at every route
// position, departure first, depot return last.
func ComputeMetricsAt(m *domain.DistanceMatrix, route domain.Route, departure time.Time, cfg Config) (*domain.RouteMetrics, error) {
	if err := validateRouteAgainstMatrix(m, route); err != nil {
		return nil, err
	}

	metrics := &domain.RouteMetrics{
		StopCount: len(route.Stops) - 2,
		Segments:  make([]domain.RouteSegment, 0, len(route.Stops)-1),
		StopTimes: make([]time.Time, 0, len(route.Stops)),
	}
	clock := departure
	metrics.StopTimes = append(metrics.StopTimes, clock)

	for i := 0; i < len(route.Stops)-1; i++ {
		from, to := route.Stops[i], route.Stops[i+1]
		d, ok := m.Distance(from, to)
		if !ok {
			return nil, &domain.InvalidRouteError{Reason: fmt.Sprintf("no matrix distance between %d and %d", from, to)}
		}
		t, err := EstimateTravelTime(d, clock.Hour(), cfg)
		if err != nil {
			return nil, fmt.Errorf("compute metrics: %w", err)
		}
		metrics.Segments = append(metrics.Segments, domain.RouteSegment{
			FromID:      from,
			ToID:        to,
			DistanceKm:  d,
			TimeMinutes: t,
		})
		metrics.TotalDistanceKm += d
		metrics.TotalTimeMinutes += t

		clock = clock.Add(time.Duration(t * float64(time.Minute)))
		metrics.StopTimes = append(metrics.StopTimes, clock)
	}

	fuel, co2, err := EstimateCost(metrics.TotalDistanceKm, cfg)
	if err != nil {
		return nil, fmt.Errorf("compute metrics: %w", err)
	}
	metrics.FuelCost = fuel
	metrics.CO2Kg = co2
	metrics.AvgDistanceKmPerStop = metrics.TotalDistanceKm / float64(metrics.StopCount)
	return metrics, nil
}

// validateRouteAgainstMatrix checks that the route is a closed depot tour
// covering every matrix location exactly once. The first stop is taken as
// the depot.
func validateRouteAgainstMatrix(m *domain.DistanceMatrix, route domain.Route) error {
	if len(route.Stops) < 3 {
		return &domain.InvalidRouteError{Reason: "route needs at least one stop between its depot endpoints"}
	}
	depotID := route.Stops[0]
	if _, ok := m.IndexOf(depotID); !ok {
		return &domain.InvalidRouteError{Reason: fmt.Sprintf("depot id %d not in distance matrix", depotID)}
	}
	stopIDs := make([]int, 0, m.Size()-1)
	for _, id := range m.IDs() {
		if id != depotID {
			stopIDs = append(stopIDs, id)
		}
	}
	return route.Validate(depotID, stopIDs)
}
