package services

import (
	"fmt"
	"math"
	"sort"

	"route-optimizer-service/internal/domain"
)

// FormatMinutes renders a duration in minutes as "2h 15m" for display.
func FormatMinutes(minutes float64) string {
	total := int(math.Round(minutes))
	h := total / 60
	m := total % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// StopDetail is one row of a stop-by-stop route listing, depot endpoints
// included.
type StopDetail struct {
	Position     int     `json:"position"`
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Locality     string  `json:"locality"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	PackageCount int     `json:"package_count"`
	IsDepot      bool    `json:"is_depot"`
}

// RouteDetails expands a route's stop ids into presentation rows in visit
// order.
func RouteDetails(route domain.Route, locations []domain.Location) ([]StopDetail, error) {
	byID := make(map[int]domain.Location, len(locations))
	for _, l := range locations {
		byID[l.ID] = l
	}

	details := make([]StopDetail, 0, len(route.Stops))
	for pos, id := range route.Stops {
		loc, ok := byID[id]
		if !ok {
			return nil, &domain.InvalidRouteError{Reason: fmt.Sprintf("route references unknown location id %d", id)}
		}
		details = append(details, StopDetail{
			Position:     pos,
			ID:           loc.ID,
			Name:         loc.Name,
			Locality:     loc.Locality,
			Latitude:     loc.Latitude,
			Longitude:    loc.Longitude,
			PackageCount: loc.PackageCount,
			IsDepot:      loc.IsDepot,
		})
	}
	return details, nil
}

// LocalityCount aggregates the delivery stops of one locality.
type LocalityCount struct {
	Locality      string `json:"locality"`
	Stops         int    `json:"stops"`
	TotalPackages int    `json:"total_packages"`
}

// LocalitySummary groups the non-depot stops by locality, busiest first.
// Ties sort by locality name so the output is stable.
func LocalitySummary(locations []domain.Location) []LocalityCount {
	byLocality := make(map[string]*LocalityCount)
	for _, l := range nonDepot(locations) {
		c, ok := byLocality[l.Locality]
		if !ok {
			c = &LocalityCount{Locality: l.Locality}
			byLocality[l.Locality] = c
		}
		c.Stops++
		c.TotalPackages += l.PackageCount
	}

	summary := make([]LocalityCount, 0, len(byLocality))
	for _, c := range byLocality {
		summary = append(summary, *c)
	}
	sort.Slice(summary, func(i, j int) bool {
		if summary[i].Stops != summary[j].Stops {
			return summary[i].Stops > summary[j].Stops
		}
		return summary[i].Locality < summary[j].Locality
	})
	return summary
}
