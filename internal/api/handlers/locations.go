package handlers

import (
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// LocationHandler exposes read-only location retrieval endpoints.
type LocationHandler struct {
	Repo ports.LocationRepository
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	locations, err := h.Repo.ListLocations(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListLocationsResponse{
		Locations: make([]dto.LocationResponse, 0, len(locations)),
	}
	for _, l := range locations {
		res.Locations = append(res.Locations, dto.LocationResponse{
			LocationID:   l.ID,
			Name:         l.Name,
			Latitude:     l.Latitude,
			Longitude:    l.Longitude,
			Locality:     l.Locality,
			PackageCount: l.PackageCount,
			IsDepot:      l.IsDepot,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Summary aggregates delivery stops by locality, busiest first.
func (h *LocationHandler) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	locations, err := h.Repo.ListLocations(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	summary := services.LocalitySummary(locations)
	res := dto.LocalitySummaryResponse{
		Localities: make([]dto.LocalityCountResponse, 0, len(summary)),
	}
	for _, s := range summary {
		res.Localities = append(res.Localities, dto.LocalityCountResponse{
			Locality:      s.Locality,
			Stops:         s.Stops,
			TotalPackages: s.TotalPackages,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
