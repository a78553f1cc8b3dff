package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"route-optimizer-service/internal/domain"
)

type LocationSeed struct {
	LocationID   int     `json:"location_id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Locality     string  `json:"locality"`
	PackageCount int     `json:"package_count"`
	IsDepot      bool    `json:"is_depot"`
}

// loadLocationSeeds reads a seed file and validates it as a full location
// set, so a broken seed fails before any row is written.
func loadLocationSeeds(jsonPath string) ([]domain.Location, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed locations: read %q: %w", jsonPath, err)
	}

	var data []LocationSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed locations: parse json: %w", err)
	}

	locations := make([]domain.Location, 0, len(data))
	for i, item := range data {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("seed locations: item #%d: name cannot be empty", i+1)
		}
		locations = append(locations, domain.Location{
			ID:           item.LocationID,
			Name:         name,
			Latitude:     item.Latitude,
			Longitude:    item.Longitude,
			Locality:     strings.TrimSpace(item.Locality),
			PackageCount: item.PackageCount,
			IsDepot:      item.IsDepot,
		})
	}

	if err := domain.ValidateLocations(locations); err != nil {
		return nil, fmt.Errorf("seed locations: %w", err)
	}
	return locations, nil
}
