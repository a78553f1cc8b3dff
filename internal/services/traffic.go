package services

import (
	"fmt"

	"route-optimizer-service/internal/domain"
)

// EstimateTravelTime converts a distance into minutes of driving at the
// configured base speed, scaled by the hour-of-day traffic multiplier.
// The multiplier model is static configuration, not live traffic data.
func EstimateTravelTime(distanceKm float64, hour int, cfg Config) (float64, error) {
	if distanceKm < 0 {
		return 0, &domain.ValidationError{
			Field:  "distance_km",
			Reason: fmt.Sprintf("must not be negative, got %v", distanceKm),
		}
	}
	if hour < 0 || hour > 23 {
		return 0, &domain.ValidationError{
			Field:  "hour",
			Reason: fmt.Sprintf("must be between 0 and 23, got %d", hour),
		}
	}
	if cfg.SpeedKmph <= 0 {
		return 0, &domain.ValidationError{
			Field:  "speed_kmph",
			Reason: fmt.Sprintf("must be positive, got %v", cfg.SpeedKmph),
		}
	}

	return distanceKm / cfg.SpeedKmph * 60 * trafficMultiplier(hour, cfg), nil
}

// EstimateCost returns the fuel cost and CO2 mass for a driven distance.
// Both are linear in distance with configured per-km rates.
func EstimateCost(distanceKm float64, cfg Config) (fuel float64, co2 float64, err error) {
	if distanceKm < 0 {
		return 0, 0, &domain.ValidationError{
			Field:  "distance_km",
			Reason: fmt.Sprintf("must not be negative, got %v", distanceKm),
		}
	}

	return distanceKm * cfg.FuelCostPerKm, distanceKm * cfg.CO2KgPerKm, nil
}

func trafficMultiplier(hour int, cfg Config) float64 {
	if cfg.PeakHours[hour] {
		return cfg.PeakMultiplier
	}
	return cfg.OffpeakMultiplier
}
