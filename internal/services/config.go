package services

import (
	"fmt"

	"route-optimizer-service/internal/domain"
)

// Config carries every engine tuning knob. It is passed explicitly into
// each operation instead of living in package state, so concurrent solves
// with different settings stay reproducible and testable in isolation.
type Config struct {
	// Zone decomposition.
	KZones              int
	Seed                int64
	MaxKMeansIterations int

	// Tour improvement. A zero pass budget disables 2-opt entirely and
	// yields the plain nearest-neighbor tour.
	MaxTwoOptPasses int

	// Travel time model. Hours present in PeakHours are scaled by
	// PeakMultiplier, all others by OffpeakMultiplier.
	SpeedKmph         float64
	PeakHours         map[int]bool
	PeakMultiplier    float64
	OffpeakMultiplier float64

	// Cost model, linear in distance.
	FuelCostPerKm float64
	CO2KgPerKm    float64
}

// DefaultConfig returns the stock engine settings: four zones, a fixed
// seed, morning and evening peak windows, and fuel/emission rates derived
// from a 12 km/l vehicle burning fuel at 95 per liter (2.31 kg CO2 each).
func DefaultConfig() Config {
	return Config{
		KZones:              4,
		Seed:                42,
		MaxKMeansIterations: 100,
		MaxTwoOptPasses:     1000,
		SpeedKmph:           30.0,
		PeakHours:           map[int]bool{8: true, 9: true, 17: true, 18: true},
		PeakMultiplier:      1.4,
		OffpeakMultiplier:   1.0,
		FuelCostPerKm:       7.92,
		CO2KgPerKm:          0.1925,
	}
}

// Validate rejects settings that would break a solve: non-positive speed
// or multipliers, a non-positive zone count, negative caps or rates, or a
// peak hour outside the day.
func (c Config) Validate() error {
	if c.KZones < 1 {
		return &domain.ValidationError{Field: "k_zones", Reason: fmt.Sprintf("must be at least 1, got %d", c.KZones)}
	}
	if c.MaxKMeansIterations < 0 {
		return &domain.ValidationError{Field: "max_kmeans_iterations", Reason: fmt.Sprintf("must not be negative, got %d", c.MaxKMeansIterations)}
	}
	if c.MaxTwoOptPasses < 0 {
		return &domain.ValidationError{Field: "max_two_opt_passes", Reason: fmt.Sprintf("must not be negative, got %d", c.MaxTwoOptPasses)}
	}
	if c.SpeedKmph <= 0 {
		return &domain.ValidationError{Field: "speed_kmph", Reason: fmt.Sprintf("must be positive, got %v", c.SpeedKmph)}
	}
	if c.PeakMultiplier <= 0 {
		return &domain.ValidationError{Field: "peak_multiplier", Reason: fmt.Sprintf("must be positive, got %v", c.PeakMultiplier)}
	}
	if c.OffpeakMultiplier <= 0 {
		return &domain.ValidationError{Field: "offpeak_multiplier", Reason: fmt.Sprintf("must be positive, got %v", c.OffpeakMultiplier)}
	}
	for h := range c.PeakHours {
		if h < 0 || h > 23 {
			return &domain.ValidationError{Field: "peak_hours", Reason: fmt.Sprintf("hour %d outside 0-23", h)}
		}
	}
	if c.FuelCostPerKm < 0 {
		return &domain.ValidationError{Field: "fuel_cost_per_km", Reason: fmt.Sprintf("must not be negative, got %v", c.FuelCostPerKm)}
	}
	if c.CO2KgPerKm < 0 {
		return &domain.ValidationError{Field: "co2_kg_per_km", Reason: fmt.Sprintf("must not be negative, got %v", c.CO2KgPerKm)}
	}
	return nil
}
