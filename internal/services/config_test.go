package services

import (
	"errors"
	"testing"

	"route-optimizer-service/internal/domain"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero zones", func(c *Config) { c.KZones = 0 }, "k_zones"},
		{"negative kmeans cap", func(c *Config) { c.MaxKMeansIterations = -1 }, "max_kmeans_iterations"},
		{"negative pass cap", func(c *Config) { c.MaxTwoOptPasses = -1 }, "max_two_opt_passes"},
		{"zero speed", func(c *Config) { c.SpeedKmph = 0 }, "speed_kmph"},
		{"zero peak multiplier", func(c *Config) { c.PeakMultiplier = 0 }, "peak_multiplier"},
		{"zero offpeak multiplier", func(c *Config) { c.OffpeakMultiplier = 0 }, "offpeak_multiplier"},
		{"peak hour out of range", func(c *Config) { c.PeakHours = map[int]bool{25: true} }, "peak_hours"},
		{"negative fuel rate", func(c *Config) { c.FuelCostPerKm = -1 }, "fuel_cost_per_km"},
		{"negative co2 rate", func(c *Config) { c.CO2KgPerKm = -1 }, "co2_kg_per_km"},
	}

	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)

		err := cfg.Validate()
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected *ValidationError, got %v", tc.name, err)
			continue
		}
		if ve.Field != tc.field {
			t.Errorf("%s: field = %q, want %q", tc.name, ve.Field, tc.field)
		}
	}
}

func TestClampZones(t *testing.T) {
	cases := []struct {
		k, stops, want int
	}{
		{4, 10, 4},
		{4, 3, 3},
		{0, 5, 1},
		{-2, 5, 1},
		{1, 1, 1},
	}
	for _, tc := range cases {
		if got := clampZones(tc.k, tc.stops); got != tc.want {
			t.Errorf("clampZones(%d, %d) = %d, want %d", tc.k, tc.stops, got, tc.want)
		}
	}
}
