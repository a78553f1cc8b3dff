package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"route-optimizer-service/internal/domain"
)

func TestEstimateTravelTimeOffpeak(t *testing.T) {
	// 60 km at 30 km/h is two hours flat outside the peak windows.
	got, err := EstimateTravelTime(60, 12, DefaultConfig())
	require.NoError(t, err)
	require.InDelta(t, 120.0, got, 1e-9)
}

func TestEstimateTravelTimePeakWindows(t *testing.T) {
	cfg := DefaultConfig()

	for _, hour := range []int{8, 9, 17, 18} {
		got, err := EstimateTravelTime(60, hour, cfg)
		require.NoError(t, err)
		require.InDelta(t, 168.0, got, 1e-9, "hour %d", hour)
	}

	for _, hour := range []int{0, 7, 10, 16, 19, 23} {
		got, err := EstimateTravelTime(60, hour, cfg)
		require.NoError(t, err)
		require.InDelta(t, 120.0, got, 1e-9, "hour %d", hour)
	}
}

func TestEstimateTravelTimeCustomPeakTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PeakHours = map[int]bool{22: true}
	cfg.PeakMultiplier = 2.0

	late, err := EstimateTravelTime(30, 22, cfg)
	require.NoError(t, err)
	morning, err := EstimateTravelTime(30, 8, cfg)
	require.NoError(t, err)

	require.InDelta(t, 2*morning, late, 1e-9)
}

func TestEstimateTravelTimeZeroDistance(t *testing.T) {
	got, err := EstimateTravelTime(0, 8, DefaultConfig())
	require.NoError(t, err)
	require.Zero(t, got)
}

func TestEstimateTravelTimeRejectsBadInput(t *testing.T) {
	cases := []struct {
		name       string
		distanceKm float64
		hour       int
		field      string
	}{
		{"negative distance", -1, 12, "distance_km"},
		{"hour below range", 10, -1, "hour"},
		{"hour above range", 10, 24, "hour"},
	}
	for _, tc := range cases {
		_, err := EstimateTravelTime(tc.distanceKm, tc.hour, DefaultConfig())
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve, tc.name)
		require.Equal(t, tc.field, ve.Field, tc.name)
	}

	cfg := DefaultConfig()
	cfg.SpeedKmph = 0
	_, err := EstimateTravelTime(10, 12, cfg)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "speed_kmph", ve.Field)
}

func TestEstimateCostLinearInDistance(t *testing.T) {
	cfg := DefaultConfig()

	fuel, co2, err := EstimateCost(100, cfg)
	require.NoError(t, err)
	require.InDelta(t, 792.0, fuel, 1e-9)
	require.InDelta(t, 19.25, co2, 1e-9)

	fuel2, co22, err := EstimateCost(200, cfg)
	require.NoError(t, err)
	require.InDelta(t, 2*fuel, fuel2, 1e-9)
	require.InDelta(t, 2*co2, co22, 1e-9)

	fuel0, co20, err := EstimateCost(0, cfg)
	require.NoError(t, err)
	require.Zero(t, fuel0)
	require.Zero(t, co20)
}

func TestEstimateCostRejectsNegativeDistance(t *testing.T) {
	_, _, err := EstimateCost(-5, DefaultConfig())
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, "distance_km", ve.Field)
}
