package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps engine errors onto HTTP statuses. Malformed input
// is the caller's fault; anything else, including an invalid route out of
// the engine itself, is ours.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		writeError(w, r, http.StatusBadRequest, ve.Error())
		return
	}
	if errors.Is(err, domain.ErrInsufficientData) {
		writeError(w, r, http.StatusBadRequest, "at least a depot and one delivery location are required")
		return
	}

	log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// metricsResponse converts engine metrics into the wire shape, rounded for
// display.
func metricsResponse(m *domain.RouteMetrics) dto.MetricsResponse {
	segments := make([]dto.SegmentResponse, 0, len(m.Segments))
	for _, s := range m.Segments {
		segments = append(segments, dto.SegmentResponse{
			FromID:      s.FromID,
			ToID:        s.ToID,
			DistanceKm:  round(s.DistanceKm, 2),
			TimeMinutes: round(s.TimeMinutes, 1),
		})
	}

	return dto.MetricsResponse{
		TotalDistanceKm:      round(m.TotalDistanceKm, 2),
		TotalTimeMinutes:     round(m.TotalTimeMinutes, 1),
		TotalTimeFormatted:   services.FormatMinutes(m.TotalTimeMinutes),
		FuelCost:             round(m.FuelCost, 2),
		CO2Kg:                round(m.CO2Kg, 3),
		StopCount:            m.StopCount,
		AvgDistanceKmPerStop: round(m.AvgDistanceKmPerStop, 2),
		Segments:             segments,
		StopTimes:            m.StopTimes,
	}
}
