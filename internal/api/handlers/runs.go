package handlers

import (
	"net/http"
	"strconv"

	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/ports"
)

// RunsHandler exposes solve history retrieval.
type RunsHandler struct {
	Repo ports.RunRepository
}

func (h *RunsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.Repo == nil {
		writeError(w, r, http.StatusServiceUnavailable, "run history is not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	runs, err := h.Repo.ListRuns(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	res := dto.ListRunsResponse{
		Runs: make([]dto.RunResponse, 0, len(runs)),
	}
	for _, run := range runs {
		res.Runs = append(res.Runs, dto.RunResponse{
			RunID:          run.RunID,
			RequestedAt:    run.RequestedAt,
			KZones:         run.KZones,
			Seed:           run.Seed,
			Hour:           run.Hour,
			StopCount:      run.StopCount,
			TotalKm:        round(run.TotalKm, 2),
			ImprovementPct: round(run.ImprovementPct, 1),
			Converged:      run.Converged,
			DurationMs:     run.DurationMs,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
