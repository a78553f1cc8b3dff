package api

import (
	"net/http"
	"time"

	"route-optimizer-service/internal/api/handlers"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// Deps bundles everything the HTTP layer needs. Routes and Runs may be nil
// when caching or history is disabled; handlers degrade accordingly.
type Deps struct {
	Locations    ports.LocationRepository
	Runs         ports.RunRepository
	Matrices     ports.MatrixCache
	Routes       ports.RouteCache
	Config       services.Config
	SolveTimeout time.Duration
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	locHandler := &handlers.LocationHandler{Repo: deps.Locations}
	routesHandler := &handlers.RoutesHandler{
		Repo:         deps.Locations,
		Matrices:     deps.Matrices,
		Routes:       deps.Routes,
		Runs:         deps.Runs,
		Config:       deps.Config,
		SolveTimeout: deps.SolveTimeout,
	}
	runsHandler := &handlers.RunsHandler{Repo: deps.Runs}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/locations", locHandler.List)
	mux.HandleFunc("/locations/summary", locHandler.Summary)
	mux.HandleFunc("/routes/optimize", routesHandler.Optimize)
	mux.HandleFunc("/routes/compare", routesHandler.Compare)
	mux.HandleFunc("/runs", runsHandler.List)

	return requestIDMiddleware(loggingMiddleware(mux))
}
