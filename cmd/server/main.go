package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/api"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"
	"route-optimizer-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	seedPath := config.Get("SEED_PATH", "")
	cacheTTL := config.GetInt("ROUTE_CACHE_TTL_SECONDS", 3600)
	solveTimeout := config.GetInt("SOLVE_TIMEOUT_SECONDS", 30)

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pg, err := db.OpenPostgres(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	ctx := context.Background()
	if err := repositories.InitPostgresSchema(ctx, pg); err != nil {
		log.Fatal(err)
	}

	// Seed demo data on startup for local runs when a seed file is configured.
	if seedPath != "" {
		if err := repositories.SeedPostgresFromJSON(ctx, pg, seedPath); err != nil {
			log.Fatal(err)
		}
		log.Printf("Seeded locations from %s", seedPath)
	}

	matrices, err := cache.NewMatrixLRU(16)
	if err != nil {
		log.Fatal(err)
	}

	// The route cache is optional: without REDIS_ADDR, or when Redis is
	// unreachable, every request recomputes.
	var routeCache ports.RouteCache
	if addr := strings.TrimSpace(os.Getenv("REDIS_ADDR")); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("redis unavailable addr=%s, route cache disabled: %v", addr, err)
			_ = client.Close()
		} else {
			defer client.Close()
			routeCache = cache.NewRedisRouteCache(client, time.Duration(cacheTTL)*time.Second)
		}
	}

	router := api.NewRouter(api.Deps{
		Locations:    repositories.NewPostgresLocationRepository(pg),
		Runs:         repositories.NewPostgresRunRepository(pg),
		Matrices:     matrices,
		Routes:       routeCache,
		Config:       services.DefaultConfig(),
		SolveTimeout: time.Duration(solveTimeout) * time.Second,
	})

	// Write timeout stays above the solve timeout so slow solves answer
	// rather than drop.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
