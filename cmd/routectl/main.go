package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/config"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/services"
)

// routectl manages a local SQLite working set and runs the solver against
// it, without needing the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "init":
		err = runInit(os.Args[2:])
	case "seed":
		err = runSeed(os.Args[2:])
	case "solve":
		err = runSolve(os.Args[2:], os.Stdout)
	case "compare":
		err = runCompare(os.Args[2:], os.Stdout)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: routectl <command> [flags]

commands:
  init     create the schema in a local sqlite database
  seed     load locations from a JSON seed file
  solve    compute the optimized delivery route
  compare  rank all route strategies against each other`)
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", config.Get("DB_PATH", "data/routes.db"), "sqlite database path")
	_ = fs.Parse(args)

	sdb, err := db.OpenSQLite(*dbPath)
	if err != nil {
		return err
	}
	defer sdb.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSQLiteSchema(sdb); err != nil {
		return err
	}
	log.Println("Schema ready.")
	return nil
}

func runSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	dbPath := fs.String("db", config.Get("DB_PATH", "data/routes.db"), "sqlite database path")
	seedPath := fs.String("file", config.Get("SEED_PATH", "data/locations.json"), "location seed JSON file")
	_ = fs.Parse(args)

	sdb, err := db.OpenSQLite(*dbPath)
	if err != nil {
		return err
	}
	defer sdb.Close()

	if err := repositories.InitSQLiteSchema(sdb); err != nil {
		return err
	}

	log.Println("Seeding database...")
	if err := repositories.SeedSQLiteFromJSON(sdb, *seedPath); err != nil {
		return err
	}
	log.Println("Seeding complete.")
	return nil
}

func runSolve(args []string, out io.Writer) error {
	cfg := services.DefaultConfig()

	fs := flag.NewFlagSet("solve", flag.ExitOnError)
	dbPath := fs.String("db", config.Get("DB_PATH", "data/routes.db"), "sqlite database path")
	fs.IntVar(&cfg.KZones, "k", cfg.KZones, "number of delivery zones")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "clustering seed")
	fs.Float64Var(&cfg.SpeedKmph, "speed", cfg.SpeedKmph, "average speed in km/h")
	fs.IntVar(&cfg.MaxTwoOptPasses, "passes", cfg.MaxTwoOptPasses, "2-opt pass budget (0 keeps the greedy tour)")
	fs.IntVar(&cfg.MaxKMeansIterations, "iters", cfg.MaxKMeansIterations, "k-means iteration budget")
	hour := fs.Int("hour", 9, "hour of day (0-23) for traffic pricing")
	timeout := fs.Int("timeout", 30, "solve budget in seconds")
	asJSON := fs.Bool("json", false, "print the full outcome as JSON")
	_ = fs.Parse(args)

	sdb, err := db.OpenSQLite(*dbPath)
	if err != nil {
		return err
	}
	defer sdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeout)*time.Second)
	defer cancel()

	repo := repositories.NewSqliteLocationRepository(sdb)
	res, err := services.PlanRoute(ctx, services.PlanRouteRequest{
		Hour:   *hour,
		Config: cfg,
	}, repo, nil, nil, nil)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(out, "Optimized route over %d stops (run %s)\n\n", res.Metrics.StopCount, res.RunID)
	for _, s := range res.Stops {
		marker := " "
		if s.IsDepot {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %2d  %-28s %s\n", marker, s.Position, s.Name, s.Locality)
	}
	fmt.Fprintf(out, "\nTotal distance: %.2f km\n", res.Metrics.TotalDistanceKm)
	fmt.Fprintf(out, "Travel time:    %s at hour %d\n", services.FormatMinutes(res.Metrics.TotalTimeMinutes), *hour)
	fmt.Fprintf(out, "Fuel cost:      %.2f\n", res.Metrics.FuelCost)
	fmt.Fprintf(out, "CO2:            %.3f kg\n", res.Metrics.CO2Kg)
	fmt.Fprintf(out, "Improvement:    %.2f km (%.1f%%) over construction in %d passes\n",
		res.Stats.ImprovementKm, res.Stats.ImprovementPct, res.Stats.TwoOptPasses)
	if !res.Converged {
		fmt.Fprintln(out, "\nWarning: solver hit its iteration budget; result is best-so-far.")
	}
	return nil
}

func runCompare(args []string, out io.Writer) error {
	cfg := services.DefaultConfig()

	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	dbPath := fs.String("db", config.Get("DB_PATH", "data/routes.db"), "sqlite database path")
	fs.IntVar(&cfg.KZones, "k", cfg.KZones, "number of delivery zones")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "clustering seed")
	fs.Float64Var(&cfg.SpeedKmph, "speed", cfg.SpeedKmph, "average speed in km/h")
	fs.IntVar(&cfg.MaxTwoOptPasses, "passes", cfg.MaxTwoOptPasses, "2-opt pass budget (0 keeps the greedy tour)")
	fs.IntVar(&cfg.MaxKMeansIterations, "iters", cfg.MaxKMeansIterations, "k-means iteration budget")
	hour := fs.Int("hour", 9, "hour of day (0-23) for traffic pricing")
	timeout := fs.Int("timeout", 30, "solve budget in seconds")
	asJSON := fs.Bool("json", false, "print the full comparison as JSON")
	_ = fs.Parse(args)

	sdb, err := db.OpenSQLite(*dbPath)
	if err != nil {
		return err
	}
	defer sdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(*timeout)*time.Second)
	defer cancel()

	repo := repositories.NewSqliteLocationRepository(sdb)
	comparison, err := services.PlanCompare(ctx, services.CompareRequest{
		Hour:   *hour,
		Config: cfg,
	}, repo, nil)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(comparison)
	}

	fmt.Fprintf(out, "%-18s %14s %10s\n", "strategy", "distance (km)", "time")
	for _, p := range comparison.Plans {
		fmt.Fprintf(out, "%-18s %14.2f %10s\n", p.Strategy, p.Metrics.TotalDistanceKm, services.FormatMinutes(p.Metrics.TotalTimeMinutes))
	}
	fmt.Fprintf(out, "\nBest strategy: %s\n", comparison.Best)
	for _, imp := range comparison.Improvements {
		fmt.Fprintf(out, "Optimized saves %.2f km (%.1f%%) vs %s\n", imp.KmSaved, imp.Percent, imp.Strategy)
	}
	return nil
}
