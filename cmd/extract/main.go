package main

import (
	"context"
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/joho/godotenv"

	"eps_extraction/pkg/core/eps"
	"eps_extraction/pkg/core/pipeline"
	"eps_extraction/pkg/core/store"
)

func main() {
	dir := flag.String("dir", "Training_Filings", "directory of HTML filings")
	out := flag.String("out", "eps_results.csv", "output CSV path")
	workers := flag.Int("workers", runtime.NumCPU(), "concurrent filings")
	rulesPath := flag.String("rules", "", "YAML rule table replacing the built-in label rules")
	headingFirst := flag.Bool("heading-first", false,
		"on score ties prefer EPS-headed tables over document recency")
	replayRun := flag.String("run", "", "print a stored run as CSV instead of processing filings")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	ctx := context.Background()

	// Replay mode: dump a persisted run and exit without touching filings.
	if *replayRun != "" {
		pool, err := store.Connect(ctx)
		if err != nil {
			log.Fatalf("Error connecting to database: %v", err)
		}
		defer pool.Close()

		results, err := store.NewResultsRepo(pool).LoadRun(ctx, *replayRun)
		if err != nil {
			log.Fatalf("Error loading run %s: %v", *replayRun, err)
		}
		if err := pipeline.WriteCSV(os.Stdout, results); err != nil {
			log.Fatalf("Error writing CSV: %v", err)
		}
		return
	}

	cfg := eps.DefaultConfig()
	cfg.HeadingBeforeRecency = *headingFirst
	if *rulesPath != "" {
		rules, exclusions, err := eps.LoadRules(*rulesPath)
		if err != nil {
			log.Fatalf("Error loading rules: %v", err)
		}
		cfg.Rules = rules
		if len(exclusions) > 0 {
			cfg.Exclusions = exclusions
		}
		log.Printf("Loaded %d label rules from %s", len(rules), *rulesPath)
	}

	orch, err := pipeline.NewOrchestrator(cfg, *workers)
	if err != nil {
		log.Fatalf("Error building pipeline: %v", err)
	}

	// Optional Postgres sink for run history.
	if os.Getenv("DATABASE_URL") != "" {
		pool, err := store.Connect(ctx)
		if err != nil {
			log.Fatalf("Error connecting to database: %v", err)
		}
		defer pool.Close()
		orch.SetSink(store.NewResultsRepo(pool))
	}

	results, err := orch.RunDirectory(ctx, *dir)
	if err != nil {
		log.Fatalf("Error processing %s: %v", *dir, err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("Error creating %s: %v", *out, err)
	}
	defer f.Close()

	if err := pipeline.WriteCSV(f, results); err != nil {
		log.Fatalf("Error writing CSV: %v", err)
	}
	log.Printf("Wrote %d results to %s", len(results), *out)

	if err := orch.Persist(ctx, results); err != nil {
		log.Printf("Warning: failed to persist run: %v", err)
	}
}
