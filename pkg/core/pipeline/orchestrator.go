// Package pipeline drives the EPS extractor over batches of filings and
// assembles the results table.
package pipeline

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"eps_extraction/pkg/core/eps"
)

// ResultSink persists a completed run. Implementations may write to
// Postgres or any other store; the orchestrator only needs SaveRun.
type ResultSink interface {
	SaveRun(ctx context.Context, runID string, results []eps.Result) error
}

// Orchestrator fans filings out over a bounded worker pool. Filings share
// no mutable state, so the pool needs no locking beyond collecting results.
type Orchestrator struct {
	extractor *eps.Extractor
	workers   int
	sink      ResultSink
}

// NewOrchestrator builds an orchestrator from the pipeline config.
func NewOrchestrator(cfg eps.Config, workers int) (*Orchestrator, error) {
	extractor, err := eps.NewExtractor(cfg)
	if err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{extractor: extractor, workers: workers}, nil
}

// SetSink attaches an optional persistence sink for completed runs.
func (o *Orchestrator) SetSink(sink ResultSink) {
	o.sink = sink
}

// RunDirectory processes every HTML filing in dir. Each filing yields
// exactly one Result; per-filing failures degrade to not-found and never
// abort the batch. Results come back sorted by filename so output is
// deterministic regardless of worker interleaving.
func (o *Orchestrator) RunDirectory(ctx context.Context, dir string) ([]eps.Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read filing directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasSuffix(name, ".html") || strings.HasSuffix(name, ".htm") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	log.Printf("[Orchestrator] Processing %d filings from %s with %d workers",
		len(files), dir, o.workers)

	jobs := make(chan string)
	results := make([]eps.Result, 0, len(files))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				res := o.process(path)
				mu.Lock()
				results = append(results, res)
				mu.Unlock()
			}
		}()
	}

	for _, path := range files {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- path:
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Filename < results[j].Filename
	})

	found := 0
	for _, r := range results {
		if r.Found {
			found++
		}
	}
	log.Printf("[Orchestrator] SUMMARY: filings=%d, found=%d, not_found=%d",
		len(results), found, len(results)-found)

	return results, nil
}

// process isolates one filing. A panic anywhere inside the extraction
// pipeline becomes a not-found Result for that filename.
func (o *Orchestrator) process(path string) (res eps.Result) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Orchestrator] %s: recovered: %v", filepath.Base(path), r)
			res = eps.Result{Filename: filepath.Base(path)}
		}
	}()
	return o.extractor.ExtractFile(path)
}

// Persist saves the run through the configured sink under a fresh run id.
// A nil sink makes this a no-op.
func (o *Orchestrator) Persist(ctx context.Context, results []eps.Result) error {
	if o.sink == nil {
		return nil
	}
	runID := uuid.NewString()
	if err := o.sink.SaveRun(ctx, runID, results); err != nil {
		return fmt.Errorf("persist run %s: %w", runID, err)
	}
	log.Printf("[Orchestrator] Persisted run %s (%d results)", runID, len(results))
	return nil
}

// WriteCSV emits the two-column results table.
func WriteCSV(w io.Writer, results []eps.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"filename", "eps"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write([]string{r.Filename, r.Value()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
