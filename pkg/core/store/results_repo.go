package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"eps_extraction/pkg/core/eps"
)

// ResultsRepo stores per-filing extraction results keyed by run id, so
// successive runs over the same filing set stay comparable.
type ResultsRepo struct {
	pool *pgxpool.Pool
}

// NewResultsRepo creates a repository over an open pool.
func NewResultsRepo(pool *pgxpool.Pool) *ResultsRepo {
	return &ResultsRepo{pool: pool}
}

// Schema assumption (managed outside this package):
//
//	CREATE TABLE IF NOT EXISTS eps_results (
//	  run_id     UUID,
//	  filename   TEXT,
//	  eps        TEXT,
//	  found      BOOLEAN,
//	  created_at TIMESTAMPTZ,
//	  PRIMARY KEY (run_id, filename)
//	);

// SaveRun persists one batch run. Upserts on (run_id, filename) so a
// retried run overwrites its own partial rows rather than duplicating.
func (r *ResultsRepo) SaveRun(ctx context.Context, runID string, results []eps.Result) error {
	if r.pool == nil {
		return fmt.Errorf("results repo has no database pool")
	}

	query := `
		INSERT INTO eps_results (run_id, filename, eps, found, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (run_id, filename)
		DO UPDATE SET
			eps = EXCLUDED.eps,
			found = EXCLUDED.found,
			created_at = EXCLUDED.created_at;
	`

	now := time.Now()
	for _, res := range results {
		if _, err := r.pool.Exec(ctx, query, runID, res.Filename, res.Value(), res.Found, now); err != nil {
			return fmt.Errorf("failed to save result for %s: %w", res.Filename, err)
		}
	}
	return nil
}

// LoadRun retrieves all results of a run sorted by filename.
func (r *ResultsRepo) LoadRun(ctx context.Context, runID string) ([]eps.Result, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("results repo has no database pool")
	}

	rows, err := r.pool.Query(ctx,
		`SELECT filename, eps, found FROM eps_results WHERE run_id = $1 ORDER BY filename`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}
	defer rows.Close()

	var results []eps.Result
	for rows.Next() {
		var res eps.Result
		if err := rows.Scan(&res.Filename, &res.EPS, &res.Found); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
