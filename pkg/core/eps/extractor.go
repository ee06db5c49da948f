package eps

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"eps_extraction/pkg/core/filing"
)

// =============================================================================
// EXTRACTOR - Per-filing pipeline: match -> locate -> classify -> score -> select
// =============================================================================

// NotFoundSentinel is the explicit "no EPS value found" marker. Filings
// with no extractable EPS are a normal outcome, not an error.
const NotFoundSentinel = "not found"

// Result is the single output record per filing.
type Result struct {
	Filename string `json:"filename"`
	EPS      string `json:"eps"`
	Found    bool   `json:"found"`
}

// Value returns the EPS text or the not-found sentinel.
func (r Result) Value() string {
	if r.Found {
		return r.EPS
	}
	return NotFoundSentinel
}

// Extractor runs the full pipeline over one filing at a time. It holds no
// per-filing state, so a single Extractor is safe to share across a worker
// pool.
type Extractor struct {
	parser   *filing.TableParser
	matcher  *Matcher
	locator  *Locator
	scorer   *Scorer
	selector *Selector
}

// NewExtractor builds the pipeline from a config. Fails only on an
// uncompilable rule table.
func NewExtractor(cfg Config) (*Extractor, error) {
	set, err := NewRuleSet(cfg.Rules, cfg.Exclusions)
	if err != nil {
		return nil, fmt.Errorf("compile rule set: %w", err)
	}
	return &Extractor{
		parser:   filing.NewTableParser(),
		matcher:  NewMatcher(set),
		locator:  NewLocator(cfg),
		scorer:   NewScorer(),
		selector: NewSelector(cfg),
	}, nil
}

// ExtractFile reads and processes one filing from disk. Read and parse
// failures degrade to a not-found Result; they never abort a batch.
func (e *Extractor) ExtractFile(path string) Result {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[Extractor] %s: read failed: %v", name, err)
		return Result{Filename: name}
	}
	return e.Extract(name, string(data))
}

// Extract runs the pipeline over one filing's HTML and always returns
// exactly one Result.
func (e *Extractor) Extract(filename, html string) Result {
	tables, err := e.parser.ParseHTML(html)
	if err != nil {
		log.Printf("[Extractor] %s: parse failed: %v", filename, err)
		return Result{Filename: filename}
	}

	candidates := e.collect(tables)
	scored := e.scorer.ScoreAll(candidates)

	winner, ok := e.selector.Select(scored)
	if !ok {
		log.Printf("[Extractor] %s: no EPS candidates", filename)
		return Result{Filename: filename}
	}

	log.Printf("[Extractor] %s: selected %s (%s, score=%d, table=%d row=%d col=%d)",
		filename, winner.Num.Text, winner.Tags, winner.Score,
		winner.Pos.Table, winner.Pos.Row, winner.Pos.Col)

	return Result{Filename: filename, EPS: winner.Num.Text, Found: true}
}

// collect produces every candidate in the filing, in document order.
func (e *Extractor) collect(tables []filing.ParsedTable) []Candidate {
	cells := filing.Flatten(tables)
	matches := e.matcher.Match(cells)

	var candidates []Candidate
	for _, m := range matches {
		if m.Cell.Table >= len(tables) {
			continue
		}
		table := tables[m.Cell.Table]
		labelContext := rowText(table, m.Cell.Row)

		for _, hit := range e.locator.Locate(table, m) {
			context := labelContext
			if hit.RowContext != "" {
				context += " " + hit.RowContext
			}
			candidates = append(candidates, Candidate{
				Label:    m,
				RawText:  hit.Cell.Text,
				Num:      hit.Num,
				Tags:     Classify(context, hit.Header),
				RowDelta: hit.RowDelta,
				ColDelta: hit.ColDelta,
				Pos:      Position{Table: table.Index, Row: hit.Cell.Row, Col: hit.Cell.Col},
				EPSTable: table.HeadingIsEPS,
			})
		}
	}
	return candidates
}

// rowText joins a row's cells into the classification context the way the
// row reads in the rendered filing.
func rowText(table filing.ParsedTable, rowIdx int) string {
	if rowIdx >= len(table.Rows) {
		return ""
	}
	return strings.Join(table.Rows[rowIdx].Cells, " ")
}
