package eps

// =============================================================================
// SELECTOR - Deterministic winner per filing
// =============================================================================

// Selector picks the single winning candidate. Ordering after the score:
// document position (earlier table, lower row, leftmost column — the most
// recent period), then the EPS-heading table preference. The order of the
// last two is configurable because filings do not pin it down; recency
// first is the default. Final ties go to the first occurrence, so output
// is stable across runs.
type Selector struct {
	headingBeforeRecency bool
}

// NewSelector creates a selector with the configured tie-break order.
func NewSelector(cfg Config) *Selector {
	return &Selector{headingBeforeRecency: cfg.HeadingBeforeRecency}
}

// Select returns the maximum-score candidate, or ok=false when the set is
// empty. It never averages or combines candidates.
func (s *Selector) Select(candidates []ScoredCandidate) (ScoredCandidate, bool) {
	if len(candidates) == 0 {
		return ScoredCandidate{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if s.better(c, best) {
			best = c
		}
	}
	return best, true
}

// better reports whether a strictly outranks b. Candidates arrive in
// document order, so "not strictly better" keeps the earliest.
func (s *Selector) better(a, b ScoredCandidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if s.headingBeforeRecency && a.EPSTable != b.EPSTable {
		return a.EPSTable
	}
	if a.Pos != b.Pos {
		return a.Pos.Less(b.Pos)
	}
	if a.EPSTable != b.EPSTable {
		return a.EPSTable
	}
	return false
}
