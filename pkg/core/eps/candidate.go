package eps

// =============================================================================
// CANDIDATE - One plausible (label, value) pairing
// =============================================================================

// Position orders cells across the whole document: table first, then row,
// then column. Lower is earlier, and for reporting periods the leftmost
// column is commonly the most recent.
type Position struct {
	Table int
	Row   int
	Col   int
}

// Less reports whether p precedes o in document order.
func (p Position) Less(o Position) bool {
	if p.Table != o.Table {
		return p.Table < o.Table
	}
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Candidate pairs a label match with one normalized value cell. Candidates
// are immutable after scoring; selection only reads them.
type Candidate struct {
	Label    LabelMatch
	RawText  string
	Num      Numeric
	Tags     Classification
	RowDelta int
	ColDelta int
	Pos      Position
	EPSTable bool // value sits in a table whose heading names EPS
}

// ScoredCandidate is a candidate with its priority score. The score is
// computed once from the classification tags; identical tags always yield
// identical scores.
type ScoredCandidate struct {
	Candidate
	Score int
}
