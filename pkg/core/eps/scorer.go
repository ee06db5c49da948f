package eps

// =============================================================================
// SCORER - Priority score from classification tags
// =============================================================================

// Tag ranks. Wider gaps between weight tiers keep the axes from ever
// interfering: basis dominates dilution dominates operations.
const (
	weightBasis      = 1000
	weightDilution   = 100
	weightOperations = 10

	// EPS values outside this magnitude are share counts or scaling
	// artifacts, not per-share figures.
	plausibleMagnitude = 100
	implausiblePenalty = -1_000_000
)

// Scorer maps classification tags to a single integer priority. Identical
// tags always produce identical scores; structural position is arbitrated
// separately by the selector so the score stays reproducible from tags
// alone.
type Scorer struct{}

// NewScorer creates a scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes the candidate's priority.
func (s *Scorer) Score(c Candidate) int {
	score := basisRank(c.Tags.Basis)*weightBasis +
		dilutionRank(c.Tags.Dilution)*weightDilution +
		operationsRank(c.Tags.Operations)*weightOperations

	if c.Num.Value > plausibleMagnitude || c.Num.Value < -plausibleMagnitude {
		score += implausiblePenalty
	}
	return score
}

// ScoreAll scores every candidate, preserving input order.
func (s *Scorer) ScoreAll(candidates []Candidate) []ScoredCandidate {
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		scored = append(scored, ScoredCandidate{Candidate: c, Score: s.Score(c)})
	}
	return scored
}

// basisRank: GAAP is the regulatory default and outranks non-GAAP. An
// unspecified basis is treated as GAAP.
func basisRank(b Basis) int {
	if b == BasisNonGAAP {
		return 0
	}
	return 1
}

// dilutionRank: diluted is the headline figure, basic is accepted when
// diluted is absent, unspecified ranks last.
func dilutionRank(d Dilution) int {
	switch d {
	case DilutionDiluted:
		return 2
	case DilutionBasic:
		return 1
	}
	return 0
}

// operationsRank: total and continuing operations reflect the ongoing
// business; discontinued operations rank below even unspecified rows.
func operationsRank(o Operations) int {
	switch o {
	case OperationsTotal, OperationsContinuing:
		return 2
	case OperationsUnspecified:
		return 1
	}
	return 0
}
