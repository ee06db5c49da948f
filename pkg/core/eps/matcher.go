package eps

import (
	"eps_extraction/pkg/core/filing"
)

// =============================================================================
// PATTERN MATCHER - Label cell detection over the flat cell sequence
// =============================================================================

// LabelMatch records one rule hit on one cell. A cell matching several
// rules yields several LabelMatch records; classification resolves the
// semantics later.
type LabelMatch struct {
	Cell     filing.Cell
	Phrase   string
	Category Category
}

// Matcher scans cell text against an ordered rule set. Pure over its
// input: no state survives a call.
type Matcher struct {
	set *RuleSet
}

// NewMatcher creates a matcher over a compiled rule set.
func NewMatcher(set *RuleSet) *Matcher {
	return &Matcher{set: set}
}

// Match returns every label hit in the filing's cell sequence. Zero
// matches is a normal outcome, not an error; the selector reports
// "not found" downstream.
func (m *Matcher) Match(cells []filing.Cell) []LabelMatch {
	var matches []LabelMatch
	for _, cell := range cells {
		if cell.Text == "" {
			continue
		}
		if m.set.Excluded(cell.Text) {
			continue
		}
		for _, cr := range m.set.rules {
			phrase := cr.re.FindString(cell.Text)
			if phrase == "" {
				continue
			}
			matches = append(matches, LabelMatch{
				Cell:     cell,
				Phrase:   phrase,
				Category: cr.rule.Category,
			})
		}
	}
	return matches
}
