// Package eps implements the EPS extraction pipeline: label matching,
// value location, numeric normalization, classification, scoring, and
// deterministic selection of a single per-share figure per filing.
package eps

import (
	"fmt"
	"regexp"
)

// =============================================================================
// LABEL RULES - Ordered, declarative phrase table for EPS detection
// =============================================================================

// Category groups label rules by the kind of per-share phrase they match.
type Category string

const (
	CategoryEarningsPerShare Category = "EARNINGS_PER_SHARE"
	CategoryLossPerShare     Category = "LOSS_PER_SHARE"
	CategoryIncomePerShare   Category = "INCOME_PER_SHARE"
	CategoryEPSAbbreviation  Category = "EPS_ABBREVIATION"
)

// LabelRule is one entry in the ordered rule table. Patterns are
// case-insensitive regexes applied to whitespace-normalized cell text.
type LabelRule struct {
	Name     string
	Pattern  string
	Category Category
}

// RuleSet holds compiled label rules plus exclusion patterns that suppress
// matches on share-count rows (weighted average shares outstanding rows
// contain "per share" phrasing but carry share counts, not EPS).
type RuleSet struct {
	rules      []compiledRule
	exclusions []*regexp.Regexp
}

type compiledRule struct {
	rule LabelRule
	re   *regexp.Regexp
}

// NewRuleSet compiles an ordered rule list and exclusion patterns.
func NewRuleSet(rules []LabelRule, exclusions []string) (*RuleSet, error) {
	set := &RuleSet{}
	for _, r := range rules {
		re, err := regexp.Compile(`(?i)` + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("label rule %q: %w", r.Name, err)
		}
		set.rules = append(set.rules, compiledRule{rule: r, re: re})
	}
	for _, pattern := range exclusions {
		re, err := regexp.Compile(`(?i)` + pattern)
		if err != nil {
			return nil, fmt.Errorf("exclusion pattern %q: %w", pattern, err)
		}
		set.exclusions = append(set.exclusions, re)
	}
	return set, nil
}

// Excluded reports whether the text hits an exclusion pattern.
func (s *RuleSet) Excluded(text string) bool {
	for _, re := range s.exclusions {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// DefaultRules returns the built-in ordered rule table covering the label
// phrasings observed across SEC filings.
func DefaultRules() []LabelRule {
	return []LabelRule{
		{
			Name:     "earnings_per_share",
			Pattern:  `(basic|diluted)?\s*earnings\s*(\(loss\))?\s*per\s*(common|outstanding|ordinary)?\s*share`,
			Category: CategoryEarningsPerShare,
		},
		{
			Name:     "loss_per_share",
			Pattern:  `(basic|diluted)?\s*loss\s*per\s*(common|outstanding|ordinary)?\s*share`,
			Category: CategoryLossPerShare,
		},
		{
			Name:     "earnings_loss_per_share",
			Pattern:  `earnings\s*\(loss\)\s*per\s*(common|outstanding|ordinary)?\s*share`,
			Category: CategoryEarningsPerShare,
		},
		{
			Name:     "net_income_per_share",
			Pattern:  `net\s*(income|loss|earnings)\s*(attributable\s*to\s*[a-z\s]+)?\s*per\s*share`,
			Category: CategoryIncomePerShare,
		},
		{
			Name:     "income_loss_per_share",
			Pattern:  `(income\s*\(loss\)|\(loss\)\s*income)\s*per\s*share`,
			Category: CategoryIncomePerShare,
		},
		{
			Name:     "net_income_per_common_share",
			Pattern:  `net\s+income\s+(available\s+to\s+common\s+stockholders\s+)?per\s+common\s+share`,
			Category: CategoryIncomePerShare,
		},
		{
			Name:     "eps_abbreviation",
			Pattern:  `\beps\b`,
			Category: CategoryEPSAbbreviation,
		},
	}
}

// DefaultExclusions returns patterns that disqualify a cell from label
// matching regardless of which rule fired.
func DefaultExclusions() []string {
	return []string{
		`weighted`,
		`average`,
		`shares\s*outstanding`,
	}
}
