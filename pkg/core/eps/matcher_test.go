// Package eps - Test Suite for label pattern matching
package eps

import (
	"os"
	"path/filepath"
	"testing"

	"eps_extraction/pkg/core/filing"
)

func mustRuleSet(t *testing.T) *RuleSet {
	t.Helper()
	set, err := NewRuleSet(DefaultRules(), DefaultExclusions())
	if err != nil {
		t.Fatalf("NewRuleSet: %v", err)
	}
	return set
}

func TestMatcher_LabelDetection(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantMatch bool
	}{
		// EPS phrasings
		{"Plain EPS phrase", "Earnings per share", true},
		{"Diluted variant", "Diluted earnings per share", true},
		{"Basic variant", "Basic earnings per common share", true},
		{"Loss per share", "Net loss per share", true},
		{"Loss variant", "Basic loss per share", true},
		{"Income loss combined", "Income (loss) per share", true},
		{"Earnings loss combined", "Earnings (loss) per ordinary share", true},
		{"Attributable phrasing", "Net income attributable to common stockholders per share", true},
		{"Common stockholders", "Net income available to common stockholders per common share", true},
		{"EPS abbreviation", "GAAP diluted EPS", true},
		{"Case insensitive", "DILUTED EARNINGS PER SHARE", true},
		{"Trailing colon", "Net income per share:", true},

		// Non-labels
		{"Revenue row", "Total revenues", false},
		{"Share price", "Closing price per warrant", false},
		{"Empty", "", false},

		// Exclusions beat matching rules
		{"Weighted average row", "Weighted average shares outstanding", false},
		{"Weighted average with per share", "Weighted average common shares used in per share calculation", false},
		{"Shares outstanding", "Common shares outstanding", false},
	}

	matcher := NewMatcher(mustRuleSet(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := []filing.Cell{{Text: tt.text, Row: 0, Col: 0, Table: 0}}
			matches := matcher.Match(cells)
			if got := len(matches) > 0; got != tt.wantMatch {
				t.Errorf("Match(%q) found = %v, want %v", tt.text, got, tt.wantMatch)
			}
		})
	}
}

func TestMatcher_RetainsAllRuleHits(t *testing.T) {
	// A cell matching several rules yields several LabelMatch records;
	// deduplication is not the matcher's job.
	matcher := NewMatcher(mustRuleSet(t))
	cells := []filing.Cell{{Text: "Net loss per share", Row: 3, Col: 0, Table: 1}}

	matches := matcher.Match(cells)
	if len(matches) < 2 {
		t.Fatalf("expected multiple rule hits, got %d", len(matches))
	}
	for _, m := range matches {
		if m.Cell.Row != 3 || m.Cell.Table != 1 {
			t.Errorf("match lost cell coordinates: %+v", m.Cell)
		}
		if m.Phrase == "" {
			t.Errorf("match has empty phrase")
		}
	}
}

func TestMatcher_PureOverInput(t *testing.T) {
	matcher := NewMatcher(mustRuleSet(t))
	cells := []filing.Cell{
		{Text: "Diluted earnings per share", Row: 0, Col: 0},
		{Text: "$0.74", Row: 0, Col: 1},
	}

	first := matcher.Match(cells)
	second := matcher.Match(cells)
	if len(first) != len(second) {
		t.Fatalf("match counts differ across runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("match %d differs across runs", i)
		}
	}
}

func TestLoadRulesRejectsBadInput(t *testing.T) {
	if _, _, err := LoadRules("testdata/does_not_exist.yaml"); err == nil {
		t.Error("expected error for missing rules file")
	}
}

func TestLoadRulesReplacesRuleTable(t *testing.T) {
	content := `rules:
  - name: custom_eps
    pattern: 'per\s*unit\s*earnings'
    category: EARNINGS_PER_SHARE
exclusions:
  - 'weighted'
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	rules, exclusions, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}
	if len(rules) != 1 || rules[0].Name != "custom_eps" {
		t.Fatalf("rules = %+v, want single custom_eps rule", rules)
	}
	if len(exclusions) != 1 {
		t.Fatalf("exclusions = %v, want one entry", exclusions)
	}

	set, err := NewRuleSet(rules, exclusions)
	if err != nil {
		t.Fatalf("NewRuleSet: %v", err)
	}
	matcher := NewMatcher(set)
	cells := []filing.Cell{
		{Text: "Per unit earnings"},
		{Text: "Diluted earnings per share"},
	}
	matches := matcher.Match(cells)
	if len(matches) != 1 || matches[0].Cell.Text != "Per unit earnings" {
		t.Errorf("custom rule table not applied: %+v", matches)
	}
}
