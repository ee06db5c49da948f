package eps

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// =============================================================================
// CONFIGURATION - Injected rule table and search radius
// =============================================================================

// Config carries everything that affects pipeline behavior. The zero value
// is not usable; start from DefaultConfig.
type Config struct {
	Rules      []LabelRule
	Exclusions []string

	// MaxCellsRight bounds the same-row search to the right of a label cell.
	MaxCellsRight int
	// MaxRowsDown bounds the following-row search when the label row itself
	// carries no values.
	MaxRowsDown int

	// HeadingBeforeRecency flips the tie-break order between table-heading
	// preference and document recency. The regulatory material does not pin
	// this order down; recency-first is the default.
	HeadingBeforeRecency bool
}

// DefaultConfig returns the built-in rule table and search bounds.
func DefaultConfig() Config {
	return Config{
		Rules:         DefaultRules(),
		Exclusions:    DefaultExclusions(),
		MaxCellsRight: 8,
		MaxRowsDown:   1,
	}
}

// rulesFile is the YAML schema for an external rule table.
type rulesFile struct {
	Rules []struct {
		Name     string `yaml:"name"`
		Pattern  string `yaml:"pattern"`
		Category string `yaml:"category"`
	} `yaml:"rules"`
	Exclusions []string `yaml:"exclusions"`
}

// LoadRules reads an ordered rule table from a YAML file. The file replaces
// the default rules wholesale so operators see exactly what runs.
func LoadRules(path string) ([]LabelRule, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, nil, fmt.Errorf("parse rules file: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	rules := make([]LabelRule, 0, len(file.Rules))
	for i, r := range file.Rules {
		if r.Pattern == "" {
			return nil, nil, fmt.Errorf("rules file %s: rule %d has no pattern", path, i)
		}
		rules = append(rules, LabelRule{
			Name:     r.Name,
			Pattern:  r.Pattern,
			Category: Category(r.Category),
		})
	}
	return rules, file.Exclusions, nil
}
