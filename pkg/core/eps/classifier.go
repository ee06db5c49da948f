package eps

import (
	"regexp"
	"strings"
)

// =============================================================================
// CLASSIFIER - Accounting-variant tags per candidate
// =============================================================================

// Dilution is the basic/diluted axis.
type Dilution int

const (
	DilutionUnspecified Dilution = iota
	DilutionBasic
	DilutionDiluted
)

func (d Dilution) String() string {
	switch d {
	case DilutionBasic:
		return "BASIC"
	case DilutionDiluted:
		return "DILUTED"
	}
	return "UNSPECIFIED"
}

// Basis is the GAAP/non-GAAP axis.
type Basis int

const (
	BasisGAAP Basis = iota
	BasisNonGAAP
	BasisUnspecified
)

func (b Basis) String() string {
	switch b {
	case BasisGAAP:
		return "GAAP"
	case BasisNonGAAP:
		return "NON_GAAP"
	}
	return "UNSPECIFIED"
}

// Operations is the continuing/discontinued/total axis.
type Operations int

const (
	OperationsUnspecified Operations = iota
	OperationsContinuing
	OperationsDiscontinued
	OperationsTotal
)

func (o Operations) String() string {
	switch o {
	case OperationsContinuing:
		return "CONTINUING"
	case OperationsDiscontinued:
		return "DISCONTINUED"
	case OperationsTotal:
		return "TOTAL"
	}
	return "UNSPECIFIED"
}

// Classification carries exactly one tag per axis.
type Classification struct {
	Dilution   Dilution
	Basis      Basis
	Operations Operations
}

func (c Classification) String() string {
	return c.Dilution.String() + "/" + c.Basis.String() + "/" + c.Operations.String()
}

var (
	basicPattern       = regexp.MustCompile(`(?i)\bbasic\b`)
	dilutedPattern     = regexp.MustCompile(`(?i)\bdiluted\b`)
	combinedPattern    = regexp.MustCompile(`(?i)(basic\s*(and|&)\s*diluted|diluted\s*(and|&)\s*basic)`)
	nonGAAPPattern     = regexp.MustCompile(`(?i)(non-gaap|non\s*gaap|adjusted|pro\s*forma)`)
	gaapPattern        = regexp.MustCompile(`(?i)\bgaap\b`)
	continuingPattern  = regexp.MustCompile(`(?i)continuing\s*operations`)
	discontinuedPat    = regexp.MustCompile(`(?i)discontinued\s*operations`)
	totalIncomePattern = regexp.MustCompile(`(?i)(net\s*(income|loss|earnings)|\btotal\b)`)
)

// Classify assigns one tag per axis from the label text and the column
// header of the value cell. The header, being the more specific context,
// wins on conflicts; the label fills whatever the header leaves open.
// Pure function of its inputs.
func Classify(label, header string) Classification {
	return Classification{
		Dilution:   classifyDilution(header, label),
		Basis:      classifyBasis(header, label),
		Operations: classifyOperations(header, label),
	}
}

func classifyDilution(texts ...string) Dilution {
	for _, text := range texts {
		if text == "" {
			continue
		}
		// Combined "basic and diluted" labels report one number for both
		// variants; tag it diluted, the headline variant.
		if combinedPattern.MatchString(text) {
			return DilutionDiluted
		}
		hasBasic := basicPattern.MatchString(text)
		hasDiluted := dilutedPattern.MatchString(text)
		switch {
		case hasDiluted && hasBasic:
			return DilutionDiluted
		case hasDiluted:
			return DilutionDiluted
		case hasBasic:
			return DilutionBasic
		}
	}
	return DilutionUnspecified
}

func classifyBasis(texts ...string) Basis {
	for _, text := range texts {
		if text == "" {
			continue
		}
		// Non-GAAP markers first: "non-GAAP" itself contains "GAAP".
		if nonGAAPPattern.MatchString(text) {
			return BasisNonGAAP
		}
		if gaapPattern.MatchString(text) {
			return BasisGAAP
		}
	}
	// GAAP is the regulatory default when nothing marks the figure as
	// adjusted.
	return BasisGAAP
}

func classifyOperations(texts ...string) Operations {
	for _, text := range texts {
		if text == "" {
			continue
		}
		switch {
		case discontinuedPat.MatchString(text):
			return OperationsDiscontinued
		case continuingPattern.MatchString(text):
			return OperationsContinuing
		case totalIncomePattern.MatchString(text):
			return OperationsTotal
		}
	}
	return OperationsUnspecified
}

// headerFor returns the column-header context for a value cell: the text
// of the same column in the table's first row, when that text is not
// itself numeric.
func headerFor(rows []string) string {
	for _, text := range rows {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if _, ok := NormalizeNumeric(text); ok {
			return ""
		}
		return text
	}
	return ""
}
