package eps

import (
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// NUMERIC NORMALIZER - Raw cell text to signed decimal
// =============================================================================

// Numeric is a normalized signed decimal. Text keeps the source precision
// ("0.530" stays "0.530"); Value is the parsed float for scoring guards.
type Numeric struct {
	Text  string
	Value float64
}

var (
	// Trailing footnote reference after a digit: "0.74(1)". Distinguished
	// from negative parentheses, which wrap the whole number.
	footnoteRefPattern = regexp.MustCompile(`(\d)\s*\(\d{1,2}\)\s*$`)
	// Trailing superscript letter markers: "0.74a", "1.22 b".
	footnoteLetterPattern = regexp.MustCompile(`(\d)\s*[a-zA-Z]\s*$`)
	decimalPattern        = regexp.MustCompile(`\d+\.\d+`)
	integerPattern        = regexp.MustCompile(`\d+`)
	// Hyphen, minus sign, en dash, em dash used as a leading negative sign.
	// Trailing dashes are handled against the matched token in signedNumeric.
	leadingDashPattern = regexp.MustCompile("^[-−–—]")
	yearPattern        = regexp.MustCompile(`^(19|20)\d{2}$`)
)

// NormalizeNumeric parses raw cell text into a signed decimal. It strips
// currency symbols, thousands separators, and footnote markers, unwraps
// parenthesized negatives, and normalizes dash-style minus signs. Tokens
// that are not pure numbers after cleaning (percentages, dates, bare
// footnote references) are rejected.
func NormalizeNumeric(raw string) (Numeric, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return Numeric{}, false
	}

	// Percentages and slashed dates are never EPS values.
	if strings.ContainsAny(cleaned, "%/") {
		return Numeric{}, false
	}

	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimRight(cleaned, "*")
	cleaned = footnoteRefPattern.ReplaceAllString(cleaned, "$1")
	cleaned = footnoteLetterPattern.ReplaceAllString(cleaned, "$1")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" || isBlankIndicator(cleaned) {
		return Numeric{}, false
	}

	// Decimal numbers first: EPS is reported with decimal places, and a
	// decimal match sidesteps footnote-integer ambiguity entirely.
	if token := decimalPattern.FindString(cleaned); token != "" {
		return signedNumeric(cleaned, token)
	}

	// Integer fallback. Small bare integers are footnote references, and
	// four-digit years show up in period headers.
	for _, token := range integerPattern.FindAllString(cleaned, -1) {
		if yearPattern.MatchString(token) {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		if len(token) <= 2 && n <= 20 {
			continue
		}
		return signedNumeric(cleaned, token)
	}

	return Numeric{}, false
}

// signedNumeric applies the negative-sign conventions to a matched token.
func signedNumeric(cleaned, token string) (Numeric, bool) {
	negative := false

	// Parentheses wrapping the token denote a negative value. An opening
	// parenthesis with no close means the wrap was split across cells.
	wrapped := regexp.MustCompile(`\(\s*` + regexp.QuoteMeta(token) + `\s*\)`)
	// A dash directly after the token at end of cell is a minus sign
	// ("0.53-"), not a blank indicator; bare dashes never reach here.
	trailingDash := regexp.MustCompile(regexp.QuoteMeta(token) + `\s*[-−–—]$`)
	switch {
	case wrapped.MatchString(cleaned):
		negative = true
	case strings.HasPrefix(cleaned, "(") && !strings.Contains(cleaned, ")"):
		negative = true
	case leadingDashPattern.MatchString(cleaned):
		negative = true
	case trailingDash.MatchString(cleaned):
		negative = true
	}

	value, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return Numeric{}, false
	}

	text := token
	if negative {
		text = "-" + token
		value = -value
	}
	return Numeric{Text: text, Value: value}, true
}

// OpensParenthesis reports whether a cell looks like the left half of a
// parenthesized negative split across cells: "(", "$(" or "(0.53" with no
// close.
func OpensParenthesis(raw string) bool {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), "$", "")
	cleaned = strings.TrimSpace(cleaned)
	return strings.HasPrefix(cleaned, "(") && !strings.Contains(cleaned, ")")
}

// isBlankIndicator reports dash and n/a placeholders filings use for
// empty cells.
func isBlankIndicator(s string) bool {
	switch s {
	case "-", "–", "—", "−", "N/A", "n/a", "(", ")":
		return true
	}
	return false
}
