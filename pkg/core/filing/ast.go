// Package filing parses HTML financial filings into structured table,
// row, and cell records consumed by the EPS extraction pipeline.
package filing

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
)

// =============================================================================
// PARSED TABLE - Structured filing table
// =============================================================================

// ParsedTable represents one HTML table extracted from a filing.
type ParsedTable struct {
	ID           string     `json:"id"`       // SHA-256 fingerprint
	Index        int        `json:"index"`    // Position among the document's tables
	Title        string     `json:"title"`    // Heading text found near the table
	HeadingIsEPS bool       `json:"eps_head"` // Heading explicitly names earnings per share
	Rows         []TableRow `json:"rows"`
}

// TableRow is a single <tr> with its cell texts in column order.
type TableRow struct {
	Index int      `json:"index"`
	Cells []string `json:"cells"`
}

// Cell is one table cell with document coordinates. Cells are immutable
// once parsed; the extraction pipeline only reads them.
type Cell struct {
	Text  string `json:"text"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Table int    `json:"table"`
}

// Flatten converts parsed tables into the flat cell sequence the pattern
// matcher scans. Empty cells are kept so column indices stay aligned with
// the source table.
func Flatten(tables []ParsedTable) []Cell {
	var cells []Cell
	for _, table := range tables {
		for _, row := range table.Rows {
			for col, text := range row.Cells {
				cells = append(cells, Cell{
					Text:  text,
					Row:   row.Index,
					Col:   col,
					Table: table.Index,
				})
			}
		}
	}
	return cells
}

// =============================================================================
// TABLE ID GENERATION - Fingerprinting for debug logs
// =============================================================================

// GenerateTableID creates a stable fingerprint for a table.
func GenerateTableID(title string, rowCount int, position int) string {
	data := title + strconv.Itoa(rowCount) + strconv.Itoa(position)
	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:8])
}

// =============================================================================
// HEADING DETECTION - Tables explicitly titled as EPS tables
// =============================================================================

var epsHeadingPattern = regexp.MustCompile(`(?i)(earnings|income|loss)\s*(\(loss\))?\s*per\s*(common\s*|ordinary\s*)?share|\beps\b`)

// IsEPSHeading reports whether a table title explicitly names earnings
// per share. Tables with such headings outrank incidental matches during
// scoring.
func IsEPSHeading(title string) bool {
	return epsHeadingPattern.MatchString(title)
}

// NormalizeText collapses whitespace artifacts common in filing HTML:
// non-breaking spaces, line breaks inside labels, and entity residue.
func NormalizeText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.ReplaceAll(s, "\u2007", " ")
	s = strings.ReplaceAll(s, "\u202f", " ")
	return strings.Join(strings.Fields(s), " ")
}
