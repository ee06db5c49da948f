package eps

import (
	"strings"

	"eps_extraction/pkg/core/filing"
)

// =============================================================================
// VALUE LOCATOR - Bounded adjacency search around a label cell
// =============================================================================

// ValueHit is one numeric cell found within the search radius of a label.
type ValueHit struct {
	Cell       filing.Cell
	Num        Numeric
	RowDelta   int
	ColDelta   int
	Header     string // column-header context for the value cell, may be empty
	RowContext string // text of the value row when it differs from the label row
}

// Locator finds value cells near a label cell: same row rightward first,
// then the following row(s) when the label row carries no values. The
// search radius is bounded so unrelated figures further along the table
// never attach to the label.
type Locator struct {
	maxCellsRight int
	maxRowsDown   int
}

// NewLocator creates a locator with the configured search bounds.
func NewLocator(cfg Config) *Locator {
	return &Locator{
		maxCellsRight: cfg.MaxCellsRight,
		maxRowsDown:   cfg.MaxRowsDown,
	}
}

// Locate returns every admissible numeric cell within radius of the label.
// Multiple hits on one row are multiple reporting periods and all are
// retained; the scorer and selector arbitrate between them. An empty
// result means the label contributes no candidate.
func (l *Locator) Locate(table filing.ParsedTable, match LabelMatch) []ValueHit {
	if match.Cell.Row >= len(table.Rows) {
		return nil
	}

	hits := l.scanRow(table, match.Cell.Row, match.Cell.Col+1, match.Cell)
	if len(hits) > 0 {
		return hits
	}

	// Label row carried no values: filings often put "Basic"/"Diluted"
	// sub-rows directly under the metric heading.
	for delta := 1; delta <= l.maxRowsDown; delta++ {
		rowIdx := match.Cell.Row + delta
		if rowIdx >= len(table.Rows) {
			break
		}
		hits = l.scanRow(table, rowIdx, 0, match.Cell)
		if len(hits) > 0 {
			context := strings.Join(table.Rows[rowIdx].Cells, " ")
			for i := range hits {
				hits[i].RowContext = context
			}
			return hits
		}
	}

	return nil
}

// scanRow walks one row left to right collecting normalized values.
func (l *Locator) scanRow(table filing.ParsedTable, rowIdx, startCol int, label filing.Cell) []ValueHit {
	row := table.Rows[rowIdx]
	var hits []ValueHit
	pendingNegative := false
	scanned := 0

	for col := startCol; col < len(row.Cells) && scanned < l.maxCellsRight; col++ {
		text := row.Cells[col]
		if text == "" {
			continue
		}
		scanned++

		num, ok := NormalizeNumeric(text)
		if !ok {
			// A lone "(" or "($" is the left half of a parenthesized
			// negative split across cells; the digits follow in the next
			// cell.
			if OpensParenthesis(text) {
				pendingNegative = true
			}
			continue
		}

		if pendingNegative && num.Value > 0 {
			num.Value = -num.Value
			num.Text = "-" + num.Text
		}
		pendingNegative = false

		hits = append(hits, ValueHit{
			Cell: filing.Cell{
				Text:  text,
				Row:   rowIdx,
				Col:   col,
				Table: label.Table,
			},
			Num:      num,
			RowDelta: rowIdx - label.Row,
			ColDelta: col - label.Col,
			Header:   columnHeader(table, rowIdx, col),
		})
	}

	return hits
}

// columnHeader returns the text above the value cell in the table's first
// row, the usual home of period headers like "Three Months Ended" or
// variant headers like "Diluted". Numeric first-row cells are not headers.
func columnHeader(table filing.ParsedTable, rowIdx, col int) string {
	if rowIdx == 0 {
		return ""
	}
	first := table.Rows[0]
	if col >= len(first.Cells) {
		return ""
	}
	return headerFor([]string{first.Cells[col]})
}
