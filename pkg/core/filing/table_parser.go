// Package filing - Table Parser for structured table extraction
package filing

import (
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// =============================================================================
// TABLE PARSER - Extract structured data from HTML tables
// =============================================================================

// TableParser extracts ParsedTable structures from filing HTML.
type TableParser struct{}

// NewTableParser creates a new parser.
func NewTableParser() *TableParser {
	return &TableParser{}
}

// ParseHTML extracts every table from the document. Unlike a statement
// classifier, the EPS pipeline keeps all tables: per-share rows show up in
// income statements, highlight tables, and press-release exhibits alike.
func (p *TableParser) ParseHTML(html string) ([]ParsedTable, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var tables []ParsedTable
	epsHeaded := 0

	doc.Find("table").Each(func(i int, table *goquery.Selection) {
		title := p.findTableTitle(table)

		parsed := p.parseTable(table, title, len(tables))
		if parsed == nil {
			return
		}
		if parsed.HeadingIsEPS {
			epsHeaded++
			log.Printf("[TableParser] Table #%d has EPS heading: %q", parsed.Index, title)
		}
		tables = append(tables, *parsed)
	})

	log.Printf("[TableParser] SUMMARY: parsed=%d, eps_headed=%d", len(tables), epsHeaded)

	return tables, nil
}

// findTableTitle extracts the title from before the table or first row.
func (p *TableParser) findTableTitle(table *goquery.Selection) string {
	// Check for preceding elements
	if prev := table.Prev(); prev.Length() > 0 {
		text := NormalizeText(prev.Text())
		lower := strings.ToLower(text)
		if strings.Contains(lower, "per share") ||
			strings.Contains(lower, "statement") ||
			strings.Contains(lower, "income") ||
			strings.Contains(lower, "operations") ||
			strings.Contains(lower, "earnings") {
			return text
		}
	}

	// Check first row for title
	firstRow := table.Find("tr").First()
	if firstRow.Length() > 0 {
		cells := firstRow.Find("td, th")
		if cells.Length() == 1 {
			return NormalizeText(cells.Text())
		}
	}

	return ""
}

// parseTable extracts the row/cell grid from a single table.
func (p *TableParser) parseTable(table *goquery.Selection, title string, index int) *ParsedTable {
	var rows []TableRow

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(j int, cell *goquery.Selection) {
			cells = append(cells, NormalizeText(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}
		rows = append(rows, TableRow{Index: len(rows), Cells: cells})
	})

	if len(rows) == 0 {
		return nil
	}

	return &ParsedTable{
		ID:           GenerateTableID(title, len(rows), index),
		Index:        index,
		Title:        title,
		HeadingIsEPS: IsEPSHeading(title),
		Rows:         rows,
	}
}
