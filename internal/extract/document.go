// Package extract materializes statement documents into per-page text and
// table grids. Everything downstream (dialect extractors, the template
// engine, metadata extraction) works against the in-memory Document; the
// underlying file handle is released before Extract returns.
package extract

import "strings"

// Table is a 2-D cell grid for one page, possibly empty.
type Table [][]string

// IsEmpty reports whether the table has no rows.
func (t Table) IsEmpty() bool {
	return len(t) == 0
}

// ColumnCount returns the widest row's cell count.
func (t Table) ColumnCount() int {
	max := 0
	for _, row := range t {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// Page holds one page's extracted content.
type Page struct {
	Number int
	Text   string
	Table  Table
}

// Lines splits the page text into trimmed, non-empty lines.
func (p Page) Lines() []string {
	var lines []string
	for _, line := range strings.Split(p.Text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Document is a fully materialized statement document.
type Document struct {
	Pages []Page
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// FirstPageText returns the text of the first page. Account metadata lives
// there on every supported layout.
func (d *Document) FirstPageText() string {
	if d == nil || len(d.Pages) == 0 {
		return ""
	}
	return d.Pages[0].Text
}

// Text returns the text of every page joined with newlines. Metadata rules
// that scan beyond the first page (opening-balance rows, period footers)
// match against this.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}
	texts := make([]string, 0, len(d.Pages))
	for _, p := range d.Pages {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n")
}

// LargestTable returns the table with the most rows across all pages. The
// template learner trains on it.
func (d *Document) LargestTable() Table {
	var largest Table
	if d == nil {
		return largest
	}
	for _, p := range d.Pages {
		if len(p.Table) > len(largest) {
			largest = p.Table
		}
	}
	return largest
}

// Tables returns every non-empty page table in page order.
func (d *Document) Tables() []Table {
	var tables []Table
	if d == nil {
		return tables
	}
	for _, p := range d.Pages {
		if !p.Table.IsEmpty() {
			tables = append(tables, p.Table)
		}
	}
	return tables
}
