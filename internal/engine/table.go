package engine

import (
	"strings"

	"finparse/stmt-ledger/internal/dateutils"
	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/extract"
	"finparse/stmt-ledger/internal/models"
)

// Rows narrower than this are separators, headers split across lines, or
// page furniture, never transactions.
const minDataRowCells = 5

// ExtractTable runs the dialect's table grammar over every page grid. The
// header row anchors each table; rows after it are matched by locating the
// date-bearing cell, so the layout tolerates column drift between pages.
func ExtractTable(doc *extract.Document, d *dialect.Descriptor) []models.Transaction {
	if doc == nil {
		return nil
	}
	var txns []models.Transaction
	for _, page := range doc.Pages {
		txns = append(txns, extractTableRows(page.Table, d)...)
	}
	return txns
}

func extractTableRows(table extract.Table, d *dialect.Descriptor) []models.Transaction {
	if table.IsEmpty() {
		return nil
	}
	headerIdx := headerRow(table, d.HeaderKeywords)
	if headerIdx < 0 {
		return nil
	}

	var txns []models.Transaction
	for _, row := range table[headerIdx+1:] {
		txn, ok := parseRow(row, d)
		if !ok {
			continue
		}
		txns = append(txns, txn)
	}
	return txns
}

// headerRow returns the index of the first row matching at least two header
// keywords, or -1. A single hit is not enough: narrations regularly contain
// words like "credit".
func headerRow(table extract.Table, keywords []string) int {
	for i, row := range table {
		joined := strings.ToLower(strings.Join(row, " "))
		hits := 0
		for _, kw := range keywords {
			if strings.Contains(joined, kw) {
				hits++
			}
		}
		if hits >= 2 {
			return i
		}
	}
	return -1
}

// parseRow maps one data row onto a transaction: date cell located by the
// dialect's date shape, narration and reference in the two cells after it,
// amount columns collected from the remaining cells left to right.
func parseRow(row []string, d *dialect.Descriptor) (models.Transaction, bool) {
	if len(row) < minDataRowCells {
		return models.Transaction{}, false
	}
	if containsAny(strings.Join(row, " "), d.RowSkipMarkers) {
		return models.Transaction{}, false
	}

	dateIdx := -1
	for i, cell := range row {
		if cellHasDate(cell, d) {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		return models.Transaction{}, false
	}

	b := models.NewTransactionBuilder()
	if t, _, err := dateutils.ParseDate(strings.TrimSpace(row[dateIdx])); err == nil {
		b.WithDate(t)
	}

	desc := ""
	if dateIdx+1 < len(row) {
		desc = strings.TrimSpace(row[dateIdx+1])
	}
	b.WithDescription(desc)
	if dateIdx+2 < len(row) {
		if ref := strings.TrimSpace(row[dateIdx+2]); ref != "-" {
			b.WithReference(ref)
		}
	}

	applyAmounts(b, collectAmounts(row[min(dateIdx+3, len(row)):]), desc, d)
	txn, err := b.Build()
	if err != nil {
		return models.Transaction{}, false
	}
	return txn, true
}

// cellHasDate matches the dialect's date shape, falling back to the shared
// date-like heuristic when the dialect does not pin one down.
func cellHasDate(cell string, d *dialect.Descriptor) bool {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return false
	}
	if d.TableDatePattern != nil {
		return d.TableDatePattern.MatchString(cell)
	}
	return dateutils.IsDateLike(cell)
}
