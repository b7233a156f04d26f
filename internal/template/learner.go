// Package template provides the document-agnostic extraction path: a
// learner that infers column semantics from an arbitrary statement table, a
// player that replays a persisted field-to-column mapping against documents
// sharing that layout, and a YAML store for both artifacts.
package template

import (
	"fmt"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"finparse/stmt-ledger/internal/currencyutils"
	"finparse/stmt-ledger/internal/dateutils"
	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/extract"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
	"finparse/stmt-ledger/internal/parsererror"
)

var log = logging.GetLogger()

// Learner bounds.
const (
	headerSearchRows = 15
	typeVoteRows     = 20
)

// textMarkers is the institution/document-type vocabulary scanned for
// later document identification, in first-priority order.
var textMarkers = []string{
	"hdfc", "kotak", "icici", "sbi", "axis", "citibank",
	"credit card", "statement", "savings", "current account",
}

var markerMatcher = ahocorasick.NewMatcher(func() [][]byte {
	patterns := make([][]byte, len(textMarkers))
	for i, m := range textMarkers {
		patterns[i] = []byte(m)
	}
	return patterns
}())

// Learn infers a template profile from the document's largest table: the
// header row, per-column semantic types, a handful of sample rows, and the
// text markers found in the document body.
func Learn(doc *extract.Document) (*models.TemplateProfile, error) {
	table := doc.LargestTable()
	if len(table) <= 1 {
		return nil, &parsererror.NoStructureError{Detail: "no tables found"}
	}

	headerIdx := findHeaderRow(table, headerSearchRows)
	headers := columnLabels(table[headerIdx], table.ColumnCount())
	data := nonEmptyRows(table[headerIdx+1:])
	if len(data) == 0 {
		return nil, &parsererror.NoStructureError{Detail: "no data rows"}
	}

	profile := &models.TemplateProfile{
		Headers:        headers,
		ColumnTypes:    classifyColumns(data, len(headers)),
		SampleRows:     sampleRows(data),
		RowCount:       len(data),
		HeaderRowIndex: headerIdx,
		TextMarkers:    scanTextMarkers(doc.Text()),
	}
	log.Info("learned template profile",
		logging.Field{Key: logging.FieldCount, Value: profile.RowCount},
		logging.Field{Key: "columns", Value: len(profile.Headers)})
	return profile, nil
}

// findHeaderRow returns the first row within the search window carrying at
// least two header keywords, defaulting to row 0.
func findHeaderRow(table extract.Table, window int) int {
	limit := len(table)
	if limit > window {
		limit = window
	}
	for i := 0; i < limit; i++ {
		joined := strings.ToLower(strings.Join(table[i], " "))
		hits := 0
		for _, kw := range dialect.DefaultHeaderKeywords {
			if strings.Contains(joined, kw) {
				hits++
			}
		}
		if hits >= 2 {
			return i
		}
	}
	return 0
}

// columnLabels trims the header cells and synthesizes placeholder labels
// for blank ones, padded out to the widest row.
func columnLabels(header []string, width int) []string {
	labels := make([]string, width)
	for i := range labels {
		label := ""
		if i < len(header) {
			label = strings.TrimSpace(header[i])
		}
		if label == "" {
			label = fmt.Sprintf("Column_%d", i+1)
		}
		labels[i] = label
	}
	return labels
}

func nonEmptyRows(rows []([]string)) [][]string {
	var out [][]string
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// classifyColumns votes each column's semantic type over the leading data
// rows. Empty cells do not vote; a column with no voters stays unknown.
// Ties among equal vote counts break toward the type seen first going down
// the column.
func classifyColumns(data [][]string, width int) []models.ColumnType {
	types := make([]models.ColumnType, width)
	limit := len(data)
	if limit > typeVoteRows {
		limit = typeVoteRows
	}
	for col := 0; col < width; col++ {
		votes := make(map[models.ColumnType]int)
		firstSeen := make(map[models.ColumnType]int)
		order := 0
		for row := 0; row < limit; row++ {
			if col >= len(data[row]) {
				continue
			}
			cell := strings.TrimSpace(data[row][col])
			if cell == "" {
				continue
			}
			t := classifyCell(cell)
			if _, ok := firstSeen[t]; !ok {
				firstSeen[t] = order
				order++
			}
			votes[t]++
		}
		types[col] = models.ColumnUnknown
		best := 0
		for t, count := range votes {
			switch {
			case count > best:
				best = count
				types[col] = t
			case count == best && firstSeen[t] < firstSeen[types[col]]:
				types[col] = t
			}
		}
	}
	return types
}

// classifyCell assigns one cell to a pattern family, in priority order.
func classifyCell(cell string) models.ColumnType {
	switch {
	case dateutils.IsDateLike(cell):
		return models.ColumnDate
	case currencyutils.IsAmountLike(cell):
		return models.ColumnAmount
	case currencyutils.IsPlainNumber(cell):
		return models.ColumnNumber
	default:
		return models.ColumnText
	}
}

func sampleRows(data [][]string) [][]string {
	limit := len(data)
	if limit > models.MaxSampleRows {
		limit = models.MaxSampleRows
	}
	samples := make([][]string, limit)
	copy(samples, data[:limit])
	return samples
}

// scanTextMarkers returns the vocabulary markers present in the document
// text, in first-seen order, capped.
func scanTextMarkers(text string) []string {
	hits := markerMatcher.Match([]byte(strings.ToLower(text)))
	markers := make([]string, 0, len(hits))
	for _, h := range hits {
		markers = append(markers, textMarkers[h])
		if len(markers) == models.MaxTextMarkers {
			break
		}
	}
	return markers
}
