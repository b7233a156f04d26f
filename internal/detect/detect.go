// Package detect identifies the issuing bank of a statement by scoring
// weighted keyword hits over the first page's text. The verdict selects a
// dialect when the caller does not name one.
package detect

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/extract"
)

// Confidence grades a detection verdict.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Grade boundaries on the keyword point total.
const (
	highThreshold   = 8
	mediumThreshold = 4
)

// Unknown is the bank reported when nothing scores.
const Unknown = "unknown"

// marker is one weighted vocabulary entry.
type marker struct {
	Pattern string
	Weight  int
}

// bankTable scores one bank. Each matched pattern contributes its weight
// once, however often it repeats in the text.
type bankTable struct {
	Bank    string
	Markers []marker
	matcher *ahocorasick.Matcher
}

func newBankTable(bank string, markers ...marker) *bankTable {
	patterns := make([][]byte, len(markers))
	for i, m := range markers {
		patterns[i] = []byte(m.Pattern)
	}
	return &bankTable{
		Bank:    bank,
		Markers: markers,
		matcher: ahocorasick.NewMatcher(patterns),
	}
}

func (t *bankTable) score(text string) int {
	points := 0
	for _, hit := range t.matcher.Match([]byte(text)) {
		points += t.Markers[hit].Weight
	}
	return points
}

// bankTables is the detection vocabulary in tie-break order. Banks without
// a dedicated dialect still appear so their statements route to the generic
// dialect knowingly rather than by failure.
var bankTables = []*bankTable{
	newBankTable(dialect.HDFCName,
		marker{"hdfc bank", 5}, marker{"hdfc", 3}, marker{"we understand your world", 2}),
	newBankTable(dialect.KotakName,
		marker{"kotak mahindra", 5}, marker{"kotak", 3}, marker{"811", 1}),
	newBankTable("icici",
		marker{"icici bank", 5}, marker{"icici", 3}, marker{"imobile", 1}),
	newBankTable("sbi",
		marker{"state bank of india", 5}, marker{"sbi", 3}, marker{"yono", 1}),
	newBankTable("axis",
		marker{"axis bank", 5}, marker{"axis", 3}),
}

// Score is a detection verdict.
type Score struct {
	Bank       string     `json:"bank"`
	Points     int        `json:"points"`
	Confidence Confidence `json:"confidence"`
}

// Dialect maps the verdict to a registered dialect name. Unknown banks and
// low-confidence verdicts route to the generic dialect.
func (s Score) Dialect(registry *dialect.Registry) string {
	if s.Confidence == ConfidenceLow {
		return dialect.GenericName
	}
	return registry.ForBank(s.Bank).Name
}

// Detect scores the known banks against the first page's text, falling back
// to the whole document when the first page carries none. The best-scoring
// bank wins; ties break by the fixed table order.
func Detect(doc *extract.Document) Score {
	text := strings.ToLower(doc.FirstPageText())
	if strings.TrimSpace(text) == "" {
		text = strings.ToLower(doc.Text())
	}

	best := Score{Bank: Unknown, Confidence: ConfidenceLow}
	for _, table := range bankTables {
		points := table.score(text)
		if points > best.Points {
			best = Score{Bank: table.Bank, Points: points, Confidence: grade(points)}
		}
	}
	return best
}

func grade(points int) Confidence {
	switch {
	case points >= highThreshold:
		return ConfidenceHigh
	case points >= mediumThreshold:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
