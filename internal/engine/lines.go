package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"finparse/stmt-ledger/internal/currencyutils"
	"finparse/stmt-ledger/internal/dateutils"
	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/extract"
	"finparse/stmt-ledger/internal/models"
)

// ExtractLines runs the dialect's line grammar over every page. Each
// transaction is one text line: leading date, narration up to the reference
// number, an optional value date, then the amount columns. Dialects without
// a line grammar (table-first layouts) yield nothing.
func ExtractLines(doc *extract.Document, d *dialect.Descriptor) []models.Transaction {
	if doc == nil || d.LineDatePattern == nil {
		return nil
	}
	refPattern := regexp.MustCompile(fmt.Sprintf(`\s+(\d{%d,})\s+`, d.RefMinDigits))

	var txns []models.Transaction
	for _, page := range doc.Pages {
		for _, line := range page.Lines() {
			if containsAny(line, d.LineSkipMarkers) {
				continue
			}
			m := d.LineDatePattern.FindStringSubmatch(line)
			if m == nil || len(m) < 3 {
				continue
			}
			txn, ok := parseLine(m[1], m[2], refPattern, d)
			if !ok {
				continue
			}
			txns = append(txns, txn)
		}
	}
	return txns
}

// parseLine splits the text after the leading date into narration,
// reference, value date, and amount columns. Lines without a reference
// number or without a usable amount are dropped.
func parseLine(dateStr, rest string, refPattern *regexp.Regexp, d *dialect.Descriptor) (models.Transaction, bool) {
	b := models.NewTransactionBuilder()
	if t, _, err := dateutils.ParseDate(dateStr); err == nil {
		b.WithDate(t)
	}

	loc := refPattern.FindStringSubmatchIndex(rest)
	if loc == nil {
		return models.Transaction{}, false
	}
	desc := strings.TrimSpace(rest[:loc[0]])
	b.WithDescription(desc).WithReference(rest[loc[2]:loc[3]])

	amountsText := strings.TrimSpace(rest[loc[1]:])
	if vm := d.LineDatePattern.FindStringSubmatch(amountsText); vm != nil && len(vm) >= 3 {
		if t, _, err := dateutils.ParseDate(vm[1]); err == nil {
			b.WithValueDate(t)
		}
		amountsText = vm[2]
	}

	applyAmounts(b, collectAmounts(strings.Fields(amountsText)), desc, d)
	txn, err := b.Build()
	if err != nil {
		return models.Transaction{}, false
	}
	return txn, true
}

// collectAmounts keeps the tokens that parse as amounts, in order.
func collectAmounts(tokens []string) []decimal.Decimal {
	var values []decimal.Decimal
	for _, token := range tokens {
		v, err := currencyutils.ParseAmount(token)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	return values
}

// applyAmounts maps the numeric columns onto the builder. The last value is
// always the running balance. Two values mean one amount whose polarity
// comes from the dialect's credit keywords; three mean the withdrawal and
// deposit columns were both printed, with the zero side unused. Any other
// count sets no amount, so Build rejects the row.
func applyAmounts(b *models.TransactionBuilder, values []decimal.Decimal, desc string, d *dialect.Descriptor) {
	switch {
	case len(values) == 2:
		b.WithBalance(values[1]).
			WithAmount(values[0].Abs()).
			WithType(d.CreditKeywords.Classify(desc))
	case len(values) >= 3:
		b.WithBalance(values[len(values)-1])
		withdrawal := values[len(values)-3]
		deposit := values[len(values)-2]
		switch {
		case !withdrawal.IsZero():
			b.WithAmount(withdrawal.Abs()).WithType(models.EntryDebit)
		case !deposit.IsZero():
			b.WithAmount(deposit.Abs()).WithType(models.EntryCredit)
		}
	}
}

// containsAny reports whether the line carries any of the markers.
func containsAny(line string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
