// Package reconcile validates extracted transactions against the running
// balance column and repairs what the text layer got wrong. Statement PDFs
// routinely fuse digits across column boundaries, so the balance delta
// between adjacent rows is treated as the more trustworthy amount source.
package reconcile

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
)

var log = logging.GetLogger()

// Options controls the reconciliation pass.
type Options struct {
	// TypeOnly restricts the pass to debit/credit forcing. Dialects whose
	// amount columns are reliable set this; their printed amounts are never
	// rewritten.
	TypeOnly bool
}

// Correction field names.
const (
	FieldAmount = "amount"
	FieldType   = "transactionType"
)

// Correction rule names.
const (
	RuleTenfold          = "tenfold"
	RuleHundredfold      = "hundredfold"
	RuleBalanceDelta     = "balance_delta"
	RuleBalanceDirection = "balance_direction"
)

// Correction records one field rewrite applied during reconciliation. Index
// is the transaction's position in the returned slice.
type Correction struct {
	Index int
	Field string
	From  string
	To    string
	Rule  string
}

var (
	amountTolerance  = decimal.NewFromInt(1)
	ratioTenLow      = decimal.RequireFromString("9.5")
	ratioTenHigh     = decimal.RequireFromString("10.5")
	ratioHundredLow  = decimal.NewFromInt(95)
	ratioHundredHigh = decimal.NewFromInt(105)
	maxTrustedDelta  = decimal.NewFromInt(10_000_000)
)

// Reconcile orders transactions by date and repairs amounts and types from
// the balance column. Dated entries are stable-sorted; entries whose date
// never resolved keep their extraction order at the end and are excluded
// from the fold. The input slice is not modified.
//
// For each adjacent pair carrying balances on both sides the expected amount
// is the absolute balance delta. A reported amount off by more than the unit
// tolerance is replaced when the reported/expected ratio sits in the tenfold
// or hundredfold misread band, or when the delta itself is plausible
// (below ten million). The debit/credit type is forced from the balance
// direction regardless of Options. Running the pass on its own output yields
// no further corrections.
func Reconcile(txns []models.Transaction, opts Options) ([]models.Transaction, []Correction) {
	if len(txns) == 0 {
		return nil, nil
	}

	dated := make([]models.Transaction, 0, len(txns))
	var dateless []models.Transaction
	for _, t := range txns {
		if t.HasDate() {
			dated = append(dated, t)
		} else {
			dateless = append(dateless, t)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Date.Before(dated[j].Date)
	})

	var corrections []Correction
	for i := 1; i < len(dated); i++ {
		prev := dated[i-1]
		cur := &dated[i]
		if !prev.HasBalance || !cur.HasBalance {
			continue
		}
		expected := prev.Balance.Sub(cur.Balance).Abs()

		if !opts.TypeOnly {
			if c, ok := correctAmount(cur, expected, i); ok {
				corrections = append(corrections, c)
			}
		}

		decreased := prev.Balance.GreaterThan(cur.Balance)
		if c, ok := forceType(cur, decreased, i); ok {
			corrections = append(corrections, c)
		}
	}

	for _, c := range corrections {
		log.Debug("reconciliation correction",
			logging.Field{Key: logging.FieldRow, Value: c.Index},
			logging.Field{Key: "field", Value: c.Field},
			logging.Field{Key: "rule", Value: c.Rule},
			logging.Field{Key: "from", Value: c.From},
			logging.Field{Key: "to", Value: c.To})
	}

	return append(dated, dateless...), corrections
}

func correctAmount(t *models.Transaction, expected decimal.Decimal, index int) (Correction, bool) {
	diff := expected.Sub(t.Amount).Abs()
	if diff.LessThanOrEqual(amountTolerance) {
		return Correction{}, false
	}
	// A zero delta means two identical balances; there is nothing credible
	// to substitute.
	if expected.IsZero() {
		return Correction{}, false
	}

	ratio := t.Amount.Div(expected)
	var rule string
	switch {
	case ratio.GreaterThanOrEqual(ratioTenLow) && ratio.LessThanOrEqual(ratioTenHigh):
		rule = RuleTenfold
	case ratio.GreaterThanOrEqual(ratioHundredLow) && ratio.LessThanOrEqual(ratioHundredHigh):
		rule = RuleHundredfold
	case expected.LessThan(maxTrustedDelta):
		rule = RuleBalanceDelta
	default:
		return Correction{}, false
	}

	c := Correction{
		Index: index,
		Field: FieldAmount,
		From:  t.Amount.String(),
		To:    expected.String(),
		Rule:  rule,
	}
	t.OriginalAmount = t.Amount
	t.AmountCorrected = true
	t.Amount = expected
	return c, true
}

func forceType(t *models.Transaction, decreased bool, index int) (Correction, bool) {
	want := models.EntryCredit
	if decreased {
		want = models.EntryDebit
	}
	if t.Type == want {
		return Correction{}, false
	}
	c := Correction{
		Index: index,
		Field: FieldType,
		From:  string(t.Type),
		To:    string(want),
		Rule:  RuleBalanceDirection,
	}
	t.Type = want
	return c, true
}

var largeAmountThreshold = decimal.NewFromInt(1_000_000)

// FlagSuspicious marks amounts that deserve a human look: four or more
// integer digits starting with a repeated pair (a classic column-fusion
// artifact, 3400 misread as 33400), and anything above ten lakh. Advisory
// only; the transactions are otherwise untouched. The input slice is not
// modified.
func FlagSuspicious(txns []models.Transaction) []models.Transaction {
	if len(txns) == 0 {
		return nil
	}
	out := make([]models.Transaction, len(txns))
	copy(out, txns)
	for i := range out {
		t := &out[i]
		digits := t.Amount.Truncate(0).String()
		if len(digits) >= 4 && digits[0] == digits[1] {
			t.Suspicious = true
			t.SuspiciousReason = fmt.Sprintf("First two digits are same (%s)", digits[:2])
		}
		if t.Amount.GreaterThan(largeAmountThreshold) {
			t.Suspicious = true
			t.SuspiciousReason = "Large amount - please verify"
		}
	}
	return out
}
