// Package sweep separates linked-deposit sweep transfers from the regular
// transaction flow. A sweep-out is not real spending: the statement's
// printed balance drops while the money sits in a fixed deposit, so every
// later balance understates the effective position until the funds sweep
// back. The normalizer extracts the sweep legs and restores the effective
// balance on the rows in between.
package sweep

import (
	"regexp"

	"github.com/shopspring/decimal"

	"finparse/stmt-ledger/internal/models"
)

var (
	sweepToPattern   = regexp.MustCompile(`(?i)SWEEP\s+TRANSFER\s+TO\s*\[?(\d+)\]?`)
	sweepFromPattern = regexp.MustCompile(`(?i)SWEEP\s+TRANSFER\s+FROM\s*\[?(\d+)\]?`)
)

// Normalize walks the reconciled sequence once, moving sweep rows to their
// own list and accumulating a signed offset: +amount for transfers into the
// deposit facility, -amount for transfers back. While the offset is
// positive, each regular row with a balance gets the offset added, keeping
// the statement's literal value in ShownBalance and the delta in
// SweepAdjustment. The adjustment is strictly forward; rows before the
// first sweep are never touched. finalOffset is the amount still parked in
// the facility at the end of the statement.
func Normalize(txns []models.Transaction) (regular, sweeps []models.Transaction, finalOffset decimal.Decimal) {
	offset := decimal.Zero
	for _, t := range txns {
		if m := sweepToPattern.FindStringSubmatch(t.Description); m != nil {
			t.IsSweep = true
			t.SweepType = models.SweepToFD
			t.SweepAccount = m[1]
			offset = offset.Add(t.Amount)
			sweeps = append(sweeps, t)
			continue
		}
		if m := sweepFromPattern.FindStringSubmatch(t.Description); m != nil {
			t.IsSweep = true
			t.SweepType = models.SweepFromFD
			t.SweepAccount = m[1]
			offset = offset.Sub(t.Amount)
			sweeps = append(sweeps, t)
			continue
		}

		if offset.IsPositive() && t.HasBalance {
			t.ShownBalance = t.Balance
			t.Balance = t.Balance.Add(offset)
			t.SweepAdjustment = offset
			t.SweepAdjusted = true
		}
		regular = append(regular, t)
	}
	return regular, sweeps, offset
}
