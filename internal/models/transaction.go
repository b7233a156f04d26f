// Package models provides the data structures shared across the parsing
// pipeline: transactions, account metadata, templates, and result envelopes.
package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the debit/credit polarity of a ledger entry.
type EntryType string

const (
	EntryDebit  EntryType = "debit"
	EntryCredit EntryType = "credit"
)

// SweepType tags the direction of a sweep transfer relative to the linked
// fixed-deposit facility.
type SweepType string

const (
	SweepToFD   SweepType = "to_fd"
	SweepFromFD SweepType = "from_fd"
)

// DateLayout is the wire format for dates in JSON output.
const DateLayout = "2006-01-02"

// Transaction is a single ledger entry. It is one record type for every
// dialect; members that only apply in certain states (corrections, sweep
// tagging, balance adjustment) are explicitly optional and omitted from
// output until their guarding flag is set.
type Transaction struct {
	Date        time.Time // zero value means the date never resolved
	ValueDate   time.Time
	Description string
	Reference   string
	Amount      decimal.Decimal // positive magnitude; polarity lives in Type
	Type        EntryType

	Balance    decimal.Decimal
	HasBalance bool

	// Set by the reconciliation engine when Amount was rewritten.
	AmountCorrected bool
	OriginalAmount  decimal.Decimal

	// Advisory flags from the suspicious-amount pass.
	Suspicious       bool
	SuspiciousReason string

	// Sweep tagging, set by the sweep normalizer on extracted sweep legs.
	IsSweep      bool
	SweepType    SweepType
	SweepAccount string

	// Set on regular transactions whose balance was adjusted for the
	// cumulative sweep offset. ShownBalance keeps the statement's literal
	// value.
	SweepAdjusted   bool
	ShownBalance    decimal.Decimal
	SweepAdjustment decimal.Decimal

	// RawValues carries the pre-normalization cell text per mapped field.
	// Only the template player fills this.
	RawValues map[string]string
}

// IsDebit reports whether money left the account.
func (t *Transaction) IsDebit() bool {
	return t.Type == EntryDebit
}

// IsCredit reports whether money entered the account.
func (t *Transaction) IsCredit() bool {
	return t.Type == EntryCredit
}

// HasDate reports whether the entry's date resolved during extraction.
func (t *Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// SignedAmount returns the amount with debit entries negated.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.IsDebit() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// SetBalance records a running balance.
func (t *Transaction) SetBalance(b decimal.Decimal) {
	t.Balance = b
	t.HasBalance = true
}

// transactionJSON is the wire shape of Transaction. Decimals marshal as bare
// JSON numbers, dates as YYYY-MM-DD, optional members only when present.
type transactionJSON struct {
	Date             string            `json:"date,omitempty"`
	ValueDate        string            `json:"valueDate,omitempty"`
	Description      string            `json:"description"`
	Reference        string            `json:"reference,omitempty"`
	Amount           json.Number       `json:"amount"`
	Type             EntryType         `json:"transactionType"`
	Balance          json.Number       `json:"balance,omitempty"`
	AmountCorrected  bool              `json:"amountCorrected,omitempty"`
	OriginalAmount   json.Number       `json:"originalAmount,omitempty"`
	Suspicious       bool              `json:"suspicious,omitempty"`
	SuspiciousReason string            `json:"suspiciousReason,omitempty"`
	IsSweep          bool              `json:"isSweep,omitempty"`
	SweepType        SweepType         `json:"sweepType,omitempty"`
	SweepAccount     string            `json:"sweepAccountNumber,omitempty"`
	ShownBalance     json.Number       `json:"shownBalance,omitempty"`
	SweepAdjustment  json.Number       `json:"sweepAdjustment,omitempty"`
	RawValues        map[string]string `json:"raw,omitempty"`
}

// MarshalJSON implements the external transaction contract.
func (t Transaction) MarshalJSON() ([]byte, error) {
	out := transactionJSON{
		Description: t.Description,
		Reference:   t.Reference,
		Amount:      json.Number(t.Amount.String()),
		Type:        t.Type,
		RawValues:   t.RawValues,
	}
	if !t.Date.IsZero() {
		out.Date = t.Date.Format(DateLayout)
	}
	if !t.ValueDate.IsZero() {
		out.ValueDate = t.ValueDate.Format(DateLayout)
	}
	if t.HasBalance {
		out.Balance = json.Number(t.Balance.String())
	}
	if t.AmountCorrected {
		out.AmountCorrected = true
		out.OriginalAmount = json.Number(t.OriginalAmount.String())
	}
	if t.Suspicious {
		out.Suspicious = true
		out.SuspiciousReason = t.SuspiciousReason
	}
	if t.IsSweep {
		out.IsSweep = true
		out.SweepType = t.SweepType
		out.SweepAccount = t.SweepAccount
	}
	if t.SweepAdjusted {
		out.ShownBalance = json.Number(t.ShownBalance.String())
		out.SweepAdjustment = json.Number(t.SweepAdjustment.String())
	}
	return json.Marshal(out)
}
