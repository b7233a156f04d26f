package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ParseResult is the envelope a parse invocation writes to its output. On
// failure Success is false, Error carries the message, and the payload
// fields stay empty; the envelope is still serialized so callers never see
// a bare crash.
type ParseResult struct {
	Success      bool
	RunID        string
	Dialect      string
	Metadata     AccountMetadata
	Transactions []Transaction
	Count        int

	// Sweep extras, populated only when the dialect runs the sweep
	// normalizer.
	HasSweepInfo      bool
	SweepTransactions []Transaction
	SweepBalance      decimal.Decimal

	Error string
	Trace string
}

// NewParseResult builds a successful envelope with a fresh run identifier.
func NewParseResult(dialect string, meta AccountMetadata, txns []Transaction) *ParseResult {
	return &ParseResult{
		Success:      true,
		RunID:        uuid.New().String(),
		Dialect:      dialect,
		Metadata:     meta,
		Transactions: txns,
		Count:        len(txns),
	}
}

// FailedParseResult builds a failure envelope.
func FailedParseResult(dialect string, err error, trace string) *ParseResult {
	return &ParseResult{
		Success: false,
		RunID:   uuid.New().String(),
		Dialect: dialect,
		Error:   err.Error(),
		Trace:   trace,
	}
}

// WithSweep attaches the sweep extras to a successful envelope.
func (r *ParseResult) WithSweep(sweeps []Transaction, balance decimal.Decimal) *ParseResult {
	r.HasSweepInfo = true
	r.SweepTransactions = sweeps
	r.SweepBalance = balance
	return r
}

// The slice fields are pointers so that a successful empty ledger still
// serializes "transactions": [] while failure envelopes omit it entirely.
type parseResultJSON struct {
	Success           bool             `json:"success"`
	RunID             string           `json:"runId,omitempty"`
	Dialect           string           `json:"dialect,omitempty"`
	Metadata          *AccountMetadata `json:"metadata,omitempty"`
	Transactions      *[]Transaction   `json:"transactions,omitempty"`
	Count             *int             `json:"count,omitempty"`
	SweepTransactions *[]Transaction   `json:"sweepTransactions,omitempty"`
	SweepBalance      json.Number      `json:"sweepBalance,omitempty"`
	Error             string           `json:"error,omitempty"`
	Trace             string           `json:"trace,omitempty"`
}

// MarshalJSON emits the success payload or the failure payload, never a mix.
func (r ParseResult) MarshalJSON() ([]byte, error) {
	out := parseResultJSON{
		Success: r.Success,
		RunID:   r.RunID,
		Dialect: r.Dialect,
	}
	if !r.Success {
		out.Error = r.Error
		out.Trace = r.Trace
		return json.Marshal(out)
	}

	meta := r.Metadata
	out.Metadata = &meta
	txns := r.Transactions
	if txns == nil {
		txns = []Transaction{}
	}
	out.Transactions = &txns
	count := r.Count
	out.Count = &count
	if r.HasSweepInfo {
		sweeps := r.SweepTransactions
		if sweeps == nil {
			sweeps = []Transaction{}
		}
		out.SweepTransactions = &sweeps
		out.SweepBalance = json.Number(r.SweepBalance.String())
	}
	return json.Marshal(out)
}

// LearnResult is the template learner's output envelope: the learned profile
// or an error, never both.
type LearnResult struct {
	Profile *TemplateProfile
	Error   string
}

// MarshalJSON flattens the profile into the envelope per the output schema.
func (r LearnResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: r.Error})
	}
	return json.Marshal(r.Profile)
}

// ApplyResult is the template player's output envelope.
type ApplyResult struct {
	Transactions  []Transaction
	Errors        []string
	RowsProcessed int
	RowsSkipped   int
	Error         string
}

type applyResultJSON struct {
	Transactions  []Transaction `json:"transactions"`
	Errors        []string      `json:"errors"`
	RowsProcessed int           `json:"rows_processed"`
	RowsSkipped   int           `json:"rows_skipped"`
}

// MarshalJSON emits the row-tolerant payload or the fatal error payload.
func (r ApplyResult) MarshalJSON() ([]byte, error) {
	if r.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{Error: r.Error})
	}
	out := applyResultJSON{
		Transactions:  r.Transactions,
		Errors:        r.Errors,
		RowsProcessed: r.RowsProcessed,
		RowsSkipped:   r.RowsSkipped,
	}
	if out.Transactions == nil {
		out.Transactions = []Transaction{}
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	return json.Marshal(out)
}
