package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionBuilder provides a fluent API for constructing transactions.
// The first error sticks and short-circuits the remaining calls, so call
// sites can chain setters and check once at Build.
type TransactionBuilder struct {
	tx  Transaction
	err error
}

// NewTransactionBuilder starts a builder with debit polarity and zero
// amounts.
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		tx: Transaction{
			Type:   EntryDebit,
			Amount: decimal.Zero,
		},
	}
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if date.IsZero() {
		b.err = errors.New("date cannot be zero")
		return b
	}
	b.tx.Date = date
	return b
}

// WithValueDate sets the optional value date.
func (b *TransactionBuilder) WithValueDate(date time.Time) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.ValueDate = date
	return b
}

// WithDescription sets the narration text.
func (b *TransactionBuilder) WithDescription(desc string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Description = desc
	return b
}

// WithReference sets the external reference identifier.
func (b *TransactionBuilder) WithReference(ref string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Reference = ref
	return b
}

// WithAmount sets the positive magnitude of the entry.
func (b *TransactionBuilder) WithAmount(amount decimal.Decimal) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if amount.IsNegative() {
		b.err = fmt.Errorf("amount must be a positive magnitude, got %s", amount)
		return b
	}
	b.tx.Amount = amount
	return b
}

// WithType sets the debit/credit polarity.
func (b *TransactionBuilder) WithType(t EntryType) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if t != EntryDebit && t != EntryCredit {
		b.err = fmt.Errorf("unknown entry type %q", t)
		return b
	}
	b.tx.Type = t
	return b
}

// WithBalance sets the running balance after this entry.
func (b *TransactionBuilder) WithBalance(balance decimal.Decimal) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.SetBalance(balance)
	return b
}

// Build validates and returns the transaction.
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, b.err
	}
	if b.tx.Amount.IsZero() {
		return Transaction{}, errors.New("amount must be non-zero")
	}
	return b.tx, nil
}
