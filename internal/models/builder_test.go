package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionBuilderHappyPath(t *testing.T) {
	tx, err := NewTransactionBuilder().
		WithDate(date(2025, time.April, 7)).
		WithDescription("IMPS-TRANSFER").
		WithReference("401234567890").
		WithAmount(decimal.RequireFromString("1234.56")).
		WithType(EntryCredit).
		WithBalance(decimal.RequireFromString("9876.54")).
		Build()

	require.NoError(t, err)
	assert.Equal(t, "IMPS-TRANSFER", tx.Description)
	assert.True(t, tx.IsCredit())
	assert.True(t, tx.HasBalance)
	assert.Equal(t, "9876.54", tx.Balance.String())
}

func TestTransactionBuilderErrorShortCircuits(t *testing.T) {
	tests := []struct {
		name    string
		build   func() (Transaction, error)
		wantErr string
	}{
		{
			name: "zero date",
			build: func() (Transaction, error) {
				return NewTransactionBuilder().
					WithDate(time.Time{}).
					WithAmount(decimal.NewFromInt(10)).
					Build()
			},
			wantErr: "date cannot be zero",
		},
		{
			name: "negative amount",
			build: func() (Transaction, error) {
				return NewTransactionBuilder().
					WithDate(date(2025, time.May, 1)).
					WithAmount(decimal.NewFromInt(-5)).
					Build()
			},
			wantErr: "positive magnitude",
		},
		{
			name: "unknown type",
			build: func() (Transaction, error) {
				return NewTransactionBuilder().
					WithDate(date(2025, time.May, 1)).
					WithAmount(decimal.NewFromInt(5)).
					WithType(EntryType("reversal")).
					Build()
			},
			wantErr: "unknown entry type",
		},
		{
			name: "zero amount rejected at build",
			build: func() (Transaction, error) {
				return NewTransactionBuilder().
					WithDate(date(2025, time.May, 1)).
					Build()
			},
			wantErr: "amount must be non-zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.build()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
