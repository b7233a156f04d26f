package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/extract"
	"finparse/stmt-ledger/internal/models"
)

func tableDoc(tables ...extract.Table) *extract.Document {
	doc := &extract.Document{}
	for i, table := range tables {
		doc.Pages = append(doc.Pages, extract.Page{Number: i + 1, Table: table})
	}
	return doc
}

func TestExtractTableGridStatement(t *testing.T) {
	table := extract.Table{
		{"Kotak Mahindra Bank Limited", "", "", "", "", "", ""},
		{"#", "Date", "Narration", "Chq/Ref No", "Withdrawal (Dr)", "Deposit (Cr)", "Balance"},
		{"", "Opening Balance", "", "", "", "", "50,000.00"},
		{"1", "07 May 2025", "UPI/PAYTM/511124", "-", "5,000.00", "", "45,000.00"},
		{"2", "08 May 2025", "NEFT CR ACME CORP", "N123456", "", "10,000.00", "55,000.00"},
		{"3", "09 May 2025", "CHEQUE ISSUED", "000123", "2,500.00", "0.00", "52,500.00"},
		{"", "End of Statement", "", "", "", "", ""},
	}

	got := ExtractTable(tableDoc(table), mustDialect(t, dialect.KotakName))

	require.Len(t, got, 3)

	first := got[0]
	assert.Equal(t, date(2025, 5, 7), first.Date)
	assert.Equal(t, "UPI/PAYTM/511124", first.Description)
	assert.Empty(t, first.Reference, "dash reference must be dropped")
	assert.Equal(t, models.EntryDebit, first.Type)
	assert.True(t, first.Amount.Equal(decimal.RequireFromString("5000.00")))
	require.True(t, first.HasBalance)
	assert.True(t, first.Balance.Equal(decimal.RequireFromString("45000.00")))

	second := got[1]
	assert.Equal(t, "N123456", second.Reference)
	assert.Equal(t, models.EntryCredit, second.Type, "credit keyword resolves the single amount")
	assert.True(t, second.Amount.Equal(decimal.RequireFromString("10000.00")))

	third := got[2]
	assert.Equal(t, models.EntryDebit, third.Type)
	assert.True(t, third.Amount.Equal(decimal.RequireFromString("2500.00")))
	assert.True(t, third.Balance.Equal(decimal.RequireFromString("52500.00")))
}

func TestExtractTableColumnDrift(t *testing.T) {
	// Second page renders with a leading spacer column; the date-bearing
	// cell anchors the row regardless.
	pageOne := extract.Table{
		{"#", "Date", "Narration", "Chq/Ref No", "Withdrawal", "Deposit", "Balance"},
		{"1", "07 May 2025", "POS PURCHASE", "-", "1,200.00", "", "8,800.00"},
	}
	pageTwo := extract.Table{
		{"", "#", "Date", "Narration", "Chq/Ref No", "Withdrawal", "Deposit", "Balance"},
		{"", "2", "08 May 2025", "FUEL STATION", "-", "900.00", "", "7,900.00"},
	}

	got := ExtractTable(tableDoc(pageOne, pageTwo), mustDialect(t, dialect.KotakName))

	require.Len(t, got, 2)
	assert.Equal(t, "POS PURCHASE", got[0].Description)
	assert.Equal(t, "FUEL STATION", got[1].Description)
	assert.True(t, got[1].Amount.Equal(decimal.RequireFromString("900.00")))
}

func TestExtractTableRequiresHeader(t *testing.T) {
	table := extract.Table{
		{"random", "page", "furniture", "with", "cells"},
		{"1", "07 May 2025", "UPI/PAYTM/511124", "-", "5,000.00", "", "45,000.00"},
	}

	got := ExtractTable(tableDoc(table), mustDialect(t, dialect.KotakName))

	assert.Empty(t, got)
}

func TestExtractTableDateHeuristicFallback(t *testing.T) {
	table := extract.Table{
		{"Date", "Description", "Ref", "Debit", "Credit", "Balance"},
		{"12/05/2025", "POS PURCHASE", "P555", "1,200.00", "", "8,800.00"},
	}

	got := ExtractTable(tableDoc(table), mustDialect(t, dialect.GenericName))

	require.Len(t, got, 1)
	assert.Equal(t, date(2025, 5, 12), got[0].Date)
	assert.Equal(t, "POS PURCHASE", got[0].Description)
	assert.Equal(t, "P555", got[0].Reference)
	assert.Equal(t, models.EntryDebit, got[0].Type)
}

func TestExtractTableDropsZeroAmountRows(t *testing.T) {
	table := extract.Table{
		{"#", "Date", "Narration", "Chq/Ref No", "Withdrawal (Dr)", "Deposit (Cr)", "Balance"},
		{"1", "07 May 2025", "REVERSED ENTRY", "-", "0.00", "0.00", "45,000.00"},
		{"2", "08 May 2025", "NEFT CR ACME CORP", "N123456", "", "10,000.00", "55,000.00"},
	}

	got := ExtractTable(tableDoc(table), mustDialect(t, dialect.KotakName))

	require.Len(t, got, 1, "a row with zero in both amount columns never assembles")
	assert.Equal(t, "NEFT CR ACME CORP", got[0].Description)
}

func TestExtractTableSkipsNarrowRows(t *testing.T) {
	table := extract.Table{
		{"#", "Date", "Narration", "Chq/Ref No", "Withdrawal", "Deposit", "Balance"},
		{"07 May 2025", "carried forward", "1,000.00"},
	}

	got := ExtractTable(tableDoc(table), mustDialect(t, dialect.KotakName))

	assert.Empty(t, got)
}
