package batch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
)

func day(d int) time.Time {
	return time.Date(2025, 5, d, 0, 0, 0, 0, time.UTC)
}

func resultFor(account string, from, to time.Time) *models.ParseResult {
	meta := models.AccountMetadata{AccountNo: account}
	meta.Period = models.StatementPeriod{From: from, To: to}
	return models.NewParseResult("hdfc", meta, nil)
}

func TestDateRangeMerge(t *testing.T) {
	a := DateRange{Start: day(5), End: day(10)}
	b := DateRange{Start: day(1), End: day(7)}

	merged := a.Merge(b)
	assert.Equal(t, day(1), merged.Start)
	assert.Equal(t, day(10), merged.End)

	// Zero ranges are absorbed.
	assert.Equal(t, a, a.Merge(DateRange{}))
	assert.Equal(t, a, DateRange{}.Merge(a))
}

func TestDateRangeString(t *testing.T) {
	assert.Equal(t, "2025-05-01_2025-05-31", DateRange{Start: day(1), End: day(31)}.String())
	assert.Equal(t, "", DateRange{Start: day(1)}.String())
}

func TestDiscoverFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.json", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
	}

	files, err := NewAggregator(logging.NewMockLogger()).DiscoverFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.json", filepath.Base(files[0]))
	assert.Equal(t, "b.pdf", filepath.Base(files[1]))
}

func TestGroupByAccountMergesRanges(t *testing.T) {
	agg := NewAggregator(logging.NewMockLogger())
	results := []FileResult{
		{Path: "may.pdf", Result: resultFor("50100123456789", day(1), day(15))},
		{Path: "late-may.pdf", Result: resultFor("50100123456789", day(10), day(31))},
		{Path: "other.pdf", Result: resultFor("9876543210", day(1), day(31))},
	}

	groups := agg.GroupByAccount(results)
	require.Len(t, groups, 2)

	// Sorted by account ID.
	assert.Equal(t, "50100123456789", groups[0].AccountID)
	assert.Len(t, groups[0].Results, 2)
	assert.Equal(t, day(1), groups[0].DateRange.Start)
	assert.Equal(t, day(31), groups[0].DateRange.End)
	assert.Equal(t, "9876543210", groups[1].AccountID)
}

func TestGroupByAccountFallsBackToFileStem(t *testing.T) {
	agg := NewAggregator(logging.NewMockLogger())
	result := models.NewParseResult("generic", models.AccountMetadata{}, nil)

	groups := agg.GroupByAccount([]FileResult{{Path: "/in/kotak may 2025.pdf", Result: result}})
	require.Len(t, groups, 1)
	assert.Equal(t, "kotak_may_2025", groups[0].AccountID)
}

func TestGroupRangeFromTransactionsWhenPeriodMissing(t *testing.T) {
	txns := []models.Transaction{
		{Date: day(9), Amount: decimal.New(1, 0), Type: models.EntryDebit},
		{Date: day(3), Amount: decimal.New(1, 0), Type: models.EntryCredit},
	}
	result := models.NewParseResult("generic", models.AccountMetadata{AccountNo: "42"}, txns)

	groups := NewAggregator(logging.NewMockLogger()).GroupByAccount([]FileResult{{Path: "x.pdf", Result: result}})
	require.Len(t, groups, 1)
	assert.Equal(t, day(3), groups[0].DateRange.Start)
	assert.Equal(t, day(9), groups[0].DateRange.End)
}

func TestMergeTransactionsOrdersByDate(t *testing.T) {
	agg := NewAggregator(logging.NewMockLogger())
	first := models.NewParseResult("hdfc", models.AccountMetadata{AccountNo: "42"}, []models.Transaction{
		{Date: day(20), Description: "late", Amount: decimal.New(1, 0), Type: models.EntryDebit},
	})
	second := models.NewParseResult("hdfc", models.AccountMetadata{AccountNo: "42"}, []models.Transaction{
		{Date: day(2), Description: "early", Amount: decimal.New(1, 0), Type: models.EntryDebit},
	})
	group := Group{Results: []FileResult{{Result: first}, {Result: second}}}

	merged := agg.MergeTransactions(group)
	require.Len(t, merged, 2)
	assert.Equal(t, "early", merged[0].Description)
	assert.Equal(t, "late", merged[1].Description)
}

func TestOutputFilename(t *testing.T) {
	agg := NewAggregator(logging.NewMockLogger())

	withRange := Group{AccountID: "42", DateRange: DateRange{Start: day(1), End: day(31)}}
	assert.Equal(t, "42_2025-05-01_2025-05-31.csv", agg.OutputFilename(withRange, "csv"))

	bare := Group{AccountID: "42"}
	assert.Equal(t, "42.json", agg.OutputFilename(bare, "json"))
}

func TestSanitizeAccountID(t *testing.T) {
	assert.Equal(t, "50100_12345", SanitizeAccountID("50100/12345"))
	assert.Equal(t, "acct-1.2", SanitizeAccountID("  acct-1.2  "))
	assert.Equal(t, "unknown", SanitizeAccountID("///"))
}
