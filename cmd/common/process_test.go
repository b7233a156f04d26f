package common_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finparse/stmt-ledger/cmd/common"
	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
	"finparse/stmt-ledger/internal/report"
)

// writeFixture serializes a pre-extracted document payload to a temp file.
func writeFixture(t *testing.T, text string, table [][]string) string {
	t.Helper()
	payload := map[string]interface{}{
		"pages": []map[string]interface{}{
			{"text": text, "table": table},
		},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "statement.json")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func kotakTable() [][]string {
	return [][]string{
		{"Kotak Mahindra Bank Limited", "", "", "", "", "", ""},
		{"#", "Date", "Narration", "Chq/Ref No", "Withdrawal (Dr)", "Deposit (Cr)", "Balance"},
		{"1", "07 May 2025", "UPI/PAYTM/511124", "-", "5,000.00", "", "45,000.00"},
		{"2", "08 May 2025", "NEFT CR ACME CORP", "N123456", "", "10,000.00", "55,000.00"},
	}
}

func TestParseDocumentNamedDialect(t *testing.T) {
	path := writeFixture(t, "statement page", kotakTable())

	result, err := common.ParseDocument(path, "", dialect.KotakName,
		dialect.NewRegistry(), logging.NewMockLogger())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, dialect.KotakName, result.Dialect)
	assert.Equal(t, 2, result.Count)
	assert.NotEmpty(t, result.RunID)
}

func TestParseDocumentAutoDetection(t *testing.T) {
	path := writeFixture(t, "Kotak Mahindra Bank account statement", kotakTable())

	result, err := common.ParseDocument(path, "", common.DialectAuto,
		dialect.NewRegistry(), logging.NewMockLogger())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, dialect.KotakName, result.Dialect)
}

func TestParseDocumentLowConfidenceRoutesToGeneric(t *testing.T) {
	// A single bare "hdfc" scores below the medium threshold; the run must
	// use the generic dialect, whose date heuristic accepts these rows.
	table := [][]string{
		{"Date", "Description", "Ref", "Debit", "Credit", "Balance"},
		{"1/2/2025", "POS PURCHASE", "P555", "1,200.00", "", "8,800.00"},
		{"3/2/2025", "NEFT CR ACME", "N777", "", "500.00", "9,300.00"},
	}
	path := writeFixture(t, "hdfc", table)

	result, err := common.ParseDocument(path, "", common.DialectAuto,
		dialect.NewRegistry(), logging.NewMockLogger())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, dialect.GenericName, result.Dialect)
	assert.Equal(t, 2, result.Count)
}

func TestParseDocumentUnknownDialect(t *testing.T) {
	path := writeFixture(t, "statement page", kotakTable())

	result, err := common.ParseDocument(path, "", "no-such-bank",
		dialect.NewRegistry(), logging.NewMockLogger())

	require.Error(t, err)
	require.NotNil(t, result, "failure still yields an envelope")
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}

func TestParseDocumentRejectsBadExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.txt")
	require.NoError(t, os.WriteFile(path, []byte("not a statement"), 0600))

	result, err := common.ParseDocument(path, "", common.DialectAuto,
		dialect.NewRegistry(), logging.NewMockLogger())

	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
}

func TestParseDocumentMissingFile(t *testing.T) {
	result, err := common.ParseDocument(filepath.Join(t.TempDir(), "absent.json"),
		"", common.DialectAuto, dialect.NewRegistry(), logging.NewMockLogger())

	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
}

func TestEmitWritesFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out", "result.json")
	writer := report.NewWriter(report.FormatJSON, ',')
	result := models.NewParseResult(dialect.GenericName, models.AccountMetadata{}, nil)

	err := common.EmitParseResult(writer, result, outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte(`"success": true`)))
}
