package stmtledger_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finparse/stmt-ledger/internal/models"
	"finparse/stmt-ledger/pkg/stmtledger"
)

func writeStatement(t *testing.T, text string, table [][]string) string {
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

func statementTable() [][]string {
	return [][]string{
		{"#", "Date", "Narration", "Chq/Ref No", "Withdrawal (Dr)", "Deposit (Cr)", "Balance"},
		{"1", "07 May 2025", "UPI/PAYTM/511124", "-", "5,000.00", "", "45,000.00"},
		{"2", "08 May 2025", "NEFT CR ACME CORP", "N123456", "", "10,000.00", "55,000.00"},
	}
}

func TestParseFileNamedDialect(t *testing.T) {
	path := writeStatement(t, "account statement", statementTable())

	result, err := stmtledger.ParseFile(path, stmtledger.Options{Dialect: "kotak"})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Count)
}

func TestParseFileAutoDetect(t *testing.T) {
	path := writeStatement(t, "Kotak Mahindra Bank statement", statementTable())

	result, err := stmtledger.ParseFile(path, stmtledger.Options{})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "kotak", result.Dialect)
}

func TestParseFileLowConfidenceAutoUsesGeneric(t *testing.T) {
	table := [][]string{
		{"Date", "Description", "Ref", "Debit", "Credit", "Balance"},
		{"1/2/2025", "POS PURCHASE", "P555", "1,200.00", "", "8,800.00"},
	}
	path := writeStatement(t, "hdfc", table)

	result, err := stmtledger.ParseFile(path, stmtledger.Options{})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "generic", result.Dialect)
}

func TestParseFileFailureEnvelope(t *testing.T) {
	result, err := stmtledger.ParseFile(filepath.Join(t.TempDir(), "absent.json"), stmtledger.Options{})

	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, err.Error(), result.Error)
}

func TestDetectBank(t *testing.T) {
	path := writeStatement(t, "HDFC Bank We understand your world", statementTable())

	score, err := stmtledger.DetectBank(path, stmtledger.Options{})

	require.NoError(t, err)
	assert.Equal(t, "hdfc", score.Bank)
}

func TestLearnFile(t *testing.T) {
	path := writeStatement(t, "statement", statementTable())

	profile, err := stmtledger.LearnFile(path, stmtledger.Options{})

	require.NoError(t, err)
	assert.Equal(t, "Date", profile.Headers[1])
	assert.Equal(t, 2, profile.RowCount)
}

func TestApplyFile(t *testing.T) {
	path := writeStatement(t, "statement", statementTable())
	mapping := models.TemplateMapping{
		models.FieldDate:       {Source: "col_1"},
		models.FieldNarration:  {Source: "col_2"},
		models.FieldWithdrawal: {Source: "col_4"},
		models.FieldDeposit:    {Source: "col_5"},
		models.FieldBalance:    {Source: "col_6"},
	}

	result, err := stmtledger.ApplyFile(path, mapping, stmtledger.Options{})

	require.NoError(t, err)
	assert.Len(t, result.Transactions, 2)
	assert.Empty(t, result.Errors)
}
