package template

import (
	"strconv"
	"strings"

	"finparse/stmt-ledger/internal/currencyutils"
	"finparse/stmt-ledger/internal/dateutils"
	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/extract"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
	"finparse/stmt-ledger/internal/parsererror"
)

// headerBoundaryRows is how deep the player looks for a header row before
// assuming the table starts with data.
const headerBoundaryRows = 5

// Apply replays a persisted mapping against a document of matching layout.
// Rows that miss a required field are skipped with a recorded reason, never
// aborting the remaining rows; only a document without tables is fatal.
func Apply(doc *extract.Document, mapping models.TemplateMapping) (*models.ApplyResult, error) {
	tables := doc.Tables()
	if len(tables) == 0 {
		return nil, &parsererror.NoStructureError{Detail: "no tables found"}
	}

	var rows [][]string
	for _, t := range tables {
		rows = append(rows, t...)
	}
	rows = rows[dataStart(rows):]

	result := &models.ApplyResult{}
	for i, row := range rows {
		if isBlankRow(row) {
			continue
		}
		result.RowsProcessed++
		txn, reason := playRow(row, mapping)
		if reason != "" {
			result.RowsSkipped++
			if len(result.Errors) < models.MaxApplyErrors {
				fv := &parsererror.FieldValidationError{Row: i + 1, Reason: reason}
				result.Errors = append(result.Errors, fv.Error())
			}
			log.Debug("skipped row",
				logging.Field{Key: logging.FieldRow, Value: i + 1},
				logging.Field{Key: logging.FieldReason, Value: reason})
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}
	return result, nil
}

// dataStart locates the header boundary: the first early row carrying a
// header keyword. Data begins after it, or at the top when no header shows.
func dataStart(rows [][]string) int {
	limit := len(rows)
	if limit > headerBoundaryRows {
		limit = headerBoundaryRows
	}
	for i := 0; i < limit; i++ {
		joined := strings.ToLower(strings.Join(rows[i], " "))
		for _, kw := range dialect.DefaultHeaderKeywords {
			if strings.Contains(joined, kw) {
				return i + 1
			}
		}
	}
	return 0
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// playRow maps one row onto a transaction. The raw cell text is recorded
// per field before any normalization, so a failed parse still leaves an
// audit trail. A non-empty reason means the row lacks a required field.
func playRow(row []string, mapping models.TemplateMapping) (models.Transaction, string) {
	txn := models.Transaction{RawValues: make(map[string]string, len(mapping))}

	cells := make(map[string]string, len(mapping))
	for field, ref := range mapping {
		raw := cellAt(row, ref.Source)
		txn.RawValues[field] = raw
		cells[field] = strings.TrimSpace(raw)
	}

	if ref, ok := mapping[models.FieldDate]; ok {
		if t, err := dateutils.ParseDateHint(cells[models.FieldDate], ref.Format); err == nil {
			txn.Date = t
		}
	}
	if !txn.HasDate() {
		return txn, "missing or unparsable date"
	}
	if ref, ok := mapping[models.FieldValueDate]; ok {
		if t, err := dateutils.ParseDateHint(cells[models.FieldValueDate], ref.Format); err == nil {
			txn.ValueDate = t
		}
	}

	txn.Description = cells[models.FieldNarration]
	if txn.Description == "" {
		txn.Description = cells[models.FieldMerchant]
	}
	if txn.Description == "" {
		return txn, "missing narration and merchant"
	}
	txn.Reference = cells[models.FieldReference]

	if !assignPlayedAmount(&txn, cells, mapping) {
		return txn, "missing withdrawal, deposit, and amount"
	}

	if v, err := currencyutils.ParseAmount(cells[models.FieldBalance]); err == nil {
		txn.SetBalance(v)
	}
	return txn, ""
}

// assignPlayedAmount resolves the amount and polarity: a withdrawal column
// wins as a debit, a deposit column as a credit, and a bare amount column
// takes its polarity from an explicit type column or its own sign.
func assignPlayedAmount(txn *models.Transaction, cells map[string]string, mapping models.TemplateMapping) bool {
	if v, err := currencyutils.ParseAmount(cells[models.FieldWithdrawal]); err == nil && !v.IsZero() {
		txn.Amount = v.Abs()
		txn.Type = models.EntryDebit
		return true
	}
	if v, err := currencyutils.ParseAmount(cells[models.FieldDeposit]); err == nil && !v.IsZero() {
		txn.Amount = v.Abs()
		txn.Type = models.EntryCredit
		return true
	}

	v, err := currencyutils.ParseAmount(cells[models.FieldAmount])
	if err != nil || v.IsZero() {
		return false
	}
	txn.Amount = v.Abs()
	switch {
	case cells[models.FieldTransactionType] != "":
		txn.Type = parseTypeCell(cells[models.FieldTransactionType])
	case v.IsNegative():
		txn.Type = models.EntryDebit
	default:
		txn.Type = models.EntryCredit
	}
	return true
}

func parseTypeCell(cell string) models.EntryType {
	if strings.Contains(strings.ToLower(cell), "cr") {
		return models.EntryCredit
	}
	return models.EntryDebit
}

// cellAt reads the column a "col_N" reference points at; out-of-range and
// malformed references read as empty cells.
func cellAt(row []string, source string) string {
	idx, ok := columnIndex(source)
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func columnIndex(source string) (int, bool) {
	const prefix = "col_"
	if !strings.HasPrefix(source, prefix) {
		return 0, false
	}
	idx, err := strconv.Atoi(source[len(prefix):])
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}
