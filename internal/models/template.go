package models

// Logical field names a template mapping may bind. These are the only keys
// the template player understands.
const (
	FieldDate            = "date"
	FieldValueDate       = "valueDate"
	FieldNarration       = "narration"
	FieldReference       = "reference"
	FieldWithdrawal      = "withdrawal"
	FieldDeposit         = "deposit"
	FieldAmount          = "amount"
	FieldBalance         = "balance"
	FieldTransactionType = "transactionType"
	FieldCategory        = "category"
	FieldMerchant        = "merchant"
	FieldCardNumber      = "cardNumber"
)

// ColumnRef points a logical field at a source column, optionally with a
// format hint for date fields (e.g. "DD/MM/YYYY").
type ColumnRef struct {
	Source string `json:"source" yaml:"source"` // "col_0", "col_1", ...
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// TemplateMapping binds logical fields to table columns. Produced by hand or
// from a learner run; the player consumes it read-only.
type TemplateMapping map[string]ColumnRef

// ColumnType is the semantic type the learner infers for a table column.
type ColumnType string

const (
	ColumnDate    ColumnType = "date"
	ColumnAmount  ColumnType = "amount"
	ColumnNumber  ColumnType = "number"
	ColumnText    ColumnType = "text"
	ColumnUnknown ColumnType = "unknown"
)

// TemplateProfile is the learner's description of a document's transaction
// table: labels, per-column semantic types, a few sample rows, and the text
// markers seen in the document body. Write-once per learning run.
type TemplateProfile struct {
	Headers        []string     `json:"headers" yaml:"headers"`
	ColumnTypes    []ColumnType `json:"column_types" yaml:"column_types"`
	SampleRows     [][]string   `json:"sample_rows" yaml:"sample_rows"`
	RowCount       int          `json:"row_count" yaml:"row_count"`
	HeaderRowIndex int          `json:"header_row_index" yaml:"header_row_index"`
	TextMarkers    []string     `json:"text_patterns" yaml:"text_patterns"`
}
