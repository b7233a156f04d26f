// Package report renders result envelopes: the JSON contract on stdout or
// file, a CSV export of the normalized ledger, and a human-readable
// terminal summary table.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/olekukonko/tablewriter"

	"finparse/stmt-ledger/internal/currencyutils"
	"finparse/stmt-ledger/internal/dateutils"
	"finparse/stmt-ledger/internal/fileutils"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
)

var log = logging.GetLogger()

// Output formats.
const (
	FormatJSON  = "json"
	FormatCSV   = "csv"
	FormatTable = "table"
)

// Writer renders envelopes in a configured format.
type Writer struct {
	Format    string
	Delimiter rune
}

// NewWriter builds a Writer; an empty format means JSON and a zero
// delimiter means comma.
func NewWriter(format string, delimiter rune) *Writer {
	if format == "" {
		format = FormatJSON
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Writer{Format: format, Delimiter: delimiter}
}

// WriteParseResult renders a parse envelope. CSV and table formats only
// apply to successful envelopes; failures always serialize as JSON so the
// error contract holds regardless of the requested format.
func (w *Writer) WriteParseResult(out io.Writer, result *models.ParseResult) error {
	if !result.Success {
		return writeJSON(out, result)
	}
	switch w.Format {
	case FormatCSV:
		return w.WriteTransactionsCSV(out, result.Transactions)
	case FormatTable:
		return writeSummaryTable(out, result)
	default:
		return writeJSON(out, result)
	}
}

// WriteApplyResult renders a template-player envelope. The CSV format
// exports the accepted transactions; everything else is the JSON contract.
func (w *Writer) WriteApplyResult(out io.Writer, result *models.ApplyResult) error {
	if w.Format == FormatCSV && result.Error == "" {
		return w.WriteTransactionsCSV(out, result.Transactions)
	}
	return writeJSON(out, result)
}

// WriteJSON renders any envelope as indented JSON (learner output, detect
// verdicts).
func (w *Writer) WriteJSON(out io.Writer, v interface{}) error {
	return writeJSON(out, v)
}

// ToFile writes through the given render func to a file, creating parent
// directories.
func ToFile(path string, render func(io.Writer) error) error {
	file, err := fileutils.CreateFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Warn("failed to close output file",
				logging.Field{Key: logging.FieldFile, Value: path},
				logging.Field{Key: logging.FieldError, Value: err})
		}
	}()
	if err := render(file); err != nil {
		return err
	}
	log.Info("wrote output file", logging.Field{Key: logging.FieldFile, Value: path})
	return nil
}

func writeJSON(out io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	data = append(data, '\n')
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

// csvTransaction is the flat CSV projection of a transaction.
type csvTransaction struct {
	Date            string `csv:"Date"`
	ValueDate       string `csv:"ValueDate"`
	Description     string `csv:"Description"`
	Reference       string `csv:"Reference"`
	Type            string `csv:"Type"`
	Amount          string `csv:"Amount"`
	Balance         string `csv:"Balance"`
	AmountCorrected string `csv:"AmountCorrected"`
	OriginalAmount  string `csv:"OriginalAmount"`
	Suspicious      string `csv:"Suspicious"`
	ShownBalance    string `csv:"ShownBalance"`
}

// WriteTransactionsCSV exports the ledger with the configured delimiter.
func (w *Writer) WriteTransactionsCSV(out io.Writer, txns []models.Transaction) error {
	rows := make([]csvTransaction, len(txns))
	for i, t := range txns {
		row := csvTransaction{
			Date:        dateutils.ToISODate(t.Date),
			ValueDate:   dateutils.ToISODate(t.ValueDate),
			Description: t.Description,
			Reference:   t.Reference,
			Type:        string(t.Type),
			Amount:      t.Amount.StringFixed(2),
		}
		if t.HasBalance {
			row.Balance = t.Balance.StringFixed(2)
		}
		if t.AmountCorrected {
			row.AmountCorrected = "true"
			row.OriginalAmount = t.OriginalAmount.StringFixed(2)
		}
		if t.Suspicious {
			row.Suspicious = t.SuspiciousReason
		}
		if t.SweepAdjusted {
			row.ShownBalance = t.ShownBalance.StringFixed(2)
		}
		rows[i] = row
	}

	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.Delimiter
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	log.Info("wrote transactions as CSV",
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return nil
}

// writeSummaryTable renders the metadata block and the ledger as a
// terminal table.
func writeSummaryTable(out io.Writer, result *models.ParseResult) error {
	meta := result.Metadata
	if meta.Bank != "" {
		fmt.Fprintf(out, "Bank:      %s\n", meta.Bank)
	}
	if meta.AccountNo != "" {
		fmt.Fprintf(out, "Account:   %s\n", meta.AccountNo)
	}
	if meta.Name != "" {
		fmt.Fprintf(out, "Holder:    %s\n", meta.Name)
	}
	if !meta.Period.IsZero() {
		fmt.Fprintf(out, "Period:    %s to %s\n",
			dateutils.ToISODate(meta.Period.From), dateutils.ToISODate(meta.Period.To))
	}
	if meta.HasOpeningBalance {
		fmt.Fprintf(out, "Opening:   %s\n", currencyutils.FormatAmount(meta.OpeningBalance, meta.Currency))
	}
	if meta.HasClosingBalance {
		fmt.Fprintf(out, "Closing:   %s\n", currencyutils.FormatAmount(meta.ClosingBalance, meta.Currency))
	}
	fmt.Fprintln(out)

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Date", "Description", "Type", "Amount", "Balance", "Flags"})
	table.SetBorder(false)
	for _, t := range result.Transactions {
		balance := ""
		if t.HasBalance {
			balance = t.Balance.StringFixed(2)
		}
		table.Append([]string{
			dateutils.ToISODate(t.Date),
			t.Description,
			string(t.Type),
			t.Amount.StringFixed(2),
			balance,
			flags(t),
		})
	}
	table.Render()

	fmt.Fprintf(out, "\n%d transactions", result.Count)
	if result.HasSweepInfo && len(result.SweepTransactions) > 0 {
		fmt.Fprintf(out, ", %d sweep transfers (net %s parked)",
			len(result.SweepTransactions), result.SweepBalance.StringFixed(2))
	}
	fmt.Fprintln(out)
	return nil
}

func flags(t models.Transaction) string {
	var out string
	add := func(s string) {
		if out != "" {
			out += ","
		}
		out += s
	}
	if t.AmountCorrected {
		add("corrected")
	}
	if t.Suspicious {
		add("suspicious")
	}
	if t.SweepAdjusted {
		add("sweep-adj")
	}
	return out
}
