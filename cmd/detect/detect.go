// Package detect handles the bank-detection command.
package detect

import (
	"io"

	"github.com/spf13/cobra"

	"finparse/stmt-ledger/cmd/common"
	"finparse/stmt-ledger/cmd/root"
	"finparse/stmt-ledger/internal/detect"
	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/extract"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/report"
	"finparse/stmt-ledger/internal/validation"
)

// Cmd represents the detect command.
var Cmd = &cobra.Command{
	Use:   "detect",
	Short: "Identify the issuing bank of a statement document",
	Long: `Scan the first page of a statement document for bank identity markers
and report the detected bank, its keyword score, the confidence band, and
the dialect the parser would route the document to.

Example:
  stmt-ledger detect -i statement.pdf`,
	RunE: detectFunc,
}

// verdict is the serialized detection report.
type verdict struct {
	detect.Score
	Dialect string `json:"dialect"`
}

func detectFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidInputFile(root.SharedFlags.Input); err != nil {
		return err
	}

	doc, err := extract.ForPath(root.SharedFlags.Input).Extract(root.SharedFlags.Input, root.Password())
	if err != nil {
		return err
	}

	registry := dialect.NewRegistry()
	score := detect.Detect(doc)
	root.Log.Info("bank detected",
		logging.Field{Key: logging.FieldBank, Value: score.Bank},
		logging.Field{Key: "confidence", Value: string(score.Confidence)})

	writer := report.NewWriter(report.FormatJSON, root.Delimiter())
	return common.Emit(root.SharedFlags.Output, func(out io.Writer) error {
		return writer.WriteJSON(out, verdict{Score: score, Dialect: score.Dialect(registry)})
	})
}
