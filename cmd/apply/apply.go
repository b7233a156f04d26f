// Package apply handles the template-replay command.
package apply

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"finparse/stmt-ledger/cmd/common"
	"finparse/stmt-ledger/cmd/root"
	"finparse/stmt-ledger/internal/extract"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
	"finparse/stmt-ledger/internal/report"
	"finparse/stmt-ledger/internal/template"
	"finparse/stmt-ledger/internal/validation"
)

var templateName string

// Cmd represents the apply command.
var Cmd = &cobra.Command{
	Use:   "apply",
	Short: "Replay a saved template mapping against a statement document",
	Long: `Apply a previously authored template mapping to a statement document.
The mapping binds semantic fields (date, narration, withdrawal, deposit,
amount, balance) to table columns; rows that fail to satisfy the mapping
are skipped and reported as row-level errors instead of failing the run.

Example:
  stmt-ledger apply -i statement.pdf -t hdfc-savings -f csv -o ledger.csv`,
	RunE: applyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&templateName, "template", "t", "", "Template mapping: a stored name or a YAML/JSON file path")
	_ = Cmd.MarkFlagRequired("template")
}

func applyFunc(cmd *cobra.Command, args []string) error {
	format := root.OutputFormat()
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}
	writer := report.NewWriter(format, root.Delimiter())

	store := template.NewStore(root.TemplatesDir())
	mapping, err := store.LoadMapping(templateName)
	if err != nil {
		return emitApplyFailure(writer, err)
	}

	if err := validation.IsValidInputFile(root.SharedFlags.Input); err != nil {
		return emitApplyFailure(writer, err)
	}
	doc, err := extract.ForPath(root.SharedFlags.Input).Extract(root.SharedFlags.Input, root.Password())
	if err != nil {
		return emitApplyFailure(writer, err)
	}

	result, err := template.Apply(doc, mapping)
	if err != nil {
		return emitApplyFailure(writer, err)
	}
	root.Log.Info("template applied",
		logging.Field{Key: logging.FieldTemplate, Value: templateName},
		logging.Field{Key: "rows_processed", Value: result.RowsProcessed},
		logging.Field{Key: "rows_skipped", Value: result.RowsSkipped})

	return common.Emit(root.SharedFlags.Output, func(out io.Writer) error {
		return writer.WriteApplyResult(out, result)
	})
}

// emitApplyFailure serializes the error envelope before failing the command.
func emitApplyFailure(writer *report.Writer, cause error) error {
	if err := common.Emit(root.SharedFlags.Output, func(out io.Writer) error {
		return writer.WriteApplyResult(out, &models.ApplyResult{Error: cause.Error()})
	}); err != nil {
		return err
	}
	return fmt.Errorf("apply failed: %w", cause)
}
