// Package learn handles the template-learning command.
package learn

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

var saveName string

// Cmd represents the learn command.
var Cmd = &cobra.Command{
	Use:   "learn",
	Short: "Infer a template profile from a statement document",
	Long: `Learn a template profile from an arbitrary statement document: the header
row, per-column semantic types (date, amount, number, text), sample rows,
and the document-type markers found in the text. The profile helps a human
write a field mapping for the 'apply' command.

Example:
  stmt-ledger learn -i statement.pdf --save hdfc-savings`,
	RunE: learnFunc,
}

func init() {
	Cmd.Flags().StringVar(&saveName, "save", "", "Save the learned profile under this template name")
}

func learnFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidInputFile(root.SharedFlags.Input); err != nil {
		return emitLearnFailure(err)
	}

	doc, err := extract.ForPath(root.SharedFlags.Input).Extract(root.SharedFlags.Input, root.Password())
	if err != nil {
		return emitLearnFailure(err)
	}

	profile, err := template.Learn(doc)
	if err != nil {
		return emitLearnFailure(err)
	}

	if saveName != "" {
		store := template.NewStore(root.TemplatesDir())
		if err := store.SaveProfile(saveName, profile); err != nil {
			return err
		}
		root.Log.Info("saved learned profile",
			logging.Field{Key: logging.FieldTemplate, Value: saveName})
	}

	writer := report.NewWriter(report.FormatJSON, root.Delimiter())
	return common.Emit(root.SharedFlags.Output, func(out io.Writer) error {
		return writer.WriteJSON(out, models.LearnResult{Profile: profile})
	})
}

// emitLearnFailure serializes the error envelope before failing the command.
func emitLearnFailure(cause error) error {
	writer := report.NewWriter(report.FormatJSON, root.Delimiter())
	if err := common.Emit(root.SharedFlags.Output, func(out io.Writer) error {
		return writer.WriteJSON(out, models.LearnResult{Error: cause.Error()})
	}); err != nil {
		return err
	}
	return fmt.Errorf("learn failed: %w", cause)
}
