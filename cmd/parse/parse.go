// Package parse handles the single-document parse command.
package parse

import (
	"fmt"

	"github.com/spf13/cobra"

	"finparse/stmt-ledger/cmd/common"
	"finparse/stmt-ledger/cmd/root"
	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/report"
	"finparse/stmt-ledger/internal/validation"
)

// Cmd represents the parse command.
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse one statement document into a normalized ledger",
	Long: `Parse a bank statement document into a normalized transaction ledger.

The dialect is detected from the first page unless named with --dialect.
The result envelope is written as JSON by default; --format csv exports the
ledger, --format table renders a terminal summary.

Example:
  stmt-ledger parse -i statement.pdf --dialect hdfc -o ledger.json`,
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.SharedFlags.Dialect, "dialect", "d", "", "Dialect: hdfc, kotak, generic, or auto (default from config)")
}

func parseFunc(cmd *cobra.Command, args []string) error {
	format := root.OutputFormat()
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}

	dialectName := root.DialectName()
	root.Log.Info("parsing statement document",
		logging.Field{Key: logging.FieldInputFile, Value: root.SharedFlags.Input},
		logging.Field{Key: logging.FieldDialect, Value: dialectName})

	result, parseErr := common.ParseDocument(
		root.SharedFlags.Input, root.Password(), dialectName,
		dialect.NewRegistry(), root.Log)

	writer := report.NewWriter(format, root.Delimiter())
	if err := common.EmitParseResult(writer, result, root.SharedFlags.Output); err != nil {
		return err
	}
	if parseErr != nil {
		return fmt.Errorf("parse failed: %w", parseErr)
	}
	root.Log.Info("parse completed",
		logging.Field{Key: logging.FieldCount, Value: result.Count},
		logging.Field{Key: logging.FieldRunID, Value: result.RunID})
	return nil
}
