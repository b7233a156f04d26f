// Package batch handles directory-level statement processing.
package batch

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"finparse/stmt-ledger/cmd/common"
	"finparse/stmt-ledger/cmd/root"
	"finparse/stmt-ledger/internal/batch"
	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/fileutils"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
	"finparse/stmt-ledger/internal/report"
)

// Cmd represents the batch command.
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Parse every statement in a directory and consolidate by account",
	Long: `Parse all statement documents found in an input directory, group the
results by account, merge each group's transactions in date order, and
write one consolidated output file per account into the output directory.
Files that fail to parse are logged and skipped; they never abort the run.

For batch, -i and -o name directories. Output files are named
{account}_{start}_{end}.{json|csv}.

Example:
  stmt-ledger batch -i statements/ -o ledger/ -f csv`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.SharedFlags.Dialect, "dialect", "d", "",
		"Statement dialect to use for every file (default: auto-detect per file)")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("batch mode requires both an input and an output directory")
	}

	format := root.OutputFormat()
	if format != report.FormatJSON && format != report.FormatCSV {
		return fmt.Errorf("unsupported batch output format %q: use json or csv", format)
	}

	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	aggregator := batch.NewAggregator(root.Log)
	files, err := aggregator.DiscoverFiles(inputDir)
	if err != nil {
		return fmt.Errorf("failed to read input directory: %w", err)
	}
	if len(files) == 0 {
		root.Log.Warn("no statement files found in input directory",
			logging.Field{Key: "dir", Value: inputDir})
		return nil
	}
	root.Log.Info("found files for processing",
		logging.Field{Key: logging.FieldCount, Value: len(files)})

	registry := dialect.NewRegistry()
	dialectName := root.DialectName()
	password := root.Password()

	var parsed []batch.FileResult
	for _, file := range files {
		result, err := common.ParseDocument(file, password, dialectName, registry, root.Log)
		if err != nil {
			root.Log.Warn("skipping file after parse failure",
				logging.Field{Key: logging.FieldFile, Value: file},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
			continue
		}
		parsed = append(parsed, batch.FileResult{Path: file, Result: result})
	}
	if len(parsed) == 0 {
		return fmt.Errorf("none of the %d discovered files parsed successfully", len(files))
	}

	writer := report.NewWriter(format, root.Delimiter())
	written := 0
	for _, group := range aggregator.GroupByAccount(parsed) {
		merged := aggregator.MergeTransactions(group)
		result := models.NewParseResult(group.Results[0].Result.Dialect,
			group.Results[0].Result.Metadata, merged)

		outPath := filepath.Join(outputDir, aggregator.OutputFilename(group, format))
		writeErr := report.ToFile(outPath, func(out io.Writer) error {
			if format == report.FormatCSV {
				return writer.WriteTransactionsCSV(out, merged)
			}
			return writer.WriteParseResult(out, result)
		})
		if writeErr != nil {
			return fmt.Errorf("failed to write %s: %w", outPath, writeErr)
		}
		root.Log.Info("wrote consolidated output",
			logging.Field{Key: logging.FieldFile, Value: outPath},
			logging.Field{Key: logging.FieldCount, Value: len(merged)})
		written++
	}

	root.Log.Info("batch processing completed",
		logging.Field{Key: "outputs", Value: written},
		logging.Field{Key: "inputs", Value: len(parsed)})
	return nil
}
