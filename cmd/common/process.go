// Package common contains shared functionality for command handlers: the
// guarded parse pipeline and envelope emission.
package common

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"finparse/stmt-ledger/internal/detect"
	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/engine"
	"finparse/stmt-ledger/internal/extract"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
	"finparse/stmt-ledger/internal/report"
	"finparse/stmt-ledger/internal/validation"
)

// DialectAuto asks for bank detection instead of a named dialect.
const DialectAuto = "auto"

// ParseDocument runs the full pipeline on one document: input validation,
// extraction, dialect resolution (detection when asked for "auto"), and the
// engine. It never panics out: any failure, including a fault in a
// dependency, comes back as a failure envelope plus the error, so callers
// always have something to serialize.
func ParseDocument(path, password, dialectName string, registry *dialect.Registry, log logging.Logger) (result *models.ParseResult, err error) {
	resolved := dialectName
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal fault while parsing '%s': %v", path, r)
			result = models.FailedParseResult(resolved, err, string(debug.Stack()))
		}
	}()

	if vErr := validation.IsValidInputFile(path); vErr != nil {
		return models.FailedParseResult(resolved, vErr, ""), vErr
	}

	doc, err := extract.ForPath(path).Extract(path, password)
	if err != nil {
		return models.FailedParseResult(resolved, err, ""), err
	}

	var d *dialect.Descriptor
	if dialectName == DialectAuto || dialectName == "" {
		verdict := detect.Detect(doc)
		resolved = verdict.Dialect(registry)
		log.Info("detected bank",
			logging.Field{Key: logging.FieldBank, Value: verdict.Bank},
			logging.Field{Key: "confidence", Value: string(verdict.Confidence)},
			logging.Field{Key: logging.FieldDialect, Value: resolved})
		d, err = registry.Get(resolved)
		if err != nil {
			return models.FailedParseResult(resolved, err, ""), err
		}
	} else {
		d, err = registry.Get(dialectName)
		if err != nil {
			return models.FailedParseResult(resolved, err, ""), err
		}
	}

	result, err = engine.Run(doc, d)
	if err != nil {
		return models.FailedParseResult(d.Name, err, ""), err
	}
	return result, nil
}

// Emit renders an envelope to stdout, or to a file when outputPath is set.
func Emit(outputPath string, render func(io.Writer) error) error {
	if outputPath == "" {
		return render(os.Stdout)
	}
	return report.ToFile(outputPath, render)
}

// EmitParseResult writes a parse envelope with the configured writer.
func EmitParseResult(w *report.Writer, result *models.ParseResult, outputPath string) error {
	return Emit(outputPath, func(out io.Writer) error {
		return w.WriteParseResult(out, result)
	})
}
