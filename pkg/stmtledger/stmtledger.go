// Package stmtledger is the embeddable entry point for statement parsing.
// It wraps the extraction, detection, engine, and template layers behind
// three calls so other Go programs can use the parser without the CLI.
package stmtledger

import (
	"finparse/stmt-ledger/internal/detect"
	"finparse/stmt-ledger/internal/dialect"
	"finparse/stmt-ledger/internal/engine"
	"finparse/stmt-ledger/internal/extract"
	"finparse/stmt-ledger/internal/models"
	"finparse/stmt-ledger/internal/template"
	"finparse/stmt-ledger/internal/validation"
)

// Options adjusts a parse run. The zero value auto-detects the bank and
// reads unencrypted documents.
type Options struct {
	// Dialect names the statement dialect to use. Empty or "auto" routes
	// through bank detection.
	Dialect string

	// Password unlocks encrypted documents.
	Password string
}

// ParseFile converts one statement document into a normalized ledger. The
// envelope reports failures through its Success and Error fields; the error
// return carries the same cause for callers that prefer control flow.
func ParseFile(path string, opts Options) (*models.ParseResult, error) {
	registry := dialect.NewRegistry()

	if err := validation.IsValidInputFile(path); err != nil {
		return models.FailedParseResult(opts.Dialect, err, ""), err
	}
	doc, err := extract.ForPath(path).Extract(path, opts.Password)
	if err != nil {
		return models.FailedParseResult(opts.Dialect, err, ""), err
	}

	var d *dialect.Descriptor
	if opts.Dialect == "" || opts.Dialect == "auto" {
		resolved := detect.Detect(doc).Dialect(registry)
		d, err = registry.Get(resolved)
		if err != nil {
			return models.FailedParseResult(resolved, err, ""), err
		}
	} else {
		d, err = registry.Get(opts.Dialect)
		if err != nil {
			return models.FailedParseResult(opts.Dialect, err, ""), err
		}
	}

	result, err := engine.Run(doc, d)
	if err != nil {
		return models.FailedParseResult(d.Name, err, ""), err
	}
	return result, nil
}

// DetectBank reports the issuing bank of a statement document.
func DetectBank(path string, opts Options) (detect.Score, error) {
	doc, err := extract.ForPath(path).Extract(path, opts.Password)
	if err != nil {
		return detect.Score{}, err
	}
	return detect.Detect(doc), nil
}

// LearnFile infers a template profile from a statement document.
func LearnFile(path string, opts Options) (*models.TemplateProfile, error) {
	doc, err := extract.ForPath(path).Extract(path, opts.Password)
	if err != nil {
		return nil, err
	}
	return template.Learn(doc)
}

// ApplyFile replays a template mapping against a statement document.
func ApplyFile(path string, mapping models.TemplateMapping, opts Options) (*models.ApplyResult, error) {
	doc, err := extract.ForPath(path).Extract(path, opts.Password)
	if err != nil {
		return nil, err
	}
	return template.Apply(doc, mapping)
}
