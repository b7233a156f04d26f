// Package validation checks caller input before a parse starts: paths,
// document extensions, output formats.
package validation

import (
	"path/filepath"
	"strings"

	"finparse/stmt-ledger/internal/parsererror"
)

// InputExtensions are the document types the extraction adapters read.
var InputExtensions = []string{".pdf", ".json"}

// IsValidInputFile checks that the path names a supported document type.
// Existence is the extractor's concern; this only rejects types no adapter
// can handle.
func IsValidInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return &parsererror.ValidationError{FilePath: path, Reason: "input file is required"}
	}
	ext := filepath.Ext(path)
	for _, want := range InputExtensions {
		if strings.EqualFold(ext, want) {
			return nil
		}
	}
	return &parsererror.ValidationError{
		FilePath: path,
		Reason:   "unsupported document type '" + ext + "' (supported: " + strings.Join(InputExtensions, ", ") + ")",
	}
}

// IsValidOutputFormat checks the requested result rendering.
func IsValidOutputFormat(format string) error {
	switch format {
	case "json", "csv", "table":
		return nil
	default:
		return &parsererror.ValidationError{
			FilePath: format,
			Reason:   "unsupported output format (supported: json, csv, table)",
		}
	}
}
