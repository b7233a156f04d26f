// Package parsererror defines the typed errors shared across the parsing
// pipeline. Row-level problems are collected or skipped and never abort a
// document parse; document-level problems always do.
package parsererror

import "fmt"

// DocumentAccessError reports a document that could not be opened or
// decrypted (missing/wrong password, unreadable or corrupt file). It is
// fatal for the whole parse.
type DocumentAccessError struct {
	Path   string
	Reason string
	Err    error
}

func (e *DocumentAccessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot access document '%s': %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot access document '%s': %s", e.Path, e.Reason)
}

func (e *DocumentAccessError) Unwrap() error {
	return e.Err
}

// NoStructureError reports that an extraction path found nothing to work
// with: no tables, no identifiable header row, or no data rows. Fatal for
// the current extraction path; callers may fall back to another path before
// surfacing it.
type NoStructureError struct {
	Path   string
	Detail string
}

func (e *NoStructureError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("no parsable structure in '%s': %s", e.Path, e.Detail)
	}
	return fmt.Sprintf("no parsable structure: %s", e.Detail)
}

// FieldValidationError reports a template-player row missing a required
// field. Collected into a bounded list; never fatal.
type FieldValidationError struct {
	Row    int
	Reason string
}

func (e *FieldValidationError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Reason)
}

// ParseError reports a value that could not be normalized (amount, date).
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports invalid caller input (bad path, unknown format).
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}
