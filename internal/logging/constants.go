package logging

// Standardized field names for structured logging. Keeping the keys in one
// place keeps log output consistent and filterable across packages.
const (
	FieldFile       = "file_path"
	FieldDialect    = "dialect"
	FieldBank       = "bank"
	FieldPage       = "page"
	FieldRow        = "row"
	FieldLine       = "line"
	FieldCount      = "count"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldTemplate   = "template"
	FieldFormat     = "format"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldRunID      = "run_id"
)
