package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile       = "file_path"
	FieldParser     = "parser"
	FieldFormat     = "format"
	FieldPage       = "page"
	FieldLine       = "line"
	FieldReason     = "reason"
	FieldError      = "error"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldSessionID  = "session_id"
)
