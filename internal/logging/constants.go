package logging

// Standardized field names for structured logging.
// These constants keep the log output consistent across packages so entries
// stay easy to filter by job, attachment, or operation.
const (
	FieldJob        = "job_id"
	FieldFile       = "file_path"
	FieldAttachment = "attachment"
	FieldState      = "state"
	FieldOperation  = "operation"
	FieldKey        = "field_key"
	FieldCount      = "count"
	FieldLine       = "line"
	FieldColumn     = "column"
	FieldOutput     = "output_file"
)
