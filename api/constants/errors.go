package constants

// ============================================================================
// UPLOAD / INGESTION ERRORS
// ============================================================================

const (
	ErrInvalidReportDate = "report_date is required in YYYY-MM-DD format"
	ErrNoFilesUploaded   = "No files uploaded. The weekly engagement list is required"
	ErrEmptyEngagement   = "Engagement export contains no data rows"
	ErrUnsupportedFile   = "Unsupported file type. Only .csv, .xls and .xlsx are accepted"
	ErrSchemaNotFound    = "Could not locate the expected header row in any sheet of the uploaded file"
)

// ============================================================================
// DASHBOARD ERRORS
// ============================================================================

const (
	ErrNoEntriesForDate = "No revenue entries stored for the requested reporting date"
	ErrNoReportingDates = "No reporting dates have been uploaded yet"
)
