// Package errors provides structured error handling for scholarseek.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Data/IO errors (dataset, interaction store)
//   - 3XX: Collaborator errors (vector provider, personalization recall)
//   - 4XX: Validation errors
//   - 5XX: Internal pipeline errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryData indicates dataset and store I/O errors.
	CategoryData Category = "DATA"
	// CategoryCollaborator indicates failures of optional collaborators;
	// the pipeline degrades instead of failing.
	CategoryCollaborator Category = "COLLABORATOR"
	// CategoryValidation indicates request validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates an unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates the operation failed but the process continues.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// Data errors (200-299)
	ErrCodeDatasetNotFound = "ERR_201_DATASET_NOT_FOUND"
	ErrCodeDatasetCorrupt  = "ERR_202_DATASET_CORRUPT"
	ErrCodeStoreFailed     = "ERR_203_STORE_FAILED"

	// Collaborator errors (300-399): degrade, never fatal
	ErrCodeVectorUnavailable = "ERR_301_VECTOR_UNAVAILABLE"
	ErrCodeRecallUnavailable = "ERR_302_RECALL_UNAVAILABLE"
	ErrCodeSinkFailed        = "ERR_303_SINK_FAILED"

	// Validation errors (400-499)
	ErrCodeInvalidInput = "ERR_401_INVALID_INPUT"
	ErrCodeQueryEmpty   = "ERR_402_QUERY_EMPTY"
	ErrCodeQueryTooLong = "ERR_403_QUERY_TOO_LONG"
	ErrCodeInvalidTopK  = "ERR_404_INVALID_TOP_K"

	// Internal errors (500-599)
	ErrCodeInternal      = "ERR_501_INTERNAL"
	ErrCodeSearchFailed  = "ERR_502_SEARCH_FAILED"
	ErrCodeScoringFailed = "ERR_503_SCORING_FAILED"
)

// categoryFromCode extracts the category from an error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryData
	case '3':
		return CategoryCollaborator
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on the error code.
// Collaborator failures are warnings: the pipeline degrades gracefully.
func severityFromCode(code string) Severity {
	switch categoryFromCode(code) {
	case CategoryCollaborator:
		return SeverityWarning
	case CategoryInternal:
		return SeverityFatal
	default:
		return SeverityError
	}
}
