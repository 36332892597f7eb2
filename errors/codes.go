package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Step configuration errors
const (
	// ErrCodeSerialization indicates a value could not be encoded as markup.
	ErrCodeSerialization ErrorCode = "SERIALIZATION_ERROR"
	// ErrCodeConfigLoad indicates the markup tree could not be read.
	ErrCodeConfigLoad ErrorCode = "CONFIG_LOAD_ERROR"
	// ErrCodeMissingParameter indicates a required parameter was never set.
	ErrCodeMissingParameter ErrorCode = "MISSING_REQUIRED_PARAMETER"
	// ErrCodeSchemaMutation indicates the schema container rejected a column.
	ErrCodeSchemaMutation ErrorCode = "SCHEMA_MUTATION_ERROR"
)

// Attribute store errors (retryable)
const (
	// ErrCodeRepositorySave indicates a write to the attribute store failed.
	ErrCodeRepositorySave ErrorCode = "REPOSITORY_SAVE_ERROR"
	// ErrCodeRepositoryLoad indicates a read from the attribute store failed.
	ErrCodeRepositoryLoad ErrorCode = "REPOSITORY_LOAD_ERROR"
	// ErrCodeConnectionFailed indicates a failed connection to a store backend.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeDatabaseError indicates a database error.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
)

// Generic errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeRepositorySave:   true,
	ErrCodeRepositoryLoad:   true,
	ErrCodeConnectionFailed: true,
	ErrCodeDatabaseError:    true,
	ErrCodeInternal:         false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
