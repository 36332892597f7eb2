package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Step configuration errors ---

// Serialization creates an AppError for a parameter value that cannot be
// represented in markup.
func Serialization(tag string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeSerialization, Message: fmt.Sprintf("Unable to encode value of <%s> as XML.", tag),
		Details: map[string]any{"tag": tag}, Cause: cause,
	}
}

// ConfigLoad creates an AppError for a failure reading step settings from markup.
func ConfigLoad(cause error) *AppError {
	return &AppError{
		Code: ErrCodeConfigLoad, Message: "Unable to read step info from XML node.",
		Cause: cause,
	}
}

// MissingParameter creates an AppError for a required parameter that was never set.
func MissingParameter(name string) *AppError {
	return &AppError{
		Code: ErrCodeMissingParameter, Message: fmt.Sprintf("Missing required parameter: %s", name),
		Details: map[string]any{"parameter": name},
	}
}

// SchemaMutation creates an AppError for a schema container that rejected a column.
func SchemaMutation(column string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeSchemaMutation, Message: fmt.Sprintf("Unable to add field %q to the row stream.", column),
		Details: map[string]any{"column": column}, Cause: cause,
	}
}

// --- Attribute store errors ---

// RepositorySave creates an AppError for a failed write of a step's attributes.
func RepositorySave(stepID string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeRepositorySave, Message: fmt.Sprintf("Unable to save step into repository: %s", stepID),
		Retryable: true, Details: map[string]any{"step_id": stepID}, Cause: cause,
	}
}

// RepositoryLoad creates an AppError for a failed read of a step's attributes.
func RepositoryLoad(stepID string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeRepositoryLoad, Message: fmt.Sprintf("Unable to load step from repository: %s", stepID),
		Retryable: true, Details: map[string]any{"step_id": stepID}, Cause: cause,
	}
}

// ConnectionFailed creates an AppError for a failed connection to a store backend.
func ConnectionFailed(service string) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to %s. Please verify the service is running.", service),
		Retryable: true, Details: map[string]any{"service": service},
	}
}

// DatabaseError creates an AppError for a database error.
func DatabaseError(cause error) *AppError {
	return &AppError{
		Code: ErrCodeDatabaseError, Message: "A database error occurred. Please try again.",
		Retryable: true, Cause: cause,
	}
}

// --- Generic errors ---

// InvalidInput creates an AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates an AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// NotFound creates an AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		Details: details,
	}
}

// Internal creates an AppError for an unexpected internal error.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Cause: cause,
	}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Is reports whether the outermost AppError in err's chain has the given code.
func Is(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
