package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an error for transport mapping and retry decisions
type ErrorType string

const (
	// Domain errors
	ErrorTypeValidation    ErrorType = "VALIDATION_FAILED"
	ErrorTypeNotFound      ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized  ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden     ErrorType = "FORBIDDEN"
	ErrorTypeQuotaExceeded ErrorType = "QUOTA_EXCEEDED"

	// Application errors
	ErrorTypeRateLimited ErrorType = "RATE_LIMITED"
	ErrorTypeSaveFailed  ErrorType = "SAVE_FAILED"
	ErrorTypeInternal    ErrorType = "INTERNAL"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// NewValidationError creates a validation error. The message should already
// contain every field violation joined into one readable string.
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFoundError creates a not found error. An optional ID is carried
// in the details for logging; it never leaks into the message, so the
// response stays identical whether the record is missing or hidden.
func NewNotFoundError(resource string, id ...string) *AppError {
	appErr := &AppError{
		Type:       ErrorTypeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
	if len(id) > 0 && id[0] != "" {
		appErr.Details = map[string]interface{}{"id": id[0]}
	}
	return appErr
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "forbidden"
	}
	return &AppError{
		Type:       ErrorTypeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewQuotaExceededError creates a quota exceeded error
func NewQuotaExceededError(limit int) *AppError {
	return &AppError{
		Type:       ErrorTypeQuotaExceeded,
		Message:    fmt.Sprintf("file limit reached: you can only create up to %d files", limit),
		HTTPStatus: http.StatusForbidden,
	}
}

// NewRateLimitedError creates a rate limited error
func NewRateLimitedError(limit, resetIn int) *AppError {
	return &AppError{
		Type:       ErrorTypeRateLimited,
		Message:    fmt.Sprintf("rate limit exceeded: %d requests allowed, retry in %ds", limit, resetIn),
		HTTPStatus: http.StatusTooManyRequests,
		Details: map[string]interface{}{
			"limit":   limit,
			"resetIn": resetIn,
		},
	}
}

// NewSaveFailedError creates a retryable persistence error
func NewSaveFailedError(operation string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeSaveFailed,
		Message:    fmt.Sprintf("failed to persist %s", operation),
		Cause:      err,
		HTTPStatus: http.StatusBadGateway,
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsForbidden checks if an error is a forbidden error
func IsForbidden(err error) bool {
	return IsType(err, ErrorTypeForbidden)
}

// IsRetryable reports whether the failure is worth retrying on a later
// autosave cycle. Authorization and validation failures are terminal.
func IsRetryable(err error) bool {
	appErr := GetAppError(err)
	if appErr == nil {
		// Unclassified errors are treated as transient persistence failures
		return true
	}
	switch appErr.Type {
	case ErrorTypeSaveFailed, ErrorTypeRateLimited, ErrorTypeInternal:
		return true
	default:
		return false
	}
}

// HTTPStatusFor maps an error to its HTTP status code
func HTTPStatusFor(err error) int {
	if appErr := GetAppError(err); appErr != nil && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
