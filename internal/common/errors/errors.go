// internal/common/errors/errors.go
// Package errors provides standardized error handling for the aggregation engine.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

// Provider-level failures. Always non-fatal: they become ProviderError
// entries in the report, never aborted runs.
const (
	ErrCodeProviderTimeout          ErrorCode = "PROVIDER_TIMEOUT"
	ErrCodeProviderHTTPStatus       ErrorCode = "PROVIDER_HTTP_STATUS"
	ErrCodeProviderMalformedPayload ErrorCode = "PROVIDER_MALFORMED_PAYLOAD"
	ErrCodeProviderRateLimited      ErrorCode = "PROVIDER_RATE_LIMITED"
	ErrCodeProviderUnavailable      ErrorCode = "PROVIDER_UNAVAILABLE"
)

// Run-level conditions.
const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED" // fatal, raised before any provider call
	ErrCodeBudgetExceeded   ErrorCode = "BUDGET_EXCEEDED"   // recorded skip condition, never thrown
	ErrCodeSessionLoad      ErrorCode = "SESSION_LOAD_FAILED"
	ErrCodeSessionSave      ErrorCode = "SESSION_SAVE_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// New creates a StandardError with the given code and message.
func New(code ErrorCode, message string) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Newf creates a StandardError with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *StandardError {
	return New(code, fmt.Sprintf(format, args...))
}

// WithDetails attaches free-form detail text.
func (e *StandardError) WithDetails(details string) *StandardError {
	e.Details = details
	return e
}

// WithRetryable marks whether a retry could succeed.
func (e *StandardError) WithRetryable(retryable bool) *StandardError {
	e.Retryable = retryable
	return e
}

// WithMetadata attaches a metadata key/value pair.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ValidationError is raised before any provider call is attempted when
// the subject parameters are unusable. It is the only fatal error the
// orchestrator returns.
func ValidationError(message string) *StandardError {
	return New(ErrCodeValidationFailed, message)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	se, ok := err.(*StandardError)
	return ok && se.Code == ErrCodeValidationFailed
}
