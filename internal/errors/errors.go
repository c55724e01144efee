// Package errors provides structured API errors with stable machine-readable
// codes and HTTP status mapping.
package errors

import "fmt"

// APIError is an error with an HTTP-mappable code and optional field context.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message,omitempty"`
	Field   string    `json:"field,omitempty"`
	Status  int       `json:"-"`
	cause   error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return string(e.Code)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *APIError) Unwrap() error {
	return e.cause
}

// New creates an APIError with the status implied by its code.
func New(code ErrorCode, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Status:  StatusFor(code),
	}
}

// Wrap creates an APIError carrying an underlying cause.
func Wrap(code ErrorCode, message string, cause error) *APIError {
	e := New(code, message)
	e.cause = cause
	return e
}

// WithField attaches the offending request field to a validation error.
func (e *APIError) WithField(field string) *APIError {
	e.Field = field
	return e
}

// NotFound creates a not-found error for the given code.
func NotFound(code ErrorCode, message string) *APIError {
	return New(code, message)
}

// Unauthorized creates a generic authentication error.
func Unauthorized(message string) *APIError {
	return New(CodeUnauthorized, message)
}

// Validation creates a request validation error.
func Validation(message, field string) *APIError {
	return New(CodeValidationFailed, message).WithField(field)
}

// Internal creates an internal error wrapping its cause.
func Internal(message string, cause error) *APIError {
	return Wrap(CodeInternalError, message, cause)
}
