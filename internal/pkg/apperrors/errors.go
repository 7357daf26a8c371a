package apperrors

import (
	"errors"
	"net/http"
)

// Error kinds. Every failure surfaced to an API client wraps exactly one of these.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("permission denied")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// FieldError describes one offending input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents application-specific errors with a client-facing message
type AppError struct {
	Err     error
	Message string
	Fields  []FieldError
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError of the given kind
func New(kind error, message string) *AppError {
	return &AppError{Err: kind, Message: message}
}

// WithFields attaches field level details
func (e *AppError) WithFields(fields ...FieldError) *AppError {
	e.Fields = append(e.Fields, fields...)
	return e
}

func Validation(message string, fields ...FieldError) error {
	return New(ErrValidation, message).WithFields(fields...)
}

func Unauthenticated(message string) error {
	return New(ErrUnauthenticated, message)
}

func Forbidden(message string) error {
	return New(ErrForbidden, message)
}

func NotFound(message string) error {
	return New(ErrNotFound, message)
}

func Conflict(message string) error {
	return New(ErrConflict, message)
}

// ServiceUnavailable wraps a storage or transport failure. The cause is kept for logs, never shown to clients.
func ServiceUnavailable(message string, cause error) error {
	return &AppError{Err: errors.Join(ErrServiceUnavailable, cause), Message: message}
}

// StatusCode maps an error onto its HTTP status. Conflicts are reported as 400.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// IsOperational reports whether err is an expected, client-facing failure.
// Anything else is a bug or an infrastructure fault and goes to the error tracker.
func IsOperational(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && !errors.Is(err, ErrServiceUnavailable)
}

// Message returns the client-facing message for err
func Message(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return "Something went wrong"
}

// Fields returns attached field errors, if any
func Fields(err error) []FieldError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}
