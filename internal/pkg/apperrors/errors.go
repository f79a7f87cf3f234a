package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrValidationFailed      = errors.New("validation failed")
	ErrBadRequest            = errors.New("bad request")
	ErrPersistence           = errors.New("persistence error")
)

// NewNotFoundError creates a not-found error with a message
func NewNotFoundError(message string) error {
	return NewCustomError(ErrResourceNotFound, message)
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return NewCustomError(ErrValidationFailed, message)
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return NewCustomError(ErrBadRequest, message)
}

// NewPersistenceError wraps a store failure. The cause is kept for logging
// but never shown to clients.
func NewPersistenceError(message string, cause error) error {
	return &CustomError{
		Err:     ErrPersistence,
		Message: message,
		Cause:   cause,
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Cause   error
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap exposes both the category sentinel and the underlying cause.
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// Message returns the client-facing message carried by err, or fallback.
func Message(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
