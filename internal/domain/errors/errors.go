package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError carrying the same business code, so copies made by
// WithDetails still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Credential errors
	ErrDuplicateEmail = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_EMAIL",
		"Email is already registered",
		"",
	)

	// ErrInvalidCredentials is returned for both an unknown email and a wrong password.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Failed to create account",
		"",
	)

	// Session errors
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Authentication required",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Invalid input",
		"",
	)

	// Todo errors
	ErrTodoNotFound = NewBaseError(
		http.StatusNotFound,
		"TODO_NOT_FOUND",
		"Todo not found",
		"",
	)

	ErrCategoryNotFound = NewBaseError(
		http.StatusNotFound,
		"CATEGORY_NOT_FOUND",
		"Category not found",
		"",
	)

	// Transaction-related errors
	ErrTransactionFailed = NewBaseError(
		http.StatusInternalServerError,
		"TRANSACTION_FAILED",
		"Database transaction failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

// PersistenceError reports an unexpected store failure, implementing the AppError interface.
// The message is what the caller shows the user; the cause stays server-side.
type PersistenceError struct {
	err     error
	message string
	details string
}

// NewPersistenceError creates a store-related error with a user-facing message.
func NewPersistenceError(err error, message, details string) AppError {
	if message == "" {
		message = "Failed to access data store"
	}

	return &PersistenceError{
		err:     err,
		message: message,
		details: details,
	}
}

// IsPersistenceError reports whether err carries a PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError

	return errors.As(err, &pe)
}

// Error implements the error interface
func (e *PersistenceError) Error() string {
	return errors.Wrap(e.err, "persistence failed").Error()
}

// Unwrap returns the store error.
func (e *PersistenceError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *PersistenceError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *PersistenceError) ErrorCode() string {
	return "PERSISTENCE_FAILED"
}

// Message returns the user-friendly error message
func (e *PersistenceError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *PersistenceError) Details() string {
	return e.details
}
