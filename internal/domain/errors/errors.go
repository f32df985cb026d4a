// Package errors defines the application error taxonomy shared by the
// usecase and delivery layers. Each error carries an HTTP status, a stable
// machine-readable code and a user-facing message; internal diagnostics
// stay out of the external shape.
package errors

import (
	"net/http"

	"storerate/internal/errors"
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

// Predefined error types
var (
	// Account-related errors
	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"user not found",
		"",
	)

	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"this email is already registered",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid email or password",
		"",
	)

	ErrPasswordMismatch = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_MISMATCH",
		"old password is incorrect",
		"",
	)

	ErrRoleNotAllowed = NewBaseError(
		http.StatusBadRequest,
		"ROLE_NOT_ALLOWED",
		"this role cannot be self-registered",
		"",
	)

	// Token-related errors. Invalid signature and expiry deliberately share
	// one external shape so callers cannot tell which check failed.
	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"missing, invalid or expired token",
		"",
	)

	// Store-related errors
	ErrStoreNotFound = NewBaseError(
		http.StatusNotFound,
		"STORE_NOT_FOUND",
		"store not found",
		"",
	)

	ErrStoreEmailTaken = NewBaseError(
		http.StatusConflict,
		"STORE_EMAIL_TAKEN",
		"a store with this email already exists",
		"",
	)

	ErrOwnerRequired = NewBaseError(
		http.StatusBadRequest,
		"OWNER_REQUIRED",
		"a store owner is required",
		"",
	)

	// Rating-related errors
	ErrInvalidScore = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SCORE",
		"score must be between 1 and 5",
		"",
	)

	ErrRatingNotFound = NewBaseError(
		http.StatusNotFound,
		"RATING_NOT_FOUND",
		"rating not found",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"input validation failed",
		"",
	)

	// General errors
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"resource conflict",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a transient data-store failure. The
// original diagnostic is kept for logging; only the generic message
// crosses the API boundary.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the underlying driver error for errors.Is/As.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "temporary storage failure, please retry"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
