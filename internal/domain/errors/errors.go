package errors

import (
	"net/http"

	"sliders/internal/errors"
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
	// Identity claim errors
	ErrIdentityAlreadyClaimed = NewBaseError(
		http.StatusConflict,
		"IDENTITY_ALREADY_CLAIMED",
		"This profile has already been claimed by another account",
		"",
	)

	ErrIdentityNotFound = NewBaseError(
		http.StatusNotFound,
		"IDENTITY_NOT_FOUND",
		"No verification in progress for this profile",
		"",
	)

	ErrProfileURLInvalid = NewBaseError(
		http.StatusBadRequest,
		"PROFILE_URL_INVALID",
		"The profile URL is not recognized for this provider",
		"",
	)

	// Challenge errors
	ErrChallengeNotFound = NewBaseError(
		http.StatusNotFound,
		"CHALLENGE_NOT_FOUND",
		"No domain challenge found",
		"",
	)

	ErrChallengeExpired = NewBaseError(
		http.StatusGone,
		"CHALLENGE_EXPIRED",
		"The domain challenge has expired, start a new one",
		"",
	)

	ErrProofNotFound = NewBaseError(
		http.StatusUnprocessableEntity,
		"PROOF_NOT_FOUND",
		"The expected proof was not found, check placement and retry",
		"",
	)

	ErrProofFetchFailed = NewBaseError(
		http.StatusBadGateway,
		"PROOF_FETCH_FAILED",
		"Could not reach the proof location, try the check again",
		"",
	)

	// Claim token errors
	ErrClaimTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"CLAIM_TOKEN_INVALID",
		"This claim link is invalid",
		"",
	)

	ErrClaimTokenExpired = NewBaseError(
		http.StatusGone,
		"CLAIM_TOKEN_EXPIRED",
		"This claim link has expired, request a new one",
		"",
	)

	ErrClaimTokenMismatch = NewBaseError(
		http.StatusConflict,
		"CLAIM_TOKEN_MISMATCH",
		"This claim link no longer matches the verification in progress",
		"",
	)

	// Result errors
	ErrResultNotFound = NewBaseError(
		http.StatusNotFound,
		"RESULT_NOT_FOUND",
		"Result not found",
		"",
	)

	ErrResultImmutable = NewBaseError(
		http.StatusConflict,
		"RESULT_IMMUTABLE",
		"Verified results can only be changed by an admin",
		"",
	)

	ErrMarkUnparseable = NewBaseError(
		http.StatusBadRequest,
		"MARK_UNPARSEABLE",
		"The mark could not be parsed for this event",
		"",
	)

	// Validation-related errors
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Access denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
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
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
