// Package errors provides structured error types for the SecureCare API.
// Service-layer errors use AppError so handlers can return consistent
// responses without leaking internal details to clients.
package errors

import "net/http"

// AppError is a structured application error with a stable error code, a
// human-readable message, an HTTP status, and an optional internal cause.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap returns a copy of sentinel carrying internal as its cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage returns a copy of sentinel with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrUserNotFound       = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail     = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrValidation     = &AppError{Code: "VALIDATION_ERROR", Message: "Input failed validation", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Employee errors.
var (
	ErrEmployeeNotFound  = &AppError{Code: "EMPLOYEE_NOT_FOUND", Message: "Employee not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmployee = &AppError{Code: "DUPLICATE_EMPLOYEE", Message: "An employee with this number already exists", StatusCode: http.StatusConflict}
)

// Advisor errors.
var (
	ErrAdvisorNotFound = &AppError{Code: "ADVISOR_NOT_FOUND", Message: "Advisor not found", StatusCode: http.StatusNotFound}
)

// Training errors.
var (
	ErrNoScheduledDate   = &AppError{Code: "NO_SCHEDULED_DATE", Message: "Nothing is scheduled for this requirement", StatusCode: http.StatusConflict}
	ErrReadOnlyField     = &AppError{Code: "READ_ONLY_FIELD", Message: "Award fields cannot be written directly", StatusCode: http.StatusBadRequest}
	ErrLevelNotAwarded   = &AppError{Code: "LEVEL_NOT_AWARDED", Message: "The previous level has not been awarded", StatusCode: http.StatusConflict}
	ErrNotEligible       = &AppError{Code: "NOT_ELIGIBLE", Message: "Employee is not eligible for this level", StatusCode: http.StatusConflict}
	ErrConferenceNotHeld = &AppError{Code: "CONFERENCE_NOT_HELD", Message: "The conference has not been completed", StatusCode: http.StatusConflict}
	ErrAwardIncomplete   = &AppError{Code: "AWARD_INCOMPLETE", Message: "Not all requirements for this level are complete", StatusCode: http.StatusConflict}
)
