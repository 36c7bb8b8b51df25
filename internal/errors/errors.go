// Package errors provides custom error types for the Sentinel API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
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

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrUserDisabled       = &AppError{Code: "USER_DISABLED", Message: "User account is disabled", StatusCode: http.StatusForbidden}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrSetupComplete  = &AppError{Code: "SETUP_COMPLETE", Message: "Initial setup has already been completed", StatusCode: http.StatusConflict}
)

// Account & contact errors.
var (
	ErrAccountNotFound = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrContactNotFound = &AppError{Code: "CONTACT_NOT_FOUND", Message: "Contact not found", StatusCode: http.StatusNotFound}
)

// Carrier errors.
var (
	ErrCarrierNotFound        = &AppError{Code: "CARRIER_NOT_FOUND", Message: "Carrier not found", StatusCode: http.StatusNotFound}
	ErrCarrierContactNotFound = &AppError{Code: "CARRIER_CONTACT_NOT_FOUND", Message: "Carrier contact not found", StatusCode: http.StatusNotFound}
)

// Policy & installment errors.
var (
	ErrPolicyNotFound      = &AppError{Code: "POLICY_NOT_FOUND", Message: "Policy not found", StatusCode: http.StatusNotFound}
	ErrInstallmentNotFound = &AppError{Code: "INSTALLMENT_NOT_FOUND", Message: "Installment not found", StatusCode: http.StatusNotFound}
)

// Prospect errors.
var (
	ErrProspectNotFound  = &AppError{Code: "PROSPECT_NOT_FOUND", Message: "Prospect not found", StatusCode: http.StatusNotFound}
	ErrProspectConverted = &AppError{Code: "PROSPECT_ALREADY_CONVERTED", Message: "Prospect has already been converted to an account", StatusCode: http.StatusConflict}
)

// Service board & task errors.
var (
	ErrServiceItemNotFound = &AppError{Code: "SERVICE_ITEM_NOT_FOUND", Message: "Service item not found", StatusCode: http.StatusNotFound}
	ErrTaskNotFound        = &AppError{Code: "TASK_NOT_FOUND", Message: "Task not found", StatusCode: http.StatusNotFound}
)
