// Package errors provides custom error types for the ParishBooks API.
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

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Account errors.
var (
	ErrAccountNotFound = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
)

// Category errors.
var (
	ErrCategoryNotFound = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrNoCategories     = &AppError{Code: "NO_CATEGORIES", Message: "No income categories exist", StatusCode: http.StatusConflict}
	ErrDuplicateName    = &AppError{Code: "DUPLICATE_NAME", Message: "A record with this name already exists", StatusCode: http.StatusConflict}
)

// Income and expenditure errors.
var (
	ErrIncomeNotFound      = &AppError{Code: "INCOME_NOT_FOUND", Message: "Income entry not found", StatusCode: http.StatusNotFound}
	ErrExpenditureNotFound = &AppError{Code: "EXPENDITURE_NOT_FOUND", Message: "Expenditure entry not found", StatusCode: http.StatusNotFound}
)

// Liability errors.
var (
	ErrLiabilityNotFound    = &AppError{Code: "LIABILITY_NOT_FOUND", Message: "Liability not found", StatusCode: http.StatusNotFound}
	ErrLiabilityAlreadyPaid = &AppError{Code: "LIABILITY_ALREADY_PAID", Message: "Liability is already fully paid", StatusCode: http.StatusBadRequest}
	ErrPaymentTooLarge      = &AppError{Code: "PAYMENT_TOO_LARGE", Message: "Payment exceeds the remaining amount", StatusCode: http.StatusBadRequest}
)

// Member, event and attendance errors.
var (
	ErrMemberNotFound     = &AppError{Code: "MEMBER_NOT_FOUND", Message: "Member not found", StatusCode: http.StatusNotFound}
	ErrEventNotFound      = &AppError{Code: "EVENT_NOT_FOUND", Message: "Event not found", StatusCode: http.StatusNotFound}
	ErrAttendanceNotFound = &AppError{Code: "ATTENDANCE_NOT_FOUND", Message: "Attendance record not found", StatusCode: http.StatusNotFound}
)

// Messaging errors.
var (
	ErrMessageNotFound = &AppError{Code: "MESSAGE_NOT_FOUND", Message: "Message not found", StatusCode: http.StatusNotFound}
	ErrNoRecipients    = &AppError{Code: "NO_RECIPIENTS", Message: "Message has no reachable recipients", StatusCode: http.StatusBadRequest}
)
