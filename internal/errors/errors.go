// Package errors provides the application error taxonomy. Services return
// *AppError values so handlers can map them to consistent JSON responses
// without leaking internal details to clients.
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

// Is matches AppErrors by code, so a wrapped or re-messaged sentinel still
// satisfies errors.Is against the original.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

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
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Not-found errors, one code per collection.
var (
	ErrUserNotFound        = &AppError{Code: "user/not-exist", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrGroupNotFound       = &AppError{Code: "group/not-exist", Message: "Group not found", StatusCode: http.StatusNotFound}
	ErrMemberNotFound      = &AppError{Code: "member/not-exist", Message: "Member not found in group", StatusCode: http.StatusNotFound}
	ErrInviteNotFound      = &AppError{Code: "invite/not-exist", Message: "Invite code not found", StatusCode: http.StatusNotFound}
	ErrTransactionNotFound = &AppError{Code: "transaction/not-exist", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrPaymentNotFound     = &AppError{Code: "payment/not-exist", Message: "Payment record not found", StatusCode: http.StatusNotFound}
)

// Permission errors.
var (
	ErrNotAdmin  = &AppError{Code: "permission/not-admin", Message: "Only group admins can perform this action", StatusCode: http.StatusForbidden}
	ErrSoleAdmin = &AppError{Code: "permission/sole-admin", Message: "Assign another admin before leaving the group", StatusCode: http.StatusForbidden}
	ErrNotAuthor = &AppError{Code: "permission/not-author", Message: "Only the author or a group admin can change this record", StatusCode: http.StatusForbidden}
)

// Conflict errors.
var (
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrAlreadyMember  = &AppError{Code: "member/already-exist", Message: "User is already a member of this group", StatusCode: http.StatusConflict}
	ErrPrepayDisabled = &AppError{Code: "group/prepay-disabled", Message: "This group does not accept prepayments", StatusCode: http.StatusBadRequest}
)
