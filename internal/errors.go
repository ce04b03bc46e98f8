package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeStorage      ErrorType = "STORAGE_ERROR"
	ErrorTypeNotification ErrorType = "NOTIFICATION_ERROR"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingEmployeeID ErrorCode = "MISSING_EMPLOYEE_ID"
	ErrCodeInvalidEmployeeID ErrorCode = "INVALID_EMPLOYEE_ID"
	ErrCodeMissingDates      ErrorCode = "MISSING_DATES"
	ErrCodeInvalidDate       ErrorCode = "INVALID_DATE"
	ErrCodeInvalidRange      ErrorCode = "INVALID_DATE_RANGE"

	ErrCodeEmployeeNotFound ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeSessionInvalid   ErrorCode = "SESSION_INVALID"
	ErrCodeSessionExpired   ErrorCode = "SESSION_EXPIRED"

	ErrCodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"
	ErrCodeNotifyFailed       ErrorCode = "NOTIFY_FAILED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewStorageError carries the underlying failure for server-side logging but
// renders only a generic retry message to the user.
func NewStorageError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeStorage,
		Code:       ErrCodeStorageUnavailable,
		Message:    "Service temporarily unavailable. Please try again later.",
		StatusCode: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// NewNotificationError marks a failed confirmation delivery. It never reaches
// an HTTP response; the event bus logs it after the submit has already been
// acknowledged.
func NewNotificationError(cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeNotification,
		Code:       ErrCodeNotifyFailed,
		Message:    "Confirmation email could not be sent.",
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrMissingEmployeeID = NewValidationError("Please enter your Employee ID.", ErrCodeMissingEmployeeID)
	ErrInvalidEmployeeID = NewValidationError("Employee ID must be a number.", ErrCodeInvalidEmployeeID)
	ErrEmployeeNotFound  = NewNotFoundError("Employee ID not found. Please try again.", ErrCodeEmployeeNotFound)
	ErrSessionInvalid    = NewUnauthorizedError("Your session is no longer valid. Please sign in again.", ErrCodeSessionInvalid)
	ErrSessionExpired    = NewUnauthorizedError("Your session has expired. Please sign in again.", ErrCodeSessionExpired)

	ErrMissingDates = NewValidationError("Please provide both start and end dates.", ErrCodeMissingDates)
	ErrInvalidDate  = NewValidationError("Dates must be in YYYY-MM-DD format.", ErrCodeInvalidDate)
	ErrInvalidRange = NewValidationError("End date must not be before start date.", ErrCodeInvalidRange)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

// MarshalJSON hides the cause so internal detail never reaches a rendered page.
func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
