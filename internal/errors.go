package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeForbidden  ErrorType = "FORBIDDEN"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"

	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeNoAccount          ErrorCode = "NO_ACCOUNT"
	ErrCodeNoManagePermission ErrorCode = "NO_MANAGE_PERMISSION"
	ErrCodeCannotDeleteActive ErrorCode = "CANNOT_DELETE_ACTIVE_ACCOUNT"

	ErrCodeDataIntegrity  ErrorCode = "DATA_INTEGRITY_VIOLATION"
	ErrCodeMalformedToken ErrorCode = "MALFORMED_PERMISSION_TOKEN"
)

// AppError is the single error shape that crosses service boundaries.
// Expected, caller-actionable failures carry 4xx status codes; invariant
// violations and corrupt data carry 500 and are never silently repaired.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
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

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
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

// NewDataIntegrityError reports a broken uniqueness invariant: a selector
// the schema guarantees unique matched more than one row. It must be
// propagated, never resolved by picking a row.
func NewDataIntegrityError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeDataIntegrity,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

// NewMalformedTokenError reports corrupt stored permission data found
// during decode.
func NewMalformedTokenError(token string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeMalformedToken,
		Message:    fmt.Sprintf("malformed permission token %q", token),
		StatusCode: http.StatusInternalServerError,
	}
}

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

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
