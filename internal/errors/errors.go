package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors used to mark failures across the application. Handlers map
// them to HTTP status codes via HTTPStatusFromErr.
var (
	ErrNotFound         = newError(ErrCodeNotFound, "resource not found")
	ErrAlreadyExists    = newError(ErrCodeAlreadyExists, "resource already exists")
	ErrValidation       = newError(ErrCodeValidation, "validation error")
	ErrInvalidOperation = newError(ErrCodeInvalidOperation, "invalid operation")
	ErrPermissionDenied = newError(ErrCodePermissionDenied, "permission denied")
	ErrHTTPClient       = newError(ErrCodeHTTPClient, "http client error")
	ErrDatabase         = newError(ErrCodeDatabase, "database error")
	ErrSystem           = newError(ErrCodeSystemError, "system error")

	statusCodeMap = map[error]int{
		ErrNotFound:         http.StatusNotFound,
		ErrAlreadyExists:    http.StatusConflict,
		ErrValidation:       http.StatusBadRequest,
		ErrInvalidOperation: http.StatusBadRequest,
		ErrPermissionDenied: http.StatusForbidden,
		ErrHTTPClient:       http.StatusInternalServerError,
		ErrDatabase:         http.StatusInternalServerError,
		ErrSystem:           http.StatusInternalServerError,
	}
)

const (
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodePermissionDenied = "permission_denied"
	ErrCodeHTTPClient       = "http_client_error"
	ErrCodeDatabase         = "database_error"
	ErrCodeSystemError      = "system_error"
)

// InternalError represents a domain error with a machine readable code.
type InternalError struct {
	Code    string
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is matches wrapped errors by code so marked errors compare equal to their
// sentinel.
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func newError(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// HTTPStatusFromErr resolves the HTTP status code for an error based on the
// sentinel it was marked with.
func HTTPStatusFromErr(err error) int {
	for e, status := range statusCodeMap {
		if errors.Is(err, e) {
			return status
		}
	}
	return http.StatusInternalServerError
}
