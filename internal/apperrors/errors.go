package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes form a closed taxonomy; handlers map them to HTTP statuses
// exactly once instead of inspecting error strings per call site.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "RESOURCE_NOT_FOUND"
	CodeScopeForbidden    = "STORE_SCOPE_FORBIDDEN"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
)

// AppError carries a taxonomy code, an HTTP status and an optional wrapped
// cause. It survives propagation through nested transactional composition,
// so callers can distinguish InsufficientStock from a generic failure after
// a rollback.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NotFoundWithID(resource, id string) *AppError {
	return NotFound(resource).WithDetail("id", id)
}

// ScopeForbidden marks a target store outside the caller's resolved scope.
// Deliberately distinct from NotFound: a scope violation is not absence.
func ScopeForbidden(storeID string) *AppError {
	return New(CodeScopeForbidden, "store is outside the caller's scope", http.StatusForbidden).
		WithDetail("store_id", storeID)
}

func InsufficientStock(itemID, storeID string) *AppError {
	return New(CodeInsufficientStock, "insufficient stock for requested change", http.StatusConflict).
		WithDetail("item_id", itemID).
		WithDetail("store_id", storeID)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func Internal(message string, err error) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError).Wrap(err)
}

// As extracts an *AppError from any error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an AppError with the given taxonomy code.
func IsCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
