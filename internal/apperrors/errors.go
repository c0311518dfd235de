package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found,
// or exists but is not owned by the caller.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrCurrencyMismatch indicates that an amount was applied in a currency
// different from the target account's currency.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrUnknownCurrency indicates that a currency code is absent from the rate table.
var ErrUnknownCurrency = errors.New("unknown currency")

// ErrConflict indicates a lock timeout or concurrent modification.
// Callers may retry the operation.
var ErrConflict = errors.New("conflicting concurrent operation")

// ErrInvalidState indicates an operation on an entity whose lifecycle
// state forbids it, e.g. editing a settled shared expense.
var ErrInvalidState = errors.New("invalid state for operation")

// ErrInvariantViolation indicates an internal recomputation mismatch.
// It must never be reachable in correct operation; when raised, the
// enclosing transaction is aborted without committing.
var ErrInvariantViolation = errors.New("balance invariant violation")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-ish status code alongside a message and cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
