// Package error defines domain-specific errors for the acquisitions finance service.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the store.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetVersionConflict is returned when a budget was modified since it was read.
	ErrBudgetVersionConflict = errors.New("budget version conflict")

	// ErrAllowableEncumbranceExceeded is returned when encumbrances exceed the allowed share of funding.
	ErrAllowableEncumbranceExceeded = errors.New("allowable encumbrance limit exceeded")

	// ErrAllowableExpenditureExceeded is returned when expenditures exceed the allowed share of allocation.
	ErrAllowableExpenditureExceeded = errors.New("allowable expenditure limit exceeded")

	// ErrBudgetIDMismatch is returned when the path id and the body id differ.
	ErrBudgetIDMismatch = errors.New("budget id mismatch")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAllowableEncumbranceExceeded BudgetErrorCode = "BDG-010001"
	ErrCodeAllowableExpenditureExceeded BudgetErrorCode = "BDG-010002"
	ErrCodeBudgetIDMismatch             BudgetErrorCode = "BDG-010003"
	ErrCodeMissingBudgetFields          BudgetErrorCode = "BDG-010004"

	// State errors (02XXXX)
	ErrCodeBudgetVersionConflict BudgetErrorCode = "BDG-020001"

	// Not found errors (03XXXX)
	ErrCodeBudgetNotFound BudgetErrorCode = "BDG-030001"
)

// BudgetError represents a budget error with code and message.
// Details lists every violated rule when more than one is reported.
type BudgetError struct {
	Code       BudgetErrorCode
	Message    string
	Parameters []Parameter
	Details    []ErrorDetail
	Err        error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error, params ...Parameter) *BudgetError {
	return &BudgetError{
		Code:       code,
		Message:    message,
		Parameters: params,
		Err:        err,
	}
}
