// Package error defines domain-specific errors for the acquisitions finance service.
package error

import "errors"

// Ledger and fiscal year domain errors.
var (
	// ErrLedgerNotFound is returned when a ledger is not found in the store.
	ErrLedgerNotFound = errors.New("ledger not found")

	// ErrFiscalYearNotFound is returned when a fiscal year is not found in the store.
	ErrFiscalYearNotFound = errors.New("fiscal year not found")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LDG-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Not found errors (03XXXX)
	ErrCodeLedgerNotFound LedgerErrorCode = "LDG-030001"

	// Bad request errors (04XXXX)
	ErrCodeFiscalYearNotFound LedgerErrorCode = "LDG-040001"
	ErrCodeInvalidFiscalYear  LedgerErrorCode = "LDG-040002"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code       LedgerErrorCode
	Message    string
	Parameters []Parameter
	Err        error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error, params ...Parameter) *LedgerError {
	return &LedgerError{
		Code:       code,
		Message:    message,
		Parameters: params,
		Err:        err,
	}
}
