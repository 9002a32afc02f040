// Package error defines domain-specific errors for the acquisitions finance service.
package error

import "errors"

var (
	// ErrRolloverBudgetNotFound is returned when a rollover budget is not found in the store.
	ErrRolloverBudgetNotFound = errors.New("rollover budget not found")

	// ErrSystemSettingsNotFound is returned when no locale settings have been stored yet.
	ErrSystemSettingsNotFound = errors.New("system settings not found")
)

// RolloverErrorCode defines error codes for rollover errors.
// Format: RLV-XXYYYY where XX is category and YYYY is specific error.
type RolloverErrorCode string

const (
	ErrCodeRolloverBudgetNotFound RolloverErrorCode = "RLV-030001"
)

// RolloverError represents a rollover error with code and message.
type RolloverError struct {
	Code       RolloverErrorCode
	Message    string
	Parameters []Parameter
	Err        error
}

// Error implements the error interface.
func (e *RolloverError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RolloverError) Unwrap() error {
	return e.Err
}

// NewRolloverError creates a new RolloverError with the given code and message.
func NewRolloverError(code RolloverErrorCode, message string, err error, params ...Parameter) *RolloverError {
	return &RolloverError{
		Code:       code,
		Message:    message,
		Parameters: params,
		Err:        err,
	}
}
