// Package error defines domain-specific errors for the acquisitions finance service.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the store.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidTransactionType is returned when the transaction type does not match the operation.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrUnsupportedOperation is returned when a transaction type does not support the operation.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrMissingFundID is returned when a required fund id is absent.
	ErrMissingFundID = errors.New("missing fund id")

	// ErrFundAllocationMismatch is returned when the funds' allow-lists reject the counterpart.
	ErrFundAllocationMismatch = errors.New("fund allocation mismatch")

	// ErrAllocationIDsMismatch is returned when a batch allocation or transfer breaks the funds' allow-lists.
	ErrAllocationIDsMismatch = errors.New("allocation ids mismatch")

	// ErrInvalidTransactionAmount is returned when the amount violates the type's sign rule.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrEncumbranceNotReleased is returned when deleting an encumbrance that is not released.
	ErrEncumbranceNotReleased = errors.New("encumbrance not released")

	// ErrConnectedToInvoice is returned when an encumbrance is still referenced by a pending payment.
	ErrConnectedToInvoice = errors.New("encumbrance connected to invoice")

	// ErrPaymentAlreadyCancelled is returned when cancelling an already cancelled payment.
	ErrPaymentAlreadyCancelled = errors.New("payment already cancelled")

	// ErrInvalidPaymentUpdate is returned when a payment update changes more than the cancellation flag.
	ErrInvalidPaymentUpdate = errors.New("invalid payment update")

	// ErrTransactionIDMismatch is returned when the path id and the body id differ.
	ErrTransactionIDMismatch = errors.New("transaction id mismatch")

	// ErrFundNotFound is returned when a referenced fund does not exist.
	ErrFundNotFound = errors.New("fund not found")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeMissingFundID            TransactionErrorCode = "TXN-010002"
	ErrCodeFundAllocationMismatch   TransactionErrorCode = "TXN-010003"
	ErrCodeAllocationIDsMismatch    TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010005"
	ErrCodeUnsupportedOperation     TransactionErrorCode = "TXN-010006"
	ErrCodeInvalidPaymentUpdate     TransactionErrorCode = "TXN-010007"
	ErrCodeTransactionIDMismatch    TransactionErrorCode = "TXN-010008"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010009"

	// State errors (02XXXX)
	ErrCodeEncumbranceNotReleased  TransactionErrorCode = "TXN-020001"
	ErrCodeConnectedToInvoice      TransactionErrorCode = "TXN-020002"
	ErrCodePaymentAlreadyCancelled TransactionErrorCode = "TXN-020003"

	// Not found errors (03XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-030001"
	ErrCodeFundNotFound        TransactionErrorCode = "TXN-030002"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code       TransactionErrorCode
	Message    string
	Parameters []Parameter
	Err        error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error, params ...Parameter) *TransactionError {
	return &TransactionError{
		Code:       code,
		Message:    message,
		Parameters: params,
		Err:        err,
	}
}
