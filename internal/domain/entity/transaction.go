// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of money movement a transaction records.
type TransactionType string

const (
	TransactionTypeAllocation       TransactionType = "Allocation"
	TransactionTypeTransfer         TransactionType = "Transfer"
	TransactionTypeEncumbrance      TransactionType = "Encumbrance"
	TransactionTypePendingPayment   TransactionType = "Pending payment"
	TransactionTypePayment          TransactionType = "Payment"
	TransactionTypeCredit           TransactionType = "Credit"
	TransactionTypeRolloverTransfer TransactionType = "Rollover transfer"
)

// TransactionTypes lists every wire type in declaration order.
var TransactionTypes = []TransactionType{
	TransactionTypeAllocation,
	TransactionTypeTransfer,
	TransactionTypeEncumbrance,
	TransactionTypePendingPayment,
	TransactionTypePayment,
	TransactionTypeCredit,
	TransactionTypeRolloverTransfer,
}

// IsTransfer reports whether the type moves already-allocated money between funds.
func (t TransactionType) IsTransfer() bool {
	return t == TransactionTypeTransfer || t == TransactionTypeRolloverTransfer
}

// TransferTypes returns the types for which IsTransfer holds.
func TransferTypes() []TransactionType {
	var types []TransactionType
	for _, t := range TransactionTypes {
		if t.IsTransfer() {
			types = append(types, t)
		}
	}
	return types
}

// TransactionSource tags where a transaction came from.
type TransactionSource string

const (
	TransactionSourceUser     TransactionSource = "User"
	TransactionSourcePoLine   TransactionSource = "PoLine"
	TransactionSourceInvoice  TransactionSource = "Invoice"
	TransactionSourceRollover TransactionSource = "Rollover"
)

// EncumbranceStatus is the lifecycle state of an encumbrance.
type EncumbranceStatus string

const (
	EncumbranceStatusUnreleased EncumbranceStatus = "Unreleased"
	EncumbranceStatusReleased   EncumbranceStatus = "Released"
	EncumbranceStatusPending    EncumbranceStatus = "Pending"
)

// Encumbrance is the sub-state carried by Encumbrance transactions.
type Encumbrance struct {
	Status                  EncumbranceStatus
	InitialAmountEncumbered decimal.Decimal
	AmountAwaitingPayment   decimal.Decimal
	AmountExpended          decimal.Decimal
	OrderType               string
	OrderStatus             string
	Subscription            bool
	ReEncumber              bool
	SourcePurchaseOrderID   *uuid.UUID
	SourcePoLineID          *uuid.UUID
}

// AwaitingPayment links a pending payment to the encumbrance it draws on.
type AwaitingPayment struct {
	EncumbranceID      *uuid.UUID
	ReleaseEncumbrance bool
}

// Metadata holds record audit timestamps.
type Metadata struct {
	CreatedDate     time.Time
	CreatedByUserID *uuid.UUID
	UpdatedDate     time.Time
	UpdatedByUserID *uuid.UUID
}

// Transaction is a single immutable entry in the finance transaction log.
type Transaction struct {
	ID                   uuid.UUID
	TransactionType      TransactionType
	Amount               decimal.Decimal
	Currency             string
	FiscalYearID         uuid.UUID
	FromFundID           *uuid.UUID
	ToFundID             *uuid.UUID
	ExpenseClassID       *uuid.UUID
	Source               TransactionSource
	SourceInvoiceID      *uuid.UUID
	SourceInvoiceLineID  *uuid.UUID
	PaymentEncumbranceID *uuid.UUID
	InvoiceCancelled     bool
	Description          string
	Tags                 []string
	Encumbrance          *Encumbrance
	AwaitingPayment      *AwaitingPayment
	Metadata             Metadata
}

// HasBothFunds reports whether both the source and destination fund are set.
func (t *Transaction) HasBothFunds() bool {
	return t.FromFundID != nil && t.ToFundID != nil
}

// HasExactlyOneFund reports whether only one side of the movement is set.
func (t *Transaction) HasExactlyOneFund() bool {
	return (t.FromFundID == nil) != (t.ToFundID == nil)
}

// TouchesFund reports whether the fund is either side of the transaction.
func (t *Transaction) TouchesFund(fundID uuid.UUID) bool {
	return SameID(t.FromFundID, fundID) || SameID(t.ToFundID, fundID)
}

// LinkedEncumbranceID returns the encumbrance a pending payment waits on, if any.
func (t *Transaction) LinkedEncumbranceID() *uuid.UUID {
	if t.AwaitingPayment == nil {
		return nil
	}
	return t.AwaitingPayment.EncumbranceID
}

// IsReleased reports whether an encumbrance has been released.
func (t *Transaction) IsReleased() bool {
	return t.Encumbrance != nil && t.Encumbrance.Status == EncumbranceStatusReleased
}

// TransactionCollection is one page of a transaction query.
type TransactionCollection struct {
	Transactions []*Transaction
	TotalRecords int
}

// Batch is the all-or-nothing unit written to the transaction store.
type Batch struct {
	TransactionsToCreate      []*Transaction
	TransactionsToUpdate      []*Transaction
	IDsOfTransactionsToDelete []uuid.UUID
}

// IsEmpty reports whether the batch carries no work.
func (b *Batch) IsEmpty() bool {
	return len(b.TransactionsToCreate) == 0 &&
		len(b.TransactionsToUpdate) == 0 &&
		len(b.IDsOfTransactionsToDelete) == 0
}

// SameID compares an optional id with a concrete one.
func SameID(id *uuid.UUID, other uuid.UUID) bool {
	return id != nil && *id == other
}

// EqualIDs compares two optional ids.
func EqualIDs(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
