// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

// AllocationStrategy handles Allocation transactions. Allocations are create-only.
type AllocationStrategy struct {
	baseStrategy
	validator *RestrictionValidator
}

// Create validates the funds' allow-lists and commits the allocation.
func (s *AllocationStrategy) Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	if err := s.validateType(tx); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(ctx, tx); err != nil {
		return nil, err
	}
	return s.createInBatch(ctx, tx)
}

// Update is not supported.
func (s *AllocationStrategy) Update(context.Context, *entity.Transaction) error {
	return s.unsupported("update")
}

// Delete is not supported.
func (s *AllocationStrategy) Delete(context.Context, uuid.UUID) error {
	return s.unsupported("delete")
}

// TransferStrategy handles Transfer transactions. Transfers are create-only and need both funds.
type TransferStrategy struct {
	baseStrategy
	validator *RestrictionValidator
}

// Create validates the funds' allow-lists and commits the transfer.
func (s *TransferStrategy) Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	if err := s.validateType(tx); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(ctx, tx); err != nil {
		return nil, err
	}
	return s.createInBatch(ctx, tx)
}

// Update is not supported.
func (s *TransferStrategy) Update(context.Context, *entity.Transaction) error {
	return s.unsupported("update")
}

// Delete is not supported.
func (s *TransferStrategy) Delete(context.Context, uuid.UUID) error {
	return s.unsupported("delete")
}

// EncumbranceStrategy handles Encumbrance transactions.
type EncumbranceStrategy struct {
	baseStrategy
}

// Create commits a new encumbrance.
func (s *EncumbranceStrategy) Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	if err := s.validateType(tx); err != nil {
		return nil, err
	}
	return s.createInBatch(ctx, tx)
}

// Update commits a change to an encumbrance, such as releasing it.
func (s *EncumbranceStrategy) Update(ctx context.Context, tx *entity.Transaction) error {
	if err := s.validateType(tx); err != nil {
		return err
	}
	if _, err := s.fetchExisting(ctx, tx.ID); err != nil {
		return err
	}
	return s.updateInBatch(ctx, tx)
}

// Delete removes a released encumbrance that no pending payment still awaits.
func (s *EncumbranceStrategy) Delete(ctx context.Context, id uuid.UUID) error {
	encumbrance, err := s.fetchExisting(ctx, id)
	if err != nil {
		return err
	}
	if !encumbrance.IsReleased() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeEncumbranceNotReleased,
			"the encumbrance must be released before it can be deleted",
			domainerror.ErrEncumbranceNotReleased,
			domainerror.NewParameter("id", id.String()),
		)
	}

	connected, err := s.gateway.HasPendingPaymentsFor(ctx, id)
	if err != nil {
		return err
	}
	if connected {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeConnectedToInvoice,
			"the encumbrance is connected to an invoice and cannot be deleted",
			domainerror.ErrConnectedToInvoice,
			domainerror.NewParameter("encumbranceId", id.String()),
		)
	}

	slog.Debug("Deleting encumbrance", "id", id)
	return s.deleteInBatch(ctx, id)
}

// PendingPaymentStrategy handles Pending payment transactions.
type PendingPaymentStrategy struct {
	baseStrategy
}

// Create commits a new pending payment.
func (s *PendingPaymentStrategy) Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	if err := s.validateType(tx); err != nil {
		return nil, err
	}
	return s.createInBatch(ctx, tx)
}

// Update commits a change to a pending payment.
func (s *PendingPaymentStrategy) Update(ctx context.Context, tx *entity.Transaction) error {
	if err := s.validateType(tx); err != nil {
		return err
	}
	if _, err := s.fetchExisting(ctx, tx.ID); err != nil {
		return err
	}
	return s.updateInBatch(ctx, tx)
}

// Delete is not supported.
func (s *PendingPaymentStrategy) Delete(context.Context, uuid.UUID) error {
	return s.unsupported("delete")
}

// PaymentStrategy handles Payment transactions.
type PaymentStrategy struct {
	baseStrategy
}

// Create commits a new payment; the amount must be positive.
func (s *PaymentStrategy) Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	if err := s.validateType(tx); err != nil {
		return nil, err
	}
	if err := s.validatePositiveAmount(tx); err != nil {
		return nil, err
	}
	return s.createInBatch(ctx, tx)
}

// Update only marks the payment's invoice as cancelled. Any other change is rejected.
func (s *PaymentStrategy) Update(ctx context.Context, tx *entity.Transaction) error {
	if err := s.validateType(tx); err != nil {
		return err
	}
	existing, err := s.fetchExisting(ctx, tx.ID)
	if err != nil {
		return err
	}
	if existing.InvoiceCancelled {
		return domainerror.NewTransactionError(
			domainerror.ErrCodePaymentAlreadyCancelled,
			"the payment invoice is already cancelled",
			domainerror.ErrPaymentAlreadyCancelled,
			domainerror.NewParameter("id", tx.ID.String()),
		)
	}

	expected := *existing
	expected.InvoiceCancelled = true
	if !tx.InvoiceCancelled || !sameContent(&expected, tx) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidPaymentUpdate,
			"only the invoiceCancelled flag can be set on a payment",
			domainerror.ErrInvalidPaymentUpdate,
			domainerror.NewParameter("id", tx.ID.String()),
		)
	}

	updatedBy := tx.Metadata.UpdatedByUserID
	tx.Metadata = existing.Metadata
	if updatedBy != nil {
		tx.Metadata.UpdatedByUserID = updatedBy
	}
	return s.updateInBatch(ctx, tx)
}

// Delete is not supported.
func (s *PaymentStrategy) Delete(context.Context, uuid.UUID) error {
	return s.unsupported("delete")
}

// CreditStrategy handles Credit transactions. Credits are create-only.
type CreditStrategy struct {
	baseStrategy
}

// Create commits a new credit; the amount must be positive.
func (s *CreditStrategy) Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	if err := s.validateType(tx); err != nil {
		return nil, err
	}
	if err := s.validatePositiveAmount(tx); err != nil {
		return nil, err
	}
	return s.createInBatch(ctx, tx)
}

// Update is not supported.
func (s *CreditStrategy) Update(context.Context, *entity.Transaction) error {
	return s.unsupported("update")
}

// Delete is not supported.
func (s *CreditStrategy) Delete(context.Context, uuid.UUID) error {
	return s.unsupported("delete")
}

// sameContent compares two transactions ignoring audit metadata.
func sameContent(a, b *entity.Transaction) bool {
	return a.ID == b.ID &&
		a.TransactionType == b.TransactionType &&
		a.Amount.Equal(b.Amount) &&
		a.Currency == b.Currency &&
		a.FiscalYearID == b.FiscalYearID &&
		entity.EqualIDs(a.FromFundID, b.FromFundID) &&
		entity.EqualIDs(a.ToFundID, b.ToFundID) &&
		entity.EqualIDs(a.ExpenseClassID, b.ExpenseClassID) &&
		a.Source == b.Source &&
		entity.EqualIDs(a.SourceInvoiceID, b.SourceInvoiceID) &&
		entity.EqualIDs(a.SourceInvoiceLineID, b.SourceInvoiceLineID) &&
		entity.EqualIDs(a.PaymentEncumbranceID, b.PaymentEncumbranceID) &&
		a.InvoiceCancelled == b.InvoiceCancelled &&
		a.Description == b.Description &&
		sameTags(a.Tags, b.Tags) &&
		sameEncumbrance(a.Encumbrance, b.Encumbrance) &&
		reflect.DeepEqual(a.AwaitingPayment, b.AwaitingPayment)
}

func sameTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sameEncumbrance(a, b *entity.Encumbrance) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Status == b.Status &&
		a.InitialAmountEncumbered.Equal(b.InitialAmountEncumbered) &&
		a.AmountAwaitingPayment.Equal(b.AmountAwaitingPayment) &&
		a.AmountExpended.Equal(b.AmountExpended) &&
		a.OrderType == b.OrderType &&
		a.OrderStatus == b.OrderStatus &&
		a.Subscription == b.Subscription &&
		a.ReEncumber == b.ReEncumber &&
		entity.EqualIDs(a.SourcePurchaseOrderID, b.SourcePurchaseOrderID) &&
		entity.EqualIDs(a.SourcePoLineID, b.SourcePoLineID)
}
