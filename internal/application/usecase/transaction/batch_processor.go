// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

// BatchProcessor validates a batch of transaction changes and commits it atomically.
// Business-rule violations are detected before anything reaches the store.
type BatchProcessor struct {
	gateway   *Gateway
	validator *RestrictionValidator
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(gateway *Gateway, validator *RestrictionValidator) *BatchProcessor {
	return &BatchProcessor{
		gateway:   gateway,
		validator: validator,
	}
}

// Process validates the batch and forwards it to the store. The first offending
// item aborts the whole batch.
func (p *BatchProcessor) Process(ctx context.Context, batch *entity.Batch) error {
	for _, tx := range batch.TransactionsToCreate {
		if tx.ID == uuid.Nil {
			tx.ID = uuid.New()
		}
		if err := validateCommonFields(tx); err != nil {
			return err
		}
	}
	for _, tx := range batch.TransactionsToUpdate {
		if err := validateCommonFields(tx); err != nil {
			return err
		}
	}

	if err := p.checkUpdatesMatchStored(ctx, batch.TransactionsToUpdate); err != nil {
		slog.Info("Rejected transaction batch", "reason", "invalid update", "error", err)
		return err
	}
	if err := p.checkDeletionsNotConnectedToInvoices(ctx, batch); err != nil {
		slog.Info("Rejected transaction batch", "reason", "connected to invoice", "error", err)
		return err
	}
	if err := p.checkAllocationRestrictions(ctx, batch.TransactionsToCreate); err != nil {
		slog.Info("Rejected transaction batch", "reason", "allocation restrictions", "error", err)
		return err
	}

	return p.gateway.ProcessBatch(ctx, batch)
}

// checkUpdatesMatchStored requires every updated transaction to exist with the same type.
func (p *BatchProcessor) checkUpdatesMatchStored(ctx context.Context, updates []*entity.Transaction) error {
	if len(updates) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(updates))
	for i, tx := range updates {
		ids[i] = tx.ID
	}
	stored, err := p.gateway.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*entity.Transaction, len(stored))
	for _, tx := range stored {
		byID[tx.ID] = tx
	}

	for _, tx := range updates {
		existing, ok := byID[tx.ID]
		if !ok {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
				domainerror.NewParameter("id", tx.ID.String()),
			)
		}
		if existing.TransactionType != tx.TransactionType {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransactionType,
				"the transaction type cannot be changed",
				domainerror.ErrInvalidTransactionType,
				domainerror.NewParameter("id", tx.ID.String()),
				domainerror.NewParameter("transactionType", string(tx.TransactionType)),
			)
		}
	}
	return nil
}

// checkDeletionsNotConnectedToInvoices rejects the batch when an encumbrance being deleted is
// still awaited by a pending payment, unless the same batch updates that pending payment
// so it no longer points at the encumbrance.
func (p *BatchProcessor) checkDeletionsNotConnectedToInvoices(ctx context.Context, batch *entity.Batch) error {
	if len(batch.IDsOfTransactionsToDelete) == 0 {
		return nil
	}

	pendingPayments, err := p.gateway.GetPendingPaymentsByEncumbranceIDs(ctx, batch.IDsOfTransactionsToDelete)
	if err != nil {
		return err
	}
	if len(pendingPayments) == 0 {
		return nil
	}

	deleted := make(map[uuid.UUID]struct{}, len(batch.IDsOfTransactionsToDelete))
	for _, id := range batch.IDsOfTransactionsToDelete {
		deleted[id] = struct{}{}
	}
	updated := make(map[uuid.UUID]*entity.Transaction, len(batch.TransactionsToUpdate))
	for _, tx := range batch.TransactionsToUpdate {
		updated[tx.ID] = tx
	}

	for _, pendingPayment := range pendingPayments {
		encumbranceID := pendingPayment.LinkedEncumbranceID()
		if encumbranceID == nil {
			continue
		}
		if _, ok := deleted[*encumbranceID]; !ok {
			continue
		}
		if update, ok := updated[pendingPayment.ID]; ok && !entity.SameID(update.LinkedEncumbranceID(), *encumbranceID) {
			continue
		}
		return domainerror.NewTransactionError(
			domainerror.ErrCodeConnectedToInvoice,
			"the encumbrance is connected to an invoice and cannot be deleted",
			domainerror.ErrConnectedToInvoice,
			domainerror.NewParameter("encumbranceId", encumbranceID.String()),
			domainerror.NewParameter("pendingPaymentId", pendingPayment.ID.String()),
		)
	}
	return nil
}

// checkAllocationRestrictions verifies created transfers and two-fund allocations
// against the funds' allow-lists using a single batched fund fetch.
func (p *BatchProcessor) checkAllocationRestrictions(ctx context.Context, creates []*entity.Transaction) error {
	var restricted []*entity.Transaction
	var fundIDs []uuid.UUID
	for _, tx := range creates {
		switch {
		case tx.TransactionType == entity.TransactionTypeTransfer:
			if !tx.HasBothFunds() {
				return missingFundIDError(tx)
			}
		case tx.TransactionType == entity.TransactionTypeAllocation && tx.HasBothFunds():
		default:
			continue
		}
		restricted = append(restricted, tx)
		fundIDs = append(fundIDs, *tx.FromFundID, *tx.ToFundID)
	}
	if len(restricted) == 0 {
		return nil
	}

	funds, err := p.validator.FundsByID(ctx, fundIDs)
	if err != nil {
		return err
	}
	for _, tx := range restricted {
		from, to, err := fundPair(funds, tx)
		if err != nil {
			return err
		}
		if !AllocationAllowed(from, to) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeAllocationIDsMismatch,
				"allocation or transfer between these funds is not allowed",
				domainerror.ErrAllocationIDsMismatch,
				domainerror.NewParameter("transactionId", tx.ID.String()),
				domainerror.NewParameter("fromFundId", from.ID.String()),
				domainerror.NewParameter("toFundId", to.ID.String()),
			)
		}
	}
	return nil
}

// validateCommonFields applies the rules shared by every transaction type.
func validateCommonFields(tx *entity.Transaction) error {
	if tx.Amount.IsNegative() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"transaction amount must not be negative",
			domainerror.ErrInvalidTransactionAmount,
			domainerror.NewParameter("amount", tx.Amount.String()),
		)
	}
	if tx.FromFundID == nil && tx.ToFundID == nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingFundID,
			"fromFundId or toFundId is required",
			domainerror.ErrMissingFundID,
			domainerror.NewParameter("transactionId", tx.ID.String()),
		)
	}
	if tx.FiscalYearID == uuid.Nil || tx.Currency == "" || tx.TransactionType == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeMissingTransactionFields,
			"transactionType, fiscalYearId and currency are required",
			nil,
			domainerror.NewParameter("transactionId", tx.ID.String()),
		)
	}
	return nil
}
