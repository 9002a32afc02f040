// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

// Strategy implements the type-specific rules for one transaction type.
type Strategy interface {
	// Type returns the transaction type handled by the strategy.
	Type() entity.TransactionType

	// Create validates and commits a new transaction, returning the stored record.
	Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error)

	// Update validates and commits a change to an existing transaction.
	Update(ctx context.Context, tx *entity.Transaction) error

	// Delete removes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Registry dispatches transaction operations to the strategy of their type.
// It is the only place that switches on the transaction type.
type Registry struct {
	allocation     *AllocationStrategy
	transfer       *TransferStrategy
	encumbrance    *EncumbranceStrategy
	pendingPayment *PendingPaymentStrategy
	payment        *PaymentStrategy
	credit         *CreditStrategy
}

// NewRegistry wires one strategy per supported transaction type.
func NewRegistry(gateway *Gateway, validator *RestrictionValidator, processor *BatchProcessor) *Registry {
	base := baseStrategy{gateway: gateway, processor: processor}
	return &Registry{
		allocation:     &AllocationStrategy{baseStrategy: base.of(entity.TransactionTypeAllocation), validator: validator},
		transfer:       &TransferStrategy{baseStrategy: base.of(entity.TransactionTypeTransfer), validator: validator},
		encumbrance:    &EncumbranceStrategy{baseStrategy: base.of(entity.TransactionTypeEncumbrance)},
		pendingPayment: &PendingPaymentStrategy{baseStrategy: base.of(entity.TransactionTypePendingPayment)},
		payment:        &PaymentStrategy{baseStrategy: base.of(entity.TransactionTypePayment)},
		credit:         &CreditStrategy{baseStrategy: base.of(entity.TransactionTypeCredit)},
	}
}

// StrategyFor returns the strategy handling the type.
func (r *Registry) StrategyFor(transactionType entity.TransactionType) (Strategy, error) {
	switch transactionType {
	case entity.TransactionTypeAllocation:
		return r.allocation, nil
	case entity.TransactionTypeTransfer:
		return r.transfer, nil
	case entity.TransactionTypeEncumbrance:
		return r.encumbrance, nil
	case entity.TransactionTypePendingPayment:
		return r.pendingPayment, nil
	case entity.TransactionTypePayment:
		return r.payment, nil
	case entity.TransactionTypeCredit:
		return r.credit, nil
	default:
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			fmt.Sprintf("transaction type %q is not supported", transactionType),
			domainerror.ErrInvalidTransactionType,
			domainerror.NewParameter("transactionType", string(transactionType)),
		)
	}
}

// Create routes a creation to the strategy of the given type.
func (r *Registry) Create(ctx context.Context, transactionType entity.TransactionType, tx *entity.Transaction) (*entity.Transaction, error) {
	strategy, err := r.StrategyFor(transactionType)
	if err != nil {
		return nil, err
	}
	return strategy.Create(ctx, tx)
}

// Update routes an update to the strategy of the given type.
func (r *Registry) Update(ctx context.Context, transactionType entity.TransactionType, tx *entity.Transaction) error {
	strategy, err := r.StrategyFor(transactionType)
	if err != nil {
		return err
	}
	return strategy.Update(ctx, tx)
}

// Delete routes a deletion to the strategy of the given type.
func (r *Registry) Delete(ctx context.Context, transactionType entity.TransactionType, id uuid.UUID) error {
	strategy, err := r.StrategyFor(transactionType)
	if err != nil {
		return err
	}
	return strategy.Delete(ctx, id)
}

// baseStrategy holds what every strategy shares: type checks and committing through the batch processor.
type baseStrategy struct {
	transactionType entity.TransactionType
	gateway         *Gateway
	processor       *BatchProcessor
}

func (b baseStrategy) of(transactionType entity.TransactionType) baseStrategy {
	b.transactionType = transactionType
	return b
}

// Type returns the transaction type handled by the strategy.
func (b baseStrategy) Type() entity.TransactionType {
	return b.transactionType
}

func (b baseStrategy) validateType(tx *entity.Transaction) error {
	if tx.TransactionType != b.transactionType {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			fmt.Sprintf("transaction type must be %q", b.transactionType),
			domainerror.ErrInvalidTransactionType,
			domainerror.NewParameter("transactionType", string(tx.TransactionType)),
		)
	}
	return nil
}

func (b baseStrategy) validatePositiveAmount(tx *entity.Transaction) error {
	if !tx.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"transaction amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
			domainerror.NewParameter("amount", tx.Amount.String()),
		)
	}
	return nil
}

func (b baseStrategy) unsupported(operation string) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeUnsupportedOperation,
		fmt.Sprintf("%s is not supported for %s transactions", operation, b.transactionType),
		domainerror.ErrUnsupportedOperation,
		domainerror.NewParameter("operation", operation),
		domainerror.NewParameter("transactionType", string(b.transactionType)),
	)
}

// createInBatch commits the transaction as a one-item batch and reads it back.
func (b baseStrategy) createInBatch(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if err := b.processor.Process(ctx, &entity.Batch{TransactionsToCreate: []*entity.Transaction{tx}}); err != nil {
		return nil, err
	}
	created, err := b.gateway.GetByID(ctx, tx.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read created transaction: %w", err)
	}
	return created, nil
}

func (b baseStrategy) updateInBatch(ctx context.Context, tx *entity.Transaction) error {
	return b.processor.Process(ctx, &entity.Batch{TransactionsToUpdate: []*entity.Transaction{tx}})
}

func (b baseStrategy) deleteInBatch(ctx context.Context, id uuid.UUID) error {
	return b.processor.Process(ctx, &entity.Batch{IDsOfTransactionsToDelete: []uuid.UUID{id}})
}

// fetchExisting loads a transaction and checks it has the strategy's type.
func (b baseStrategy) fetchExisting(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	existing, err := b.gateway.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
				domainerror.NewParameter("id", id.String()),
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if err := b.validateType(existing); err != nil {
		return nil, err
	}
	return existing, nil
}
