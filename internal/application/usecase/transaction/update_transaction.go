// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
type UpdateTransactionInput struct {
	ID           uuid.UUID
	ExpectedType entity.TransactionType
	Transaction  *entity.Transaction
}

// UpdateTransactionUseCase handles transaction update logic.
type UpdateTransactionUseCase struct {
	registry *Registry
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(registry *Registry) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		registry: registry,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) error {
	tx := input.Transaction
	if tx.ID == uuid.Nil {
		tx.ID = input.ID
	}
	if tx.ID != input.ID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionIDMismatch,
			"transaction id in the body does not match the path",
			domainerror.ErrTransactionIDMismatch,
			domainerror.NewParameter("id", input.ID.String()),
		)
	}

	if err := uc.registry.Update(ctx, input.ExpectedType, tx); err != nil {
		return err
	}

	slog.Info("Transaction updated", "transaction_id", tx.ID, "type", tx.TransactionType)
	return nil
}
