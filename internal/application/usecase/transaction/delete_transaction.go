// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	ID           uuid.UUID
	ExpectedType entity.TransactionType
}

// DeleteTransactionUseCase handles transaction deletion logic.
type DeleteTransactionUseCase struct {
	registry *Registry
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(registry *Registry) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		registry: registry,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	if err := uc.registry.Delete(ctx, input.ExpectedType, input.ID); err != nil {
		return err
	}

	slog.Info("Transaction deleted", "transaction_id", input.ID, "type", input.ExpectedType)
	return nil
}
