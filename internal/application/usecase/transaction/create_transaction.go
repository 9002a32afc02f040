// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
// ExpectedType is the type implied by the endpoint the request arrived on.
type CreateTransactionInput struct {
	ExpectedType entity.TransactionType
	Transaction  *entity.Transaction
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	registry *Registry
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(registry *Registry) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		registry: registry,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	created, err := uc.registry.Create(ctx, input.ExpectedType, input.Transaction)
	if err != nil {
		return nil, err
	}

	slog.Info("Transaction created",
		"transaction_id", created.ID,
		"type", created.TransactionType,
		"amount", created.Amount.String(),
	)

	return &CreateTransactionOutput{Transaction: created}, nil
}
