// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/application/cql"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

const (
	// DefaultPageLimit is used when no limit is provided.
	DefaultPageLimit = 10
	// MaxPageLimit caps the page size a client may request.
	MaxPageLimit = 1000
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Query  string
	Offset int
	Limit  int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
	TotalRecords int
}

// ListTransactionsUseCase handles transaction listing logic.
type ListTransactionsUseCase struct {
	gateway *Gateway
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(gateway *Gateway) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		gateway: gateway,
	}
}

// Execute lists one page of transactions matching the query.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = DefaultPageLimit
	}
	if input.Limit > MaxPageLimit {
		input.Limit = MaxPageLimit
	}
	if input.Offset < 0 {
		input.Offset = 0
	}
	if input.Query == "" {
		input.Query = cql.AllRecords
	}

	collection, err := uc.gateway.Get(ctx, input.Query, input.Offset, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{
		Transactions: collection.Transactions,
		TotalRecords: collection.TotalRecords,
	}, nil
}

// GetTransactionUseCase retrieves a single transaction.
type GetTransactionUseCase struct {
	gateway *Gateway
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(gateway *Gateway) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		gateway: gateway,
	}
}

// Execute retrieves the transaction with the given id.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	tx, err := uc.gateway.GetByID(ctx, id)
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
	return tx, nil
}
