// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"log/slog"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// ProcessBatchInput represents the input for an all-or-nothing batch.
type ProcessBatchInput struct {
	Batch *entity.Batch
}

// ProcessBatchUseCase applies a batch of creates, updates and deletes atomically.
type ProcessBatchUseCase struct {
	processor *BatchProcessor
}

// NewProcessBatchUseCase creates a new ProcessBatchUseCase instance.
func NewProcessBatchUseCase(processor *BatchProcessor) *ProcessBatchUseCase {
	return &ProcessBatchUseCase{
		processor: processor,
	}
}

// Execute validates and commits the batch.
func (uc *ProcessBatchUseCase) Execute(ctx context.Context, input ProcessBatchInput) error {
	batch := input.Batch
	if batch == nil || batch.IsEmpty() {
		return nil
	}

	if err := uc.processor.Process(ctx, batch); err != nil {
		return err
	}

	slog.Info("Transaction batch processed",
		"created", len(batch.TransactionsToCreate),
		"updated", len(batch.TransactionsToUpdate),
		"deleted", len(batch.IDsOfTransactionsToDelete),
	)
	return nil
}
