// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// MaxQueryLimit is the largest page the storage layer returns for one query.
const MaxQueryLimit = 2147483647

// TransactionRepository is the storage gateway for the transaction collection.
// Queries use the CQL-like grammar: field==value, field==(v1 or v2), AND/OR/NOT.
type TransactionRepository interface {
	// Get returns one page of transactions matching the query.
	Get(ctx context.Context, query string, offset, limit int) (*entity.TransactionCollection, error)

	// GetByID retrieves a transaction by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// Create stores a new transaction and returns it with its assigned id and metadata.
	Create(ctx context.Context, transaction *entity.Transaction) (*entity.Transaction, error)

	// Update replaces a stored transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// ProcessBatch commits creates, updates and deletes atomically: all of them or none.
	ProcessBatch(ctx context.Context, batch *entity.Batch) error
}
