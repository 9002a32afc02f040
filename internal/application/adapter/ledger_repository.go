// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// LedgerRepository is the storage gateway for ledgers.
type LedgerRepository interface {
	// Get returns one page of ledgers matching the query.
	Get(ctx context.Context, query string, offset, limit int) (*entity.LedgerCollection, error)

	// GetByID retrieves a ledger by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Ledger, error)
}
