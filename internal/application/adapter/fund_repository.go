// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// FundRepository is the lookup for funds.
type FundRepository interface {
	// Get returns funds matching the query.
	Get(ctx context.Context, query string, offset, limit int) ([]*entity.Fund, error)

	// GetByID retrieves a fund by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Fund, error)
}

// FiscalYearRepository is the lookup for fiscal years.
type FiscalYearRepository interface {
	// GetByID retrieves a fiscal year by its ID.
	// Returns domainerror.ErrFiscalYearNotFound when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.FiscalYear, error)
}
