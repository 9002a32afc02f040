// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// RolloverBudgetRepository is the storage gateway for ledger rollover budgets.
type RolloverBudgetRepository interface {
	// Get returns one page of rollover budgets matching the query.
	Get(ctx context.Context, query string, offset, limit int) (*entity.RolloverBudgetCollection, error)

	// GetByID retrieves a rollover budget by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerFiscalYearRolloverBudget, error)
}

// ConfigurationRepository is the lookup for tenant-wide settings.
type ConfigurationRepository interface {
	// GetSystemSettings returns the configured locale, currency and timezone.
	GetSystemSettings(ctx context.Context) (*entity.SystemSettings, error)
}
