// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// BudgetRepository is the storage gateway for budgets.
type BudgetRepository interface {
	// Get returns one page of budgets matching the query.
	Get(ctx context.Context, query string, offset, limit int) (*entity.BudgetCollection, error)

	// GetByID retrieves a budget by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// Update persists the budget if its Version matches the stored one.
	// On success the stored version is incremented and written back to budget.Version.
	Update(ctx context.Context, budget *entity.Budget) error
}

// BudgetExpenseClassRepository is the storage gateway for budget to expense class links.
type BudgetExpenseClassRepository interface {
	// GetByBudgetID returns every link of a budget.
	GetByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]*entity.BudgetExpenseClass, error)

	// Create stores a new link.
	Create(ctx context.Context, link *entity.BudgetExpenseClass) error

	// Update replaces a stored link.
	Update(ctx context.Context, link *entity.BudgetExpenseClass) error

	// Delete removes a link.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExpenseClassRepository is the lookup for expense classes.
type ExpenseClassRepository interface {
	// Get returns expense classes matching the query.
	Get(ctx context.Context, query string, offset, limit int) ([]*entity.ExpenseClass, error)
}
