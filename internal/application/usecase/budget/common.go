// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
	"github.com/acquisitions-finance/backend/internal/domain/valueobject"
)

func findBudget(ctx context.Context, repo adapter.BudgetRepository, id uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
				domainerror.NewParameter("id", id.String()),
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	return budget, nil
}

// fiscalYearCurrency resolves the currency a budget's amounts are expressed in.
func fiscalYearCurrency(ctx context.Context, repo adapter.FiscalYearRepository, fiscalYearID uuid.UUID) (valueobject.Currency, error) {
	fiscalYear, err := repo.GetByID(ctx, fiscalYearID)
	if err != nil {
		return valueobject.Currency{}, fmt.Errorf("failed to find fiscal year %s: %w", fiscalYearID, err)
	}
	return valueobject.CurrencyOrDefault(fiscalYear.Currency), nil
}

func statusExpenseClasses(links []*entity.BudgetExpenseClass) []entity.StatusExpenseClass {
	result := make([]entity.StatusExpenseClass, 0, len(links))
	for _, link := range links {
		result = append(result, entity.StatusExpenseClass{
			ExpenseClassID: link.ExpenseClassID,
			Status:         link.Status,
		})
	}
	return result
}
