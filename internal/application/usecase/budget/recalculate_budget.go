// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/application/usecase/transaction"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// RecalculateBudgetUseCase recomputes a budget's totals and stores them.
type RecalculateBudgetUseCase struct {
	budgetRepo     adapter.BudgetRepository
	fiscalYearRepo adapter.FiscalYearRepository
	gateway        *transaction.Gateway
}

// NewRecalculateBudgetUseCase creates a new RecalculateBudgetUseCase instance.
func NewRecalculateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	fiscalYearRepo adapter.FiscalYearRepository,
	gateway *transaction.Gateway,
) *RecalculateBudgetUseCase {
	return &RecalculateBudgetUseCase{
		budgetRepo:     budgetRepo,
		fiscalYearRepo: fiscalYearRepo,
		gateway:        gateway,
	}
}

// Execute recalculates and persists the budget. The stored version guards against
// concurrent writers.
func (uc *RecalculateBudgetUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	budget, err := findBudget(ctx, uc.budgetRepo, id)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.gateway.GetByFundAndFiscalYear(ctx, budget.FundID, budget.FiscalYearID)
	if err != nil {
		return nil, err
	}
	cur, err := fiscalYearCurrency(ctx, uc.fiscalYearRepo, budget.FiscalYearID)
	if err != nil {
		return nil, err
	}

	ApplyTotals(budget, CalculateTotals(budget.FundID, transactions, cur), cur)

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to store recalculated budget: %w", err)
	}

	slog.Info("Budget recalculated",
		"budget_id", budget.ID,
		"fund_id", budget.FundID,
		"fiscal_year_id", budget.FiscalYearID,
		"transactions", len(transactions),
	)
	return budget, nil
}
