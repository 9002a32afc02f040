// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/application/usecase/transaction"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// GetBudgetUseCase reads a budget with totals recomputed from the transaction log.
type GetBudgetUseCase struct {
	budgetRepo     adapter.BudgetRepository
	linkRepo       adapter.BudgetExpenseClassRepository
	fiscalYearRepo adapter.FiscalYearRepository
	gateway        *transaction.Gateway
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	linkRepo adapter.BudgetExpenseClassRepository,
	fiscalYearRepo adapter.FiscalYearRepository,
	gateway *transaction.Gateway,
) *GetBudgetUseCase {
	return &GetBudgetUseCase{
		budgetRepo:     budgetRepo,
		linkRepo:       linkRepo,
		fiscalYearRepo: fiscalYearRepo,
		gateway:        gateway,
	}
}

// Execute returns the budget with its totals and derived fields.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	budget, err := findBudget(ctx, uc.budgetRepo, id)
	if err != nil {
		return nil, err
	}

	var (
		transactions []*entity.Transaction
		links        []*entity.BudgetExpenseClass
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		transactions, err = uc.gateway.GetByFundAndFiscalYear(groupCtx, budget.FundID, budget.FiscalYearID)
		return err
	})
	group.Go(func() error {
		var err error
		links, err = uc.linkRepo.GetByBudgetID(groupCtx, budget.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch budget expense classes: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	cur, err := fiscalYearCurrency(ctx, uc.fiscalYearRepo, budget.FiscalYearID)
	if err != nil {
		return nil, err
	}

	ApplyTotals(budget, CalculateTotals(budget.FundID, transactions, cur), cur)
	budget.StatusExpenseClasses = statusExpenseClasses(links)
	return budget, nil
}
