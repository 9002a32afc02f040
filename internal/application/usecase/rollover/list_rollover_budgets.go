package rollover

import (
	"context"
	"fmt"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/application/cql"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

const defaultPageLimit = 10

// ListRolloverBudgetsInput represents the input for listing rollover budgets.
type ListRolloverBudgetsInput struct {
	Query  string
	Offset int
	Limit  int
}

// ListRolloverBudgetsOutput represents the output of listing rollover budgets.
type ListRolloverBudgetsOutput struct {
	RolloverBudgets []*entity.LedgerFiscalYearRolloverBudget
	TotalRecords    int
}

// ListRolloverBudgetsUseCase lists rollover budgets in the system currency.
type ListRolloverBudgetsUseCase struct {
	rolloverBudgetRepo adapter.RolloverBudgetRepository
	systemCurrency     *SystemCurrency
}

// NewListRolloverBudgetsUseCase creates a new ListRolloverBudgetsUseCase instance.
func NewListRolloverBudgetsUseCase(rolloverBudgetRepo adapter.RolloverBudgetRepository, systemCurrency *SystemCurrency) *ListRolloverBudgetsUseCase {
	return &ListRolloverBudgetsUseCase{
		rolloverBudgetRepo: rolloverBudgetRepo,
		systemCurrency:     systemCurrency,
	}
}

// Execute lists one page of normalized rollover budgets.
func (uc *ListRolloverBudgetsUseCase) Execute(ctx context.Context, input ListRolloverBudgetsInput) (*ListRolloverBudgetsOutput, error) {
	if input.Query == "" {
		input.Query = cql.AllRecords
	}
	if input.Limit <= 0 {
		input.Limit = defaultPageLimit
	}

	collection, err := uc.rolloverBudgetRepo.Get(ctx, input.Query, input.Offset, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rollover budgets: %w", err)
	}

	cur, err := uc.systemCurrency.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	NormalizeAll(collection.RolloverBudgets, cur)

	return &ListRolloverBudgetsOutput{
		RolloverBudgets: collection.RolloverBudgets,
		TotalRecords:    collection.TotalRecords,
	}, nil
}
