package rollover

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

// GetRolloverBudgetUseCase reads one rollover budget in the system currency.
type GetRolloverBudgetUseCase struct {
	rolloverBudgetRepo adapter.RolloverBudgetRepository
	systemCurrency     *SystemCurrency
}

// NewGetRolloverBudgetUseCase creates a new GetRolloverBudgetUseCase instance.
func NewGetRolloverBudgetUseCase(rolloverBudgetRepo adapter.RolloverBudgetRepository, systemCurrency *SystemCurrency) *GetRolloverBudgetUseCase {
	return &GetRolloverBudgetUseCase{
		rolloverBudgetRepo: rolloverBudgetRepo,
		systemCurrency:     systemCurrency,
	}
}

// Execute returns the normalized rollover budget.
func (uc *GetRolloverBudgetUseCase) Execute(ctx context.Context, id uuid.UUID) (*entity.LedgerFiscalYearRolloverBudget, error) {
	rolloverBudget, err := uc.rolloverBudgetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrRolloverBudgetNotFound) {
			return nil, domainerror.NewRolloverError(
				domainerror.ErrCodeRolloverBudgetNotFound,
				"rollover budget not found",
				domainerror.ErrRolloverBudgetNotFound,
				domainerror.NewParameter("id", id.String()),
			)
		}
		return nil, fmt.Errorf("failed to find rollover budget: %w", err)
	}

	cur, err := uc.systemCurrency.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	Normalize(rolloverBudget, cur)
	return rolloverBudget, nil
}
