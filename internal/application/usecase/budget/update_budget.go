// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

// UpdateBudgetInput represents the caller-editable fields of a budget.
// Version must be the version the caller read.
type UpdateBudgetInput struct {
	ID                   uuid.UUID
	Version              int
	Name                 string
	BudgetStatus         entity.BudgetStatus
	AllowableEncumbrance *decimal.Decimal
	AllowableExpenditure *decimal.Decimal
	StatusExpenseClasses []entity.StatusExpenseClass
	Tags                 []string
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo     adapter.BudgetRepository
	linkRepo       adapter.BudgetExpenseClassRepository
	fiscalYearRepo adapter.FiscalYearRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	linkRepo adapter.BudgetExpenseClassRepository,
	fiscalYearRepo adapter.FiscalYearRepository,
) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo:     budgetRepo,
		linkRepo:       linkRepo,
		fiscalYearRepo: fiscalYearRepo,
	}
}

// Execute merges the input onto the stored budget, validates the limits and stores
// the budget and its expense class links. When the links cannot be stored the budget
// row is put back the way it was and the link error is returned.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*entity.Budget, error) {
	if input.Name == "" || input.BudgetStatus == "" {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeMissingBudgetFields,
			"name and budgetStatus are required",
			nil,
			domainerror.NewParameter("id", input.ID.String()),
		)
	}

	stored, err := findBudget(ctx, uc.budgetRepo, input.ID)
	if err != nil {
		return nil, err
	}
	cur, err := fiscalYearCurrency(ctx, uc.fiscalYearRepo, stored.FiscalYearID)
	if err != nil {
		return nil, err
	}

	original := stored.Clone()
	merged := stored.Clone()
	merged.Version = input.Version
	merged.Name = input.Name
	merged.BudgetStatus = input.BudgetStatus
	merged.AllowableEncumbrance = input.AllowableEncumbrance
	merged.AllowableExpenditure = input.AllowableExpenditure
	merged.StatusExpenseClasses = input.StatusExpenseClasses
	merged.Tags = input.Tags
	Derive(merged, cur)

	if err := ValidateLimits(merged); err != nil {
		return nil, err
	}

	if err := uc.budgetRepo.Update(ctx, merged); err != nil {
		return nil, err
	}

	if err := uc.syncExpenseClassLinks(ctx, merged); err != nil {
		uc.rollback(ctx, original)
		return nil, err
	}

	slog.Info("Budget updated", "budget_id", merged.ID, "version", merged.Version)
	return merged, nil
}

// syncExpenseClassLinks makes the stored links match the budget's expense class statuses.
func (uc *UpdateBudgetUseCase) syncExpenseClassLinks(ctx context.Context, budget *entity.Budget) error {
	existing, err := uc.linkRepo.GetByBudgetID(ctx, budget.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch budget expense classes: %w", err)
	}

	byExpenseClass := make(map[uuid.UUID]*entity.BudgetExpenseClass, len(existing))
	for _, link := range existing {
		byExpenseClass[link.ExpenseClassID] = link
	}

	for _, requested := range budget.StatusExpenseClasses {
		link, ok := byExpenseClass[requested.ExpenseClassID]
		if !ok {
			if err := uc.linkRepo.Create(ctx, &entity.BudgetExpenseClass{
				ID:             uuid.New(),
				BudgetID:       budget.ID,
				ExpenseClassID: requested.ExpenseClassID,
				Status:         requested.Status,
			}); err != nil {
				return fmt.Errorf("failed to create budget expense class: %w", err)
			}
			continue
		}
		delete(byExpenseClass, requested.ExpenseClassID)
		if link.Status == requested.Status {
			continue
		}
		updated := *link
		updated.Status = requested.Status
		if err := uc.linkRepo.Update(ctx, &updated); err != nil {
			return fmt.Errorf("failed to update budget expense class: %w", err)
		}
	}

	for _, stale := range byExpenseClass {
		if err := uc.linkRepo.Delete(ctx, stale.ID); err != nil {
			return fmt.Errorf("failed to delete budget expense class: %w", err)
		}
	}
	return nil
}

// rollback writes the pre-update budget back over the latest stored version.
// Failures are logged; the caller reports the error that caused the rollback.
func (uc *UpdateBudgetUseCase) rollback(ctx context.Context, original *entity.Budget) {
	latest, err := uc.budgetRepo.GetByID(ctx, original.ID)
	if err != nil {
		slog.Error("Budget rollback failed: could not read latest version",
			"budget_id", original.ID,
			"fund_id", original.FundID,
			"fiscal_year_id", original.FiscalYearID,
			"error", err,
		)
		return
	}

	restored := original.Clone()
	restored.Version = latest.Version
	if err := uc.budgetRepo.Update(ctx, restored); err != nil {
		slog.Error("Budget rollback failed",
			"budget_id", original.ID,
			"fund_id", original.FundID,
			"fiscal_year_id", original.FiscalYearID,
			"error", err,
		)
		return
	}

	slog.Warn("Budget update rolled back",
		"budget_id", original.ID,
		"fund_id", original.FundID,
		"fiscal_year_id", original.FiscalYearID,
	)
}
