package persistence

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
	"github.com/acquisitions-finance/backend/internal/integration/persistence/model"
)

var budgetFields = fieldMap{
	columns: map[string]column{
		"id":           {"id", kindUUID},
		"name":         {"name", kindString},
		"budgetStatus": {"budget_status", kindString},
		"fundId":       {"fund_id", kindUUID},
		"fiscalYearId": {"fiscal_year_id", kindUUID},
	},
	defaultOrder: "name, id",
}

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Get retrieves one page of budgets matching the query.
func (r *budgetRepository) Get(ctx context.Context, query string, offset, limit int) (*entity.BudgetCollection, error) {
	rows, total, err := page[model.BudgetModel](ctx, r.db, budgetFields, query, offset, limit)
	if err != nil {
		return nil, err
	}

	budgets := make([]*entity.Budget, len(rows))
	for i := range rows {
		budgets[i] = rows[i].ToEntity()
	}
	return &entity.BudgetCollection{Budgets: budgets, TotalRecords: total}, nil
}

// GetByID retrieves a budget by its ID.
func (r *budgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// Update stores the budget if its version still matches the stored one.
// On success the budget carries the new version.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	budgetModel.Version = budget.Version + 1
	budgetModel.UpdatedDate = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&model.BudgetModel{}).
		Where("id = ? AND version = ?", budget.ID, budget.Version).
		Select("*").
		Omit("id", "fund_id", "fiscal_year_id", "created_date", "created_by_user_id").
		Updates(budgetModel)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.BudgetModel{}).Where("id = ?", budget.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerror.ErrBudgetNotFound
		}
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetVersionConflict,
			"budget was modified by another request",
			domainerror.ErrBudgetVersionConflict,
			domainerror.NewParameter("id", budget.ID.String()),
			domainerror.NewParameter("version", strconv.Itoa(budget.Version)),
		)
	}

	budget.Version = budgetModel.Version
	return nil
}

// budgetExpenseClassRepository implements the adapter.BudgetExpenseClassRepository interface.
type budgetExpenseClassRepository struct {
	db *gorm.DB
}

// NewBudgetExpenseClassRepository creates a new budget expense class repository instance.
func NewBudgetExpenseClassRepository(db *gorm.DB) adapter.BudgetExpenseClassRepository {
	return &budgetExpenseClassRepository{
		db: db,
	}
}

// GetByBudgetID retrieves every expense class link of a budget.
func (r *budgetExpenseClassRepository) GetByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]*entity.BudgetExpenseClass, error) {
	var linkModels []model.BudgetExpenseClassModel
	result := r.db.WithContext(ctx).
		Where("budget_id = ?", budgetID).
		Order("expense_class_id").
		Find(&linkModels)
	if result.Error != nil {
		return nil, result.Error
	}

	links := make([]*entity.BudgetExpenseClass, len(linkModels))
	for i := range linkModels {
		links[i] = linkModels[i].ToEntity()
	}
	return links, nil
}

// Create stores a new link, assigning an id when missing.
func (r *budgetExpenseClassRepository) Create(ctx context.Context, link *entity.BudgetExpenseClass) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(model.BudgetExpenseClassFromEntity(link)).Error
}

// Update stores the link's status.
func (r *budgetExpenseClassRepository) Update(ctx context.Context, link *entity.BudgetExpenseClass) error {
	result := r.db.WithContext(ctx).
		Model(&model.BudgetExpenseClassModel{}).
		Where("id = ?", link.ID).
		Update("status", string(link.Status))
	return result.Error
}

// Delete removes a link.
func (r *budgetExpenseClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BudgetExpenseClassModel{}, "id = ?", id).Error
}

var expenseClassFields = fieldMap{
	columns: map[string]column{
		"id":   {"id", kindUUID},
		"name": {"name", kindString},
		"code": {"code", kindString},
	},
	defaultOrder: "name",
}

// expenseClassRepository implements the adapter.ExpenseClassRepository interface.
type expenseClassRepository struct {
	db *gorm.DB
}

// NewExpenseClassRepository creates a new expense class repository instance.
func NewExpenseClassRepository(db *gorm.DB) adapter.ExpenseClassRepository {
	return &expenseClassRepository{
		db: db,
	}
}

// Get retrieves one page of expense classes matching the query.
func (r *expenseClassRepository) Get(ctx context.Context, query string, offset, limit int) ([]*entity.ExpenseClass, error) {
	rows, _, err := page[model.ExpenseClassModel](ctx, r.db, expenseClassFields, query, offset, limit)
	if err != nil {
		return nil, err
	}

	expenseClasses := make([]*entity.ExpenseClass, len(rows))
	for i := range rows {
		expenseClasses[i] = rows[i].ToEntity()
	}
	return expenseClasses, nil
}
