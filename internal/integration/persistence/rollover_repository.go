package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
	"github.com/acquisitions-finance/backend/internal/integration/persistence/model"
)

var rolloverBudgetFields = fieldMap{
	columns: map[string]column{
		"id":               {"id", kindUUID},
		"ledgerRolloverId": {"ledger_rollover_id", kindUUID},
		"budgetId":         {"budget_id", kindUUID},
		"fundId":           {"fund_id", kindUUID},
		"fiscalYearId":     {"fiscal_year_id", kindUUID},
		"name":             {"name", kindString},
		"fundName":         {"fund_name", kindString},
		"fundCode":         {"fund_code", kindString},
		"budgetStatus":     {"budget_status", kindString},
	},
	defaultOrder: "fund_code, id",
}

// rolloverBudgetRepository implements the adapter.RolloverBudgetRepository interface.
type rolloverBudgetRepository struct {
	db *gorm.DB
}

// NewRolloverBudgetRepository creates a new rollover budget repository instance.
func NewRolloverBudgetRepository(db *gorm.DB) adapter.RolloverBudgetRepository {
	return &rolloverBudgetRepository{
		db: db,
	}
}

// Get retrieves one page of rollover budgets matching the query.
func (r *rolloverBudgetRepository) Get(ctx context.Context, query string, offset, limit int) (*entity.RolloverBudgetCollection, error) {
	rows, total, err := page[model.RolloverBudgetModel](ctx, r.db, rolloverBudgetFields, query, offset, limit)
	if err != nil {
		return nil, err
	}

	rolloverBudgets := make([]*entity.LedgerFiscalYearRolloverBudget, len(rows))
	for i := range rows {
		rolloverBudgets[i] = rows[i].ToEntity()
	}
	return &entity.RolloverBudgetCollection{RolloverBudgets: rolloverBudgets, TotalRecords: total}, nil
}

// GetByID retrieves a rollover budget by its ID.
func (r *rolloverBudgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.LedgerFiscalYearRolloverBudget, error) {
	var rolloverBudgetModel model.RolloverBudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&rolloverBudgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRolloverBudgetNotFound
		}
		return nil, result.Error
	}
	return rolloverBudgetModel.ToEntity(), nil
}

// configurationRepository implements the adapter.ConfigurationRepository interface.
type configurationRepository struct {
	db *gorm.DB
}

// NewConfigurationRepository creates a new configuration repository instance.
func NewConfigurationRepository(db *gorm.DB) adapter.ConfigurationRepository {
	return &configurationRepository{
		db: db,
	}
}

// GetSystemSettings retrieves the stored locale settings.
func (r *configurationRepository) GetSystemSettings(ctx context.Context) (*entity.SystemSettings, error) {
	var settingsModel model.SystemSettingsModel
	result := r.db.WithContext(ctx).Order("id").First(&settingsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrSystemSettingsNotFound
		}
		return nil, result.Error
	}
	return settingsModel.ToEntity(), nil
}
