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

var ledgerFields = fieldMap{
	columns: map[string]column{
		"id":              {"id", kindUUID},
		"code":            {"code", kindString},
		"name":            {"name", kindString},
		"ledgerStatus":    {"ledger_status", kindString},
		"fiscalYearOneId": {"fiscal_year_one_id", kindUUID},
	},
	defaultOrder: "code",
}

var fundFields = fieldMap{
	columns: map[string]column{
		"id":         {"id", kindUUID},
		"code":       {"code", kindString},
		"name":       {"name", kindString},
		"fundStatus": {"fund_status", kindString},
		"ledgerId":   {"ledger_id", kindUUID},
		"fundTypeId": {"fund_type_id", kindUUID},
	},
	defaultOrder: "code",
}

// ledgerRepository implements the adapter.LedgerRepository interface.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// Get retrieves one page of ledgers matching the query.
func (r *ledgerRepository) Get(ctx context.Context, query string, offset, limit int) (*entity.LedgerCollection, error) {
	rows, total, err := page[model.LedgerModel](ctx, r.db, ledgerFields, query, offset, limit)
	if err != nil {
		return nil, err
	}

	ledgers := make([]*entity.Ledger, len(rows))
	for i := range rows {
		ledgers[i] = rows[i].ToEntity()
	}
	return &entity.LedgerCollection{Ledgers: ledgers, TotalRecords: total}, nil
}

// GetByID retrieves a ledger by its ID.
func (r *ledgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ledger, error) {
	var ledgerModel model.LedgerModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&ledgerModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLedgerNotFound
		}
		return nil, result.Error
	}
	return ledgerModel.ToEntity(), nil
}

// fundRepository implements the adapter.FundRepository interface.
type fundRepository struct {
	db *gorm.DB
}

// NewFundRepository creates a new fund repository instance.
func NewFundRepository(db *gorm.DB) adapter.FundRepository {
	return &fundRepository{
		db: db,
	}
}

// Get retrieves one page of funds matching the query.
func (r *fundRepository) Get(ctx context.Context, query string, offset, limit int) ([]*entity.Fund, error) {
	rows, _, err := page[model.FundModel](ctx, r.db, fundFields, query, offset, limit)
	if err != nil {
		return nil, err
	}

	funds := make([]*entity.Fund, len(rows))
	for i := range rows {
		funds[i] = rows[i].ToEntity()
	}
	return funds, nil
}

// GetByID retrieves a fund by its ID.
func (r *fundRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Fund, error) {
	var fundModel model.FundModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&fundModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFundNotFound
		}
		return nil, result.Error
	}
	return fundModel.ToEntity(), nil
}

// fiscalYearRepository implements the adapter.FiscalYearRepository interface.
type fiscalYearRepository struct {
	db *gorm.DB
}

// NewFiscalYearRepository creates a new fiscal year repository instance.
func NewFiscalYearRepository(db *gorm.DB) adapter.FiscalYearRepository {
	return &fiscalYearRepository{
		db: db,
	}
}

// GetByID retrieves a fiscal year by its ID.
func (r *fiscalYearRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FiscalYear, error) {
	var fiscalYearModel model.FiscalYearModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&fiscalYearModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrFiscalYearNotFound
		}
		return nil, result.Error
	}
	return fiscalYearModel.ToEntity(), nil
}
