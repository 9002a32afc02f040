package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// RolloverBudgetModel represents the ledger_fiscal_year_rollover_budgets table in the database.
type RolloverBudgetModel struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	LedgerRolloverID     uuid.UUID        `gorm:"type:uuid;not null;index"`
	BudgetID             *uuid.UUID       `gorm:"type:uuid"`
	FundID               *uuid.UUID       `gorm:"type:uuid;index"`
	FiscalYearID         *uuid.UUID       `gorm:"type:uuid;index"`
	Name                 string           `gorm:"type:varchar(255)"`
	FundName             string           `gorm:"type:varchar(255)"`
	FundCode             string           `gorm:"type:varchar(50)"`
	BudgetStatus         string           `gorm:"type:varchar(20)"`
	AllowableEncumbrance *decimal.Decimal `gorm:"type:decimal(9,4)"`
	AllowableExpenditure *decimal.Decimal `gorm:"type:decimal(9,4)"`

	InitialAllocation *decimal.Decimal `gorm:"type:decimal(19,6)"`
	AllocationTo      *decimal.Decimal `gorm:"type:decimal(19,6)"`
	AllocationFrom    *decimal.Decimal `gorm:"type:decimal(19,6)"`
	Allocated         *decimal.Decimal `gorm:"type:decimal(19,6)"`
	NetTransfers      *decimal.Decimal `gorm:"type:decimal(19,6)"`
	Encumbered        *decimal.Decimal `gorm:"type:decimal(19,6)"`
	AwaitingPayment   *decimal.Decimal `gorm:"type:decimal(19,6)"`
	Expenditures      *decimal.Decimal `gorm:"type:decimal(19,6)"`
	Credits           *decimal.Decimal `gorm:"type:decimal(19,6)"`
	Unavailable       *decimal.Decimal `gorm:"type:decimal(19,6)"`
	Available         *decimal.Decimal `gorm:"type:decimal(19,6)"`
	CashBalance       *decimal.Decimal `gorm:"type:decimal(19,6)"`
	OverEncumbrance   *decimal.Decimal `gorm:"type:decimal(19,6)"`
	OverExpended      *decimal.Decimal `gorm:"type:decimal(19,6)"`
	TotalFunding      *decimal.Decimal `gorm:"type:decimal(19,6)"`
}

// TableName returns the table name for the RolloverBudgetModel.
func (RolloverBudgetModel) TableName() string {
	return "ledger_fiscal_year_rollover_budgets"
}

// ToEntity converts a RolloverBudgetModel to a domain entity.
func (m *RolloverBudgetModel) ToEntity() *entity.LedgerFiscalYearRolloverBudget {
	return &entity.LedgerFiscalYearRolloverBudget{
		ID:                   m.ID,
		LedgerRolloverID:     m.LedgerRolloverID,
		BudgetID:             m.BudgetID,
		FundID:               m.FundID,
		FiscalYearID:         m.FiscalYearID,
		Name:                 m.Name,
		FundName:             m.FundName,
		FundCode:             m.FundCode,
		BudgetStatus:         entity.BudgetStatus(m.BudgetStatus),
		AllowableEncumbrance: m.AllowableEncumbrance,
		AllowableExpenditure: m.AllowableExpenditure,
		InitialAllocation:    m.InitialAllocation,
		AllocationTo:         m.AllocationTo,
		AllocationFrom:       m.AllocationFrom,
		Allocated:            m.Allocated,
		NetTransfers:         m.NetTransfers,
		Encumbered:           m.Encumbered,
		AwaitingPayment:      m.AwaitingPayment,
		Expenditures:         m.Expenditures,
		Credits:              m.Credits,
		Unavailable:          m.Unavailable,
		Available:            m.Available,
		CashBalance:          m.CashBalance,
		OverEncumbrance:      m.OverEncumbrance,
		OverExpended:         m.OverExpended,
		TotalFunding:         m.TotalFunding,
	}
}

// RolloverBudgetFromEntity creates a RolloverBudgetModel from a domain entity.
func RolloverBudgetFromEntity(rb *entity.LedgerFiscalYearRolloverBudget) *RolloverBudgetModel {
	return &RolloverBudgetModel{
		ID:                   rb.ID,
		LedgerRolloverID:     rb.LedgerRolloverID,
		BudgetID:             rb.BudgetID,
		FundID:               rb.FundID,
		FiscalYearID:         rb.FiscalYearID,
		Name:                 rb.Name,
		FundName:             rb.FundName,
		FundCode:             rb.FundCode,
		BudgetStatus:         string(rb.BudgetStatus),
		AllowableEncumbrance: rb.AllowableEncumbrance,
		AllowableExpenditure: rb.AllowableExpenditure,
		InitialAllocation:    rb.InitialAllocation,
		AllocationTo:         rb.AllocationTo,
		AllocationFrom:       rb.AllocationFrom,
		Allocated:            rb.Allocated,
		NetTransfers:         rb.NetTransfers,
		Encumbered:           rb.Encumbered,
		AwaitingPayment:      rb.AwaitingPayment,
		Expenditures:         rb.Expenditures,
		Credits:              rb.Credits,
		Unavailable:          rb.Unavailable,
		Available:            rb.Available,
		CashBalance:          rb.CashBalance,
		OverEncumbrance:      rb.OverEncumbrance,
		OverExpended:         rb.OverExpended,
		TotalFunding:         rb.TotalFunding,
	}
}

// SystemSettingsModel represents the system_settings table in the database.
// The table holds at most one row.
type SystemSettingsModel struct {
	ID       uint   `gorm:"primaryKey"`
	Locale   string `gorm:"type:varchar(20);not null"`
	Currency string `gorm:"type:varchar(3);not null"`
	Timezone string `gorm:"type:varchar(50);not null"`
}

// TableName returns the table name for the SystemSettingsModel.
func (SystemSettingsModel) TableName() string {
	return "system_settings"
}

// ToEntity converts a SystemSettingsModel to a domain SystemSettings entity.
func (m *SystemSettingsModel) ToEntity() *entity.SystemSettings {
	return &entity.SystemSettings{
		Locale:   m.Locale,
		Currency: m.Currency,
		Timezone: m.Timezone,
	}
}

// All returns every model managed by auto-migration.
func All() []interface{} {
	return []interface{}{
		&TransactionModel{},
		&BudgetModel{},
		&BudgetExpenseClassModel{},
		&ExpenseClassModel{},
		&LedgerModel{},
		&FundModel{},
		&FiscalYearModel{},
		&RolloverBudgetModel{},
		&SystemSettingsModel{},
	}
}
