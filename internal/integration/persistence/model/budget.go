package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
// Only the recalculated totals are stored; derived fields are computed on read.
type BudgetModel struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	Version              int              `gorm:"not null;default:1"`
	Name                 string           `gorm:"type:varchar(255);not null"`
	BudgetStatus         string           `gorm:"type:varchar(20);not null"`
	FundID               uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_budget_fund_fiscal_year"`
	FiscalYearID         uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_budget_fund_fiscal_year"`
	AllowableEncumbrance *decimal.Decimal `gorm:"type:decimal(9,4)"`
	AllowableExpenditure *decimal.Decimal `gorm:"type:decimal(9,4)"`
	AcqUnitIDs           []uuid.UUID      `gorm:"serializer:json"`
	Tags                 []string         `gorm:"serializer:json"`

	InitialAllocation decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0"`
	AllocationTo      decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0"`
	AllocationFrom    decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0"`
	NetTransfers      decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0"`
	Encumbered        decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0"`
	AwaitingPayment   decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0"`
	Expenditures      decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0"`
	Credits           decimal.Decimal `gorm:"type:decimal(19,4);not null;default:0"`

	MetadataColumns `gorm:"embedded"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:                   m.ID,
		Version:              m.Version,
		Name:                 m.Name,
		BudgetStatus:         entity.BudgetStatus(m.BudgetStatus),
		FundID:               m.FundID,
		FiscalYearID:         m.FiscalYearID,
		AllowableEncumbrance: m.AllowableEncumbrance,
		AllowableExpenditure: m.AllowableExpenditure,
		AcqUnitIDs:           m.AcqUnitIDs,
		Tags:                 m.Tags,
		Metadata:             m.MetadataColumns.toEntity(),
		BudgetTotals: entity.BudgetTotals{
			InitialAllocation: m.InitialAllocation,
			AllocationTo:      m.AllocationTo,
			AllocationFrom:    m.AllocationFrom,
			NetTransfers:      m.NetTransfers,
			Encumbered:        m.Encumbered,
			AwaitingPayment:   m.AwaitingPayment,
			Expenditures:      m.Expenditures,
			Credits:           m.Credits,
		},
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:                   budget.ID,
		Version:              budget.Version,
		Name:                 budget.Name,
		BudgetStatus:         string(budget.BudgetStatus),
		FundID:               budget.FundID,
		FiscalYearID:         budget.FiscalYearID,
		AllowableEncumbrance: budget.AllowableEncumbrance,
		AllowableExpenditure: budget.AllowableExpenditure,
		AcqUnitIDs:           budget.AcqUnitIDs,
		Tags:                 budget.Tags,
		InitialAllocation:    budget.InitialAllocation,
		AllocationTo:         budget.AllocationTo,
		AllocationFrom:       budget.AllocationFrom,
		NetTransfers:         budget.NetTransfers,
		Encumbered:           budget.Encumbered,
		AwaitingPayment:      budget.AwaitingPayment,
		Expenditures:         budget.Expenditures,
		Credits:              budget.Credits,
		MetadataColumns:      metadataFromEntity(budget.Metadata),
	}
}

// BudgetExpenseClassModel represents the budget_expense_classes table in the database.
type BudgetExpenseClassModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	BudgetID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_budget_expense_class"`
	ExpenseClassID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_budget_expense_class"`
	Status         string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for the BudgetExpenseClassModel.
func (BudgetExpenseClassModel) TableName() string {
	return "budget_expense_classes"
}

// ToEntity converts a BudgetExpenseClassModel to a domain BudgetExpenseClass entity.
func (m *BudgetExpenseClassModel) ToEntity() *entity.BudgetExpenseClass {
	return &entity.BudgetExpenseClass{
		ID:             m.ID,
		BudgetID:       m.BudgetID,
		ExpenseClassID: m.ExpenseClassID,
		Status:         entity.ExpenseClassStatus(m.Status),
	}
}

// BudgetExpenseClassFromEntity creates a BudgetExpenseClassModel from a domain entity.
func BudgetExpenseClassFromEntity(link *entity.BudgetExpenseClass) *BudgetExpenseClassModel {
	return &BudgetExpenseClassModel{
		ID:             link.ID,
		BudgetID:       link.BudgetID,
		ExpenseClassID: link.ExpenseClassID,
		Status:         string(link.Status),
	}
}

// ExpenseClassModel represents the expense_classes table in the database.
type ExpenseClassModel struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                     string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Code                     string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	ExternalAccountNumberExt string    `gorm:"type:varchar(50)"`
}

// TableName returns the table name for the ExpenseClassModel.
func (ExpenseClassModel) TableName() string {
	return "expense_classes"
}

// ToEntity converts an ExpenseClassModel to a domain ExpenseClass entity.
func (m *ExpenseClassModel) ToEntity() *entity.ExpenseClass {
	return &entity.ExpenseClass{
		ID:                       m.ID,
		Name:                     m.Name,
		Code:                     m.Code,
		ExternalAccountNumberExt: m.ExternalAccountNumberExt,
	}
}

// ExpenseClassFromEntity creates an ExpenseClassModel from a domain ExpenseClass entity.
func ExpenseClassFromEntity(expenseClass *entity.ExpenseClass) *ExpenseClassModel {
	return &ExpenseClassModel{
		ID:                       expenseClass.ID,
		Name:                     expenseClass.Name,
		Code:                     expenseClass.Code,
		ExternalAccountNumberExt: expenseClass.ExternalAccountNumberExt,
	}
}
