// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetStatus represents whether a budget can be spent against.
type BudgetStatus string

const (
	BudgetStatusActive   BudgetStatus = "Active"
	BudgetStatusFrozen   BudgetStatus = "Frozen"
	BudgetStatusInactive BudgetStatus = "Inactive"
	BudgetStatusPlanned  BudgetStatus = "Planned"
	BudgetStatusClosed   BudgetStatus = "Closed"
)

// ExpenseClassStatus represents whether an expense class is usable on a budget.
type ExpenseClassStatus string

const (
	ExpenseClassStatusActive   ExpenseClassStatus = "Active"
	ExpenseClassStatusInactive ExpenseClassStatus = "Inactive"
)

// StatusExpenseClass links an expense class to a budget with a status.
type StatusExpenseClass struct {
	ExpenseClassID uuid.UUID
	Status         ExpenseClassStatus
}

// BudgetTotals holds the monetary fields recomputed from the transaction log.
type BudgetTotals struct {
	InitialAllocation decimal.Decimal
	AllocationTo      decimal.Decimal
	AllocationFrom    decimal.Decimal
	NetTransfers      decimal.Decimal
	Encumbered        decimal.Decimal
	AwaitingPayment   decimal.Decimal
	Expenditures      decimal.Decimal
	Credits           decimal.Decimal
}

// Budget is a fund's financial snapshot for one fiscal year.
// Only the fields in BudgetTotals are stored; the rest are derived on read.
type Budget struct {
	ID                   uuid.UUID
	Version              int
	Name                 string
	BudgetStatus         BudgetStatus
	FundID               uuid.UUID
	FiscalYearID         uuid.UUID
	AllowableEncumbrance *decimal.Decimal
	AllowableExpenditure *decimal.Decimal
	StatusExpenseClasses []StatusExpenseClass
	AcqUnitIDs           []uuid.UUID
	Tags                 []string
	Metadata             Metadata

	BudgetTotals

	Allocated       decimal.Decimal
	TotalFunding    decimal.Decimal
	Unavailable     decimal.Decimal
	Available       decimal.Decimal
	CashBalance     decimal.Decimal
	OverEncumbrance decimal.Decimal
	OverExpended    decimal.Decimal
}

// Clone returns a copy that shares no slices with the receiver.
func (b *Budget) Clone() *Budget {
	c := *b
	if b.AllowableEncumbrance != nil {
		v := *b.AllowableEncumbrance
		c.AllowableEncumbrance = &v
	}
	if b.AllowableExpenditure != nil {
		v := *b.AllowableExpenditure
		c.AllowableExpenditure = &v
	}
	c.StatusExpenseClasses = append([]StatusExpenseClass(nil), b.StatusExpenseClasses...)
	c.AcqUnitIDs = append([]uuid.UUID(nil), b.AcqUnitIDs...)
	c.Tags = append([]string(nil), b.Tags...)
	return &c
}

// BudgetCollection is one page of a budget query.
type BudgetCollection struct {
	Budgets      []*Budget
	TotalRecords int
}

// BudgetExpenseClass is the stored link between a budget and an expense class.
type BudgetExpenseClass struct {
	ID             uuid.UUID
	BudgetID       uuid.UUID
	ExpenseClassID uuid.UUID
	Status         ExpenseClassStatus
}

// ExpenseClass is a sub-classification used for expense-class totals.
type ExpenseClass struct {
	ID                       uuid.UUID
	Name                     string
	Code                     string
	ExternalAccountNumberExt string
}

// BudgetExpenseClassTotal is the per expense class breakdown of a budget.
type BudgetExpenseClassTotal struct {
	ID                 uuid.UUID
	ExpenseClassName   string
	Encumbered         decimal.Decimal
	AwaitingPayment    decimal.Decimal
	Expended           decimal.Decimal
	PercentageExpended *decimal.Decimal
	ExpenseClassStatus ExpenseClassStatus
}
