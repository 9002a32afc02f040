// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerFiscalYearRolloverBudget is the budget snapshot produced by a ledger rollover.
// Monetary fields are optional: a nil field was not reported by the rollover.
type LedgerFiscalYearRolloverBudget struct {
	ID                   uuid.UUID
	LedgerRolloverID     uuid.UUID
	BudgetID             *uuid.UUID
	FundID               *uuid.UUID
	FiscalYearID         *uuid.UUID
	Name                 string
	FundName             string
	FundCode             string
	BudgetStatus         BudgetStatus
	AllowableEncumbrance *decimal.Decimal
	AllowableExpenditure *decimal.Decimal

	InitialAllocation *decimal.Decimal
	AllocationTo      *decimal.Decimal
	AllocationFrom    *decimal.Decimal
	Allocated         *decimal.Decimal
	NetTransfers      *decimal.Decimal
	Encumbered        *decimal.Decimal
	AwaitingPayment   *decimal.Decimal
	Expenditures      *decimal.Decimal
	Credits           *decimal.Decimal
	Unavailable       *decimal.Decimal
	Available         *decimal.Decimal
	CashBalance       *decimal.Decimal
	OverEncumbrance   *decimal.Decimal
	OverExpended      *decimal.Decimal
	TotalFunding      *decimal.Decimal
}

// MonetaryFields returns pointers to every optional monetary field.
func (r *LedgerFiscalYearRolloverBudget) MonetaryFields() []**decimal.Decimal {
	return []**decimal.Decimal{
		&r.InitialAllocation,
		&r.AllocationTo,
		&r.AllocationFrom,
		&r.Allocated,
		&r.NetTransfers,
		&r.Encumbered,
		&r.AwaitingPayment,
		&r.Expenditures,
		&r.Credits,
		&r.Unavailable,
		&r.Available,
		&r.CashBalance,
		&r.OverEncumbrance,
		&r.OverExpended,
		&r.TotalFunding,
	}
}

// RolloverBudgetCollection is one page of a rollover budget query.
type RolloverBudgetCollection struct {
	RolloverBudgets []*LedgerFiscalYearRolloverBudget
	TotalRecords    int
}

// SystemSettings is the tenant-wide locale configuration.
type SystemSettings struct {
	Locale   string
	Currency string
	Timezone string
}
