package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// RolloverBudgetResponse represents a ledger fiscal year rollover budget.
type RolloverBudgetResponse struct {
	ID                   uuid.UUID        `json:"id"`
	LedgerRolloverID     uuid.UUID        `json:"ledgerRolloverId"`
	BudgetID             *uuid.UUID       `json:"budgetId,omitempty"`
	FundID               *uuid.UUID       `json:"fundId,omitempty"`
	FiscalYearID         *uuid.UUID       `json:"fiscalYearId,omitempty"`
	Name                 string           `json:"name,omitempty"`
	FundName             string           `json:"fundName,omitempty"`
	FundCode             string           `json:"fundCode,omitempty"`
	BudgetStatus         string           `json:"budgetStatus,omitempty"`
	AllowableEncumbrance *decimal.Decimal `json:"allowableEncumbrance,omitempty"`
	AllowableExpenditure *decimal.Decimal `json:"allowableExpenditure,omitempty"`
	InitialAllocation    *decimal.Decimal `json:"initialAllocation,omitempty"`
	AllocationTo         *decimal.Decimal `json:"allocationTo,omitempty"`
	AllocationFrom       *decimal.Decimal `json:"allocationFrom,omitempty"`
	Allocated            *decimal.Decimal `json:"allocated,omitempty"`
	NetTransfers         *decimal.Decimal `json:"netTransfers,omitempty"`
	Encumbered           *decimal.Decimal `json:"encumbered,omitempty"`
	AwaitingPayment      *decimal.Decimal `json:"awaitingPayment,omitempty"`
	Expenditures         *decimal.Decimal `json:"expenditures,omitempty"`
	Credits              *decimal.Decimal `json:"credits,omitempty"`
	Unavailable          *decimal.Decimal `json:"unavailable,omitempty"`
	Available            *decimal.Decimal `json:"available,omitempty"`
	CashBalance          *decimal.Decimal `json:"cashBalance,omitempty"`
	OverEncumbrance      *decimal.Decimal `json:"overEncumbrance,omitempty"`
	OverExpended         *decimal.Decimal `json:"overExpended,omitempty"`
	TotalFunding         *decimal.Decimal `json:"totalFunding,omitempty"`
}

// RolloverBudgetCollectionResponse is one page of rollover budgets.
type RolloverBudgetCollectionResponse struct {
	RolloverBudgets []RolloverBudgetResponse `json:"ledgerFiscalYearRolloverBudgets"`
	TotalRecords    int                      `json:"totalRecords"`
}

// ToRolloverBudgetResponse converts a domain rollover budget to its wire form.
func ToRolloverBudgetResponse(r *entity.LedgerFiscalYearRolloverBudget) RolloverBudgetResponse {
	return RolloverBudgetResponse{
		ID:                   r.ID,
		LedgerRolloverID:     r.LedgerRolloverID,
		BudgetID:             r.BudgetID,
		FundID:               r.FundID,
		FiscalYearID:         r.FiscalYearID,
		Name:                 r.Name,
		FundName:             r.FundName,
		FundCode:             r.FundCode,
		BudgetStatus:         string(r.BudgetStatus),
		AllowableEncumbrance: r.AllowableEncumbrance,
		AllowableExpenditure: r.AllowableExpenditure,
		InitialAllocation:    r.InitialAllocation,
		AllocationTo:         r.AllocationTo,
		AllocationFrom:       r.AllocationFrom,
		Allocated:            r.Allocated,
		NetTransfers:         r.NetTransfers,
		Encumbered:           r.Encumbered,
		AwaitingPayment:      r.AwaitingPayment,
		Expenditures:         r.Expenditures,
		Credits:              r.Credits,
		Unavailable:          r.Unavailable,
		Available:            r.Available,
		CashBalance:          r.CashBalance,
		OverEncumbrance:      r.OverEncumbrance,
		OverExpended:         r.OverExpended,
		TotalFunding:         r.TotalFunding,
	}
}

// ToRolloverBudgetCollectionResponse converts one page of rollover budgets.
func ToRolloverBudgetCollectionResponse(rolloverBudgets []*entity.LedgerFiscalYearRolloverBudget, total int) RolloverBudgetCollectionResponse {
	items := make([]RolloverBudgetResponse, len(rolloverBudgets))
	for i, r := range rolloverBudgets {
		items[i] = ToRolloverBudgetResponse(r)
	}
	return RolloverBudgetCollectionResponse{RolloverBudgets: items, TotalRecords: total}
}
