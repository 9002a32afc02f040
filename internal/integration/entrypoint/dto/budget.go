package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/application/usecase/budget"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// StatusExpenseClassDTO is an expense class linked to a budget.
type StatusExpenseClassDTO struct {
	ExpenseClassID uuid.UUID `json:"expenseClassId" binding:"required"`
	Status         string    `json:"status" binding:"omitempty,oneof=Active Inactive"`
}

// BudgetResponse represents a budget with its totals in API responses.
type BudgetResponse struct {
	ID                   uuid.UUID               `json:"id"`
	Version              int                     `json:"_version"`
	Name                 string                  `json:"name"`
	BudgetStatus         string                  `json:"budgetStatus"`
	FundID               uuid.UUID               `json:"fundId"`
	FiscalYearID         uuid.UUID               `json:"fiscalYearId"`
	AllowableEncumbrance *decimal.Decimal        `json:"allowableEncumbrance,omitempty"`
	AllowableExpenditure *decimal.Decimal        `json:"allowableExpenditure,omitempty"`
	InitialAllocation    decimal.Decimal         `json:"initialAllocation"`
	AllocationTo         decimal.Decimal         `json:"allocationTo"`
	AllocationFrom       decimal.Decimal         `json:"allocationFrom"`
	Allocated            decimal.Decimal         `json:"allocated"`
	NetTransfers         decimal.Decimal         `json:"netTransfers"`
	TotalFunding         decimal.Decimal         `json:"totalFunding"`
	Encumbered           decimal.Decimal         `json:"encumbered"`
	AwaitingPayment      decimal.Decimal         `json:"awaitingPayment"`
	Expenditures         decimal.Decimal         `json:"expenditures"`
	Credits              decimal.Decimal         `json:"credits"`
	Unavailable          decimal.Decimal         `json:"unavailable"`
	Available            decimal.Decimal         `json:"available"`
	CashBalance          decimal.Decimal         `json:"cashBalance"`
	OverEncumbrance      decimal.Decimal         `json:"overEncumbrance"`
	OverExpended         decimal.Decimal         `json:"overExpended"`
	StatusExpenseClasses []StatusExpenseClassDTO `json:"statusExpenseClasses"`
	AcqUnitIDs           []uuid.UUID             `json:"acqUnitIds"`
	Tags                 *TagsDTO                `json:"tags,omitempty"`
	Metadata             *MetadataDTO            `json:"metadata,omitempty"`
}

// UpdateBudgetRequest represents the request body for budget update.
// Totals sent by the client are ignored.
type UpdateBudgetRequest struct {
	ID                   *uuid.UUID              `json:"id,omitempty"`
	Version              int                     `json:"_version"`
	Name                 string                  `json:"name"`
	BudgetStatus         string                  `json:"budgetStatus" binding:"omitempty,oneof=Active Frozen Inactive Planned Closed"`
	AllowableEncumbrance *decimal.Decimal        `json:"allowableEncumbrance,omitempty"`
	AllowableExpenditure *decimal.Decimal        `json:"allowableExpenditure,omitempty"`
	StatusExpenseClasses []StatusExpenseClassDTO `json:"statusExpenseClasses" binding:"dive"`
	Tags                 *TagsDTO                `json:"tags,omitempty"`
}

// BudgetExpenseClassTotalDTO is the per expense class breakdown of a budget.
type BudgetExpenseClassTotalDTO struct {
	ID                 uuid.UUID        `json:"id"`
	ExpenseClassName   string           `json:"expenseClassName"`
	Encumbered         decimal.Decimal  `json:"encumbered"`
	AwaitingPayment    decimal.Decimal  `json:"awaitingPayment"`
	Expended           decimal.Decimal  `json:"expended"`
	PercentageExpended *decimal.Decimal `json:"percentageExpended,omitempty"`
	ExpenseClassStatus string           `json:"expenseClassStatus"`
}

// BudgetExpenseClassTotalsResponse lists the expense class totals of a budget.
type BudgetExpenseClassTotalsResponse struct {
	BudgetExpenseClassTotals []BudgetExpenseClassTotalDTO `json:"budgetExpenseClassTotals"`
	TotalRecords             int                          `json:"totalRecords"`
}

// ToBudgetResponse converts a domain Budget to a BudgetResponse DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	response := BudgetResponse{
		ID:                   b.ID,
		Version:              b.Version,
		Name:                 b.Name,
		BudgetStatus:         string(b.BudgetStatus),
		FundID:               b.FundID,
		FiscalYearID:         b.FiscalYearID,
		AllowableEncumbrance: b.AllowableEncumbrance,
		AllowableExpenditure: b.AllowableExpenditure,
		InitialAllocation:    b.InitialAllocation,
		AllocationTo:         b.AllocationTo,
		AllocationFrom:       b.AllocationFrom,
		Allocated:            b.Allocated,
		NetTransfers:         b.NetTransfers,
		TotalFunding:         b.TotalFunding,
		Encumbered:           b.Encumbered,
		AwaitingPayment:      b.AwaitingPayment,
		Expenditures:         b.Expenditures,
		Credits:              b.Credits,
		Unavailable:          b.Unavailable,
		Available:            b.Available,
		CashBalance:          b.CashBalance,
		OverEncumbrance:      b.OverEncumbrance,
		OverExpended:         b.OverExpended,
		StatusExpenseClasses: make([]StatusExpenseClassDTO, len(b.StatusExpenseClasses)),
		AcqUnitIDs:           b.AcqUnitIDs,
		Tags:                 toTagsDTO(b.Tags),
		Metadata:             toMetadataDTO(b.Metadata),
	}
	for i, sec := range b.StatusExpenseClasses {
		response.StatusExpenseClasses[i] = StatusExpenseClassDTO{
			ExpenseClassID: sec.ExpenseClassID,
			Status:         string(sec.Status),
		}
	}
	if response.AcqUnitIDs == nil {
		response.AcqUnitIDs = []uuid.UUID{}
	}
	return response
}

// ToUpdateBudgetInput converts the request into use case input for the budget at id.
func (r *UpdateBudgetRequest) ToUpdateBudgetInput(id uuid.UUID) budget.UpdateBudgetInput {
	input := budget.UpdateBudgetInput{
		ID:                   id,
		Version:              r.Version,
		Name:                 r.Name,
		BudgetStatus:         entity.BudgetStatus(r.BudgetStatus),
		AllowableEncumbrance: r.AllowableEncumbrance,
		AllowableExpenditure: r.AllowableExpenditure,
		Tags:                 r.Tags.list(),
	}
	for _, sec := range r.StatusExpenseClasses {
		status := entity.ExpenseClassStatus(sec.Status)
		if status == "" {
			status = entity.ExpenseClassStatusActive
		}
		input.StatusExpenseClasses = append(input.StatusExpenseClasses, entity.StatusExpenseClass{
			ExpenseClassID: sec.ExpenseClassID,
			Status:         status,
		})
	}
	return input
}

// ToBudgetExpenseClassTotalsResponse converts expense class totals.
func ToBudgetExpenseClassTotalsResponse(totals []*entity.BudgetExpenseClassTotal) BudgetExpenseClassTotalsResponse {
	items := make([]BudgetExpenseClassTotalDTO, len(totals))
	for i, t := range totals {
		items[i] = BudgetExpenseClassTotalDTO{
			ID:                 t.ID,
			ExpenseClassName:   t.ExpenseClassName,
			Encumbered:         t.Encumbered,
			AwaitingPayment:    t.AwaitingPayment,
			Expended:           t.Expended,
			PercentageExpended: t.PercentageExpended,
			ExpenseClassStatus: string(t.ExpenseClassStatus),
		}
	}
	return BudgetExpenseClassTotalsResponse{BudgetExpenseClassTotals: items, TotalRecords: len(items)}
}
