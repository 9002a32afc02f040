package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// LedgerTotalsDTO carries a ledger's fiscal year totals.
type LedgerTotalsDTO struct {
	InitialAllocation decimal.Decimal `json:"initialAllocation"`
	AllocationTo      decimal.Decimal `json:"allocationTo"`
	AllocationFrom    decimal.Decimal `json:"allocationFrom"`
	Allocated         decimal.Decimal `json:"allocated"`
	NetTransfers      decimal.Decimal `json:"netTransfers"`
	TotalFunding      decimal.Decimal `json:"totalFunding"`
	Encumbered        decimal.Decimal `json:"encumbered"`
	AwaitingPayment   decimal.Decimal `json:"awaitingPayment"`
	Expenditures      decimal.Decimal `json:"expenditures"`
	Credits           decimal.Decimal `json:"credits"`
	Unavailable       decimal.Decimal `json:"unavailable"`
	Available         decimal.Decimal `json:"available"`
	CashBalance       decimal.Decimal `json:"cashBalance"`
	OverEncumbrance   decimal.Decimal `json:"overEncumbrance"`
	OverExpended      decimal.Decimal `json:"overExpended"`
}

// LedgerResponse represents a ledger in API responses. Totals are present only
// when a fiscal year was requested.
type LedgerResponse struct {
	ID                   uuid.UUID    `json:"id"`
	Code                 string       `json:"code"`
	Name                 string       `json:"name"`
	Description          string       `json:"description,omitempty"`
	LedgerStatus         string       `json:"ledgerStatus"`
	FiscalYearOneID      uuid.UUID    `json:"fiscalYearOneId"`
	Currency             string       `json:"currency,omitempty"`
	RestrictEncumbrance  bool         `json:"restrictEncumbrance"`
	RestrictExpenditures bool         `json:"restrictExpenditures"`
	AcqUnitIDs           []uuid.UUID  `json:"acqUnitIds"`
	Metadata             *MetadataDTO `json:"metadata,omitempty"`

	*LedgerTotalsDTO
}

// LedgerCollectionResponse is one page of ledgers.
type LedgerCollectionResponse struct {
	Ledgers      []LedgerResponse `json:"ledgers"`
	TotalRecords int              `json:"totalRecords"`
}

// ToLedgerResponse converts a domain Ledger to a LedgerResponse DTO.
func ToLedgerResponse(l *entity.Ledger, withTotals bool) LedgerResponse {
	response := LedgerResponse{
		ID:                   l.ID,
		Code:                 l.Code,
		Name:                 l.Name,
		Description:          l.Description,
		LedgerStatus:         string(l.LedgerStatus),
		FiscalYearOneID:      l.FiscalYearOneID,
		Currency:             l.Currency,
		RestrictEncumbrance:  l.RestrictEncumbrance,
		RestrictExpenditures: l.RestrictExpenditures,
		AcqUnitIDs:           l.AcqUnitIDs,
		Metadata:             toMetadataDTO(l.Metadata),
	}
	if response.AcqUnitIDs == nil {
		response.AcqUnitIDs = []uuid.UUID{}
	}
	if withTotals {
		t := l.LedgerTotals
		response.LedgerTotalsDTO = &LedgerTotalsDTO{
			InitialAllocation: t.InitialAllocation,
			AllocationTo:      t.AllocationTo,
			AllocationFrom:    t.AllocationFrom,
			Allocated:         t.Allocated,
			NetTransfers:      t.NetTransfers,
			TotalFunding:      t.TotalFunding,
			Encumbered:        t.Encumbered,
			AwaitingPayment:   t.AwaitingPayment,
			Expenditures:      t.Expenditures,
			Credits:           t.Credits,
			Unavailable:       t.Unavailable,
			Available:         t.Available,
			CashBalance:       t.CashBalance,
			OverEncumbrance:   t.OverEncumbrance,
			OverExpended:      t.OverExpended,
		}
	}
	return response
}

// ToLedgerCollectionResponse converts one page of ledgers.
func ToLedgerCollectionResponse(ledgers []*entity.Ledger, total int, withTotals bool) LedgerCollectionResponse {
	items := make([]LedgerResponse, len(ledgers))
	for i, l := range ledgers {
		items[i] = ToLedgerResponse(l, withTotals)
	}
	return LedgerCollectionResponse{Ledgers: items, TotalRecords: total}
}
