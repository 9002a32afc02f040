// Package budget contains budget-related use cases.
package budget

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
	"github.com/acquisitions-finance/backend/internal/domain/valueobject"
)

// CalculateTotals recomputes a fund's budget totals from its transactions in one fiscal year.
//
// Expenditures are payments minus credits, so Credits is always zero in the result.
// Every value is rounded once, after it has been summed at full precision.
func CalculateTotals(fundID uuid.UUID, transactions []*entity.Transaction, cur valueobject.Currency) entity.BudgetTotals {
	var (
		allocationsTo   []*entity.Transaction
		allocationsFrom []decimal.Decimal
		transfersIn     []decimal.Decimal
		transfersOut    []decimal.Decimal
		encumbered      []decimal.Decimal
		awaitingPayment []decimal.Decimal
		payments        []decimal.Decimal
		credits         []decimal.Decimal
	)

	for _, tx := range transactions {
		if !tx.TouchesFund(fundID) {
			continue
		}
		switch {
		case tx.TransactionType == entity.TransactionTypeAllocation:
			if entity.SameID(tx.ToFundID, fundID) {
				allocationsTo = append(allocationsTo, tx)
			}
			if entity.SameID(tx.FromFundID, fundID) {
				allocationsFrom = append(allocationsFrom, tx.Amount)
			}
		case tx.TransactionType.IsTransfer():
			if entity.SameID(tx.ToFundID, fundID) {
				transfersIn = append(transfersIn, tx.Amount)
			}
			if entity.SameID(tx.FromFundID, fundID) {
				transfersOut = append(transfersOut, tx.Amount)
			}
		case tx.TransactionType == entity.TransactionTypeEncumbrance:
			encumbered = append(encumbered, tx.Amount)
		case tx.TransactionType == entity.TransactionTypePendingPayment:
			awaitingPayment = append(awaitingPayment, tx.Amount)
		case tx.TransactionType == entity.TransactionTypePayment:
			payments = append(payments, tx.Amount)
		case tx.TransactionType == entity.TransactionTypeCredit:
			credits = append(credits, tx.Amount)
		}
	}

	initial := InitialAllocation(allocationsTo)

	return entity.BudgetTotals{
		InitialAllocation: cur.Round(initial),
		AllocationTo:      cur.Subtract(sumAmounts(allocationsTo), initial),
		AllocationFrom:    cur.Sum(allocationsFrom...),
		NetTransfers:      cur.Subtract(rawSum(transfersIn), transfersOut...),
		Encumbered:        cur.Sum(encumbered...),
		AwaitingPayment:   cur.Sum(awaitingPayment...),
		Expenditures:      cur.Subtract(rawSum(payments), credits...),
		Credits:           decimal.Zero,
	}
}

// InitialAllocation returns the amount of the fund's initial allocation, or zero when
// there is none.
func InitialAllocation(allocationsTo []*entity.Transaction) decimal.Decimal {
	initial := InitialAllocationOf(allocationsTo)
	if initial == nil {
		return decimal.Zero
	}
	return initial.Amount
}

// InitialAllocationOf returns the earliest external allocation into a fund: the first
// allocation by creation time that has no source fund. Ties are broken by id.
func InitialAllocationOf(allocationsTo []*entity.Transaction) *entity.Transaction {
	var initial *entity.Transaction
	for _, tx := range allocationsTo {
		if tx.FromFundID != nil {
			continue
		}
		if initial == nil || createdBefore(tx, initial) {
			initial = tx
		}
	}
	return initial
}

func createdBefore(a, b *entity.Transaction) bool {
	if !a.Metadata.CreatedDate.Equal(b.Metadata.CreatedDate) {
		return a.Metadata.CreatedDate.Before(b.Metadata.CreatedDate)
	}
	return a.ID.String() < b.ID.String()
}

// ApplyTotals replaces the budget's stored totals and recomputes the derived fields.
func ApplyTotals(budget *entity.Budget, totals entity.BudgetTotals, cur valueobject.Currency) {
	budget.BudgetTotals = totals
	Derive(budget, cur)
}

// Derive fills the fields computed from the stored totals.
func Derive(budget *entity.Budget, cur valueobject.Currency) {
	t := budget.BudgetTotals

	allocated := t.InitialAllocation.Add(t.AllocationTo).Sub(t.AllocationFrom)
	totalFunding := allocated.Add(t.NetTransfers)
	unavailable := t.Encumbered.Add(t.AwaitingPayment).Add(t.Expenditures).Sub(t.Credits)
	fundedCeiling := valueobject.MaxZero(totalFunding)

	budget.Allocated = cur.Round(allocated)
	budget.TotalFunding = cur.Round(totalFunding)
	budget.Unavailable = cur.Round(unavailable)
	budget.Available = cur.Round(totalFunding.Sub(unavailable))
	budget.CashBalance = cur.Round(totalFunding.Sub(t.Expenditures).Add(t.Credits))
	budget.OverEncumbrance = cur.Round(valueobject.MaxZero(t.Encumbered.Sub(fundedCeiling)))
	budget.OverExpended = cur.Round(valueobject.MaxZero(
		t.Expenditures.Sub(t.Credits).Add(t.AwaitingPayment).Sub(fundedCeiling),
	))
}

func sumAmounts(transactions []*entity.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range transactions {
		total = total.Add(tx.Amount)
	}
	return total
}

func rawSum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
