// Package budget contains budget-related use cases.
package budget

import (
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

var hundred = decimal.NewFromInt(100)

// ValidateLimits checks the allowable encumbrance and expenditure percentages of a
// budget whose derived fields are up to date. Limits that are not set are skipped.
// Every violated limit is listed in the returned error's Details.
func ValidateLimits(budget *entity.Budget) error {
	var details []domainerror.ErrorDetail

	if budget.AllowableEncumbrance != nil {
		limit := budget.TotalFunding.Mul(*budget.AllowableEncumbrance).Div(hundred)
		used := budget.Encumbered.Add(budget.AwaitingPayment).Add(budget.Expenditures)
		if limit.LessThan(used) {
			details = append(details, domainerror.ErrorDetail{
				Code:    string(domainerror.ErrCodeAllowableEncumbranceExceeded),
				Message: "allowable encumbrance limit exceeded",
				Parameters: []domainerror.Parameter{
					domainerror.NewParameter("allowableEncumbrance", budget.AllowableEncumbrance.String()),
					domainerror.NewParameter("limit", limit.String()),
					domainerror.NewParameter("used", used.String()),
				},
			})
		}
	}

	if budget.AllowableExpenditure != nil {
		allocated := budget.Allocated
		remaining := allocated.Mul(*budget.AllowableExpenditure).Div(hundred).
			Sub(allocated.Sub(budget.Available.Add(budget.Unavailable))).
			Sub(budget.Expenditures.Add(budget.AwaitingPayment))
		if remaining.IsNegative() {
			details = append(details, domainerror.ErrorDetail{
				Code:    string(domainerror.ErrCodeAllowableExpenditureExceeded),
				Message: "allowable expenditure limit exceeded",
				Parameters: []domainerror.Parameter{
					domainerror.NewParameter("allowableExpenditure", budget.AllowableExpenditure.String()),
					domainerror.NewParameter("remaining", remaining.String()),
				},
			})
		}
	}

	if len(details) == 0 {
		return nil
	}

	first := details[0]
	sentinel := domainerror.ErrAllowableEncumbranceExceeded
	code := domainerror.ErrCodeAllowableEncumbranceExceeded
	if first.Code == string(domainerror.ErrCodeAllowableExpenditureExceeded) {
		sentinel = domainerror.ErrAllowableExpenditureExceeded
		code = domainerror.ErrCodeAllowableExpenditureExceeded
	}
	err := domainerror.NewBudgetError(code, first.Message, sentinel,
		domainerror.NewParameter("budgetId", budget.ID.String()))
	err.Details = details
	return err
}
