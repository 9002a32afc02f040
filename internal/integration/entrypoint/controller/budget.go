package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acquisitions-finance/backend/internal/application/usecase/budget"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
	"github.com/acquisitions-finance/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	getUseCase                *budget.GetBudgetUseCase
	updateUseCase             *budget.UpdateBudgetUseCase
	recalculateUseCase        *budget.RecalculateBudgetUseCase
	expenseClassTotalsUseCase *budget.GetExpenseClassTotalsUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	getUseCase *budget.GetBudgetUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
	recalculateUseCase *budget.RecalculateBudgetUseCase,
	expenseClassTotalsUseCase *budget.GetExpenseClassTotalsUseCase,
) *BudgetController {
	return &BudgetController{
		getUseCase:                getUseCase,
		updateUseCase:             updateUseCase,
		recalculateUseCase:        recalculateUseCase,
		expenseClassTotalsUseCase: expenseClassTotalsUseCase,
	}
}

// Get handles GET /finance/budgets/:id requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	b, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(b))
}

// Update handles PUT /finance/budgets/:id requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	if req.ID != nil && *req.ID != id {
		handleError(ctx, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetIDMismatch,
			"budget id in the body does not match the path",
			domainerror.ErrBudgetIDMismatch,
			domainerror.NewParameter("id", id.String()),
		))
		return
	}

	if _, err := c.updateUseCase.Execute(ctx.Request.Context(), req.ToUpdateBudgetInput(id)); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Recalculate handles POST /finance/budgets/:id/recalculate requests.
func (c *BudgetController) Recalculate(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	b, err := c.recalculateUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(b))
}

// ExpenseClassTotals handles GET /finance/budgets/:id/expense-classes-totals requests.
func (c *BudgetController) ExpenseClassTotals(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	totals, err := c.expenseClassTotalsUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetExpenseClassTotalsResponse(totals))
}
