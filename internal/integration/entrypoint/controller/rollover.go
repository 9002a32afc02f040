package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acquisitions-finance/backend/internal/application/usecase/rollover"
	"github.com/acquisitions-finance/backend/internal/integration/entrypoint/dto"
)

// RolloverBudgetController handles ledger rollover budget endpoints.
type RolloverBudgetController struct {
	getUseCase  *rollover.GetRolloverBudgetUseCase
	listUseCase *rollover.ListRolloverBudgetsUseCase
}

// NewRolloverBudgetController creates a new rollover budget controller instance.
func NewRolloverBudgetController(getUseCase *rollover.GetRolloverBudgetUseCase, listUseCase *rollover.ListRolloverBudgetsUseCase) *RolloverBudgetController {
	return &RolloverBudgetController{
		getUseCase:  getUseCase,
		listUseCase: listUseCase,
	}
}

// Get handles GET /finance/ledger-rollovers-budgets/:id requests.
func (c *RolloverBudgetController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	rb, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRolloverBudgetResponse(rb))
}

// List handles GET /finance/ledger-rollovers-budgets requests.
func (c *RolloverBudgetController) List(ctx *gin.Context) {
	offset, limit, ok := pageParams(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), rollover.ListRolloverBudgetsInput{
		Query:  ctx.Query("query"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRolloverBudgetCollectionResponse(output.RolloverBudgets, output.TotalRecords))
}
