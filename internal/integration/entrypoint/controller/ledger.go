package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acquisitions-finance/backend/internal/application/usecase/ledger"
	"github.com/acquisitions-finance/backend/internal/integration/entrypoint/dto"
)

// LedgerController handles ledger endpoints.
type LedgerController struct {
	getUseCase  *ledger.GetLedgerUseCase
	listUseCase *ledger.ListLedgersUseCase
}

// NewLedgerController creates a new ledger controller instance.
func NewLedgerController(getUseCase *ledger.GetLedgerUseCase, listUseCase *ledger.ListLedgersUseCase) *LedgerController {
	return &LedgerController{
		getUseCase:  getUseCase,
		listUseCase: listUseCase,
	}
}

// Get handles GET /finance/ledgers/:id requests.
// Totals are included when the fiscalYear query parameter is set.
func (c *LedgerController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}
	fiscalYearID, ok := fiscalYearParam(ctx)
	if !ok {
		return
	}

	l, err := c.getUseCase.Execute(ctx.Request.Context(), ledger.GetLedgerInput{
		ID:           id,
		FiscalYearID: fiscalYearID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerResponse(l, fiscalYearID != nil))
}

// List handles GET /finance/ledgers requests.
func (c *LedgerController) List(ctx *gin.Context) {
	offset, limit, ok := pageParams(ctx)
	if !ok {
		return
	}
	fiscalYearID, ok := fiscalYearParam(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), ledger.ListLedgersInput{
		Query:        ctx.Query("query"),
		Offset:       offset,
		Limit:        limit,
		FiscalYearID: fiscalYearID,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerCollectionResponse(output.Ledgers, output.TotalRecords, fiscalYearID != nil))
}
