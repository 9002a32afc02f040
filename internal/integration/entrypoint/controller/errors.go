// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/application/cql"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
	"github.com/acquisitions-finance/backend/internal/integration/entrypoint/dto"
)

// handleError maps coded domain errors to HTTP responses. Anything else is a 500.
func handleError(ctx *gin.Context, err error) {
	if errors.Is(err, domainerror.ErrBudgetVersionConflict) {
		var budgetErr *domainerror.BudgetError
		if errors.As(err, &budgetErr) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(budgetErr.Message, string(budgetErr.Code), budgetErr.Parameters, nil))
			return
		}
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		return
	}

	var (
		txErr       *domainerror.TransactionError
		budgetErr   *domainerror.BudgetError
		ledgerErr   *domainerror.LedgerError
		rolloverErr *domainerror.RolloverError
	)
	switch {
	case errors.As(err, &txErr):
		writeCodedError(ctx, string(txErr.Code), txErr.Message, txErr.Parameters, nil)
	case errors.As(err, &budgetErr):
		writeCodedError(ctx, string(budgetErr.Code), budgetErr.Message, budgetErr.Parameters, budgetErr.Details)
	case errors.As(err, &ledgerErr):
		writeCodedError(ctx, string(ledgerErr.Code), ledgerErr.Message, ledgerErr.Parameters, nil)
	case errors.As(err, &rolloverErr):
		writeCodedError(ctx, string(rolloverErr.Code), rolloverErr.Message, rolloverErr.Parameters, nil)
	case errors.Is(err, cql.ErrInvalidQuery):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query", Details: err.Error()})
	case isNotFound(err):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("Request failed", "method", ctx.Request.Method, "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func writeCodedError(ctx *gin.Context, code, message string, params []domainerror.Parameter, details []domainerror.ErrorDetail) {
	ctx.JSON(statusForCode(code), dto.NewErrorResponse(message, code, params, details))
}

// statusForCode maps the category digits of an XXX-CCNNNN code to a status.
func statusForCode(code string) int {
	if len(code) < 6 {
		return http.StatusInternalServerError
	}
	switch code[4:6] {
	case "01", "02":
		return http.StatusUnprocessableEntity
	case "03":
		return http.StatusNotFound
	case "04":
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domainerror.ErrTransactionNotFound) ||
		errors.Is(err, domainerror.ErrBudgetNotFound) ||
		errors.Is(err, domainerror.ErrLedgerNotFound) ||
		errors.Is(err, domainerror.ErrFundNotFound) ||
		errors.Is(err, domainerror.ErrFiscalYearNotFound) ||
		errors.Is(err, domainerror.ErrRolloverBudgetNotFound)
}

// pathID parses the :id path parameter, writing a 400 when it is malformed.
func pathID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid id format",
			Details: err.Error(),
		})
		return uuid.Nil, false
	}
	return id, true
}

// pageParams reads the offset and limit query parameters.
func pageParams(ctx *gin.Context) (offset, limit int, ok bool) {
	offset, err := strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid offset"})
		return 0, 0, false
	}
	limit, err = strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid limit"})
		return 0, 0, false
	}
	return offset, limit, true
}

// fiscalYearParam reads the optional fiscalYear query parameter.
func fiscalYearParam(ctx *gin.Context) (*uuid.UUID, bool) {
	raw := ctx.Query("fiscalYear")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		handleError(ctx, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidFiscalYear,
			"invalid fiscal year id",
			err,
			domainerror.NewParameter("fiscalYear", raw),
		))
		return nil, false
	}
	return &id, true
}

func bindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request body",
		Details: err.Error(),
	})
}
