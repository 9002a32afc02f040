package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acquisitions-finance/backend/internal/application/usecase/transaction"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	"github.com/acquisitions-finance/backend/internal/integration/entrypoint/dto"
	"github.com/acquisitions-finance/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
	batchUseCase  *transaction.ProcessBatchUseCase
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	batchUseCase *transaction.ProcessBatchUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		batchUseCase:  batchUseCase,
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
	}
}

// Create returns a handler for POST /finance/<type> requests. The endpoint fixes the
// transaction type the body must carry.
func (c *TransactionController) Create(transactionType entity.TransactionType) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req dto.TransactionDTO
		if err := ctx.ShouldBindJSON(&req); err != nil {
			bindError(ctx, err)
			return
		}

		tx := req.ToEntity()
		if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
			tx.Metadata.CreatedByUserID = &userID
			tx.Metadata.UpdatedByUserID = &userID
		}

		output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
			ExpectedType: transactionType,
			Transaction:  tx,
		})
		if err != nil {
			handleError(ctx, err)
			return
		}

		ctx.JSON(http.StatusCreated, dto.ToTransactionDTO(output.Transaction))
	}
}

// Update returns a handler for PUT /finance/<type>/:id requests.
func (c *TransactionController) Update(transactionType entity.TransactionType) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := pathID(ctx)
		if !ok {
			return
		}

		var req dto.TransactionDTO
		if err := ctx.ShouldBindJSON(&req); err != nil {
			bindError(ctx, err)
			return
		}

		tx := req.ToEntity()
		if userID, ok := middleware.GetUserIDFromContext(ctx); ok {
			tx.Metadata.UpdatedByUserID = &userID
		}

		err := c.updateUseCase.Execute(ctx.Request.Context(), transaction.UpdateTransactionInput{
			ID:           id,
			ExpectedType: transactionType,
			Transaction:  tx,
		})
		if err != nil {
			handleError(ctx, err)
			return
		}

		ctx.Status(http.StatusNoContent)
	}
}

// Delete returns a handler for DELETE /finance/<type>/:id requests.
func (c *TransactionController) Delete(transactionType entity.TransactionType) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id, ok := pathID(ctx)
		if !ok {
			return
		}

		err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
			ID:           id,
			ExpectedType: transactionType,
		})
		if err != nil {
			handleError(ctx, err)
			return
		}

		ctx.Status(http.StatusNoContent)
	}
}

// ProcessBatch handles POST /finance/transactions/batch-all-or-nothing requests.
func (c *TransactionController) ProcessBatch(ctx *gin.Context) {
	var req dto.BatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindError(ctx, err)
		return
	}

	if err := c.batchUseCase.Execute(ctx.Request.Context(), transaction.ProcessBatchInput{Batch: req.ToEntity()}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// List handles GET /finance/transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	offset, limit, ok := pageParams(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		Query:  ctx.Query("query"),
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionCollectionResponse(output.Transactions, output.TotalRecords))
}

// Get handles GET /finance/transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	tx, err := c.getUseCase.Execute(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionDTO(tx))
}
