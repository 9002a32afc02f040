// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
	"github.com/acquisitions-finance/backend/internal/integration/entrypoint/controller"
	"github.com/acquisitions-finance/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	transactionController    *controller.TransactionController
	budgetController         *controller.BudgetController
	ledgerController         *controller.LedgerController
	rolloverBudgetController *controller.RolloverBudgetController
	batchRateLimiter         *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	transactionController *controller.TransactionController,
	budgetController *controller.BudgetController,
	ledgerController *controller.LedgerController,
	rolloverBudgetController *controller.RolloverBudgetController,
	batchRateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:         healthController,
		transactionController:    transactionController,
		budgetController:         budgetController,
		ledgerController:         ledgerController,
		rolloverBudgetController: rolloverBudgetController,
		batchRateLimiter:         batchRateLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupFinanceRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupFinanceRoutes configures the /finance API.
func (r *Router) setupFinanceRoutes() {
	finance := r.engine.Group("/finance")
	finance.Use(middleware.UserContext())

	if tc := r.transactionController; tc != nil {
		finance.POST("/allocations", tc.Create(entity.TransactionTypeAllocation))
		finance.POST("/transfers", tc.Create(entity.TransactionTypeTransfer))
		finance.POST("/credits", tc.Create(entity.TransactionTypeCredit))

		finance.POST("/encumbrances", tc.Create(entity.TransactionTypeEncumbrance))
		finance.PUT("/encumbrances/:id", tc.Update(entity.TransactionTypeEncumbrance))
		finance.DELETE("/encumbrances/:id", tc.Delete(entity.TransactionTypeEncumbrance))

		finance.POST("/pending-payments", tc.Create(entity.TransactionTypePendingPayment))
		finance.PUT("/pending-payments/:id", tc.Update(entity.TransactionTypePendingPayment))

		finance.POST("/payments", tc.Create(entity.TransactionTypePayment))
		finance.PUT("/payments/:id", tc.Update(entity.TransactionTypePayment))

		transactions := finance.Group("/transactions")
		{
			transactions.GET("", tc.List)
			transactions.GET("/:id", tc.Get)
			if r.batchRateLimiter != nil {
				transactions.POST("/batch-all-or-nothing", r.batchRateLimiter.Middleware(), tc.ProcessBatch)
			} else {
				transactions.POST("/batch-all-or-nothing", tc.ProcessBatch)
			}
		}
	}

	if bc := r.budgetController; bc != nil {
		budgets := finance.Group("/budgets")
		{
			budgets.GET("/:id", bc.Get)
			budgets.PUT("/:id", bc.Update)
			budgets.POST("/:id/recalculate", bc.Recalculate)
			budgets.GET("/:id/expense-classes-totals", bc.ExpenseClassTotals)
		}
	}

	if lc := r.ledgerController; lc != nil {
		ledgers := finance.Group("/ledgers")
		{
			ledgers.GET("", lc.List)
			ledgers.GET("/:id", lc.Get)
		}
	}

	if rc := r.rolloverBudgetController; rc != nil {
		rolloverBudgets := finance.Group("/ledger-rollovers-budgets")
		{
			rolloverBudgets.GET("", rc.List)
			rolloverBudgets.GET("/:id", rc.Get)
		}
	}
}
