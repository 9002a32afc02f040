// Package dependency provides dependency injection for the application.
package dependency

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/acquisitions-finance/backend/config"
	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/application/usecase/budget"
	"github.com/acquisitions-finance/backend/internal/application/usecase/ledger"
	"github.com/acquisitions-finance/backend/internal/application/usecase/rollover"
	"github.com/acquisitions-finance/backend/internal/application/usecase/transaction"
	"github.com/acquisitions-finance/backend/internal/infra/server/router"
	"github.com/acquisitions-finance/backend/internal/integration/cache"
	"github.com/acquisitions-finance/backend/internal/integration/entrypoint/controller"
	"github.com/acquisitions-finance/backend/internal/integration/entrypoint/middleware"
	"github.com/acquisitions-finance/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	DB               *gorm.DB
	Router           *router.Router
	BatchRateLimiter *middleware.RateLimiter
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil redis client disables caching.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, dbHealthChecker, cacheHealthChecker func() bool) *Injector {
	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	budgetExpenseClassRepo := persistence.NewBudgetExpenseClassRepository(db)
	expenseClassRepo := persistence.NewExpenseClassRepository(db)
	ledgerRepo := persistence.NewLedgerRepository(db)
	fundRepo := persistence.NewFundRepository(db)
	rolloverBudgetRepo := persistence.NewRolloverBudgetRepository(db)

	var (
		fiscalYearRepo adapter.FiscalYearRepository    = persistence.NewFiscalYearRepository(db)
		configRepo     adapter.ConfigurationRepository = persistence.NewConfigurationRepository(db)
	)
	if redisClient != nil {
		fiscalYearRepo = cache.NewFiscalYearCache(fiscalYearRepo, redisClient, cfg.Redis.CacheTTL)
		configRepo = cache.NewConfigurationCache(configRepo, redisClient, cfg.Redis.CacheTTL)
	}

	// Create transaction services
	gateway := transaction.NewGateway(transactionRepo, cfg.Finance.FundIDsChunkSize, cfg.Finance.IDListChunkSize)
	restrictionValidator := transaction.NewRestrictionValidator(fundRepo, cfg.Finance.IDListChunkSize)
	batchProcessor := transaction.NewBatchProcessor(gateway, restrictionValidator)
	registry := transaction.NewRegistry(gateway, restrictionValidator, batchProcessor)

	// Create transaction use cases
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(registry)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(registry)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(registry)
	processBatchUseCase := transaction.NewProcessBatchUseCase(batchProcessor)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(gateway)
	getTransactionUseCase := transaction.NewGetTransactionUseCase(gateway)

	// Create budget use cases
	getBudgetUseCase := budget.NewGetBudgetUseCase(budgetRepo, budgetExpenseClassRepo, fiscalYearRepo, gateway)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, budgetExpenseClassRepo, fiscalYearRepo)
	recalculateBudgetUseCase := budget.NewRecalculateBudgetUseCase(budgetRepo, fiscalYearRepo, gateway)
	expenseClassTotalsUseCase := budget.NewGetExpenseClassTotalsUseCase(
		budgetRepo,
		budgetExpenseClassRepo,
		expenseClassRepo,
		fiscalYearRepo,
		gateway,
		cfg.Finance.IDListChunkSize,
	)

	// Create ledger use cases
	ledgerAggregator := ledger.NewAggregator(budgetRepo, gateway, cfg.Finance.FundIDsChunkSize)
	getLedgerUseCase := ledger.NewGetLedgerUseCase(ledgerRepo, fundRepo, fiscalYearRepo, ledgerAggregator)
	listLedgersUseCase := ledger.NewListLedgersUseCase(ledgerRepo, fundRepo, fiscalYearRepo, ledgerAggregator)

	// Create rollover use cases
	systemCurrency := rollover.NewSystemCurrency(configRepo, cfg.Finance.DefaultSystemCurrency)
	getRolloverBudgetUseCase := rollover.NewGetRolloverBudgetUseCase(rolloverBudgetRepo, systemCurrency)
	listRolloverBudgetsUseCase := rollover.NewListRolloverBudgetsUseCase(rolloverBudgetRepo, systemCurrency)

	// Create controllers
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker)

	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		processBatchUseCase,
		listTransactionsUseCase,
		getTransactionUseCase,
	)

	budgetController := controller.NewBudgetController(
		getBudgetUseCase,
		updateBudgetUseCase,
		recalculateBudgetUseCase,
		expenseClassTotalsUseCase,
	)

	ledgerController := controller.NewLedgerController(getLedgerUseCase, listLedgersUseCase)
	rolloverBudgetController := controller.NewRolloverBudgetController(getRolloverBudgetUseCase, listRolloverBudgetsUseCase)

	// Create middleware
	batchRateLimit := cfg.Server.BatchRateLimit
	if cfg.Server.Environment == "test" {
		batchRateLimit = 0
	}
	batchRateLimiter := middleware.NewRateLimiter(batchRateLimit, cfg.Server.BatchRateWindow)

	// Create router
	r := router.NewRouter(
		healthController,
		transactionController,
		budgetController,
		ledgerController,
		rolloverBudgetController,
		batchRateLimiter,
	)

	return &Injector{
		Config:           cfg,
		DB:               db,
		Router:           r,
		BatchRateLimiter: batchRateLimiter,
	}
}
