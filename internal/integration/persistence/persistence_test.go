package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/application/cql"
	"github.com/acquisitions-finance/backend/internal/application/usecase/budget"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
	"github.com/acquisitions-finance/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func fundRef(id uuid.UUID) *uuid.UUID {
	return &id
}

func newTransaction(transactionType entity.TransactionType, amount string, fiscalYearID uuid.UUID, from, to *uuid.UUID) *entity.Transaction {
	return &entity.Transaction{
		ID:              uuid.New(),
		TransactionType: transactionType,
		Amount:          decimal.RequireFromString(amount),
		Currency:        "USD",
		FiscalYearID:    fiscalYearID,
		FromFundID:      from,
		ToFundID:        to,
		Source:          entity.TransactionSourceUser,
	}
}

func TestTransactionRepository_Get(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))

	fiscalYearID := uuid.New()
	f1, f2, f3 := uuid.New(), uuid.New(), uuid.New()
	seed := []*entity.Transaction{
		newTransaction(entity.TransactionTypeAllocation, "100", fiscalYearID, nil, fundRef(f1)),
		newTransaction(entity.TransactionTypeAllocation, "50", fiscalYearID, fundRef(f1), fundRef(f2)),
		newTransaction(entity.TransactionTypeTransfer, "25", fiscalYearID, fundRef(f2), fundRef(f3)),
		newTransaction(entity.TransactionTypeRolloverTransfer, "5", fiscalYearID, fundRef(f3), fundRef(f1)),
		newTransaction(entity.TransactionTypeAllocation, "999", uuid.New(), nil, fundRef(f1)),
	}
	for _, tx := range seed {
		_, err := repo.Create(ctx, tx)
		require.NoError(t, err)
	}

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{
			name:     "all records",
			query:    cql.AllRecords,
			expected: 5,
		},
		{
			name:     "destination funds with type",
			query:    cql.And(cql.InIDs("toFundId", []uuid.UUID{f1, f2}), cql.EqID("fiscalYearId", fiscalYearID), cql.Eq("transactionType", "Allocation")),
			expected: 2,
		},
		{
			name:     "quoted value list",
			query:    cql.In("transactionType", []string{"Transfer", "Rollover transfer"}),
			expected: 2,
		},
		{
			name:     "either side of a fund",
			query:    cql.And(cql.Or(cql.EqID("fromFundId", f1), cql.EqID("toFundId", f1)), cql.EqID("fiscalYearId", fiscalYearID)),
			expected: 3,
		},
		{
			name:     "amount comparison",
			query:    "amount>=50 AND amount<999",
			expected: 2,
		},
		{
			name:     "binary not",
			query:    cql.EqID("fiscalYearId", fiscalYearID) + " NOT transactionType==Allocation",
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			collection, err := repo.Get(ctx, tt.query, 0, 100)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, collection.TotalRecords)
			assert.Len(t, collection.Transactions, tt.expected)
		})
	}

	t.Run("zero limit only counts", func(t *testing.T) {
		collection, err := repo.Get(ctx, cql.AllRecords, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 5, collection.TotalRecords)
		assert.Empty(t, collection.Transactions)
	})

	t.Run("sorted and paged", func(t *testing.T) {
		collection, err := repo.Get(ctx, cql.SortBy(cql.AllRecords, "amount", false), 1, 2)
		require.NoError(t, err)
		require.Len(t, collection.Transactions, 2)
		assert.True(t, decimal.NewFromInt(100).Equal(collection.Transactions[0].Amount))
		assert.True(t, decimal.NewFromInt(50).Equal(collection.Transactions[1].Amount))
	})

	t.Run("unknown index", func(t *testing.T) {
		_, err := repo.Get(ctx, "color==red", 0, 10)
		assert.ErrorIs(t, err, cql.ErrInvalidQuery)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := repo.Get(ctx, "fromFundId==not-a-uuid", 0, 10)
		assert.ErrorIs(t, err, cql.ErrInvalidQuery)
	})
}

func TestTransactionRepository_SubStatesRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))

	fund := uuid.New()
	encumbrance := newTransaction(entity.TransactionTypeEncumbrance, "80", uuid.New(), fundRef(fund), nil)
	encumbrance.Tags = []string{"books", "serials"}
	encumbrance.Encumbrance = &entity.Encumbrance{
		Status:                  entity.EncumbranceStatusUnreleased,
		InitialAmountEncumbered: decimal.RequireFromString("80"),
		AmountAwaitingPayment:   decimal.RequireFromString("20"),
		AmountExpended:          decimal.Zero,
		OrderType:               "One-Time",
		Subscription:            true,
	}
	pending := newTransaction(entity.TransactionTypePendingPayment, "20", encumbrance.FiscalYearID, fundRef(fund), nil)
	pending.AwaitingPayment = &entity.AwaitingPayment{EncumbranceID: &encumbrance.ID, ReleaseEncumbrance: false}

	_, err := repo.Create(ctx, encumbrance)
	require.NoError(t, err)
	_, err = repo.Create(ctx, pending)
	require.NoError(t, err)

	stored, err := repo.GetByID(ctx, encumbrance.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Encumbrance)
	assert.Nil(t, stored.AwaitingPayment)
	assert.Equal(t, entity.EncumbranceStatusUnreleased, stored.Encumbrance.Status)
	assert.True(t, decimal.RequireFromString("20").Equal(stored.Encumbrance.AmountAwaitingPayment))
	assert.True(t, stored.Encumbrance.Subscription)
	assert.Equal(t, []string{"books", "serials"}, stored.Tags)
	assert.False(t, stored.Metadata.CreatedDate.IsZero())

	linked, err := repo.Get(ctx, cql.EqID("awaitingPayment.encumbranceId", encumbrance.ID), 0, 10)
	require.NoError(t, err)
	require.Len(t, linked.Transactions, 1)
	assert.Equal(t, pending.ID, linked.Transactions[0].ID)
	require.NotNil(t, linked.Transactions[0].AwaitingPayment)
	assert.Nil(t, linked.Transactions[0].Encumbrance)
}

func TestTransactionRepository_ProcessBatch(t *testing.T) {
	ctx := context.Background()
	repo := NewTransactionRepository(newTestDB(t))
	fiscalYearID := uuid.New()
	fund := uuid.New()

	existing := newTransaction(entity.TransactionTypeEncumbrance, "10", fiscalYearID, fundRef(fund), nil)
	existing.Encumbrance = &entity.Encumbrance{Status: entity.EncumbranceStatusReleased}
	_, err := repo.Create(ctx, existing)
	require.NoError(t, err)

	t.Run("all or nothing", func(t *testing.T) {
		created := newTransaction(entity.TransactionTypeAllocation, "10", fiscalYearID, nil, fundRef(fund))
		err := repo.ProcessBatch(ctx, &entity.Batch{
			TransactionsToCreate:      []*entity.Transaction{created},
			IDsOfTransactionsToDelete: []uuid.UUID{uuid.New()},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)

		_, err = repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
	})

	t.Run("applies every operation", func(t *testing.T) {
		created := newTransaction(entity.TransactionTypeAllocation, "10", fiscalYearID, nil, fundRef(fund))
		updated := *existing
		updated.Description = "released"

		err := repo.ProcessBatch(ctx, &entity.Batch{
			TransactionsToCreate: []*entity.Transaction{created},
			TransactionsToUpdate: []*entity.Transaction{&updated},
		})
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, "released", stored.Description)

		err = repo.ProcessBatch(ctx, &entity.Batch{IDsOfTransactionsToDelete: []uuid.UUID{existing.ID}})
		require.NoError(t, err)
		_, err = repo.GetByID(ctx, existing.ID)
		assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
	})
}

func TestTransactionRepository_CreatedDateFollowsCreationOrder(t *testing.T) {
	ctx := context.Background()
	fiscalYearID := uuid.New()
	fund := uuid.New()

	allocationsInto := func(t *testing.T, repo adapter.TransactionRepository) []*entity.Transaction {
		t.Helper()
		collection, err := repo.Get(ctx, cql.EqID("toFundId", fund), 0, 100)
		require.NoError(t, err)
		return collection.Transactions
	}

	t.Run("client supplied creation date is replaced", func(t *testing.T) {
		repo := NewTransactionRepository(newTestDB(t))
		before := time.Now().UTC()

		first := newTransaction(entity.TransactionTypeAllocation, "500", fiscalYearID, nil, fundRef(fund))
		_, err := repo.Create(ctx, first)
		require.NoError(t, err)

		backdated := newTransaction(entity.TransactionTypeAllocation, "7", fiscalYearID, nil, fundRef(fund))
		backdated.Metadata.CreatedDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
		stored, err := repo.Create(ctx, backdated)
		require.NoError(t, err)
		assert.False(t, stored.Metadata.CreatedDate.Before(before))

		initial := budget.InitialAllocationOf(allocationsInto(t, repo))
		require.NotNil(t, initial)
		assert.Equal(t, first.ID, initial.ID)
	})

	t.Run("batch creates keep their order", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			repo := NewTransactionRepository(newTestDB(t))
			first := newTransaction(entity.TransactionTypeAllocation, "500", fiscalYearID, nil, fundRef(fund))
			second := newTransaction(entity.TransactionTypeAllocation, "1", fiscalYearID, nil, fundRef(fund))

			require.NoError(t, repo.ProcessBatch(ctx, &entity.Batch{
				TransactionsToCreate: []*entity.Transaction{first, second},
			}))

			storedFirst, err := repo.GetByID(ctx, first.ID)
			require.NoError(t, err)
			storedSecond, err := repo.GetByID(ctx, second.ID)
			require.NoError(t, err)
			require.True(t, storedFirst.Metadata.CreatedDate.Before(storedSecond.Metadata.CreatedDate))

			initial := budget.InitialAllocationOf(allocationsInto(t, repo))
			require.NotNil(t, initial)
			require.Equal(t, first.ID, initial.ID)
		}
	})
}

func TestBudgetRepository_OptimisticUpdate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBudgetRepository(db)

	budget := &entity.Budget{
		ID:           uuid.New(),
		Version:      1,
		Name:         "HIST-FY25",
		BudgetStatus: entity.BudgetStatusActive,
		FundID:       uuid.New(),
		FiscalYearID: uuid.New(),
		Metadata:     entity.Metadata{CreatedDate: time.Now().UTC(), UpdatedDate: time.Now().UTC()},
	}
	require.NoError(t, db.Create(model.BudgetFromEntity(budget)).Error)

	stale := budget.Clone()

	budget.Name = "HIST-FY25 renamed"
	require.NoError(t, repo.Update(ctx, budget))
	assert.Equal(t, 2, budget.Version)

	stored, err := repo.GetByID(ctx, budget.ID)
	require.NoError(t, err)
	assert.Equal(t, "HIST-FY25 renamed", stored.Name)
	assert.Equal(t, 2, stored.Version)

	stale.Name = "lost update"
	err = repo.Update(ctx, stale)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerror.ErrBudgetVersionConflict)

	var budgetErr *domainerror.BudgetError
	require.True(t, errors.As(err, &budgetErr))
	assert.Equal(t, domainerror.ErrCodeBudgetVersionConflict, budgetErr.Code)

	missing := budget.Clone()
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, missing), domainerror.ErrBudgetNotFound)
}

func TestRepositories_NotFound(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	id := uuid.New()

	_, err := NewBudgetRepository(db).GetByID(ctx, id)
	assert.ErrorIs(t, err, domainerror.ErrBudgetNotFound)

	_, err = NewLedgerRepository(db).GetByID(ctx, id)
	assert.ErrorIs(t, err, domainerror.ErrLedgerNotFound)

	_, err = NewFundRepository(db).GetByID(ctx, id)
	assert.ErrorIs(t, err, domainerror.ErrFundNotFound)

	_, err = NewFiscalYearRepository(db).GetByID(ctx, id)
	assert.ErrorIs(t, err, domainerror.ErrFiscalYearNotFound)

	_, err = NewRolloverBudgetRepository(db).GetByID(ctx, id)
	assert.ErrorIs(t, err, domainerror.ErrRolloverBudgetNotFound)

	_, err = NewConfigurationRepository(db).GetSystemSettings(ctx)
	assert.ErrorIs(t, err, domainerror.ErrSystemSettingsNotFound)
}

func TestFundRepository_AllowListsRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	ledgerID := uuid.New()
	allowed := uuid.New()

	fund := &entity.Fund{
		ID:             uuid.New(),
		Code:           "HIST",
		Name:           "History",
		FundStatus:     entity.FundStatusActive,
		LedgerID:       ledgerID,
		AllocatedToIDs: []uuid.UUID{allowed},
	}
	require.NoError(t, db.Create(model.FundFromEntity(fund)).Error)

	funds, err := NewFundRepository(db).Get(ctx, cql.EqID("ledgerId", ledgerID), 0, 10)
	require.NoError(t, err)
	require.Len(t, funds, 1)
	assert.Equal(t, []uuid.UUID{allowed}, funds[0].AllocatedToIDs)
	assert.Empty(t, funds[0].AllocatedFromIDs)
	assert.True(t, funds[0].AllowsAllocationTo(allowed))
	assert.False(t, funds[0].AllowsAllocationTo(uuid.New()))
}
