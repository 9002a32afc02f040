package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/acquisitions-finance/backend/internal/application/usecase/transaction"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
	"github.com/acquisitions-finance/backend/internal/domain/valueobject"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Get(ctx context.Context, query string, offset, limit int) (*entity.TransactionCollection, error) {
	args := m.Called(ctx, query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TransactionCollection), args.Error(1)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *entity.Transaction) (*entity.Transaction, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTransactionRepository) ProcessBatch(ctx context.Context, batch *entity.Batch) error {
	return m.Called(ctx, batch).Error(0)
}

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) Get(ctx context.Context, query string, offset, limit int) (*entity.BudgetCollection, error) {
	args := m.Called(ctx, query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BudgetCollection), args.Error(1)
}

func (m *MockBudgetRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Budget), args.Error(1)
}

func (m *MockBudgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	return m.Called(ctx, budget).Error(0)
}

type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Get(ctx context.Context, query string, offset, limit int) (*entity.LedgerCollection, error) {
	args := m.Called(ctx, query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LedgerCollection), args.Error(1)
}

func (m *MockLedgerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Ledger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Ledger), args.Error(1)
}

type MockFundRepository struct {
	mock.Mock
}

func (m *MockFundRepository) Get(ctx context.Context, query string, offset, limit int) ([]*entity.Fund, error) {
	args := m.Called(ctx, query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Fund), args.Error(1)
}

func (m *MockFundRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Fund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Fund), args.Error(1)
}

type MockFiscalYearRepository struct {
	mock.Mock
}

func (m *MockFiscalYearRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.FiscalYear, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FiscalYear), args.Error(1)
}

var usd = valueobject.CurrencyOrDefault("USD")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, dec(expected).Equal(actual), "%s: expected %s, got %s", field, expected, actual)
}

// ledgerScenario is a ledger holding F1 and F2 with G as a fund of another ledger.
type ledgerScenario struct {
	f1, f2, g    uuid.UUID
	fiscalYearID uuid.UUID
	txRepo       *MockTransactionRepository
	budgetRepo   *MockBudgetRepository
	aggregator   *Aggregator
}

func newLedgerScenario() *ledgerScenario {
	s := &ledgerScenario{
		f1:           uuid.New(),
		f2:           uuid.New(),
		g:            uuid.New(),
		fiscalYearID: uuid.New(),
		txRepo:       new(MockTransactionRepository),
		budgetRepo:   new(MockBudgetRepository),
	}
	s.aggregator = NewAggregator(s.budgetRepo, transaction.NewGateway(s.txRepo, 0, 0), 0)
	return s
}

func (s *ledgerScenario) allocation(from, to *uuid.UUID, amount string, created time.Time) *entity.Transaction {
	return s.transaction(entity.TransactionTypeAllocation, from, to, amount, created)
}

func (s *ledgerScenario) transaction(transactionType entity.TransactionType, from, to *uuid.UUID, amount string, created time.Time) *entity.Transaction {
	return &entity.Transaction{
		ID:              uuid.New(),
		TransactionType: transactionType,
		Amount:          dec(amount),
		Currency:        "USD",
		FiscalYearID:    s.fiscalYearID,
		FromFundID:      from,
		ToFundID:        to,
		Metadata:        entity.Metadata{CreatedDate: created},
	}
}

func (s *ledgerScenario) onQuery(match func(query string) bool, transactions ...*entity.Transaction) {
	s.txRepo.On("Get", mock.Anything, mock.MatchedBy(match), mock.Anything, mock.Anything).
		Return(&entity.TransactionCollection{Transactions: transactions, TotalRecords: len(transactions)}, nil)
}

func TestAggregator_Totals(t *testing.T) {
	s := newLedgerScenario()
	t0 := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	f1, f2, g := s.f1, s.f2, s.g

	initialF1 := s.allocation(nil, &f1, "500", t0)
	initialF2 := s.allocation(nil, &f2, "100", t0)
	intraAllocation := s.allocation(&f1, &f2, "50", t0.Add(time.Hour))
	externalIn := s.allocation(&g, &f1, "300", t0.Add(2*time.Hour))
	externalOut := s.allocation(&f2, &g, "20", t0.Add(3*time.Hour))
	transferIn := s.transaction(entity.TransactionTypeTransfer, &g, &f1, "40", t0)
	intraTransfer := s.transaction(entity.TransactionTypeTransfer, &f1, &f2, "10", t0)
	rolloverOut := s.transaction(entity.TransactionTypeRolloverTransfer, &f2, &g, "5", t0)

	isAllocation := func(q string) bool { return strings.Contains(q, "transactionType==Allocation") }
	isTransfer := func(q string) bool { return strings.Contains(q, "Rollover transfer") }
	s.onQuery(func(q string) bool { return strings.HasPrefix(q, "(toFundId") && isAllocation(q) },
		initialF1, initialF2, intraAllocation, externalIn)
	s.onQuery(func(q string) bool { return strings.HasPrefix(q, "(fromFundId") && isAllocation(q) },
		intraAllocation, externalOut)
	s.onQuery(func(q string) bool { return strings.HasPrefix(q, "(toFundId") && isTransfer(q) },
		transferIn, intraTransfer)
	s.onQuery(func(q string) bool { return strings.HasPrefix(q, "(fromFundId") && isTransfer(q) },
		intraTransfer, rolloverOut)

	s.budgetRepo.On("Get", mock.Anything, mock.Anything, 0, mock.Anything).Return(&entity.BudgetCollection{
		Budgets: []*entity.Budget{
			{ID: uuid.New(), FundID: f1, BudgetTotals: entity.BudgetTotals{InitialAllocation: dec("500"), Encumbered: dec("100")}},
			{ID: uuid.New(), FundID: f2, BudgetTotals: entity.BudgetTotals{InitialAllocation: dec("100"), Expenditures: dec("30")}},
		},
		TotalRecords: 2,
	}, nil)

	totals, err := s.aggregator.Totals(context.Background(), []uuid.UUID{f1, f2}, s.fiscalYearID, usd)
	require.NoError(t, err)

	assertDecimal(t, "600", totals.InitialAllocation, "initialAllocation")
	assertDecimal(t, "300", totals.AllocationTo, "allocationTo")
	assertDecimal(t, "20", totals.AllocationFrom, "allocationFrom")
	assertDecimal(t, "35", totals.NetTransfers, "netTransfers")
	assertDecimal(t, "880", totals.Allocated, "allocated")
	assertDecimal(t, "915", totals.TotalFunding, "totalFunding")
	assertDecimal(t, "100", totals.Encumbered, "encumbered")
	assertDecimal(t, "30", totals.Expenditures, "expenditures")
	assertDecimal(t, "130", totals.Unavailable, "unavailable")
	assertDecimal(t, "785", totals.Available, "available")
	assertDecimal(t, "885", totals.CashBalance, "cashBalance")
	assertDecimal(t, "0", totals.OverEncumbrance, "overEncumbrance")
	assertDecimal(t, "0", totals.OverExpended, "overExpended")
}

func TestAggregator_NoFunds(t *testing.T) {
	s := newLedgerScenario()

	totals, err := s.aggregator.Totals(context.Background(), nil, s.fiscalYearID, usd)
	require.NoError(t, err)
	assert.True(t, totals.TotalFunding.IsZero())
	s.txRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAggregator_FailedBranchFailsAggregation(t *testing.T) {
	s := newLedgerScenario()
	storeDown := errors.New("store unavailable")
	s.txRepo.On("Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&entity.TransactionCollection{}, nil)
	s.budgetRepo.On("Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, storeDown)

	_, err := s.aggregator.Totals(context.Background(), []uuid.UUID{s.f1}, s.fiscalYearID, usd)
	assert.ErrorIs(t, err, storeDown)
}

func TestTotalsBuilder_StepsDoNotMutate(t *testing.T) {
	fund := uuid.New()
	base := newTotalsBuilder(usd)
	withAllocation := base.withAllocations([]*entity.Transaction{{Amount: dec("12.345"), ToFundID: &fund}}, nil)

	assert.True(t, base.totals.AllocationTo.IsZero())
	assertDecimal(t, "12.34", withAllocation.totals.AllocationTo, "allocationTo")

	totals := withAllocation.build()
	assertDecimal(t, "12.34", totals.Allocated, "allocated")
	assert.True(t, withAllocation.totals.Allocated.IsZero())
}

func TestTotalsBuilder_OverLimits(t *testing.T) {
	totals := newTotalsBuilder(usd).
		withBudgets([]*entity.Budget{{
			BudgetTotals: entity.BudgetTotals{
				InitialAllocation: dec("100"),
				Encumbered:        dec("120"),
				AwaitingPayment:   dec("15"),
				Expenditures:      dec("95"),
				Credits:           dec("5"),
			},
		}}).
		build()

	assertDecimal(t, "20", totals.OverEncumbrance, "overEncumbrance")
	assertDecimal(t, "5", totals.OverExpended, "overExpended")
	assertDecimal(t, "10", totals.CashBalance, "cashBalance")
	assertDecimal(t, "-125", totals.Available, "available")
}

func TestGetLedgerUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown fiscal year is a bad request", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepository)
		fiscalYearRepo := new(MockFiscalYearRepository)
		ledger := &entity.Ledger{ID: uuid.New(), Code: "MAIN"}
		fiscalYearID := uuid.New()
		ledgerRepo.On("GetByID", mock.Anything, ledger.ID).Return(ledger, nil)
		fiscalYearRepo.On("GetByID", mock.Anything, fiscalYearID).Return(nil, domainerror.ErrFiscalYearNotFound)

		uc := NewGetLedgerUseCase(ledgerRepo, new(MockFundRepository), fiscalYearRepo, nil)
		_, err := uc.Execute(ctx, GetLedgerInput{ID: ledger.ID, FiscalYearID: &fiscalYearID})

		var ledgerErr *domainerror.LedgerError
		require.True(t, errors.As(err, &ledgerErr))
		assert.Equal(t, domainerror.ErrCodeFiscalYearNotFound, ledgerErr.Code)
	})

	t.Run("missing ledger", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepository)
		id := uuid.New()
		ledgerRepo.On("GetByID", mock.Anything, id).Return(nil, domainerror.ErrLedgerNotFound)

		uc := NewGetLedgerUseCase(ledgerRepo, new(MockFundRepository), new(MockFiscalYearRepository), nil)
		_, err := uc.Execute(ctx, GetLedgerInput{ID: id})

		var ledgerErr *domainerror.LedgerError
		require.True(t, errors.As(err, &ledgerErr))
		assert.Equal(t, domainerror.ErrCodeLedgerNotFound, ledgerErr.Code)
	})

	t.Run("totals are skipped without a fiscal year", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepository)
		ledger := &entity.Ledger{ID: uuid.New(), Code: "MAIN"}
		ledgerRepo.On("GetByID", mock.Anything, ledger.ID).Return(ledger, nil)

		uc := NewGetLedgerUseCase(ledgerRepo, new(MockFundRepository), new(MockFiscalYearRepository), nil)
		got, err := uc.Execute(ctx, GetLedgerInput{ID: ledger.ID})

		require.NoError(t, err)
		assert.Equal(t, "MAIN", got.Code)
	})
}
