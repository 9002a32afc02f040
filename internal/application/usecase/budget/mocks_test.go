package budget

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// MockBudgetRepository is a mock budget store for testing
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
	args := m.Called(ctx, budget)
	return args.Error(0)
}

// MockBudgetExpenseClassRepository is a mock link store for testing
type MockBudgetExpenseClassRepository struct {
	mock.Mock
}

func (m *MockBudgetExpenseClassRepository) GetByBudgetID(ctx context.Context, budgetID uuid.UUID) ([]*entity.BudgetExpenseClass, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BudgetExpenseClass), args.Error(1)
}

func (m *MockBudgetExpenseClassRepository) Create(ctx context.Context, link *entity.BudgetExpenseClass) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockBudgetExpenseClassRepository) Update(ctx context.Context, link *entity.BudgetExpenseClass) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockBudgetExpenseClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFiscalYearRepository is a mock fiscal year lookup for testing
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

// MockExpenseClassRepository is a mock expense class lookup for testing
type MockExpenseClassRepository struct {
	mock.Mock
}

func (m *MockExpenseClassRepository) Get(ctx context.Context, query string, offset, limit int) ([]*entity.ExpenseClass, error) {
	args := m.Called(ctx, query, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ExpenseClass), args.Error(1)
}

// MockTransactionRepository is a mock transaction store for testing
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
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) ProcessBatch(ctx context.Context, batch *entity.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}
