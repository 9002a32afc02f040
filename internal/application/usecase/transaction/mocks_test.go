package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

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

// MockFundRepository is a mock fund store for testing
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

func collectionOf(transactions ...*entity.Transaction) *entity.TransactionCollection {
	return &entity.TransactionCollection{Transactions: transactions, TotalRecords: len(transactions)}
}

func idPtr(id uuid.UUID) *uuid.UUID {
	return &id
}
