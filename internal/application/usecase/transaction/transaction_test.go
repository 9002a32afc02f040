package transaction

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

type fixture struct {
	txRepo    *MockTransactionRepository
	fundRepo  *MockFundRepository
	gateway   *Gateway
	validator *RestrictionValidator
	processor *BatchProcessor
	registry  *Registry
}

func newFixture() *fixture {
	f := &fixture{
		txRepo:   new(MockTransactionRepository),
		fundRepo: new(MockFundRepository),
	}
	f.gateway = NewGateway(f.txRepo, 0, 0)
	f.validator = NewRestrictionValidator(f.fundRepo, 0)
	f.processor = NewBatchProcessor(f.gateway, f.validator)
	f.registry = NewRegistry(f.gateway, f.validator, f.processor)
	return f
}

func newTransaction(transactionType entity.TransactionType, from, to *uuid.UUID, amount string) *entity.Transaction {
	return &entity.Transaction{
		ID:              uuid.New(),
		TransactionType: transactionType,
		Amount:          decimal.RequireFromString(amount),
		Currency:        "USD",
		FiscalYearID:    uuid.New(),
		FromFundID:      from,
		ToFundID:        to,
		Source:          entity.TransactionSourceUser,
	}
}

func requireCode(t *testing.T, err error, code domainerror.TransactionErrorCode) {
	t.Helper()
	var txErr *domainerror.TransactionError
	require.True(t, errors.As(err, &txErr), "expected a TransactionError, got %v", err)
	assert.Equal(t, code, txErr.Code)
}

// restrictedFunds returns A (no restrictions), B (only accepts from A) and C (no restrictions).
func restrictedFunds() (a, b, c *entity.Fund) {
	a = &entity.Fund{ID: uuid.New(), Code: "A"}
	b = &entity.Fund{ID: uuid.New(), Code: "B"}
	c = &entity.Fund{ID: uuid.New(), Code: "C"}
	b.AllocatedFromIDs = []uuid.UUID{a.ID}
	return a, b, c
}

func TestAllocationAllowed(t *testing.T) {
	a, b, c := restrictedFunds()

	assert.True(t, AllocationAllowed(a, b))
	assert.False(t, AllocationAllowed(c, b))
	assert.True(t, AllocationAllowed(b, c))

	t.Run("source allow-list is checked as well", func(t *testing.T) {
		d := &entity.Fund{ID: uuid.New(), AllocatedToIDs: []uuid.UUID{a.ID}}
		assert.True(t, AllocationAllowed(d, a))
		assert.False(t, AllocationAllowed(d, c))
	})
}

func TestRestrictionValidator_Validate(t *testing.T) {
	ctx := context.Background()
	a, b, c := restrictedFunds()

	t.Run("single fund allocation is not checked", func(t *testing.T) {
		f := newFixture()
		tx := newTransaction(entity.TransactionTypeAllocation, nil, &b.ID, "100")

		require.NoError(t, f.validator.Validate(ctx, tx))
		f.fundRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("transfer without both funds is rejected", func(t *testing.T) {
		f := newFixture()
		tx := newTransaction(entity.TransactionTypeTransfer, &a.ID, nil, "10")

		err := f.validator.Validate(ctx, tx)
		assert.ErrorIs(t, err, domainerror.ErrMissingFundID)
	})

	t.Run("allowed allocation passes", func(t *testing.T) {
		f := newFixture()
		f.fundRepo.On("Get", mock.Anything, mock.Anything, 0, 2).Return([]*entity.Fund{a, b}, nil)
		tx := newTransaction(entity.TransactionTypeAllocation, &a.ID, &b.ID, "100")

		require.NoError(t, f.validator.Validate(ctx, tx))
	})

	t.Run("disallowed allocation is rejected", func(t *testing.T) {
		f := newFixture()
		f.fundRepo.On("Get", mock.Anything, mock.Anything, 0, 2).Return([]*entity.Fund{c, b}, nil)
		tx := newTransaction(entity.TransactionTypeAllocation, &c.ID, &b.ID, "100")

		err := f.validator.Validate(ctx, tx)
		assert.ErrorIs(t, err, domainerror.ErrFundAllocationMismatch)
		requireCode(t, err, domainerror.ErrCodeFundAllocationMismatch)
	})

	t.Run("unknown fund is reported", func(t *testing.T) {
		f := newFixture()
		f.fundRepo.On("Get", mock.Anything, mock.Anything, 0, 2).Return([]*entity.Fund{a}, nil)
		tx := newTransaction(entity.TransactionTypeTransfer, &a.ID, &b.ID, "5")

		err := f.validator.Validate(ctx, tx)
		assert.ErrorIs(t, err, domainerror.ErrFundNotFound)
	})
}

func TestBatchProcessor_AllocationRestrictions(t *testing.T) {
	ctx := context.Background()
	a, b, c := restrictedFunds()

	t.Run("valid batch is committed", func(t *testing.T) {
		f := newFixture()
		f.fundRepo.On("Get", mock.Anything, mock.Anything, 0, 2).Return([]*entity.Fund{a, b}, nil)
		f.txRepo.On("ProcessBatch", mock.Anything, mock.Anything).Return(nil)

		batch := &entity.Batch{TransactionsToCreate: []*entity.Transaction{
			newTransaction(entity.TransactionTypeAllocation, &a.ID, &b.ID, "100"),
		}}

		require.NoError(t, f.processor.Process(ctx, batch))
		f.txRepo.AssertCalled(t, "ProcessBatch", mock.Anything, batch)
	})

	t.Run("one invalid item rejects the whole batch", func(t *testing.T) {
		f := newFixture()
		f.fundRepo.On("Get", mock.Anything, mock.Anything, 0, 3).Return([]*entity.Fund{a, b, c}, nil)

		batch := &entity.Batch{TransactionsToCreate: []*entity.Transaction{
			newTransaction(entity.TransactionTypeAllocation, &a.ID, &b.ID, "100"),
			newTransaction(entity.TransactionTypeAllocation, &c.ID, &b.ID, "100"),
		}}

		err := f.processor.Process(ctx, batch)
		assert.ErrorIs(t, err, domainerror.ErrAllocationIDsMismatch)
		requireCode(t, err, domainerror.ErrCodeAllocationIDsMismatch)
		f.txRepo.AssertNotCalled(t, "ProcessBatch", mock.Anything, mock.Anything)
	})

	t.Run("transfer without a source fund rejects the whole batch", func(t *testing.T) {
		f := newFixture()

		batch := &entity.Batch{TransactionsToCreate: []*entity.Transaction{
			newTransaction(entity.TransactionTypeAllocation, nil, &a.ID, "100"),
			newTransaction(entity.TransactionTypeTransfer, nil, &b.ID, "10"),
		}}

		err := f.processor.Process(ctx, batch)
		requireCode(t, err, domainerror.ErrCodeMissingFundID)
		f.fundRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.txRepo.AssertNotCalled(t, "ProcessBatch", mock.Anything, mock.Anything)
	})

	t.Run("ids are assigned to new transactions", func(t *testing.T) {
		f := newFixture()
		f.txRepo.On("ProcessBatch", mock.Anything, mock.Anything).Return(nil)

		tx := newTransaction(entity.TransactionTypeEncumbrance, &a.ID, nil, "10")
		tx.ID = uuid.Nil

		require.NoError(t, f.processor.Process(ctx, &entity.Batch{TransactionsToCreate: []*entity.Transaction{tx}}))
		assert.NotEqual(t, uuid.Nil, tx.ID)
	})

	t.Run("negative amount is rejected before the store", func(t *testing.T) {
		f := newFixture()
		tx := newTransaction(entity.TransactionTypeEncumbrance, &a.ID, nil, "-1")

		err := f.processor.Process(ctx, &entity.Batch{TransactionsToCreate: []*entity.Transaction{tx}})
		assert.ErrorIs(t, err, domainerror.ErrInvalidTransactionAmount)
		f.txRepo.AssertNotCalled(t, "ProcessBatch", mock.Anything, mock.Anything)
	})
}

func TestBatchProcessor_DeletionsConnectedToInvoices(t *testing.T) {
	ctx := context.Background()
	fundID := uuid.New()

	encumbranceID := uuid.New()
	pendingPayment := newTransaction(entity.TransactionTypePendingPayment, &fundID, nil, "20")
	pendingPayment.AwaitingPayment = &entity.AwaitingPayment{EncumbranceID: idPtr(encumbranceID)}

	t.Run("linked pending payment blocks the deletion", func(t *testing.T) {
		f := newFixture()
		f.txRepo.On("Get", mock.Anything, mock.Anything, 0, adapter.MaxQueryLimit).Return(collectionOf(pendingPayment), nil)

		err := f.processor.Process(ctx, &entity.Batch{IDsOfTransactionsToDelete: []uuid.UUID{encumbranceID}})
		assert.ErrorIs(t, err, domainerror.ErrConnectedToInvoice)
		requireCode(t, err, domainerror.ErrCodeConnectedToInvoice)
		f.txRepo.AssertNotCalled(t, "ProcessBatch", mock.Anything, mock.Anything)
	})

	t.Run("unlinking the pending payment in the same batch allows the deletion", func(t *testing.T) {
		f := newFixture()
		f.txRepo.On("Get", mock.Anything, mock.Anything, 0, adapter.MaxQueryLimit).Return(collectionOf(pendingPayment), nil)
		f.txRepo.On("ProcessBatch", mock.Anything, mock.Anything).Return(nil)

		unlinked := *pendingPayment
		unlinked.AwaitingPayment = &entity.AwaitingPayment{}

		batch := &entity.Batch{
			TransactionsToUpdate:      []*entity.Transaction{&unlinked},
			IDsOfTransactionsToDelete: []uuid.UUID{encumbranceID},
		}
		require.NoError(t, f.processor.Process(ctx, batch))
		f.txRepo.AssertCalled(t, "ProcessBatch", mock.Anything, batch)
	})
}

func TestBatchProcessor_UpdatesMatchStored(t *testing.T) {
	ctx := context.Background()
	fundID := uuid.New()
	encumbrance := newTransaction(entity.TransactionTypeEncumbrance, &fundID, nil, "30")

	t.Run("update of a stored transaction is committed", func(t *testing.T) {
		f := newFixture()
		f.txRepo.On("Get", mock.Anything, mock.Anything, 0, adapter.MaxQueryLimit).Return(collectionOf(encumbrance), nil)
		f.txRepo.On("ProcessBatch", mock.Anything, mock.Anything).Return(nil)

		update := *encumbrance
		update.Description = "renewal"
		require.NoError(t, f.processor.Process(ctx, &entity.Batch{TransactionsToUpdate: []*entity.Transaction{&update}}))
		f.txRepo.AssertCalled(t, "ProcessBatch", mock.Anything, mock.Anything)
	})

	t.Run("unknown transaction rejects the batch", func(t *testing.T) {
		f := newFixture()
		f.txRepo.On("Get", mock.Anything, mock.Anything, 0, adapter.MaxQueryLimit).Return(collectionOf(), nil)

		update := *encumbrance
		err := f.processor.Process(ctx, &entity.Batch{TransactionsToUpdate: []*entity.Transaction{&update}})
		assert.ErrorIs(t, err, domainerror.ErrTransactionNotFound)
		requireCode(t, err, domainerror.ErrCodeTransactionNotFound)
		f.txRepo.AssertNotCalled(t, "ProcessBatch", mock.Anything, mock.Anything)
	})

	t.Run("changing the type rejects the batch", func(t *testing.T) {
		f := newFixture()
		f.txRepo.On("Get", mock.Anything, mock.Anything, 0, adapter.MaxQueryLimit).Return(collectionOf(encumbrance), nil)

		update := *encumbrance
		update.TransactionType = entity.TransactionTypePayment
		err := f.processor.Process(ctx, &entity.Batch{TransactionsToUpdate: []*entity.Transaction{&update}})
		requireCode(t, err, domainerror.ErrCodeInvalidTransactionType)
		f.txRepo.AssertNotCalled(t, "ProcessBatch", mock.Anything, mock.Anything)
	})

	t.Run("ids are looked up in chunks", func(t *testing.T) {
		f := newFixture()
		updates := make([]*entity.Transaction, 20)
		for i := range updates {
			updates[i] = newTransaction(entity.TransactionTypeEncumbrance, &fundID, nil, "1")
		}
		f.txRepo.On("Get", mock.Anything, mock.Anything, 0, adapter.MaxQueryLimit).Return(collectionOf(updates...), nil)
		f.txRepo.On("ProcessBatch", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, f.processor.Process(ctx, &entity.Batch{TransactionsToUpdate: updates}))
		f.txRepo.AssertNumberOfCalls(t, "Get", 2)
	})
}

func TestEncumbranceStrategy_Delete(t *testing.T) {
	ctx := context.Background()
	fundID := uuid.New()

	newEncumbrance := func(status entity.EncumbranceStatus) *entity.Transaction {
		tx := newTransaction(entity.TransactionTypeEncumbrance, &fundID, nil, "30")
		tx.Encumbrance = &entity.Encumbrance{Status: status}
		return tx
	}

	t.Run("released encumbrance without pending payments is deleted", func(t *testing.T) {
		f := newFixture()
		encumbrance := newEncumbrance(entity.EncumbranceStatusReleased)
		f.txRepo.On("GetByID", mock.Anything, encumbrance.ID).Return(encumbrance, nil)
		f.txRepo.On("Get", mock.Anything, mock.Anything, 0, 0).Return(collectionOf(), nil)
		f.txRepo.On("Get", mock.Anything, mock.Anything, 0, adapter.MaxQueryLimit).Return(collectionOf(), nil)
		f.txRepo.On("ProcessBatch", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, f.registry.Delete(ctx, entity.TransactionTypeEncumbrance, encumbrance.ID))
		f.txRepo.AssertCalled(t, "ProcessBatch", mock.Anything, &entity.Batch{IDsOfTransactionsToDelete: []uuid.UUID{encumbrance.ID}})
	})

	t.Run("unreleased encumbrance is refused", func(t *testing.T) {
		f := newFixture()
		encumbrance := newEncumbrance(entity.EncumbranceStatusUnreleased)
		f.txRepo.On("GetByID", mock.Anything, encumbrance.ID).Return(encumbrance, nil)

		err := f.registry.Delete(ctx, entity.TransactionTypeEncumbrance, encumbrance.ID)
		assert.ErrorIs(t, err, domainerror.ErrEncumbranceNotReleased)
		f.txRepo.AssertNotCalled(t, "ProcessBatch", mock.Anything, mock.Anything)
	})

	t.Run("released encumbrance awaited by a pending payment is refused", func(t *testing.T) {
		f := newFixture()
		encumbrance := newEncumbrance(entity.EncumbranceStatusReleased)
		f.txRepo.On("GetByID", mock.Anything, encumbrance.ID).Return(encumbrance, nil)
		f.txRepo.On("Get", mock.Anything, mock.Anything, 0, 0).
			Return(&entity.TransactionCollection{TotalRecords: 1}, nil)

		err := f.registry.Delete(ctx, entity.TransactionTypeEncumbrance, encumbrance.ID)
		assert.ErrorIs(t, err, domainerror.ErrConnectedToInvoice)
	})

	t.Run("missing encumbrance is reported as not found", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.txRepo.On("GetByID", mock.Anything, id).Return(nil, domainerror.ErrTransactionNotFound)

		err := f.registry.Delete(ctx, entity.TransactionTypeEncumbrance, id)
		requireCode(t, err, domainerror.ErrCodeTransactionNotFound)
	})

	t.Run("another transaction type is refused", func(t *testing.T) {
		f := newFixture()
		payment := newTransaction(entity.TransactionTypePayment, &fundID, nil, "30")
		f.txRepo.On("GetByID", mock.Anything, payment.ID).Return(payment, nil)

		err := f.registry.Delete(ctx, entity.TransactionTypeEncumbrance, payment.ID)
		assert.ErrorIs(t, err, domainerror.ErrInvalidTransactionType)
	})
}

func TestPaymentStrategy_Update(t *testing.T) {
	ctx := context.Background()
	fundID := uuid.New()

	t.Run("cancelling the invoice is accepted", func(t *testing.T) {
		f := newFixture()
		existing := newTransaction(entity.TransactionTypePayment, &fundID, nil, "40")
		f.txRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
		f.txRepo.On("Get", mock.Anything, mock.Anything, 0, adapter.MaxQueryLimit).Return(collectionOf(existing), nil)
		f.txRepo.On("ProcessBatch", mock.Anything, mock.Anything).Return(nil)

		update := *existing
		update.InvoiceCancelled = true

		require.NoError(t, f.registry.Update(ctx, entity.TransactionTypePayment, &update))
		f.txRepo.AssertCalled(t, "ProcessBatch", mock.Anything, mock.Anything)
	})

	t.Run("changing the amount is refused", func(t *testing.T) {
		f := newFixture()
		existing := newTransaction(entity.TransactionTypePayment, &fundID, nil, "40")
		f.txRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

		update := *existing
		update.InvoiceCancelled = true
		update.Amount = decimal.RequireFromString("41")

		err := f.registry.Update(ctx, entity.TransactionTypePayment, &update)
		assert.ErrorIs(t, err, domainerror.ErrInvalidPaymentUpdate)
	})

	t.Run("cancelling twice is refused", func(t *testing.T) {
		f := newFixture()
		existing := newTransaction(entity.TransactionTypePayment, &fundID, nil, "40")
		existing.InvoiceCancelled = true
		f.txRepo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

		update := *existing
		err := f.registry.Update(ctx, entity.TransactionTypePayment, &update)
		assert.ErrorIs(t, err, domainerror.ErrPaymentAlreadyCancelled)
	})
}

func TestRegistry_Dispatch(t *testing.T) {
	ctx := context.Background()
	fundID := uuid.New()

	t.Run("every supported type has a strategy", func(t *testing.T) {
		f := newFixture()
		for _, transactionType := range []entity.TransactionType{
			entity.TransactionTypeAllocation,
			entity.TransactionTypeTransfer,
			entity.TransactionTypeEncumbrance,
			entity.TransactionTypePendingPayment,
			entity.TransactionTypePayment,
			entity.TransactionTypeCredit,
		} {
			strategy, err := f.registry.StrategyFor(transactionType)
			require.NoError(t, err)
			assert.Equal(t, transactionType, strategy.Type())
		}
	})

	t.Run("rollover transfers have no strategy", func(t *testing.T) {
		f := newFixture()
		_, err := f.registry.StrategyFor(entity.TransactionTypeRolloverTransfer)
		assert.ErrorIs(t, err, domainerror.ErrInvalidTransactionType)
	})

	t.Run("credit updates are unsupported", func(t *testing.T) {
		f := newFixture()
		credit := newTransaction(entity.TransactionTypeCredit, nil, &fundID, "5")

		err := f.registry.Update(ctx, entity.TransactionTypeCredit, credit)
		assert.ErrorIs(t, err, domainerror.ErrUnsupportedOperation)
	})

	t.Run("payload type must match the endpoint", func(t *testing.T) {
		f := newFixture()
		credit := newTransaction(entity.TransactionTypeCredit, nil, &fundID, "5")

		_, err := f.registry.Create(ctx, entity.TransactionTypePayment, credit)
		assert.ErrorIs(t, err, domainerror.ErrInvalidTransactionType)
	})

	t.Run("zero payment is refused", func(t *testing.T) {
		f := newFixture()
		payment := newTransaction(entity.TransactionTypePayment, &fundID, nil, "0")

		_, err := f.registry.Create(ctx, entity.TransactionTypePayment, payment)
		assert.ErrorIs(t, err, domainerror.ErrInvalidTransactionAmount)
	})

	t.Run("created transaction is read back from the store", func(t *testing.T) {
		f := newFixture()
		encumbrance := newTransaction(entity.TransactionTypeEncumbrance, &fundID, nil, "12.5")
		f.txRepo.On("ProcessBatch", mock.Anything, mock.Anything).Return(nil)
		f.txRepo.On("GetByID", mock.Anything, encumbrance.ID).Return(encumbrance, nil)

		created, err := f.registry.Create(ctx, entity.TransactionTypeEncumbrance, encumbrance)
		require.NoError(t, err)
		assert.Equal(t, encumbrance.ID, created.ID)
	})
}

func TestGateway_GetByFundIDsChunksAndDeduplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	fundIDs := make([]uuid.UUID, 7)
	for i := range fundIDs {
		fundIDs[i] = uuid.New()
	}
	shared := newTransaction(entity.TransactionTypeTransfer, &fundIDs[0], &fundIDs[6], "1")
	f.txRepo.On("Get", mock.Anything, mock.Anything, 0, adapter.MaxQueryLimit).Return(collectionOf(shared), nil)

	transactions, err := f.gateway.GetByFundIDs(ctx, fundIDs, uuid.New(), entity.TransactionTypeTransfer)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
	f.txRepo.AssertNumberOfCalls(t, "Get", 2)
}

func TestGateway_GetByFundAndFiscalYear(t *testing.T) {
	f := newFixture()
	fundID, fiscalYearID := uuid.New(), uuid.New()
	want := fmt.Sprintf("(fromFundId==%s OR toFundId==%s) AND fiscalYearId==%s", fundID, fundID, fiscalYearID)
	f.txRepo.On("Get", mock.Anything, want, 0, adapter.MaxQueryLimit).
		Return(collectionOf(newTransaction(entity.TransactionTypeAllocation, nil, &fundID, "10")), nil)

	transactions, err := f.gateway.GetByFundAndFiscalYear(context.Background(), fundID, fiscalYearID)
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
	f.txRepo.AssertNumberOfCalls(t, "Get", 1)
}

func TestUpdateTransactionUseCase_IDMismatch(t *testing.T) {
	f := newFixture()
	uc := NewUpdateTransactionUseCase(f.registry)

	err := uc.Execute(context.Background(), UpdateTransactionInput{
		ID:           uuid.New(),
		ExpectedType: entity.TransactionTypeEncumbrance,
		Transaction:  &entity.Transaction{ID: uuid.New(), TransactionType: entity.TransactionTypeEncumbrance},
	})
	assert.ErrorIs(t, err, domainerror.ErrTransactionIDMismatch)
}
