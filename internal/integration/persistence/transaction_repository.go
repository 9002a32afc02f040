// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
	"github.com/acquisitions-finance/backend/internal/integration/persistence/model"
)

var transactionFields = fieldMap{
	columns: map[string]column{
		"id":                                {"id", kindUUID},
		"transactionType":                   {"transaction_type", kindString},
		"amount":                            {"amount", kindDecimal},
		"currency":                          {"currency", kindString},
		"fiscalYearId":                      {"fiscal_year_id", kindUUID},
		"fromFundId":                        {"from_fund_id", kindUUID},
		"toFundId":                          {"to_fund_id", kindUUID},
		"expenseClassId":                    {"expense_class_id", kindUUID},
		"source":                            {"source", kindString},
		"sourceInvoiceId":                   {"source_invoice_id", kindUUID},
		"sourceInvoiceLineId":               {"source_invoice_line_id", kindUUID},
		"paymentEncumbranceId":              {"payment_encumbrance_id", kindUUID},
		"invoiceCancelled":                  {"invoice_cancelled", kindBool},
		"description":                       {"description", kindString},
		"encumbrance.status":                {"encumbrance_status", kindString},
		"encumbrance.sourcePurchaseOrderId": {"encumbrance_source_purchase_order_id", kindUUID},
		"encumbrance.sourcePoLineId":        {"encumbrance_source_po_line_id", kindUUID},
		"awaitingPayment.encumbranceId":     {"awaiting_payment_encumbrance_id", kindUUID},
		"metadata.createdDate":              {"created_date", kindTime},
		"metadata.updatedDate":              {"updated_date", kindTime},
	},
	defaultOrder: "created_date, id",
}

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Get retrieves one page of transactions matching the query.
func (r *transactionRepository) Get(ctx context.Context, query string, offset, limit int) (*entity.TransactionCollection, error) {
	rows, total, err := page[model.TransactionModel](ctx, r.db, transactionFields, query, offset, limit)
	if err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(rows))
	for i := range rows {
		transactions[i] = rows[i].ToEntity()
	}
	return &entity.TransactionCollection{Transactions: transactions, TotalRecords: total}, nil
}

// GetByID retrieves a transaction by its ID.
func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// Create stores a new transaction and returns it as stored.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) (*entity.Transaction, error) {
	transactionModel := newTransactionModel(transaction, time.Now().UTC())
	if err := r.db.WithContext(ctx).Create(transactionModel).Error; err != nil {
		return nil, err
	}
	return transactionModel.ToEntity(), nil
}

// Update replaces an existing transaction.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	return updateTransaction(r.db.WithContext(ctx), transaction, time.Now().UTC())
}

// Delete removes a transaction.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteTransaction(r.db.WithContext(ctx), id)
}

// ProcessBatch applies creates, updates and deletes in one database transaction.
// Nothing is written unless every operation succeeds.
func (r *transactionRepository) ProcessBatch(ctx context.Context, batch *entity.Batch) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, transaction := range batch.TransactionsToCreate {
			if err := tx.Create(newTransactionModel(transaction, batchCreatedDate(now, i))).Error; err != nil {
				return fmt.Errorf("failed to create transaction %s: %w", transaction.ID, err)
			}
		}
		for _, transaction := range batch.TransactionsToUpdate {
			if err := updateTransaction(tx, transaction, now); err != nil {
				return fmt.Errorf("failed to update transaction %s: %w", transaction.ID, err)
			}
		}
		for _, id := range batch.IDsOfTransactionsToDelete {
			if err := deleteTransaction(tx, id); err != nil {
				return fmt.Errorf("failed to delete transaction %s: %w", id, err)
			}
		}
		return nil
	})
}

// batchCreatedDate spaces the creates of one batch a microsecond apart so their
// creation order survives storage precision.
func batchCreatedDate(now time.Time, position int) time.Time {
	return now.Add(time.Duration(position) * time.Microsecond)
}

// newTransactionModel always stamps the creation date on the server; the initial
// allocation of a fund is picked by creation order.
func newTransactionModel(transaction *entity.Transaction, now time.Time) *model.TransactionModel {
	transactionModel := model.TransactionFromEntity(transaction)
	if transactionModel.ID == uuid.Nil {
		transactionModel.ID = uuid.New()
	}
	transactionModel.CreatedDate = now
	transactionModel.UpdatedDate = now
	return transactionModel
}

func updateTransaction(db *gorm.DB, transaction *entity.Transaction, now time.Time) error {
	transactionModel := model.TransactionFromEntity(transaction)
	transactionModel.UpdatedDate = now

	result := db.Model(&model.TransactionModel{}).
		Where("id = ?", transaction.ID).
		Select("*").
		Omit("id", "created_date", "created_by_user_id").
		Updates(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

func deleteTransaction(db *gorm.DB, id uuid.UUID) error {
	result := db.Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}
