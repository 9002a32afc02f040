package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// EncumbranceDTO is the wire form of an encumbrance's sub-state.
type EncumbranceDTO struct {
	Status                  string          `json:"status"`
	InitialAmountEncumbered decimal.Decimal `json:"initialAmountEncumbered"`
	AmountAwaitingPayment   decimal.Decimal `json:"amountAwaitingPayment"`
	AmountExpended          decimal.Decimal `json:"amountExpended"`
	OrderType               string          `json:"orderType,omitempty"`
	OrderStatus             string          `json:"orderStatus,omitempty"`
	Subscription            bool            `json:"subscription"`
	ReEncumber              bool            `json:"reEncumber"`
	SourcePurchaseOrderID   *uuid.UUID      `json:"sourcePurchaseOrderId,omitempty"`
	SourcePoLineID          *uuid.UUID      `json:"sourcePoLineId,omitempty"`
}

// AwaitingPaymentDTO links a pending payment to an encumbrance.
type AwaitingPaymentDTO struct {
	EncumbranceID      *uuid.UUID `json:"encumbranceId,omitempty"`
	ReleaseEncumbrance bool       `json:"releaseEncumbrance"`
}

// TransactionDTO is the wire form of a transaction, used for requests and responses.
type TransactionDTO struct {
	ID                   *uuid.UUID          `json:"id,omitempty"`
	TransactionType      string              `json:"transactionType" binding:"required"`
	Amount               decimal.Decimal     `json:"amount"`
	Currency             string              `json:"currency" binding:"required"`
	FiscalYearID         uuid.UUID           `json:"fiscalYearId" binding:"required"`
	FromFundID           *uuid.UUID          `json:"fromFundId,omitempty"`
	ToFundID             *uuid.UUID          `json:"toFundId,omitempty"`
	ExpenseClassID       *uuid.UUID          `json:"expenseClassId,omitempty"`
	Source               string              `json:"source" binding:"required"`
	SourceInvoiceID      *uuid.UUID          `json:"sourceInvoiceId,omitempty"`
	SourceInvoiceLineID  *uuid.UUID          `json:"sourceInvoiceLineId,omitempty"`
	PaymentEncumbranceID *uuid.UUID          `json:"paymentEncumbranceId,omitempty"`
	InvoiceCancelled     bool                `json:"invoiceCancelled,omitempty"`
	Description          string              `json:"description,omitempty"`
	Tags                 *TagsDTO            `json:"tags,omitempty"`
	Encumbrance          *EncumbranceDTO     `json:"encumbrance,omitempty"`
	AwaitingPayment      *AwaitingPaymentDTO `json:"awaitingPayment,omitempty"`
	Metadata             *MetadataDTO        `json:"metadata,omitempty"`
}

// TransactionCollectionResponse is one page of transactions.
type TransactionCollectionResponse struct {
	Transactions []TransactionDTO `json:"transactions"`
	TotalRecords int              `json:"totalRecords"`
}

// BatchRequest is the all-or-nothing batch envelope.
type BatchRequest struct {
	TransactionsToCreate      []TransactionDTO `json:"transactionsToCreate" binding:"dive"`
	TransactionsToUpdate      []TransactionDTO `json:"transactionsToUpdate" binding:"dive"`
	IDsOfTransactionsToDelete []uuid.UUID      `json:"idsOfTransactionsToDelete"`
}

// ToEntity converts the DTO to a domain Transaction.
func (t *TransactionDTO) ToEntity() *entity.Transaction {
	tx := &entity.Transaction{
		TransactionType:      entity.TransactionType(t.TransactionType),
		Amount:               t.Amount,
		Currency:             t.Currency,
		FiscalYearID:         t.FiscalYearID,
		FromFundID:           t.FromFundID,
		ToFundID:             t.ToFundID,
		ExpenseClassID:       t.ExpenseClassID,
		Source:               entity.TransactionSource(t.Source),
		SourceInvoiceID:      t.SourceInvoiceID,
		SourceInvoiceLineID:  t.SourceInvoiceLineID,
		PaymentEncumbranceID: t.PaymentEncumbranceID,
		InvoiceCancelled:     t.InvoiceCancelled,
		Description:          t.Description,
		Tags:                 t.Tags.list(),
		Metadata:             t.Metadata.toEntity(),
	}
	if t.ID != nil {
		tx.ID = *t.ID
	}
	if e := t.Encumbrance; e != nil {
		tx.Encumbrance = &entity.Encumbrance{
			Status:                  entity.EncumbranceStatus(e.Status),
			InitialAmountEncumbered: e.InitialAmountEncumbered,
			AmountAwaitingPayment:   e.AmountAwaitingPayment,
			AmountExpended:          e.AmountExpended,
			OrderType:               e.OrderType,
			OrderStatus:             e.OrderStatus,
			Subscription:            e.Subscription,
			ReEncumber:              e.ReEncumber,
			SourcePurchaseOrderID:   e.SourcePurchaseOrderID,
			SourcePoLineID:          e.SourcePoLineID,
		}
	}
	if a := t.AwaitingPayment; a != nil {
		tx.AwaitingPayment = &entity.AwaitingPayment{
			EncumbranceID:      a.EncumbranceID,
			ReleaseEncumbrance: a.ReleaseEncumbrance,
		}
	}
	return tx
}

// ToTransactionDTO converts a domain Transaction to its wire form.
func ToTransactionDTO(tx *entity.Transaction) TransactionDTO {
	id := tx.ID
	response := TransactionDTO{
		ID:                   &id,
		TransactionType:      string(tx.TransactionType),
		Amount:               tx.Amount,
		Currency:             tx.Currency,
		FiscalYearID:         tx.FiscalYearID,
		FromFundID:           tx.FromFundID,
		ToFundID:             tx.ToFundID,
		ExpenseClassID:       tx.ExpenseClassID,
		Source:               string(tx.Source),
		SourceInvoiceID:      tx.SourceInvoiceID,
		SourceInvoiceLineID:  tx.SourceInvoiceLineID,
		PaymentEncumbranceID: tx.PaymentEncumbranceID,
		InvoiceCancelled:     tx.InvoiceCancelled,
		Description:          tx.Description,
		Tags:                 toTagsDTO(tx.Tags),
		Metadata:             toMetadataDTO(tx.Metadata),
	}
	if e := tx.Encumbrance; e != nil {
		response.Encumbrance = &EncumbranceDTO{
			Status:                  string(e.Status),
			InitialAmountEncumbered: e.InitialAmountEncumbered,
			AmountAwaitingPayment:   e.AmountAwaitingPayment,
			AmountExpended:          e.AmountExpended,
			OrderType:               e.OrderType,
			OrderStatus:             e.OrderStatus,
			Subscription:            e.Subscription,
			ReEncumber:              e.ReEncumber,
			SourcePurchaseOrderID:   e.SourcePurchaseOrderID,
			SourcePoLineID:          e.SourcePoLineID,
		}
	}
	if a := tx.AwaitingPayment; a != nil {
		response.AwaitingPayment = &AwaitingPaymentDTO{
			EncumbranceID:      a.EncumbranceID,
			ReleaseEncumbrance: a.ReleaseEncumbrance,
		}
	}
	return response
}

// ToTransactionCollectionResponse converts one page of transactions.
func ToTransactionCollectionResponse(transactions []*entity.Transaction, total int) TransactionCollectionResponse {
	items := make([]TransactionDTO, len(transactions))
	for i, tx := range transactions {
		items[i] = ToTransactionDTO(tx)
	}
	return TransactionCollectionResponse{Transactions: items, TotalRecords: total}
}

// ToEntity converts the envelope to a domain Batch.
func (b *BatchRequest) ToEntity() *entity.Batch {
	batch := &entity.Batch{IDsOfTransactionsToDelete: b.IDsOfTransactionsToDelete}
	for i := range b.TransactionsToCreate {
		batch.TransactionsToCreate = append(batch.TransactionsToCreate, b.TransactionsToCreate[i].ToEntity())
	}
	for i := range b.TransactionsToUpdate {
		batch.TransactionsToUpdate = append(batch.TransactionsToUpdate, b.TransactionsToUpdate[i].ToEntity())
	}
	return batch
}
