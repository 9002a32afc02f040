// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// MetadataColumns holds the audit columns shared by every table.
type MetadataColumns struct {
	CreatedDate     time.Time  `gorm:"not null;index"`
	CreatedByUserID *uuid.UUID `gorm:"type:uuid"`
	UpdatedDate     time.Time  `gorm:"not null"`
	UpdatedByUserID *uuid.UUID `gorm:"type:uuid"`
}

func metadataFromEntity(m entity.Metadata) MetadataColumns {
	return MetadataColumns{
		CreatedDate:     m.CreatedDate,
		CreatedByUserID: m.CreatedByUserID,
		UpdatedDate:     m.UpdatedDate,
		UpdatedByUserID: m.UpdatedByUserID,
	}
}

func (c MetadataColumns) toEntity() entity.Metadata {
	return entity.Metadata{
		CreatedDate:     c.CreatedDate,
		CreatedByUserID: c.CreatedByUserID,
		UpdatedDate:     c.UpdatedDate,
		UpdatedByUserID: c.UpdatedByUserID,
	}
}

// TransactionModel represents the transactions table in the database.
// The encumbrance and awaiting-payment sub-states are flattened into prefixed columns;
// a NULL encumbrance_status or awaiting_payment_release_encumbrance means the sub-state is absent.
type TransactionModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	TransactionType      string          `gorm:"type:varchar(20);not null;index"`
	Amount               decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Currency             string          `gorm:"type:varchar(3);not null"`
	FiscalYearID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	FromFundID           *uuid.UUID      `gorm:"type:uuid;index"`
	ToFundID             *uuid.UUID      `gorm:"type:uuid;index"`
	ExpenseClassID       *uuid.UUID      `gorm:"type:uuid;index"`
	Source               string          `gorm:"type:varchar(20)"`
	SourceInvoiceID      *uuid.UUID      `gorm:"type:uuid;index"`
	SourceInvoiceLineID  *uuid.UUID      `gorm:"type:uuid"`
	PaymentEncumbranceID *uuid.UUID      `gorm:"type:uuid;index"`
	InvoiceCancelled     bool            `gorm:"default:false"`
	Description          string          `gorm:"type:text"`
	Tags                 []string        `gorm:"serializer:json"`

	EncumbranceStatus                *string          `gorm:"type:varchar(20)"`
	EncumbranceInitialAmount         *decimal.Decimal `gorm:"type:decimal(19,4)"`
	EncumbranceAmountAwaitingPayment *decimal.Decimal `gorm:"type:decimal(19,4)"`
	EncumbranceAmountExpended        *decimal.Decimal `gorm:"type:decimal(19,4)"`
	EncumbranceOrderType             string           `gorm:"type:varchar(20)"`
	EncumbranceOrderStatus           string           `gorm:"type:varchar(20)"`
	EncumbranceSubscription          bool             `gorm:"default:false"`
	EncumbranceReEncumber            bool             `gorm:"default:false"`
	EncumbranceSourcePurchaseOrderID *uuid.UUID       `gorm:"type:uuid"`
	EncumbranceSourcePoLineID        *uuid.UUID       `gorm:"type:uuid;index"`

	AwaitingPaymentEncumbranceID      *uuid.UUID `gorm:"type:uuid;index"`
	AwaitingPaymentReleaseEncumbrance *bool

	MetadataColumns `gorm:"embedded"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	tx := &entity.Transaction{
		ID:                   m.ID,
		TransactionType:      entity.TransactionType(m.TransactionType),
		Amount:               m.Amount,
		Currency:             m.Currency,
		FiscalYearID:         m.FiscalYearID,
		FromFundID:           m.FromFundID,
		ToFundID:             m.ToFundID,
		ExpenseClassID:       m.ExpenseClassID,
		Source:               entity.TransactionSource(m.Source),
		SourceInvoiceID:      m.SourceInvoiceID,
		SourceInvoiceLineID:  m.SourceInvoiceLineID,
		PaymentEncumbranceID: m.PaymentEncumbranceID,
		InvoiceCancelled:     m.InvoiceCancelled,
		Description:          m.Description,
		Tags:                 m.Tags,
		Metadata:             m.MetadataColumns.toEntity(),
	}

	if m.EncumbranceStatus != nil {
		tx.Encumbrance = &entity.Encumbrance{
			Status:                  entity.EncumbranceStatus(*m.EncumbranceStatus),
			InitialAmountEncumbered: valueOrZero(m.EncumbranceInitialAmount),
			AmountAwaitingPayment:   valueOrZero(m.EncumbranceAmountAwaitingPayment),
			AmountExpended:          valueOrZero(m.EncumbranceAmountExpended),
			OrderType:               m.EncumbranceOrderType,
			OrderStatus:             m.EncumbranceOrderStatus,
			Subscription:            m.EncumbranceSubscription,
			ReEncumber:              m.EncumbranceReEncumber,
			SourcePurchaseOrderID:   m.EncumbranceSourcePurchaseOrderID,
			SourcePoLineID:          m.EncumbranceSourcePoLineID,
		}
	}

	if m.AwaitingPaymentReleaseEncumbrance != nil {
		tx.AwaitingPayment = &entity.AwaitingPayment{
			EncumbranceID:      m.AwaitingPaymentEncumbranceID,
			ReleaseEncumbrance: *m.AwaitingPaymentReleaseEncumbrance,
		}
	}

	return tx
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	m := &TransactionModel{
		ID:                   transaction.ID,
		TransactionType:      string(transaction.TransactionType),
		Amount:               transaction.Amount,
		Currency:             transaction.Currency,
		FiscalYearID:         transaction.FiscalYearID,
		FromFundID:           transaction.FromFundID,
		ToFundID:             transaction.ToFundID,
		ExpenseClassID:       transaction.ExpenseClassID,
		Source:               string(transaction.Source),
		SourceInvoiceID:      transaction.SourceInvoiceID,
		SourceInvoiceLineID:  transaction.SourceInvoiceLineID,
		PaymentEncumbranceID: transaction.PaymentEncumbranceID,
		InvoiceCancelled:     transaction.InvoiceCancelled,
		Description:          transaction.Description,
		Tags:                 transaction.Tags,
		MetadataColumns:      metadataFromEntity(transaction.Metadata),
	}

	if enc := transaction.Encumbrance; enc != nil {
		status := string(enc.Status)
		initial, awaiting, expended := enc.InitialAmountEncumbered, enc.AmountAwaitingPayment, enc.AmountExpended
		m.EncumbranceStatus = &status
		m.EncumbranceInitialAmount = &initial
		m.EncumbranceAmountAwaitingPayment = &awaiting
		m.EncumbranceAmountExpended = &expended
		m.EncumbranceOrderType = enc.OrderType
		m.EncumbranceOrderStatus = enc.OrderStatus
		m.EncumbranceSubscription = enc.Subscription
		m.EncumbranceReEncumber = enc.ReEncumber
		m.EncumbranceSourcePurchaseOrderID = enc.SourcePurchaseOrderID
		m.EncumbranceSourcePoLineID = enc.SourcePoLineID
	}

	if ap := transaction.AwaitingPayment; ap != nil {
		release := ap.ReleaseEncumbrance
		m.AwaitingPaymentEncumbranceID = ap.EncumbranceID
		m.AwaitingPaymentReleaseEncumbrance = &release
	}

	return m
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
