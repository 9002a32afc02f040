// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerStatus represents the lifecycle status of a ledger.
type LedgerStatus string

const (
	LedgerStatusActive   LedgerStatus = "Active"
	LedgerStatusInactive LedgerStatus = "Inactive"
	LedgerStatusFrozen   LedgerStatus = "Frozen"
)

// LedgerTotals is the aggregate of every fund of a ledger for one fiscal year.
type LedgerTotals struct {
	InitialAllocation decimal.Decimal
	AllocationTo      decimal.Decimal
	AllocationFrom    decimal.Decimal
	Allocated         decimal.Decimal
	NetTransfers      decimal.Decimal
	TotalFunding      decimal.Decimal
	Encumbered        decimal.Decimal
	AwaitingPayment   decimal.Decimal
	Expenditures      decimal.Decimal
	Credits           decimal.Decimal
	Unavailable       decimal.Decimal
	Available         decimal.Decimal
	CashBalance       decimal.Decimal
	OverEncumbrance   decimal.Decimal
	OverExpended      decimal.Decimal
}

// Ledger is a collection of funds with optional derived totals.
type Ledger struct {
	ID                   uuid.UUID
	Code                 string
	Name                 string
	Description          string
	LedgerStatus         LedgerStatus
	FiscalYearOneID      uuid.UUID
	Currency             string
	RestrictEncumbrance  bool
	RestrictExpenditures bool
	AcqUnitIDs           []uuid.UUID
	Metadata             Metadata

	LedgerTotals
}

// LedgerCollection is one page of a ledger query.
type LedgerCollection struct {
	Ledgers      []*Ledger
	TotalRecords int
}
