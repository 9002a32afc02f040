// Package entity defines the core business entities for the domain layer.
package entity

import (
	"github.com/google/uuid"
)

// FundStatus represents the lifecycle status of a fund.
type FundStatus string

const (
	FundStatusActive   FundStatus = "Active"
	FundStatusFrozen   FundStatus = "Frozen"
	FundStatusInactive FundStatus = "Inactive"
)

// Fund is a spendable money pool belonging to a ledger.
// An empty allow-list means the fund is unrestricted on that side.
type Fund struct {
	ID                uuid.UUID
	Code              string
	Name              string
	FundStatus        FundStatus
	LedgerID          uuid.UUID
	FundTypeID        *uuid.UUID
	ExternalAccountNo string
	AllocatedToIDs    []uuid.UUID
	AllocatedFromIDs  []uuid.UUID
}

// AllowsAllocationTo reports whether money may move from this fund to the given one.
func (f *Fund) AllowsAllocationTo(fundID uuid.UUID) bool {
	return len(f.AllocatedToIDs) == 0 || containsID(f.AllocatedToIDs, fundID)
}

// AllowsAllocationFrom reports whether money may arrive at this fund from the given one.
func (f *Fund) AllowsAllocationFrom(fundID uuid.UUID) bool {
	return len(f.AllocatedFromIDs) == 0 || containsID(f.AllocatedFromIDs, fundID)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// FiscalYear is the period budgets and transactions belong to.
type FiscalYear struct {
	ID          uuid.UUID
	Name        string
	Code        string
	Series      string
	Currency    string
	Description string
}
