package model

import (
	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// LedgerModel represents the ledgers table in the database.
type LedgerModel struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Code                 string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name                 string      `gorm:"type:varchar(255);not null"`
	Description          string      `gorm:"type:text"`
	LedgerStatus         string      `gorm:"type:varchar(20);not null"`
	FiscalYearOneID      uuid.UUID   `gorm:"type:uuid;not null"`
	Currency             string      `gorm:"type:varchar(3)"`
	RestrictEncumbrance  bool        `gorm:"default:true"`
	RestrictExpenditures bool        `gorm:"default:true"`
	AcqUnitIDs           []uuid.UUID `gorm:"serializer:json"`

	MetadataColumns `gorm:"embedded"`
}

// TableName returns the table name for the LedgerModel.
func (LedgerModel) TableName() string {
	return "ledgers"
}

// ToEntity converts a LedgerModel to a domain Ledger entity.
func (m *LedgerModel) ToEntity() *entity.Ledger {
	return &entity.Ledger{
		ID:                   m.ID,
		Code:                 m.Code,
		Name:                 m.Name,
		Description:          m.Description,
		LedgerStatus:         entity.LedgerStatus(m.LedgerStatus),
		FiscalYearOneID:      m.FiscalYearOneID,
		Currency:             m.Currency,
		RestrictEncumbrance:  m.RestrictEncumbrance,
		RestrictExpenditures: m.RestrictExpenditures,
		AcqUnitIDs:           m.AcqUnitIDs,
		Metadata:             m.MetadataColumns.toEntity(),
	}
}

// LedgerFromEntity creates a LedgerModel from a domain Ledger entity.
func LedgerFromEntity(ledger *entity.Ledger) *LedgerModel {
	return &LedgerModel{
		ID:                   ledger.ID,
		Code:                 ledger.Code,
		Name:                 ledger.Name,
		Description:          ledger.Description,
		LedgerStatus:         string(ledger.LedgerStatus),
		FiscalYearOneID:      ledger.FiscalYearOneID,
		Currency:             ledger.Currency,
		RestrictEncumbrance:  ledger.RestrictEncumbrance,
		RestrictExpenditures: ledger.RestrictExpenditures,
		AcqUnitIDs:           ledger.AcqUnitIDs,
		MetadataColumns:      metadataFromEntity(ledger.Metadata),
	}
}

// FundModel represents the funds table in the database.
type FundModel struct {
	ID                uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Code              string      `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name              string      `gorm:"type:varchar(255);not null"`
	FundStatus        string      `gorm:"type:varchar(20);not null"`
	LedgerID          uuid.UUID   `gorm:"type:uuid;not null;index"`
	FundTypeID        *uuid.UUID  `gorm:"type:uuid"`
	ExternalAccountNo string      `gorm:"type:varchar(100)"`
	AllocatedToIDs    []uuid.UUID `gorm:"serializer:json"`
	AllocatedFromIDs  []uuid.UUID `gorm:"serializer:json"`
}

// TableName returns the table name for the FundModel.
func (FundModel) TableName() string {
	return "funds"
}

// ToEntity converts a FundModel to a domain Fund entity.
func (m *FundModel) ToEntity() *entity.Fund {
	return &entity.Fund{
		ID:                m.ID,
		Code:              m.Code,
		Name:              m.Name,
		FundStatus:        entity.FundStatus(m.FundStatus),
		LedgerID:          m.LedgerID,
		FundTypeID:        m.FundTypeID,
		ExternalAccountNo: m.ExternalAccountNo,
		AllocatedToIDs:    m.AllocatedToIDs,
		AllocatedFromIDs:  m.AllocatedFromIDs,
	}
}

// FundFromEntity creates a FundModel from a domain Fund entity.
func FundFromEntity(fund *entity.Fund) *FundModel {
	return &FundModel{
		ID:                fund.ID,
		Code:              fund.Code,
		Name:              fund.Name,
		FundStatus:        string(fund.FundStatus),
		LedgerID:          fund.LedgerID,
		FundTypeID:        fund.FundTypeID,
		ExternalAccountNo: fund.ExternalAccountNo,
		AllocatedToIDs:    fund.AllocatedToIDs,
		AllocatedFromIDs:  fund.AllocatedFromIDs,
	}
}

// FiscalYearModel represents the fiscal_years table in the database.
type FiscalYearModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Code        string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Series      string    `gorm:"type:varchar(20)"`
	Currency    string    `gorm:"type:varchar(3);not null"`
	Description string    `gorm:"type:text"`
}

// TableName returns the table name for the FiscalYearModel.
func (FiscalYearModel) TableName() string {
	return "fiscal_years"
}

// ToEntity converts a FiscalYearModel to a domain FiscalYear entity.
func (m *FiscalYearModel) ToEntity() *entity.FiscalYear {
	return &entity.FiscalYear{
		ID:          m.ID,
		Name:        m.Name,
		Code:        m.Code,
		Series:      m.Series,
		Currency:    m.Currency,
		Description: m.Description,
	}
}

// FiscalYearFromEntity creates a FiscalYearModel from a domain FiscalYear entity.
func FiscalYearFromEntity(fiscalYear *entity.FiscalYear) *FiscalYearModel {
	return &FiscalYearModel{
		ID:          fiscalYear.ID,
		Name:        fiscalYear.Name,
		Code:        fiscalYear.Code,
		Series:      fiscalYear.Series,
		Currency:    fiscalYear.Currency,
		Description: fiscalYear.Description,
	}
}
