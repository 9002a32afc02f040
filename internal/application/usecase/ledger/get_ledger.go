// Package ledger contains ledger-related use cases.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/application/cql"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
	"github.com/acquisitions-finance/backend/internal/domain/valueobject"
)

// GetLedgerInput represents the input for reading a ledger.
// Totals are computed only when FiscalYearID is set.
type GetLedgerInput struct {
	ID           uuid.UUID
	FiscalYearID *uuid.UUID
}

// GetLedgerUseCase reads a ledger with optional fiscal year totals.
type GetLedgerUseCase struct {
	ledgerRepo     adapter.LedgerRepository
	fundRepo       adapter.FundRepository
	fiscalYearRepo adapter.FiscalYearRepository
	aggregator     *Aggregator
}

// NewGetLedgerUseCase creates a new GetLedgerUseCase instance.
func NewGetLedgerUseCase(
	ledgerRepo adapter.LedgerRepository,
	fundRepo adapter.FundRepository,
	fiscalYearRepo adapter.FiscalYearRepository,
	aggregator *Aggregator,
) *GetLedgerUseCase {
	return &GetLedgerUseCase{
		ledgerRepo:     ledgerRepo,
		fundRepo:       fundRepo,
		fiscalYearRepo: fiscalYearRepo,
		aggregator:     aggregator,
	}
}

// Execute returns the ledger.
func (uc *GetLedgerUseCase) Execute(ctx context.Context, input GetLedgerInput) (*entity.Ledger, error) {
	ledger, err := uc.ledgerRepo.GetByID(ctx, input.ID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLedgerNotFound) {
			return nil, domainerror.NewLedgerError(
				domainerror.ErrCodeLedgerNotFound,
				"ledger not found",
				domainerror.ErrLedgerNotFound,
				domainerror.NewParameter("id", input.ID.String()),
			)
		}
		return nil, fmt.Errorf("failed to find ledger: %w", err)
	}

	if input.FiscalYearID == nil {
		return ledger, nil
	}

	cur, err := currencyOf(ctx, uc.fiscalYearRepo, *input.FiscalYearID)
	if err != nil {
		return nil, err
	}
	if err := withTotals(ctx, uc.fundRepo, uc.aggregator, ledger, *input.FiscalYearID, cur); err != nil {
		return nil, err
	}
	return ledger, nil
}

// currencyOf looks up the fiscal year. A missing fiscal year is the caller's mistake
// and is reported as a bad request rather than a missing resource.
func currencyOf(ctx context.Context, repo adapter.FiscalYearRepository, fiscalYearID uuid.UUID) (valueobject.Currency, error) {
	fiscalYear, err := repo.GetByID(ctx, fiscalYearID)
	if err != nil {
		if errors.Is(err, domainerror.ErrFiscalYearNotFound) {
			return valueobject.Currency{}, domainerror.NewLedgerError(
				domainerror.ErrCodeFiscalYearNotFound,
				"fiscal year not found",
				domainerror.ErrFiscalYearNotFound,
				domainerror.NewParameter("fiscalYearId", fiscalYearID.String()),
			)
		}
		return valueobject.Currency{}, fmt.Errorf("failed to find fiscal year: %w", err)
	}
	return valueobject.CurrencyOrDefault(fiscalYear.Currency), nil
}

func withTotals(
	ctx context.Context,
	fundRepo adapter.FundRepository,
	aggregator *Aggregator,
	ledger *entity.Ledger,
	fiscalYearID uuid.UUID,
	cur valueobject.Currency,
) error {
	funds, err := fundRepo.Get(ctx, cql.EqID("ledgerId", ledger.ID), 0, adapter.MaxQueryLimit)
	if err != nil {
		return fmt.Errorf("failed to fetch ledger funds: %w", err)
	}
	fundIDs := make([]uuid.UUID, len(funds))
	for i, fund := range funds {
		fundIDs[i] = fund.ID
	}

	totals, err := aggregator.Totals(ctx, fundIDs, fiscalYearID, cur)
	if err != nil {
		return err
	}
	ledger.LedgerTotals = totals
	return nil
}
