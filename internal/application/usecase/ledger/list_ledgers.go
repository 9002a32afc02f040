// Package ledger contains ledger-related use cases.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/application/cql"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

// maxConcurrentAggregations bounds how many ledgers are aggregated at once.
const maxConcurrentAggregations = 4

// ListLedgersInput represents the input for listing ledgers.
type ListLedgersInput struct {
	Query        string
	Offset       int
	Limit        int
	FiscalYearID *uuid.UUID
}

// ListLedgersOutput represents the output of listing ledgers.
type ListLedgersOutput struct {
	Ledgers      []*entity.Ledger
	TotalRecords int
}

// ListLedgersUseCase lists ledgers with optional fiscal year totals.
type ListLedgersUseCase struct {
	ledgerRepo     adapter.LedgerRepository
	fundRepo       adapter.FundRepository
	fiscalYearRepo adapter.FiscalYearRepository
	aggregator     *Aggregator
}

// NewListLedgersUseCase creates a new ListLedgersUseCase instance.
func NewListLedgersUseCase(
	ledgerRepo adapter.LedgerRepository,
	fundRepo adapter.FundRepository,
	fiscalYearRepo adapter.FiscalYearRepository,
	aggregator *Aggregator,
) *ListLedgersUseCase {
	return &ListLedgersUseCase{
		ledgerRepo:     ledgerRepo,
		fundRepo:       fundRepo,
		fiscalYearRepo: fiscalYearRepo,
		aggregator:     aggregator,
	}
}

// Execute lists one page of ledgers.
func (uc *ListLedgersUseCase) Execute(ctx context.Context, input ListLedgersInput) (*ListLedgersOutput, error) {
	if input.Query == "" {
		input.Query = cql.AllRecords
	}
	if input.Limit <= 0 {
		input.Limit = 10
	}

	collection, err := uc.ledgerRepo.Get(ctx, input.Query, input.Offset, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}

	output := &ListLedgersOutput{
		Ledgers:      collection.Ledgers,
		TotalRecords: collection.TotalRecords,
	}
	if input.FiscalYearID == nil || len(collection.Ledgers) == 0 {
		return output, nil
	}

	cur, err := currencyOf(ctx, uc.fiscalYearRepo, *input.FiscalYearID)
	if err != nil {
		return nil, err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentAggregations)
	for _, ledger := range collection.Ledgers {
		ledger := ledger
		group.Go(func() error {
			return withTotals(groupCtx, uc.fundRepo, uc.aggregator, ledger, *input.FiscalYearID, cur)
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return output, nil
}
