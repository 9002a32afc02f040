// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/application/cql"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
)

// AllocationAllowed reports whether money may move from one fund to the other
// according to both funds' allow-lists.
func AllocationAllowed(from, to *entity.Fund) bool {
	return from.AllowsAllocationTo(to.ID) && to.AllowsAllocationFrom(from.ID)
}

// RestrictionValidator checks the mutual allow-lists of the funds on both sides of
// an allocation or transfer.
type RestrictionValidator struct {
	fundRepo  adapter.FundRepository
	chunkSize int
}

// NewRestrictionValidator creates a new RestrictionValidator.
func NewRestrictionValidator(fundRepo adapter.FundRepository, chunkSize int) *RestrictionValidator {
	if chunkSize <= 0 {
		chunkSize = DefaultIDListChunkSize
	}
	return &RestrictionValidator{
		fundRepo:  fundRepo,
		chunkSize: chunkSize,
	}
}

// Validate applies the allocation restriction rules to a single transaction.
//
// An allocation with exactly one fund moves money in or out of the ledger system and
// is not checked. Transfers always need both funds.
func (v *RestrictionValidator) Validate(ctx context.Context, tx *entity.Transaction) error {
	if tx.TransactionType == entity.TransactionTypeAllocation && tx.HasExactlyOneFund() {
		return nil
	}
	if !tx.HasBothFunds() {
		return missingFundIDError(tx)
	}

	funds, err := v.FundsByID(ctx, []uuid.UUID{*tx.FromFundID, *tx.ToFundID})
	if err != nil {
		return err
	}
	from, to, err := fundPair(funds, tx)
	if err != nil {
		return err
	}
	if !AllocationAllowed(from, to) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeFundAllocationMismatch,
			"the funds do not allow allocations between each other",
			domainerror.ErrFundAllocationMismatch,
			domainerror.NewParameter("fromFundId", from.ID.String()),
			domainerror.NewParameter("toFundId", to.ID.String()),
		)
	}
	return nil
}

// FundsByID fetches funds with one query per chunk of ids.
func (v *RestrictionValidator) FundsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Fund, error) {
	chunks := cql.ChunkIDs(cql.DistinctIDs(ids), v.chunkSize)
	results := make([][]*entity.Fund, len(chunks))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		group.Go(func() error {
			funds, err := v.fundRepo.Get(groupCtx, cql.InIDs("id", chunk), 0, len(chunk))
			if err != nil {
				return fmt.Errorf("failed to fetch funds: %w", err)
			}
			results[i] = funds
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*entity.Fund, len(ids))
	for _, funds := range results {
		for _, fund := range funds {
			byID[fund.ID] = fund
		}
	}
	return byID, nil
}

func fundPair(funds map[uuid.UUID]*entity.Fund, tx *entity.Transaction) (*entity.Fund, *entity.Fund, error) {
	from, ok := funds[*tx.FromFundID]
	if !ok {
		return nil, nil, fundNotFoundError(*tx.FromFundID)
	}
	to, ok := funds[*tx.ToFundID]
	if !ok {
		return nil, nil, fundNotFoundError(*tx.ToFundID)
	}
	return from, to, nil
}

func fundNotFoundError(id uuid.UUID) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeFundNotFound,
		"fund not found",
		domainerror.ErrFundNotFound,
		domainerror.NewParameter("fundId", id.String()),
	)
}

func missingFundIDError(tx *entity.Transaction) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeMissingFundID,
		"both fromFundId and toFundId are required",
		domainerror.ErrMissingFundID,
		domainerror.NewParameter("transactionType", string(tx.TransactionType)),
	)
}
