// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/application/cql"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
)

const (
	// DefaultFundIDsChunkSize bounds fund ids per transaction query.
	DefaultFundIDsChunkSize = 5
	// DefaultIDListChunkSize bounds ids per generic id-list query.
	DefaultIDListChunkSize = 15
)

// Gateway wraps the transaction store with the chunked queries the use cases need.
type Gateway struct {
	repo             adapter.TransactionRepository
	fundIDsChunkSize int
	idListChunkSize  int
}

// NewGateway creates a new Gateway. Non-positive chunk sizes fall back to the defaults.
func NewGateway(repo adapter.TransactionRepository, fundIDsChunkSize, idListChunkSize int) *Gateway {
	if fundIDsChunkSize <= 0 {
		fundIDsChunkSize = DefaultFundIDsChunkSize
	}
	if idListChunkSize <= 0 {
		idListChunkSize = DefaultIDListChunkSize
	}
	return &Gateway{
		repo:             repo,
		fundIDsChunkSize: fundIDsChunkSize,
		idListChunkSize:  idListChunkSize,
	}
}

// Get returns one page of transactions.
func (g *Gateway) Get(ctx context.Context, query string, offset, limit int) (*entity.TransactionCollection, error) {
	return g.repo.Get(ctx, query, offset, limit)
}

// GetByQuery returns every transaction matching the query.
func (g *Gateway) GetByQuery(ctx context.Context, query string) ([]*entity.Transaction, error) {
	collection, err := g.repo.Get(ctx, query, 0, adapter.MaxQueryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return collection.Transactions, nil
}

// GetByID retrieves one transaction.
func (g *Gateway) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	return g.repo.GetByID(ctx, id)
}

// ProcessBatch forwards a validated batch to the store.
func (g *Gateway) ProcessBatch(ctx context.Context, batch *entity.Batch) error {
	return g.repo.ProcessBatch(ctx, batch)
}

// GetByFundAndFiscalYear returns every transaction touching the fund in the fiscal year.
func (g *Gateway) GetByFundAndFiscalYear(ctx context.Context, fundID, fiscalYearID uuid.UUID) ([]*entity.Transaction, error) {
	return g.GetByFundIDs(ctx, []uuid.UUID{fundID}, fiscalYearID)
}

// GetByFundIDs returns the transactions touching any of the funds in the fiscal year,
// optionally restricted to some types. Fund ids are queried in chunks.
func (g *Gateway) GetByFundIDs(ctx context.Context, fundIDs []uuid.UUID, fiscalYearID uuid.UUID, types ...entity.TransactionType) ([]*entity.Transaction, error) {
	return g.getChunked(ctx, fundIDs, g.fundIDsChunkSize, func(chunk []uuid.UUID) string {
		return cql.And(
			cql.Or(cql.InIDs("fromFundId", chunk), cql.InIDs("toFundId", chunk)),
			cql.EqID("fiscalYearId", fiscalYearID),
			typesClause(types),
		)
	})
}

// GetToFundTransactions returns transactions whose destination is one of the funds.
func (g *Gateway) GetToFundTransactions(ctx context.Context, fundIDs []uuid.UUID, fiscalYearID uuid.UUID, types ...entity.TransactionType) ([]*entity.Transaction, error) {
	return g.getByFundField(ctx, "toFundId", fundIDs, fiscalYearID, types)
}

// GetFromFundTransactions returns transactions whose source is one of the funds.
func (g *Gateway) GetFromFundTransactions(ctx context.Context, fundIDs []uuid.UUID, fiscalYearID uuid.UUID, types ...entity.TransactionType) ([]*entity.Transaction, error) {
	return g.getByFundField(ctx, "fromFundId", fundIDs, fiscalYearID, types)
}

// GetByExpenseClassIDs returns the transactions of the fund and fiscal year classified
// under any of the expense classes.
func (g *Gateway) GetByExpenseClassIDs(ctx context.Context, expenseClassIDs []uuid.UUID, fundID, fiscalYearID uuid.UUID) ([]*entity.Transaction, error) {
	return g.getChunked(ctx, expenseClassIDs, g.idListChunkSize, func(chunk []uuid.UUID) string {
		return cql.And(
			cql.InIDs("expenseClassId", chunk),
			cql.Or(cql.EqID("fromFundId", fundID), cql.EqID("toFundId", fundID)),
			cql.EqID("fiscalYearId", fiscalYearID),
		)
	})
}

// GetByIDs returns the transactions with the given ids.
func (g *Gateway) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Transaction, error) {
	return g.getChunked(ctx, ids, g.idListChunkSize, func(chunk []uuid.UUID) string {
		return cql.InIDs("id", chunk)
	})
}

// GetPendingPaymentsByEncumbranceIDs returns pending payments awaiting any of the encumbrances.
func (g *Gateway) GetPendingPaymentsByEncumbranceIDs(ctx context.Context, encumbranceIDs []uuid.UUID) ([]*entity.Transaction, error) {
	return g.getChunked(ctx, encumbranceIDs, g.idListChunkSize, func(chunk []uuid.UUID) string {
		return cql.InIDs("awaitingPayment.encumbranceId", chunk)
	})
}

// HasPendingPaymentsFor reports whether any pending payment awaits the encumbrance.
func (g *Gateway) HasPendingPaymentsFor(ctx context.Context, encumbranceID uuid.UUID) (bool, error) {
	collection, err := g.repo.Get(ctx, cql.EqID("awaitingPayment.encumbranceId", encumbranceID), 0, 0)
	if err != nil {
		return false, fmt.Errorf("failed to check pending payments: %w", err)
	}
	return collection.TotalRecords > 0, nil
}

func (g *Gateway) getByFundField(ctx context.Context, field string, fundIDs []uuid.UUID, fiscalYearID uuid.UUID, types []entity.TransactionType) ([]*entity.Transaction, error) {
	return g.getChunked(ctx, fundIDs, g.fundIDsChunkSize, func(chunk []uuid.UUID) string {
		return cql.And(
			cql.InIDs(field, chunk),
			cql.EqID("fiscalYearId", fiscalYearID),
			typesClause(types),
		)
	})
}

// getChunked issues one query per chunk concurrently and merges the results,
// dropping records returned by more than one chunk.
func (g *Gateway) getChunked(ctx context.Context, ids []uuid.UUID, size int, queryFor func([]uuid.UUID) string) ([]*entity.Transaction, error) {
	chunks := cql.ChunkIDs(cql.DistinctIDs(ids), size)
	if len(chunks) == 0 {
		return []*entity.Transaction{}, nil
	}

	results := make([][]*entity.Transaction, len(chunks))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		group.Go(func() error {
			transactions, err := g.GetByQuery(groupCtx, queryFor(chunk))
			if err != nil {
				return err
			}
			results[i] = transactions
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	slog.Debug("Fetched transactions in chunks", "chunks", len(chunks), "ids", len(ids))
	return mergeDistinct(results), nil
}

func mergeDistinct(groups [][]*entity.Transaction) []*entity.Transaction {
	seen := make(map[uuid.UUID]struct{})
	merged := make([]*entity.Transaction, 0)
	for _, group := range groups {
		for _, tx := range group {
			if _, ok := seen[tx.ID]; ok {
				continue
			}
			seen[tx.ID] = struct{}{}
			merged = append(merged, tx)
		}
	}
	return merged
}

func typesClause(types []entity.TransactionType) string {
	if len(types) == 0 {
		return ""
	}
	values := make([]string, len(types))
	for i, t := range types {
		values[i] = string(t)
	}
	return cql.In("transactionType", values)
}
