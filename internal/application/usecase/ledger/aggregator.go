// Package ledger contains ledger-related use cases.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/application/cql"
	"github.com/acquisitions-finance/backend/internal/application/usecase/budget"
	"github.com/acquisitions-finance/backend/internal/application/usecase/transaction"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	"github.com/acquisitions-finance/backend/internal/domain/valueobject"
)

// Aggregator computes a ledger's totals for one fiscal year from its funds' budgets
// and the allocations and transfers crossing the ledger boundary.
type Aggregator struct {
	budgetRepo adapter.BudgetRepository
	gateway    *transaction.Gateway
	chunkSize  int
}

// NewAggregator creates a new Aggregator. chunkSize bounds the fund ids per budget query.
func NewAggregator(budgetRepo adapter.BudgetRepository, gateway *transaction.Gateway, chunkSize int) *Aggregator {
	if chunkSize <= 0 {
		chunkSize = transaction.DefaultFundIDsChunkSize
	}
	return &Aggregator{
		budgetRepo: budgetRepo,
		gateway:    gateway,
		chunkSize:  chunkSize,
	}
}

// Totals aggregates the ledger funds for the fiscal year. All data is fetched
// concurrently; any failed fetch fails the aggregation.
func (a *Aggregator) Totals(ctx context.Context, fundIDs []uuid.UUID, fiscalYearID uuid.UUID, cur valueobject.Currency) (entity.LedgerTotals, error) {
	if len(fundIDs) == 0 {
		return newTotalsBuilder(cur).build(), nil
	}

	var (
		budgets                        []*entity.Budget
		toAllocations, fromAllocations []*entity.Transaction
		toTransfers, fromTransfers     []*entity.Transaction
	)
	transferTypes := entity.TransferTypes()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		budgets, err = a.budgets(groupCtx, fundIDs, fiscalYearID, cur)
		return err
	})
	group.Go(func() error {
		var err error
		toAllocations, err = a.gateway.GetToFundTransactions(groupCtx, fundIDs, fiscalYearID, entity.TransactionTypeAllocation)
		return err
	})
	group.Go(func() error {
		var err error
		fromAllocations, err = a.gateway.GetFromFundTransactions(groupCtx, fundIDs, fiscalYearID, entity.TransactionTypeAllocation)
		return err
	})
	group.Go(func() error {
		var err error
		toTransfers, err = a.gateway.GetToFundTransactions(groupCtx, fundIDs, fiscalYearID, transferTypes...)
		return err
	})
	group.Go(func() error {
		var err error
		fromTransfers, err = a.gateway.GetFromFundTransactions(groupCtx, fundIDs, fiscalYearID, transferTypes...)
		return err
	})
	if err := group.Wait(); err != nil {
		return entity.LedgerTotals{}, err
	}

	inside := newFundSet(fundIDs)
	slog.Debug("Aggregating ledger totals",
		"funds", len(fundIDs),
		"fiscal_year_id", fiscalYearID,
		"budgets", len(budgets),
	)

	return newTotalsBuilder(cur).
		withBudgets(budgets).
		withAllocations(
			withoutInitialAllocations(incoming(toAllocations, inside), fundIDs),
			outgoing(fromAllocations, inside),
		).
		withTransfers(incoming(toTransfers, inside), outgoing(fromTransfers, inside)).
		build(), nil
}

// budgets fetches the funds' budgets with their derived fields filled in.
func (a *Aggregator) budgets(ctx context.Context, fundIDs []uuid.UUID, fiscalYearID uuid.UUID, cur valueobject.Currency) ([]*entity.Budget, error) {
	chunks := cql.ChunkIDs(cql.DistinctIDs(fundIDs), a.chunkSize)
	results := make([][]*entity.Budget, len(chunks))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		group.Go(func() error {
			query := cql.And(cql.InIDs("fundId", chunk), cql.EqID("fiscalYearId", fiscalYearID))
			collection, err := a.budgetRepo.Get(groupCtx, query, 0, adapter.MaxQueryLimit)
			if err != nil {
				return fmt.Errorf("failed to fetch budgets: %w", err)
			}
			results[i] = collection.Budgets
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	budgets := make([]*entity.Budget, 0)
	for _, chunk := range results {
		for _, bg := range chunk {
			budget.Derive(bg, cur)
			budgets = append(budgets, bg)
		}
	}
	return budgets, nil
}

type fundSet map[uuid.UUID]struct{}

func newFundSet(ids []uuid.UUID) fundSet {
	set := make(fundSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s fundSet) has(id *uuid.UUID) bool {
	if id == nil {
		return false
	}
	_, ok := s[*id]
	return ok
}

// incoming keeps transactions arriving from outside the ledger.
func incoming(transactions []*entity.Transaction, inside fundSet) []*entity.Transaction {
	result := make([]*entity.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if inside.has(tx.ToFundID) && !inside.has(tx.FromFundID) {
			result = append(result, tx)
		}
	}
	return result
}

// outgoing keeps transactions leaving the ledger.
func outgoing(transactions []*entity.Transaction, inside fundSet) []*entity.Transaction {
	result := make([]*entity.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if inside.has(tx.FromFundID) && !inside.has(tx.ToFundID) {
			result = append(result, tx)
		}
	}
	return result
}

// withoutInitialAllocations drops each fund's initial allocation, which budgets
// already report as initialAllocation.
func withoutInitialAllocations(allocations []*entity.Transaction, fundIDs []uuid.UUID) []*entity.Transaction {
	byFund := make(map[uuid.UUID][]*entity.Transaction, len(fundIDs))
	for _, tx := range allocations {
		byFund[*tx.ToFundID] = append(byFund[*tx.ToFundID], tx)
	}

	initial := make(map[uuid.UUID]struct{}, len(byFund))
	for _, fundAllocations := range byFund {
		if first := budget.InitialAllocationOf(fundAllocations); first != nil {
			initial[first.ID] = struct{}{}
		}
	}

	result := make([]*entity.Transaction, 0, len(allocations))
	for _, tx := range allocations {
		if _, ok := initial[tx.ID]; !ok {
			result = append(result, tx)
		}
	}
	return result
}

// totalsBuilder accumulates ledger totals. Every step returns a new builder and
// leaves the receiver untouched.
type totalsBuilder struct {
	cur    valueobject.Currency
	totals entity.LedgerTotals
}

func newTotalsBuilder(cur valueobject.Currency) totalsBuilder {
	return totalsBuilder{cur: cur, totals: entity.LedgerTotals{
		InitialAllocation: decimal.Zero,
		AllocationTo:      decimal.Zero,
		AllocationFrom:    decimal.Zero,
		NetTransfers:      decimal.Zero,
		Encumbered:        decimal.Zero,
		AwaitingPayment:   decimal.Zero,
		Expenditures:      decimal.Zero,
		Credits:           decimal.Zero,
		Unavailable:       decimal.Zero,
	}}
}

func (b totalsBuilder) withBudgets(budgets []*entity.Budget) totalsBuilder {
	var initial, encumbered, awaiting, expenditures, credits, unavailable []decimal.Decimal
	for _, bg := range budgets {
		initial = append(initial, bg.InitialAllocation)
		encumbered = append(encumbered, bg.Encumbered)
		awaiting = append(awaiting, bg.AwaitingPayment)
		expenditures = append(expenditures, bg.Expenditures)
		credits = append(credits, bg.Credits)
		unavailable = append(unavailable, bg.Unavailable)
	}

	b.totals.InitialAllocation = b.cur.Sum(initial...)
	b.totals.Encumbered = b.cur.Sum(encumbered...)
	b.totals.AwaitingPayment = b.cur.Sum(awaiting...)
	b.totals.Expenditures = b.cur.Sum(expenditures...)
	b.totals.Credits = b.cur.Sum(credits...)
	b.totals.Unavailable = b.cur.Sum(unavailable...)
	return b
}

func (b totalsBuilder) withAllocations(to, from []*entity.Transaction) totalsBuilder {
	b.totals.AllocationTo = b.cur.Sum(amounts(to)...)
	b.totals.AllocationFrom = b.cur.Sum(amounts(from)...)
	return b
}

func (b totalsBuilder) withTransfers(to, from []*entity.Transaction) totalsBuilder {
	incoming := decimal.Zero
	for _, amount := range amounts(to) {
		incoming = incoming.Add(amount)
	}
	b.totals.NetTransfers = b.cur.Subtract(incoming, amounts(from)...)
	return b
}

// build derives the remaining fields and returns the totals.
func (b totalsBuilder) build() entity.LedgerTotals {
	t := b.totals

	allocated := t.InitialAllocation.Add(t.AllocationTo).Sub(t.AllocationFrom)
	totalFunding := allocated.Add(t.NetTransfers)
	fundedCeiling := valueobject.MaxZero(totalFunding)
	spent := t.Encumbered.Add(t.AwaitingPayment).Add(t.Expenditures).Sub(t.Credits)

	t.Allocated = b.cur.Round(allocated)
	t.TotalFunding = b.cur.Round(totalFunding)
	t.CashBalance = b.cur.Round(totalFunding.Sub(t.Expenditures).Add(t.Credits))
	t.OverEncumbrance = b.cur.Round(valueobject.MaxZero(t.Encumbered.Sub(fundedCeiling)))
	t.OverExpended = b.cur.Round(valueobject.MaxZero(
		t.Expenditures.Sub(t.Credits).Add(t.AwaitingPayment).Sub(fundedCeiling),
	))
	t.Available = b.cur.Round(totalFunding.Sub(spent))
	return t
}

func amounts(transactions []*entity.Transaction) []decimal.Decimal {
	result := make([]decimal.Decimal, len(transactions))
	for i, tx := range transactions {
		result[i] = tx.Amount
	}
	return result
}
