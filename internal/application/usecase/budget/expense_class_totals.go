// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/application/cql"
	"github.com/acquisitions-finance/backend/internal/application/usecase/transaction"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	"github.com/acquisitions-finance/backend/internal/domain/valueobject"
)

// GetExpenseClassTotalsUseCase reports encumbered, awaiting and expended amounts per
// expense class of a budget.
type GetExpenseClassTotalsUseCase struct {
	budgetRepo       adapter.BudgetRepository
	linkRepo         adapter.BudgetExpenseClassRepository
	expenseClassRepo adapter.ExpenseClassRepository
	fiscalYearRepo   adapter.FiscalYearRepository
	gateway          *transaction.Gateway
	chunkSize        int
}

// NewGetExpenseClassTotalsUseCase creates a new GetExpenseClassTotalsUseCase instance.
func NewGetExpenseClassTotalsUseCase(
	budgetRepo adapter.BudgetRepository,
	linkRepo adapter.BudgetExpenseClassRepository,
	expenseClassRepo adapter.ExpenseClassRepository,
	fiscalYearRepo adapter.FiscalYearRepository,
	gateway *transaction.Gateway,
	chunkSize int,
) *GetExpenseClassTotalsUseCase {
	if chunkSize <= 0 {
		chunkSize = transaction.DefaultIDListChunkSize
	}
	return &GetExpenseClassTotalsUseCase{
		budgetRepo:       budgetRepo,
		linkRepo:         linkRepo,
		expenseClassRepo: expenseClassRepo,
		fiscalYearRepo:   fiscalYearRepo,
		gateway:          gateway,
		chunkSize:        chunkSize,
	}
}

// Execute returns one total per expense class linked to the budget, ordered by
// expense class name. The expense classes and their transactions are fetched
// concurrently, both in chunks of expense class ids.
func (uc *GetExpenseClassTotalsUseCase) Execute(ctx context.Context, budgetID uuid.UUID) ([]*entity.BudgetExpenseClassTotal, error) {
	budget, err := findBudget(ctx, uc.budgetRepo, budgetID)
	if err != nil {
		return nil, err
	}

	var (
		links []*entity.BudgetExpenseClass
		cur   valueobject.Currency
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		links, err = uc.linkRepo.GetByBudgetID(groupCtx, budget.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch budget expense classes: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		cur, err = fiscalYearCurrency(groupCtx, uc.fiscalYearRepo, budget.FiscalYearID)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []*entity.BudgetExpenseClassTotal{}, nil
	}

	statuses := make(map[uuid.UUID]entity.ExpenseClassStatus, len(links))
	ids := make([]uuid.UUID, 0, len(links))
	for _, link := range links {
		statuses[link.ExpenseClassID] = link.Status
		ids = append(ids, link.ExpenseClassID)
	}

	var (
		expenseClasses []*entity.ExpenseClass
		transactions   []*entity.Transaction
	)
	group, groupCtx = errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		expenseClasses, err = uc.expenseClassesByID(groupCtx, ids)
		return err
	})
	group.Go(func() error {
		var err error
		transactions, err = uc.gateway.GetByExpenseClassIDs(groupCtx, ids, budget.FundID, budget.FiscalYearID)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return ExpenseClassTotals(expenseClasses, statuses, transactions, cur), nil
}

func (uc *GetExpenseClassTotalsUseCase) expenseClassesByID(ctx context.Context, ids []uuid.UUID) ([]*entity.ExpenseClass, error) {
	chunks := cql.ChunkIDs(cql.DistinctIDs(ids), uc.chunkSize)
	results := make([][]*entity.ExpenseClass, len(chunks))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		group.Go(func() error {
			expenseClasses, err := uc.expenseClassRepo.Get(groupCtx, cql.InIDs("id", chunk), 0, len(chunk))
			if err != nil {
				return fmt.Errorf("failed to fetch expense classes: %w", err)
			}
			results[i] = expenseClasses
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{})
	merged := make([]*entity.ExpenseClass, 0)
	for _, expenseClasses := range results {
		for _, expenseClass := range expenseClasses {
			if _, ok := seen[expenseClass.ID]; ok {
				continue
			}
			seen[expenseClass.ID] = struct{}{}
			merged = append(merged, expenseClass)
		}
	}
	return merged, nil
}

// ExpenseClassTotals sums the transactions of each expense class. The expended share is
// relative to everything expended across the given transactions and is nil when nothing
// was expended.
// Expense classes without a link are reported as Active.
func ExpenseClassTotals(
	expenseClasses []*entity.ExpenseClass,
	statuses map[uuid.UUID]entity.ExpenseClassStatus,
	transactions []*entity.Transaction,
	cur valueobject.Currency,
) []*entity.BudgetExpenseClassTotal {
	type sums struct {
		encumbered, awaiting, expended decimal.Decimal
	}
	byExpenseClass := make(map[uuid.UUID]*sums, len(expenseClasses))
	for _, expenseClass := range expenseClasses {
		byExpenseClass[expenseClass.ID] = &sums{}
	}

	totalExpended := decimal.Zero
	for _, tx := range transactions {
		var s *sums
		if tx.ExpenseClassID != nil {
			s = byExpenseClass[*tx.ExpenseClassID]
		}
		switch tx.TransactionType {
		case entity.TransactionTypeEncumbrance:
			if s != nil {
				s.encumbered = s.encumbered.Add(tx.Amount)
			}
		case entity.TransactionTypePendingPayment:
			if s != nil {
				s.awaiting = s.awaiting.Add(tx.Amount)
			}
		case entity.TransactionTypePayment:
			totalExpended = totalExpended.Add(tx.Amount)
			if s != nil {
				s.expended = s.expended.Add(tx.Amount)
			}
		case entity.TransactionTypeCredit:
			totalExpended = totalExpended.Sub(tx.Amount)
			if s != nil {
				s.expended = s.expended.Sub(tx.Amount)
			}
		}
	}

	totals := make([]*entity.BudgetExpenseClassTotal, 0, len(expenseClasses))
	for _, expenseClass := range expenseClasses {
		s := byExpenseClass[expenseClass.ID]
		status, ok := statuses[expenseClass.ID]
		if !ok {
			status = entity.ExpenseClassStatusActive
		}

		var percentage *decimal.Decimal
		if !totalExpended.IsZero() {
			p := s.expended.Div(totalExpended).Mul(hundred).RoundBank(2)
			percentage = &p
		}

		totals = append(totals, &entity.BudgetExpenseClassTotal{
			ID:                 expenseClass.ID,
			ExpenseClassName:   expenseClass.Name,
			Encumbered:         cur.Round(s.encumbered),
			AwaitingPayment:    cur.Round(s.awaiting),
			Expended:           cur.Round(s.expended),
			PercentageExpended: percentage,
			ExpenseClassStatus: status,
		})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].ExpenseClassName < totals[j].ExpenseClassName
	})
	return totals
}
