package steps

import (
	"encoding/json"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acquisitions-finance/backend/internal/domain/entity"
	"github.com/acquisitions-finance/backend/internal/integration/persistence/model"
)

func (t *testContext) lookup(kind, alias string) (uuid.UUID, error) {
	id, ok := t.ids[kind+":"+alias]
	if !ok {
		return uuid.Nil, fmt.Errorf("no %s named %q was seeded", kind, alias)
	}
	return id, nil
}

func (t *testContext) remember(kind, alias string) uuid.UUID {
	id := uuid.New()
	t.ids[kind+":"+alias] = id
	return id
}

func (t *testContext) aFiscalYearExistsWithCurrency(code, currency string) error {
	return t.db.DbConn.Create(&model.FiscalYearModel{
		ID:       t.remember("fy", code),
		Name:     "Fiscal year " + code,
		Code:     code,
		Series:   "FY",
		Currency: currency,
	}).Error
}

func (t *testContext) aLedgerExistsForFiscalYear(code, fiscalYear string) error {
	fiscalYearID, err := t.lookup("fy", fiscalYear)
	if err != nil {
		return err
	}
	return t.db.DbConn.Create(&model.LedgerModel{
		ID:                   t.remember("ledger", code),
		Code:                 code,
		Name:                 "Ledger " + code,
		LedgerStatus:         "Active",
		FiscalYearOneID:      fiscalYearID,
		RestrictEncumbrance:  true,
		RestrictExpenditures: true,
	}).Error
}

func (t *testContext) aFundExistsInLedger(code, ledger string) error {
	ledgerID, err := t.lookup("ledger", ledger)
	if err != nil {
		return err
	}
	return t.db.DbConn.Create(&model.FundModel{
		ID:         t.remember("fund", code),
		Code:       code,
		Name:       "Fund " + code,
		FundStatus: "Active",
		LedgerID:   ledgerID,
	}).Error
}

func (t *testContext) theFundOnlyAllocatesTo(code, target string) error {
	fundID, err := t.lookup("fund", code)
	if err != nil {
		return err
	}
	targetID, err := t.lookup("fund", target)
	if err != nil {
		return err
	}

	var fund model.FundModel
	if err := t.db.DbConn.First(&fund, "id = ?", fundID).Error; err != nil {
		return err
	}
	fund.AllocatedToIDs = []uuid.UUID{targetID}
	return t.db.DbConn.Save(&fund).Error
}

func (t *testContext) aBudgetExistsForFundInFiscalYear(name, fund, fiscalYear string) error {
	return t.createBudget(name, fund, fiscalYear, model.BudgetModel{})
}

// aBudgetExistsWithTotals seeds a budget whose stored totals come from a JSON document
// keyed by the budget field names, e.g. {"initialAllocation": 100}.
func (t *testContext) aBudgetExistsWithTotals(name, fund, fiscalYear string, totals *godog.DocString) error {
	var budget model.BudgetModel
	if err := json.Unmarshal([]byte(totals.Content), &budget); err != nil {
		return fmt.Errorf("invalid budget totals: %w", err)
	}
	return t.createBudget(name, fund, fiscalYear, budget)
}

func (t *testContext) createBudget(name, fund, fiscalYear string, budget model.BudgetModel) error {
	fundID, err := t.lookup("fund", fund)
	if err != nil {
		return err
	}
	fiscalYearID, err := t.lookup("fy", fiscalYear)
	if err != nil {
		return err
	}

	budget.ID = t.remember("budget", name)
	budget.Version = 1
	budget.Name = name
	budget.BudgetStatus = string(entity.BudgetStatusActive)
	budget.FundID = fundID
	budget.FiscalYearID = fiscalYearID
	return t.db.DbConn.Create(&budget).Error
}

func (t *testContext) anExpenseClassExists(name string) error {
	return t.db.DbConn.Create(&model.ExpenseClassModel{
		ID:   t.remember("ec", name),
		Name: name,
		Code: name,
	}).Error
}

func (t *testContext) theSystemCurrencyIs(currency string) error {
	return t.db.DbConn.Create(&model.SystemSettingsModel{
		Locale:   "en-US",
		Currency: currency,
		Timezone: "UTC",
	}).Error
}

// aRolloverBudgetExistsWithValues seeds a rollover report row whose amounts come from a
// JSON document keyed by field name.
func (t *testContext) aRolloverBudgetExistsWithValues(name, fund string, values *godog.DocString) error {
	fundID, err := t.lookup("fund", fund)
	if err != nil {
		return err
	}

	var amounts map[string]decimal.Decimal
	if err := json.Unmarshal([]byte(values.Content), &amounts); err != nil {
		return fmt.Errorf("invalid rollover budget values: %w", err)
	}

	rolloverBudget := model.RolloverBudgetModel{
		ID:               t.remember("rollover", name),
		LedgerRolloverID: uuid.New(),
		FundID:           &fundID,
		Name:             name,
		FundCode:         fund,
		BudgetStatus:     string(entity.BudgetStatusActive),
	}
	for field, amount := range amounts {
		target, err := rolloverField(&rolloverBudget, field)
		if err != nil {
			return err
		}
		value := amount
		*target = &value
	}
	return t.db.DbConn.Create(&rolloverBudget).Error
}

func rolloverField(m *model.RolloverBudgetModel, field string) (**decimal.Decimal, error) {
	switch field {
	case "initialAllocation":
		return &m.InitialAllocation, nil
	case "allocationTo":
		return &m.AllocationTo, nil
	case "allocationFrom":
		return &m.AllocationFrom, nil
	case "allocated":
		return &m.Allocated, nil
	case "netTransfers":
		return &m.NetTransfers, nil
	case "encumbered":
		return &m.Encumbered, nil
	case "awaitingPayment":
		return &m.AwaitingPayment, nil
	case "expenditures":
		return &m.Expenditures, nil
	case "credits":
		return &m.Credits, nil
	case "unavailable":
		return &m.Unavailable, nil
	case "available":
		return &m.Available, nil
	case "cashBalance":
		return &m.CashBalance, nil
	case "overEncumbrance":
		return &m.OverEncumbrance, nil
	case "overExpended":
		return &m.OverExpended, nil
	case "totalFunding":
		return &m.TotalFunding, nil
	}
	return nil, fmt.Errorf("unknown rollover budget field %q", field)
}
