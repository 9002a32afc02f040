// Package rollover contains ledger rollover reporting use cases.
package rollover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/acquisitions-finance/backend/internal/application/adapter"
	"github.com/acquisitions-finance/backend/internal/domain/entity"
	domainerror "github.com/acquisitions-finance/backend/internal/domain/error"
	"github.com/acquisitions-finance/backend/internal/domain/valueobject"
)

// Normalize rounds every monetary field of the rollover budget to the currency's
// minor unit. Fields that are not set stay unset.
func Normalize(rolloverBudget *entity.LedgerFiscalYearRolloverBudget, cur valueobject.Currency) {
	for _, field := range rolloverBudget.MonetaryFields() {
		*field = cur.RoundPtr(*field)
	}
}

// NormalizeAll applies Normalize to every rollover budget.
func NormalizeAll(rolloverBudgets []*entity.LedgerFiscalYearRolloverBudget, cur valueobject.Currency) {
	for _, rb := range rolloverBudgets {
		Normalize(rb, cur)
	}
}

// SystemCurrency resolves the currency rollover reports are expressed in.
type SystemCurrency struct {
	configRepo      adapter.ConfigurationRepository
	defaultCurrency string
}

// NewSystemCurrency creates a SystemCurrency. defaultCurrency applies until
// system settings have been stored.
func NewSystemCurrency(configRepo adapter.ConfigurationRepository, defaultCurrency string) *SystemCurrency {
	return &SystemCurrency{
		configRepo:      configRepo,
		defaultCurrency: defaultCurrency,
	}
}

// Resolve returns the configured system currency.
func (s *SystemCurrency) Resolve(ctx context.Context) (valueobject.Currency, error) {
	settings, err := s.configRepo.GetSystemSettings(ctx)
	if err != nil {
		if errors.Is(err, domainerror.ErrSystemSettingsNotFound) {
			slog.Debug("System settings not found, using default currency", "currency", s.defaultCurrency)
			return valueobject.CurrencyOrDefault(s.defaultCurrency), nil
		}
		return valueobject.Currency{}, fmt.Errorf("failed to load system settings: %w", err)
	}
	if settings.Currency == "" {
		return valueobject.CurrencyOrDefault(s.defaultCurrency), nil
	}
	return valueobject.CurrencyOrDefault(settings.Currency), nil
}
