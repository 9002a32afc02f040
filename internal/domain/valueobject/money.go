// Package valueobject contains domain value objects for the acquisitions finance service.
package valueobject

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// DefaultCurrencyScale is used for codes that are not ISO 4217 currencies.
const DefaultCurrencyScale = 2

// Currency performs currency-aware arithmetic over amounts expressed in one currency.
//
// Sums and differences are computed at full precision and rounded once, with
// banker's rounding, to the currency's minor unit. Intermediate values are
// never rounded.
type Currency struct {
	code  string
	scale int32
}

// NewCurrency resolves the minor unit of an ISO 4217 currency code.
func NewCurrency(code string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	unit, err := currency.ParseISO(normalized)
	if err != nil {
		return Currency{}, fmt.Errorf("unknown currency %q: %w", code, err)
	}
	scale, _ := currency.Standard.Rounding(unit)
	return Currency{code: unit.String(), scale: int32(scale)}, nil
}

// CurrencyOrDefault resolves the code, falling back to two decimal places for unknown codes.
func CurrencyOrDefault(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		return Currency{code: strings.ToUpper(code), scale: DefaultCurrencyScale}
	}
	return c
}

// Code returns the ISO code.
func (c Currency) Code() string {
	return c.code
}

// Scale returns the number of minor-unit digits.
func (c Currency) Scale() int32 {
	return c.scale
}

// Round is the single rounding function applied to every derived monetary value.
func (c Currency) Round(amount decimal.Decimal) decimal.Decimal {
	return amount.RoundBank(c.scale)
}

// RoundPtr rounds an optional amount, keeping nil as nil.
func (c Currency) RoundPtr(amount *decimal.Decimal) *decimal.Decimal {
	if amount == nil {
		return nil
	}
	rounded := c.Round(*amount)
	return &rounded
}

// Sum adds all amounts and rounds the total.
func (c Currency) Sum(amounts ...decimal.Decimal) decimal.Decimal {
	return c.Round(rawSum(amounts))
}

// Subtract returns minuend minus every subtrahend, rounded.
func (c Currency) Subtract(minuend decimal.Decimal, subtrahends ...decimal.Decimal) decimal.Decimal {
	return c.Round(minuend.Sub(rawSum(subtrahends)))
}

// SmallestUnit returns one minor unit of the currency (0.01 for USD).
func (c Currency) SmallestUnit() decimal.Decimal {
	return decimal.New(1, -c.scale)
}

func rawSum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}

// MaxZero returns the amount, or zero when it is negative.
func MaxZero(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}
