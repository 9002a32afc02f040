package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewCurrency_Scale(t *testing.T) {
	tests := []struct {
		code  string
		scale int32
	}{
		{code: "USD", scale: 2},
		{code: "eur", scale: 2},
		{code: "JPY", scale: 0},
		{code: "BHD", scale: 3},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			c, err := NewCurrency(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.scale, c.Scale())
		})
	}
}

func TestNewCurrency_Unknown(t *testing.T) {
	_, err := NewCurrency("NOPE")
	assert.Error(t, err)

	c := CurrencyOrDefault("NOPE")
	assert.Equal(t, int32(DefaultCurrencyScale), c.Scale())
}

func TestCurrency_SumRoundsOnce(t *testing.T) {
	usd, err := NewCurrency("USD")
	require.NoError(t, err)

	// Each addend would round down on its own; the total must not.
	total := usd.Sum(dec("0.004"), dec("0.004"), dec("0.004"))
	assert.True(t, total.Equal(dec("0.01")), "got %s", total)
}

func TestCurrency_RoundIsBankers(t *testing.T) {
	usd := CurrencyOrDefault("USD")

	assert.True(t, usd.Round(dec("1.005")).Equal(dec("1.00")))
	assert.True(t, usd.Round(dec("1.015")).Equal(dec("1.02")))
	assert.True(t, usd.Round(dec("-2.675")).Equal(dec("-2.68")))
}

func TestCurrency_Subtract(t *testing.T) {
	usd := CurrencyOrDefault("USD")

	result := usd.Subtract(dec("100"), dec("10.111"), dec("0.002"))
	assert.True(t, result.Equal(dec("89.89")), "got %s", result)
}

func TestCurrency_RoundPtr(t *testing.T) {
	jpy := CurrencyOrDefault("JPY")

	assert.Nil(t, jpy.RoundPtr(nil))

	value := dec("10.6")
	rounded := jpy.RoundPtr(&value)
	require.NotNil(t, rounded)
	assert.True(t, rounded.Equal(dec("11")))
}

func TestCurrency_SmallestUnit(t *testing.T) {
	assert.True(t, CurrencyOrDefault("USD").SmallestUnit().Equal(dec("0.01")))
	assert.True(t, CurrencyOrDefault("JPY").SmallestUnit().Equal(dec("1")))
}

func TestMaxZero(t *testing.T) {
	assert.True(t, MaxZero(dec("-5")).IsZero())
	assert.True(t, MaxZero(dec("5")).Equal(dec("5")))
}
