package money_test

import (
	"testing"

	"github.com/corebank/ledger/pkg/currency"
	"github.com/corebank/ledger/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromString(t *testing.T) {
	m, err := money.NewFromString("100.50", "USD")
	require.NoError(t, err)
	assert.Equal(t, "100.50 USD", m.String())

	_, err = money.NewFromString("abc", "USD")
	assert.ErrorIs(t, err, money.ErrInvalidAmount)

	_, err = money.NewFromString("10", "usd")
	assert.ErrorIs(t, err, money.ErrInvalidCurrencyCode)
}

func TestNew_DefaultsToUSD(t *testing.T) {
	m, err := money.New(decimal.NewFromInt(5), "")
	require.NoError(t, err)
	assert.Equal(t, currency.Code("USD"), m.Currency())
}

func TestNew_RoundsToCurrencyPrecision(t *testing.T) {
	m, err := money.NewFromString("10.999", "USD")
	require.NoError(t, err)
	assert.Equal(t, "11.00 USD", m.String())

	m, err = money.NewFromString("10.4", "JPY")
	require.NoError(t, err)
	assert.Equal(t, "10 JPY", m.String())
}

func TestArithmetic(t *testing.T) {
	a, _ := money.NewFromString("100", "USD")
	b, _ := money.NewFromString("40", "USD")

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "140.00 USD", sum.String())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "60.00 USD", diff.String())

	gt, err := a.GreaterThan(b)
	require.NoError(t, err)
	assert.True(t, gt)

	assert.True(t, b.Negate().IsNegative())
}

func TestCurrencyMismatch(t *testing.T) {
	usd, _ := money.NewFromString("1", "USD")
	eur, _ := money.NewFromString("1", "EUR")

	_, err := usd.Add(eur)
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
	_, err = usd.Subtract(eur)
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
	_, err = usd.GreaterThan(eur)
	assert.ErrorIs(t, err, money.ErrCurrencyMismatch)
	assert.False(t, usd.Equals(eur))
}

func TestZero(t *testing.T) {
	z := money.Zero("USD")
	assert.False(t, z.IsPositive())
	assert.False(t, z.IsNegative())
	assert.Equal(t, "0.00 USD", z.String())
}
