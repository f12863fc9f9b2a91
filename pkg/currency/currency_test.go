package currency_test

import (
	"testing"

	"github.com/corebank/ledger/pkg/currency"
	"github.com/stretchr/testify/assert"
)

func TestIsValidFormat(t *testing.T) {
	assert.True(t, currency.IsValidFormat("USD"))
	assert.True(t, currency.IsValidFormat("JPY"))
	assert.False(t, currency.IsValidFormat("usd"))
	assert.False(t, currency.IsValidFormat("US"))
	assert.False(t, currency.IsValidFormat("USDX"))
	assert.False(t, currency.IsValidFormat(""))
}

func TestGet(t *testing.T) {
	assert.Equal(t, 0, currency.Get("JPY").Decimals)
	assert.Equal(t, 2, currency.Get("USD").Decimals)

	// Unknown codes fall back to the default precision.
	assert.Equal(t, currency.DefaultDecimals, currency.Get("XXX").Decimals)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, currency.IsSupported("EUR"))
	assert.False(t, currency.IsSupported("BTC"))
}
