package currencypkg

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSelfRateIsOne(t *testing.T) {
	for _, c := range SupportedCurrencies {
		require.True(t, Rate(c, c).Equal(decimal.NewFromInt(1)), "self-rate for %s", c)
	}
}

func TestRateUnavailable(t *testing.T) {
	require.True(t, Rate("XXX", USD).IsZero())
	require.True(t, Rate(USD, "XXX").IsZero())
}

func TestRateIsDirected(t *testing.T) {
	usdEur := Rate(USD, EUR)
	eurUsd := Rate(EUR, USD)

	require.True(t, usdEur.Equal(decimal.RequireFromString("0.93")))
	require.True(t, eurUsd.Equal(decimal.RequireFromString("1.08")))

	// The two directions carry a spread and are not inverses.
	require.False(t, usdEur.Mul(eurUsd).Equal(decimal.NewFromInt(1)))
}

func TestIsSupportedCurrency(t *testing.T) {
	for _, c := range SupportedCurrencies {
		require.True(t, IsSupportedCurrency(c))
	}

	require.False(t, IsSupportedCurrency("BTC"))
	require.False(t, IsSupportedCurrency("usd"))
}
