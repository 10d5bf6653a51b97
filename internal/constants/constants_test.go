package constants

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoints(t *testing.T) {
	for _, u := range []string{WSURLProd, WSURLTest} {
		if !strings.HasPrefix(u, "wss://") {
			t.Errorf("websocket endpoint %q must use wss", u)
		}
	}
	for _, u := range []string{HTTPURLProd, HTTPURLTest, BaseURLProd, BaseURLTest} {
		if !strings.HasPrefix(u, "https://") {
			t.Errorf("http endpoint %q must use https", u)
		}
	}
	assert.Contains(t, WSURLProd, "www.deribit.com")
	assert.Contains(t, WSURLTest, "test.deribit.com")
}

func TestPublishedLimits(t *testing.T) {
	assert.Equal(t, 20, MaxRequestsPerSecondAuth)
	assert.Equal(t, 10, MaxRequestsPerSecondUnauth)
	assert.Equal(t, 200, MaxSubscriptionsPerConnection)
	assert.Equal(t, float64(28800), AccessTokenExpiration.Seconds())
	assert.Equal(t, float64(2592000), RefreshTokenExpiration.Seconds())
	assert.Equal(t, float64(300), TokenRefreshBuffer.Seconds())
	assert.Less(t, TokenRefreshBuffer, AccessTokenExpiration)
	assert.Greater(t, DefaultRequestTimeout, DefaultConnectionTimeout)
	assert.Greater(t, HeartbeatInterval, HeartbeatTimeout)
	assert.Greater(t, RetryMaxDelay, RetryBaseDelay)
	assert.Greater(t, MaxOrderBookDepth, DefaultOrderBookDepth)
}

func TestBTCLimits(t *testing.T) {
	l, ok := Limits(CurrencyBTC)
	require.True(t, ok)
	assert.True(t, l.MinOrderAmount.Equal(decimal.RequireFromString("0.0001")))
	assert.True(t, l.MaxOrderAmount.Equal(decimal.NewFromInt(1_000_000)))
	assert.Equal(t, int32(8), l.PricePrecision)
	assert.Equal(t, int32(4), l.AmountPrecision)
}

func TestLookupDefaultsToBTC(t *testing.T) {
	tests := []struct {
		currency string
		minOrder string
		price    int32
		amount   int32
	}{
		{CurrencyBTC, "0.0001", 8, 4},
		{CurrencyETH, "0.001", 4, 3},
		{CurrencySOL, "0.1", 4, 1},
		{"UNKNOWN", "0.0001", 8, 4},
	}

	for _, tt := range tests {
		t.Run(tt.currency, func(t *testing.T) {
			if got := MinOrderAmount(tt.currency); !got.Equal(decimal.RequireFromString(tt.minOrder)) {
				t.Errorf("MinOrderAmount(%s) = %s, want %s", tt.currency, got, tt.minOrder)
			}
			if got := PricePrecision(tt.currency); got != tt.price {
				t.Errorf("PricePrecision(%s) = %d, want %d", tt.currency, got, tt.price)
			}
			if got := AmountPrecision(tt.currency); got != tt.amount {
				t.Errorf("AmountPrecision(%s) = %d, want %d", tt.currency, got, tt.amount)
			}
		})
	}
}

func TestSupportedCurrencies(t *testing.T) {
	for _, c := range []string{CurrencyBTC, CurrencyETH, CurrencySOL, CurrencyUSDC, CurrencyUSDT, CurrencyEURR} {
		assert.True(t, IsSupportedCurrency(c), c)
	}
	assert.False(t, IsSupportedCurrency("XRP"))
	assert.False(t, IsSupportedCurrency("btc"))
	assert.Equal(t, []string{"BTC", "ETH", "EURR", "SOL", "USDC", "USDT"}, SupportedCurrencies())
}

func TestValidateLimitsRejectsBrokenTables(t *testing.T) {
	one := decimal.NewFromInt(1)
	tests := []struct {
		name  string
		table []CurrencyLimits
	}{
		{"negative price precision", []CurrencyLimits{{"BTC", one, one, -1, 4}}},
		{"negative amount precision", []CurrencyLimits{{"BTC", one, one, 8, -2}}},
		{"min above max", []CurrencyLimits{{"BTC", decimal.NewFromInt(2), one, 8, 4}}},
		{"zero min", []CurrencyLimits{{"BTC", decimal.Zero, one, 8, 4}}},
		{"duplicate", []CurrencyLimits{{"BTC", one, one, 8, 4}, {"BTC", one, one, 8, 4}}},
		{"missing currency", []CurrencyLimits{{"", one, one, 8, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, validateLimits(tt.table))
		})
	}
}

func TestFIXConstants(t *testing.T) {
	assert.Equal(t, "FIX.4.4", FIXVersion)
	assert.Equal(t, byte(0x01), byte(FIXDelimiter))
	assert.Equal(t, "\x01", FIXDelimiterStr)
	assert.Equal(t, 44, TagPrice)
	assert.Equal(t, 10, TagCheckSum)
	assert.Len(t, FIXTimestampLayout, 21)
}
