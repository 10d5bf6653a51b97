package constants

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Supported currencies.
const (
	CurrencyBTC  = "BTC"
	CurrencyETH  = "ETH"
	CurrencySOL  = "SOL"
	CurrencyUSDC = "USDC"
	CurrencyUSDT = "USDT"
	CurrencyEURR = "EURR"
)

// CurrencyLimits is the order-size and precision table entry for one currency.
type CurrencyLimits struct {
	Currency        string
	MinOrderAmount  decimal.Decimal
	MaxOrderAmount  decimal.Decimal
	PricePrecision  int32
	AmountPrecision int32
}

var currencyLimits map[string]CurrencyLimits

func init() {
	maxOrder := decimal.NewFromInt(1_000_000)
	table := []CurrencyLimits{
		{CurrencyBTC, decimal.RequireFromString("0.0001"), maxOrder, 8, 4},
		{CurrencyETH, decimal.RequireFromString("0.001"), maxOrder, 4, 3},
		{CurrencySOL, decimal.RequireFromString("0.1"), maxOrder, 4, 1},
		{CurrencyUSDC, decimal.RequireFromString("0.0001"), maxOrder, 4, 4},
		{CurrencyUSDT, decimal.RequireFromString("0.0001"), maxOrder, 4, 4},
		{CurrencyEURR, decimal.RequireFromString("0.0001"), maxOrder, 4, 4},
	}

	// A broken table is a programming error; fail before any network activity.
	if err := validateLimits(table); err != nil {
		panic(fmt.Sprintf("constants: %v", err))
	}

	currencyLimits = make(map[string]CurrencyLimits, len(table))
	for _, l := range table {
		currencyLimits[l.Currency] = l
	}
}

func validateLimits(table []CurrencyLimits) error {
	seen := make(map[string]bool, len(table))
	for _, l := range table {
		if l.Currency == "" {
			return fmt.Errorf("currency limits entry without currency")
		}
		if seen[l.Currency] {
			return fmt.Errorf("duplicate currency limits for %s", l.Currency)
		}
		seen[l.Currency] = true
		if l.PricePrecision < 0 || l.AmountPrecision < 0 {
			return fmt.Errorf("negative precision for %s", l.Currency)
		}
		if !l.MinOrderAmount.IsPositive() {
			return fmt.Errorf("non-positive min order amount for %s", l.Currency)
		}
		if l.MinOrderAmount.GreaterThan(l.MaxOrderAmount) {
			return fmt.Errorf("min order amount above max for %s", l.Currency)
		}
	}
	return nil
}

// Limits returns the limits for currency and whether it is supported.
func Limits(currency string) (CurrencyLimits, bool) {
	l, ok := currencyLimits[currency]
	return l, ok
}

// IsSupportedCurrency reports whether currency is tradable on the exchange.
func IsSupportedCurrency(currency string) bool {
	_, ok := currencyLimits[currency]
	return ok
}

// SupportedCurrencies returns the supported currency codes in sorted order.
func SupportedCurrencies() []string {
	out := make([]string, 0, len(currencyLimits))
	for c := range currencyLimits {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// MinOrderAmount returns the minimum order amount, defaulting to BTC for unknown currencies.
func MinOrderAmount(currency string) decimal.Decimal {
	return limitsOrBTC(currency).MinOrderAmount
}

// MaxOrderAmount returns the maximum order amount, defaulting to BTC for unknown currencies.
func MaxOrderAmount(currency string) decimal.Decimal {
	return limitsOrBTC(currency).MaxOrderAmount
}

// PricePrecision returns the price precision, defaulting to BTC for unknown currencies.
func PricePrecision(currency string) int32 {
	return limitsOrBTC(currency).PricePrecision
}

// AmountPrecision returns the amount precision, defaulting to BTC for unknown currencies.
func AmountPrecision(currency string) int32 {
	return limitsOrBTC(currency).AmountPrecision
}

func limitsOrBTC(currency string) CurrencyLimits {
	if l, ok := currencyLimits[currency]; ok {
		return l
	}
	return currencyLimits[CurrencyBTC]
}
