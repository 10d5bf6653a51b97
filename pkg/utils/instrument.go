package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Option types used in instrument names.
const (
	OptionCall = "C"
	OptionPut  = "P"
)

// instrumentExpiryLayout renders 29MAR24 style expiries.
const instrumentExpiryLayout = "2Jan06"

// ValidateInstrumentName checks the shape of an exchange instrument name:
// BTC-PERPETUAL, ETH-29MAR24, BTC-29MAR24-60000-C, ETH_USDC, SOL_USDC-PERPETUAL.
func ValidateInstrumentName(name string) error {
	if name == "" {
		return fmt.Errorf("instrument name is empty")
	}
	for _, r := range name {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == 'd':
		default:
			return fmt.Errorf("instrument name %q contains invalid character %q", name, r)
		}
	}
	parts := strings.Split(name, "-")
	for _, p := range parts {
		if p == "" {
			return fmt.Errorf("instrument name %q has an empty segment", name)
		}
	}
	if CurrencyFromInstrumentName(name) == "" {
		return fmt.Errorf("instrument name %q has no currency prefix", name)
	}
	switch len(parts) {
	case 1:
		if !strings.Contains(name, "_") {
			return fmt.Errorf("spot instrument %q must name a pair", name)
		}
	case 2, 3:
	case 4:
		if parts[3] != OptionCall && parts[3] != OptionPut {
			return fmt.Errorf("option instrument %q must end in C or P", name)
		}
	default:
		return fmt.Errorf("instrument name %q has too many segments", name)
	}
	return nil
}

// CurrencyFromInstrumentName returns the base currency prefix of name, the
// text before the first '-' or '_'.
func CurrencyFromInstrumentName(name string) string {
	if i := strings.IndexAny(name, "-_"); i >= 0 {
		return name[:i]
	}
	return ""
}

// FormatInstrumentName builds an instrument name. A zero expiry yields a
// perpetual, a zero strike a dated future, otherwise an option of optionType.
// Fractional strikes use 'd' as the decimal point.
func FormatInstrumentName(currency string, expiry time.Time, strike decimal.Decimal, optionType string) string {
	currency = strings.ToUpper(currency)
	if expiry.IsZero() {
		return currency + "-PERPETUAL"
	}
	date := strings.ToUpper(expiry.UTC().Format(instrumentExpiryLayout))
	if strike.IsZero() {
		return currency + "-" + date
	}
	return fmt.Sprintf("%s-%s-%s-%s", currency, date, strings.Replace(strike.String(), ".", "d", 1), optionType)
}
