// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TruncateDecimal drops every digit past places, moving toward zero.
// It never rounds up.
func TruncateDecimal(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Truncate(places)
}

// FormatDecimal renders d with exactly places fractional digits after
// truncating it to that precision.
func FormatDecimal(d decimal.Decimal, places int32) string {
	return d.Truncate(places).StringFixed(places)
}

// ParseDecimal parses an exact decimal string. Surrounding whitespace, empty
// input and non-numeric text are rejected.
func ParseDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty decimal")
	}
	if strings.TrimSpace(s) != s {
		return decimal.Zero, fmt.Errorf("decimal %q has surrounding whitespace", s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return d, nil
}

// DecimalPlaces returns the number of significant fractional digits in d,
// ignoring trailing zeros: 1.2500 has 2.
func DecimalPlaces(d decimal.Decimal) int32 {
	exp := d.Exponent()
	if exp >= 0 {
		return 0
	}
	for p := int32(0); p < -exp; p++ {
		if d.Truncate(p).Equal(d) {
			return p
		}
	}
	return -exp
}
