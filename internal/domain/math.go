package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	stellarPrecision  = 7
	usdPlaces         = 2
	nativeLimitPlaces = 5
)

// SafeParse parses a string into a decimal, returning zero for invalid or empty input.
func SafeParse(value string) decimal.Decimal {
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseAmount parses an amount string from the ledger API. Unlike SafeParse it
// reports malformed input instead of hiding it behind zero.
func ParseAmount(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", value, err)
	}
	return d, nil
}

// RoundUSD rounds half away from zero to cents.
func RoundUSD(d decimal.Decimal) decimal.Decimal {
	return d.Round(usdPlaces)
}

// RoundNative rounds a native-asset transfer limit to 5 places.
func RoundNative(d decimal.Decimal) decimal.Decimal {
	return d.Round(nativeLimitPlaces)
}

// FormatStellar rounds to 7 decimal places and strips trailing zeros.
func FormatStellar(d decimal.Decimal) string {
	rounded := d.Round(stellarPrecision)
	s := rounded.StringFixed(stellarPrecision)
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}
