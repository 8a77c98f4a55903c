// Package currency converts between user-facing decimal amounts and the
// integer minor units the ledger stores.
package currency

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const DefaultExponent = 2

// exponents lists ISO-4217 currencies whose minor unit is not 1/100.
var exponents = map[string]int32{
	"BIF": 0, "CLP": 0, "JPY": 0, "KRW": 0, "PYG": 0, "VND": 0, "XAF": 0, "XOF": 0,
	"BHD": 3, "IQD": 3, "JOD": 3, "KWD": 3, "LYD": 3, "OMR": 3, "TND": 3,
}

var maxMinor = decimal.NewFromInt(math.MaxInt64)

// Normalize upper-cases and trims a currency code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Exponent returns the number of minor-unit digits of the currency.
func Exponent(code string) int32 {
	if exp, ok := exponents[Normalize(code)]; ok {
		return exp
	}
	return DefaultExponent
}

// ParseMinor converts a decimal string such as "150.50" into minor units
// (15050 for USD). More fractional digits than the currency allows is an
// error rather than a silent truncation.
func ParseMinor(amount, code string) (int64, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return 0, fmt.Errorf("amount is empty")
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	shifted := d.Shift(Exponent(code))
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("invalid amount %q: %s allows at most %d decimal places", amount, Normalize(code), Exponent(code))
	}
	if shifted.Abs().GreaterThan(maxMinor) {
		return 0, fmt.Errorf("amount %q is too large", amount)
	}

	return shifted.IntPart(), nil
}

// FormatMinor renders minor units as a fixed-point decimal string.
func FormatMinor(minor int64, code string) string {
	exp := Exponent(code)
	return decimal.New(minor, -exp).StringFixed(exp)
}
