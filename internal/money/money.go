// Package money converts between major-unit prices (THB) and the minor-unit
// (satang) integer amounts used everywhere inside the payment core.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const minorUnitsPerBaht = 100

// ToSatang converts a major-unit THB price to satang. The conversion goes
// through decimal so values like 45900.00 never pick up float drift.
func ToSatang(baht float64) int64 {
	return decimal.NewFromFloat(baht).
		Mul(decimal.NewFromInt(minorUnitsPerBaht)).
		Round(0).
		IntPart()
}

// ToBaht converts satang back to a major-unit THB value.
func ToBaht(satang int64) float64 {
	f, _ := decimal.NewFromInt(satang).
		Div(decimal.NewFromInt(minorUnitsPerBaht)).
		Float64()
	return f
}

// FormatBaht renders satang as a two-decimal THB string, e.g. "45900.00".
func FormatBaht(satang int64) string {
	return decimal.NewFromInt(satang).
		Div(decimal.NewFromInt(minorUnitsPerBaht)).
		StringFixed(2)
}

// Equal reports whether a client-supplied major-unit price matches a trusted
// satang amount to within one satang.
func Equal(baht float64, satang int64) bool {
	diff := ToSatang(baht) - satang
	return diff >= -1 && diff <= 1
}

// Display renders satang with a baht sign for payment pages.
func Display(satang int64) string {
	return fmt.Sprintf("฿%s", FormatBaht(satang))
}
