// Package money provides the rounding convention shared by every
// monetary value the system emits: two decimal places, half away
// from zero.
//
// Aggregate figures must be rounded from exact sums, never from
// already-rounded per-line values, so the arithmetic helpers return
// decimals and rounding happens once at the edge.
package money

import "github.com/shopspring/decimal"

// Round rounds v to 2 decimal places, half away from zero.
// 2.145 rounds to 2.15; naive float math would yield 2.14 because
// 2.145*100 is not representable exactly.
func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// RoundDecimal rounds an exact decimal amount to a 2-decimal float.
func RoundDecimal(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// Line returns the exact extended amount unitPrice * qty.
func Line(unitPrice float64, qty int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(qty)))
}

// Tax returns the exact tax amount for a line subtotal at the given
// fractional rate.
func Tax(lineSubtotal decimal.Decimal, rate float64) decimal.Decimal {
	return lineSubtotal.Mul(decimal.NewFromFloat(rate))
}
