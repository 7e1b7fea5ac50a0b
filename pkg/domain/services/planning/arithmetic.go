package planning

import (
	"math"

	"github.com/shopspring/decimal"
)

// Rounding and ceiling run in decimal so that quotients like 0.3/0.1 land on
// the integer they denote. Non-finite inputs cannot be represented in decimal
// and fall back to float arithmetic.

var half = decimal.NewFromFloat(0.5)

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// divide returns a/b with enough places that no non-zero quotient of two
// floats is truncated to zero; b must be non-zero
func divide(a, b decimal.Decimal) decimal.Decimal {
	precision := int32(decimal.DivisionPrecision)
	if e := a.Exponent(); e < 0 {
		precision -= e
	}
	if e := b.Exponent(); e > 0 {
		precision += e
	}
	precision += int32(b.NumDigits())
	return a.DivRound(b, precision)
}

// quotient returns a/b; b must be non-zero
func quotient(a, b float64) decimal.Decimal {
	return divide(decimal.NewFromFloat(a), decimal.NewFromFloat(b))
}

// roundHalfUp rounds to places, taking halves toward positive infinity:
// 2.5 -> 3 and -2.5 -> -2
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}

func roundQuotient(a, b float64) float64 {
	if !finite(a, b) {
		return math.Floor(a/b + 0.5)
	}
	return roundHalfUp(quotient(a, b), 0).InexactFloat64()
}

func ceilQuotient(a, b float64) float64 {
	if !finite(a, b) {
		return math.Ceil(a / b)
	}
	return quotient(a, b).Ceil().InexactFloat64()
}

func roundPlaces(v float64, places int32) float64 {
	if !finite(v) {
		return v
	}
	return roundHalfUp(decimal.NewFromFloat(v), places).InexactFloat64()
}
