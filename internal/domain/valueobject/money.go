// Package valueobject contains domain value objects for the Expense Tracker system.
package valueobject

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places every emitted amount and percentage carries.
const MoneyPlaces int32 = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds d to two places, half away from zero.
// Only applied when building report output; sums stay exact until then.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// DivideOrZero returns num/den, or zero when den is zero.
// The result is not rounded.
func DivideOrZero(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.DivRound(den, 16)
}

// Average returns round(total/count, 2), or zero when count is zero.
func Average(total decimal.Decimal, count int64) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return RoundMoney(DivideOrZero(total, decimal.NewFromInt(count)))
}

// Percentage returns round(part/whole*100, 2), or zero when whole is zero.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return RoundMoney(DivideOrZero(part.Mul(hundred), whole))
}

// ToFloat converts an already-rounded decimal for JSON output.
func ToFloat(d decimal.Decimal) float64 {
	f, _ := RoundMoney(d).Float64()
	return f
}
