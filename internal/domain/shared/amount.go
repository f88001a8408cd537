package shared

import "github.com/shopspring/decimal"

// AmountPlaces is the number of decimal places posted amounts carry
const AmountPlaces = 2

// RoundAmount rounds a monetary value half away from zero to AmountPlaces
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountPlaces)
}

// ZeroIfNull returns the value of a nullable decimal, or zero when unset
func ZeroIfNull(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return d.Decimal
}
