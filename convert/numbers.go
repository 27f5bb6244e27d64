package convert

import "github.com/shopspring/decimal"

// Cents rounds a monetary amount to whole cents.
func Cents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// PerUnit rounds a per-kWh/per-m3 rate to tariff precision (5 decimals).
func PerUnit(rate decimal.Decimal) decimal.Decimal {
	return rate.Round(5)
}

// KwhDecimal lifts a consumption quantity (kWh or m3) into decimal math.
func KwhDecimal(kwh float64) decimal.Decimal {
	return decimal.NewFromFloat(kwh)
}
