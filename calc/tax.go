package calc

import (
	"github.com/shopspring/decimal"

	"github.com/energiekompas/energiekompas-go/convert"
)

// Energiebelasting (EB): government energy tax on net consumption in
// ascending brackets. Kleinverbruik electricity uses the 2-bracket
// schedule and gets the fixed annual rebate (vermindering); grootverbruik
// uses all 4 brackets and gets no rebate. Gas is always 2 brackets.

// TaxTariff is one year's government tax rate table. Bracket maxima are
// cumulative boundaries, not bracket sizes; the top rate is unbounded.
type TaxTariff struct {
	Year int

	ElectricityBracket1Max float64
	ElectricityBracket2Max float64
	ElectricityBracket3Max float64
	ElectricityRate1       decimal.Decimal
	ElectricityRate2       decimal.Decimal
	ElectricityRate3       decimal.Decimal
	ElectricityRate4       decimal.Decimal

	GasBracket1Max float64
	GasRate1       decimal.Decimal
	GasRate2       decimal.Decimal

	// ElectricityRebate is the fixed annual vermindering energiebelasting,
	// kleinverbruik connections only.
	ElectricityRebate decimal.Decimal

	// VatPercentage as a fraction, e.g. 0.21 for 21%.
	VatPercentage decimal.Decimal
}

type TaxResult struct {
	ElectricityTax decimal.Decimal
	GasTax         decimal.Decimal
	// Rebate is the full rebate the connection is entitled to; NetTax is
	// floored at zero, so the deductible part may be smaller.
	Rebate decimal.Decimal
	NetTax decimal.Decimal
}

// CalculateTax computes the energy tax for net electricity consumption and
// gross gas consumption under the given year's tariff.
func CalculateTax(netElectricityKwh, gasM3 float64, isLargeElectricityConnection bool, tariff TaxTariff) TaxResult {
	var r TaxResult

	if isLargeElectricityConnection {
		r.ElectricityTax = progressiveTax(netElectricityKwh,
			[]float64{tariff.ElectricityBracket1Max, tariff.ElectricityBracket2Max, tariff.ElectricityBracket3Max},
			[]decimal.Decimal{tariff.ElectricityRate1, tariff.ElectricityRate2, tariff.ElectricityRate3, tariff.ElectricityRate4})
	} else {
		r.ElectricityTax = progressiveTax(netElectricityKwh,
			[]float64{tariff.ElectricityBracket1Max},
			[]decimal.Decimal{tariff.ElectricityRate1, tariff.ElectricityRate2})
		r.Rebate = tariff.ElectricityRebate
	}

	r.GasTax = progressiveTax(gasM3,
		[]float64{tariff.GasBracket1Max},
		[]decimal.Decimal{tariff.GasRate1, tariff.GasRate2})

	r.NetTax = r.ElectricityTax.Add(r.GasTax).Sub(r.Rebate)
	if r.NetTax.IsNegative() {
		r.NetTax = decimal.Zero
	}

	return r
}

// progressiveTax taxes each bracket's portion of the consumption at that
// bracket's rate, by successive subtraction of bracket widths. boundaries
// are the cumulative maxima; rates has one more entry for the unbounded
// top bracket.
func progressiveTax(amount float64, boundaries []float64, rates []decimal.Decimal) decimal.Decimal {
	tax := decimal.Zero
	if amount <= 0 {
		return tax
	}

	remaining := amount
	previousMax := 0.0

	for i, boundary := range boundaries {
		if remaining <= 0 {
			return tax
		}
		width := boundary - previousMax
		inBracket := min(remaining, width)
		tax = tax.Add(convert.KwhDecimal(inBracket).Mul(rates[i]))
		remaining -= inBracket
		previousMax = boundary
	}

	if remaining > 0 {
		tax = tax.Add(convert.KwhDecimal(remaining).Mul(rates[len(rates)-1]))
	}

	return tax
}
