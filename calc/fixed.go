package calc

import (
	"github.com/shopspring/decimal"

	"github.com/energiekompas/energiekompas-go/convert"
)

var monthsPerYear = decimal.NewFromInt(12)

// FixedCost computes the supplier side of a fixed or bespoke contract.
// Net consumption is billed at flat per-unit rates; gross feed-in is paid
// out at the feed-in rate regardless of how much of it was netted, since
// netting reduces the billed consumption while compensation pays for
// everything exported.
func FixedCost(net NetConsumption, profile ConsumptionProfile, tariff FixedTariff) SupplierCost {
	var c SupplierCost

	if profile.HasSingleRegister {
		c.Electricity = convert.KwhDecimal(net.PeakKwh).Mul(tariff.SingleRate)
	} else {
		c.Electricity = convert.KwhDecimal(net.PeakKwh).Mul(tariff.PeakRate).
			Add(convert.KwhDecimal(net.OffPeakKwh).Mul(tariff.OffPeakRate))
	}

	// Gas is never net-metered.
	c.Gas = convert.KwhDecimal(profile.GasM3).Mul(tariff.GasRate)

	c.FixedFees = yearlyFixedFees(tariff.FixedFeeElectricityMonth, tariff.FixedFeeGasMonth, profile.HasGasConnection())

	if profile.SolarFeedInKwh > 0 {
		c.FeedInCompensation = convert.KwhDecimal(profile.SolarFeedInKwh).Mul(tariff.FeedInRate)
	}

	c.Subtotal = c.Electricity.Add(c.Gas).Add(c.FixedFees).Sub(c.FeedInCompensation)
	return c
}

// yearlyFixedFees annualizes the vastrecht; the gas fee is omitted
// entirely when there is no gas connection.
func yearlyFixedFees(electricityMonth, gasMonth decimal.Decimal, hasGas bool) decimal.Decimal {
	fees := electricityMonth
	if hasGas {
		fees = fees.Add(gasMonth)
	}
	return fees.Mul(monthsPerYear)
}
