package calc

import (
	"github.com/shopspring/decimal"

	"github.com/energiekompas/energiekompas-go/convert"
	"github.com/energiekompas/energiekompas-go/types"
)

// DynamicCost computes the supplier side of a dynamic contract: average
// market prices plus the supplier markup per unit. Dual registers are
// billed at the day/night market averages directly; a single register is
// billed at a blend of the two weighted by the day window's share of the
// day. Exported surplus beyond what netting consumed is valued at the day
// market price minus the feed-in markup, floored at zero.
func DynamicCost(net NetConsumption, profile ConsumptionProfile, tariff DynamicTariff, market types.MarketPriceAverages, dayShare float64) SupplierCost {
	var c SupplierCost

	if profile.HasSingleRegister {
		blended := weightedMarketAverage(market.ElectricityDay, market.ElectricityNight, dayShare)
		c.Electricity = convert.KwhDecimal(net.PeakKwh).Mul(blended.Add(tariff.MarkupElectricity))
	} else {
		dayPrice := market.ElectricityDay.Add(tariff.MarkupElectricity)
		nightPrice := market.ElectricityNight.Add(tariff.MarkupElectricity)
		c.Electricity = convert.KwhDecimal(net.PeakKwh).Mul(dayPrice).
			Add(convert.KwhDecimal(net.OffPeakKwh).Mul(nightPrice))
	}

	c.Gas = convert.KwhDecimal(profile.GasM3).Mul(market.Gas.Add(tariff.MarkupGas))

	c.FixedFees = yearlyFixedFees(tariff.FixedFeeElectricityMonth, tariff.FixedFeeGasMonth, profile.HasGasConnection())

	if net.SurplusKwh > 0 {
		surplusRate := market.ElectricityDay.Sub(tariff.MarkupFeedIn)
		if surplusRate.IsNegative() {
			surplusRate = decimal.Zero
		}
		c.SurplusRevenue = convert.KwhDecimal(net.SurplusKwh).Mul(surplusRate)
	}

	// Surplus revenue is settled by the aggregator, not part of the subtotal.
	c.Subtotal = c.Electricity.Add(c.Gas).Add(c.FixedFees)
	return c
}

func weightedMarketAverage(day, night decimal.Decimal, dayShare float64) decimal.Decimal {
	share := decimal.NewFromFloat(dayShare)
	return day.Mul(share).Add(night.Mul(decimal.NewFromInt(1).Sub(share)))
}
