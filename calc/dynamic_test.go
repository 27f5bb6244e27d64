package calc

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/energiekompas/energiekompas-go/types"
)

func testDynamicTariff() DynamicTariff {
	return DynamicTariff{
		MarkupElectricity:        decimal.RequireFromString("0.02"),
		MarkupGas:                decimal.RequireFromString("0.03"),
		MarkupFeedIn:             decimal.RequireFromString("0.01"),
		FixedFeeElectricityMonth: decimal.RequireFromString("5"),
		FixedFeeGasMonth:         decimal.RequireFromString("5"),
	}
}

func testMarket() types.MarketPriceAverages {
	return types.MarketPriceAverages{
		ElectricityDay:   decimal.RequireFromString("0.25"),
		ElectricityNight: decimal.RequireFromString("0.20"),
		Gas:              decimal.RequireFromString("0.45"),
	}
}

const testDayShare = 17.0 / 24.0

func TestDynamicCostDualRegister(t *testing.T) {
	profile := ConsumptionProfile{ElectricityPeakKwh: 3000, ElectricityOffPeakKwh: 1500, GasM3: 1200}
	cost := DynamicCost(Settle(profile), profile, testDynamicTariff(), testMarket(), testDayShare)

	checkDecimal(t, "electricity", cost.Electricity, "1140") // 3000*0.27 + 1500*0.22
	checkDecimal(t, "gas", cost.Gas, "576")                  // 1200*0.48
	checkDecimal(t, "fixed fees", cost.FixedFees, "120")
	checkDecimal(t, "surplus revenue", cost.SurplusRevenue, "0")
	checkDecimal(t, "subtotal", cost.Subtotal, "1836")
}

func TestDynamicCostSingleRegisterWeighting(t *testing.T) {
	profile := ConsumptionProfile{ElectricityPeakKwh: 3000, HasSingleRegister: true}
	cost := DynamicCost(Settle(profile), profile, testDynamicTariff(), testMarket(), testDayShare)

	// Blended market price 0.25*17/24 + 0.20*7/24, plus 0.02 markup.
	checkCents(t, "electricity", cost.Electricity, "766.25")
	checkCents(t, "subtotal", cost.Subtotal, "826.25")
}

func TestDynamicCostSurplusValuation(t *testing.T) {
	profile := ConsumptionProfile{ElectricityPeakKwh: 2000, ElectricityOffPeakKwh: 1000, SolarFeedInKwh: 5000}
	cost := DynamicCost(Settle(profile), profile, testDynamicTariff(), testMarket(), testDayShare)

	checkDecimal(t, "electricity", cost.Electricity, "0")
	// 2000 surplus kWh at marketDay - markupFeedIn = 0.24.
	checkDecimal(t, "surplus revenue", cost.SurplusRevenue, "480")
	// Surplus revenue is not folded into the supplier subtotal.
	checkDecimal(t, "subtotal", cost.Subtotal, "60")
}

func TestDynamicCostSurplusRateNeverNegative(t *testing.T) {
	profile := ConsumptionProfile{ElectricityPeakKwh: 100, SolarFeedInKwh: 2000, HasSingleRegister: true}
	tariff := testDynamicTariff()
	tariff.MarkupFeedIn = decimal.RequireFromString("0.40") // exceeds the day price

	cost := DynamicCost(Settle(profile), profile, tariff, testMarket(), testDayShare)
	checkDecimal(t, "surplus revenue", cost.SurplusRevenue, "0")
}

func checkCents(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Round(2).Equal(decimal.RequireFromString(want)) {
		t.Errorf("got %s %s, wanted %s", name, got.Round(2), want)
	}
}
