package calc

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testTariff() TaxTariff {
	return TaxTariff{
		Year:                   2025,
		ElectricityBracket1Max: 2900,
		ElectricityBracket2Max: 10000,
		ElectricityBracket3Max: 50000,
		ElectricityRate1:       decimal.RequireFromString("0.10154"),
		ElectricityRate2:       decimal.RequireFromString("0.06937"),
		ElectricityRate3:       decimal.RequireFromString("0.03868"),
		ElectricityRate4:       decimal.RequireFromString("0.00324"),
		GasBracket1Max:         1000,
		GasRate1:               decimal.RequireFromString("0.57816"),
		GasRate2:               decimal.RequireFromString("0.50000"),
		ElectricityRebate:      decimal.RequireFromString("524.95"),
		VatPercentage:          decimal.RequireFromString("0.21"),
	}
}

func TestSmallConnectionTax(t *testing.T) {
	r := CalculateTax(4500, 1200, false, testTariff())

	// 2900 * 0.10154 + 1600 * 0.06937
	checkDecimal(t, "electricity tax", r.ElectricityTax, "405.458")
	// 1000 * 0.57816 + 200 * 0.50000
	checkDecimal(t, "gas tax", r.GasTax, "678.16")
	checkDecimal(t, "rebate", r.Rebate, "524.95")
	checkDecimal(t, "net tax", r.NetTax, "558.668")
}

func TestLargeConnectionTax(t *testing.T) {
	r := CalculateTax(60000, 0, true, testTariff())

	// 2900*0.10154 + 7100*0.06937 + 40000*0.03868 + 10000*0.00324
	checkDecimal(t, "electricity tax", r.ElectricityTax, "2366.593")
	checkDecimal(t, "gas tax", r.GasTax, "0")
	// No rebate for grootverbruik.
	checkDecimal(t, "rebate", r.Rebate, "0")
	checkDecimal(t, "net tax", r.NetTax, "2366.593")
}

func TestRebateFloorsNetTaxAtZero(t *testing.T) {
	r := CalculateTax(100, 0, false, testTariff())

	checkDecimal(t, "electricity tax", r.ElectricityTax, "10.154")
	checkDecimal(t, "rebate", r.Rebate, "524.95")
	if !r.NetTax.IsZero() {
		t.Errorf("got net tax %s, wanted 0", r.NetTax)
	}
}

func TestTaxContinuityAtBracketBoundaries(t *testing.T) {
	tariff := testTariff()
	for _, boundary := range []float64{tariff.ElectricityBracket1Max, tariff.ElectricityBracket2Max, tariff.ElectricityBracket3Max} {
		below := CalculateTax(boundary, 0, true, tariff).ElectricityTax
		above := CalculateTax(boundary+0.00001, 0, true, tariff).ElectricityTax
		diff := above.Sub(below)
		if diff.IsNegative() || diff.GreaterThan(decimal.RequireFromString("0.001")) {
			t.Errorf("tax discontinuous at %f: below %s, above %s", boundary, below, above)
		}
	}
}

func TestTaxMonotonicity(t *testing.T) {
	tariff := testTariff()
	previous := decimal.Zero
	for kwh := 0.0; kwh <= 60000; kwh += 500 {
		tax := CalculateTax(kwh, 0, true, tariff).ElectricityTax
		if tax.LessThan(previous) {
			t.Errorf("tax decreased at %f kWh: %s < %s", kwh, tax, previous)
		}
		previous = tax
	}
}

func TestTaxOnZeroConsumption(t *testing.T) {
	r := CalculateTax(0, 0, true, testTariff())
	if !r.ElectricityTax.IsZero() || !r.GasTax.IsZero() || !r.NetTax.IsZero() {
		t.Errorf("expected all-zero tax, got %+v", r)
	}
}

func checkDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("got %s %s, wanted %s", name, got, want)
	}
}
