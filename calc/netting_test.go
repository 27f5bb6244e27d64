package calc

import (
	"math"
	"testing"
)

func TestSettleWithoutFeedIn(t *testing.T) {
	net := Settle(ConsumptionProfile{ElectricityPeakKwh: 3000, ElectricityOffPeakKwh: 1500})
	checkNet(t, net, 3000, 1500, 0, 0)
}

func TestSettleSingleRegister(t *testing.T) {
	net := Settle(ConsumptionProfile{ElectricityPeakKwh: 3000, SolarFeedInKwh: 1200, HasSingleRegister: true})
	checkNet(t, net, 1800, 0, 1200, 0)

	net = Settle(ConsumptionProfile{ElectricityPeakKwh: 1000, SolarFeedInKwh: 2500, HasSingleRegister: true})
	checkNet(t, net, 0, 0, 1000, 1500)
}

func TestSettleDualRegisterEvenSplit(t *testing.T) {
	net := Settle(ConsumptionProfile{ElectricityPeakKwh: 3000, ElectricityOffPeakKwh: 1500, SolarFeedInKwh: 2000})
	checkNet(t, net, 2000, 500, 2000, 0)
}

func TestSettleOverflowFromOffPeakToPeak(t *testing.T) {
	// Off-peak runs out first: 500 - 1000 = -500 cascades into peak.
	net := Settle(ConsumptionProfile{ElectricityPeakKwh: 3000, ElectricityOffPeakKwh: 500, SolarFeedInKwh: 2000})
	checkNet(t, net, 1500, 0, 2000, 0)
}

func TestSettleOverflowFromPeakToOffPeak(t *testing.T) {
	net := Settle(ConsumptionProfile{ElectricityPeakKwh: 500, ElectricityOffPeakKwh: 3000, SolarFeedInKwh: 2000})
	checkNet(t, net, 0, 1500, 2000, 0)
}

func TestSettleFeedInExceedsConsumption(t *testing.T) {
	// Both registers floor at zero and the excess becomes surplus,
	// never a negative bill.
	net := Settle(ConsumptionProfile{ElectricityPeakKwh: 2000, ElectricityOffPeakKwh: 1000, SolarFeedInKwh: 5000})
	checkNet(t, net, 0, 0, 3000, 2000)
}

func TestSettleConservation(t *testing.T) {
	// netPeak + netOffPeak + min(feedIn, gross) == gross whenever
	// feedIn <= gross: netting only ever reduces billable consumption.
	profiles := []ConsumptionProfile{
		{ElectricityPeakKwh: 3000, ElectricityOffPeakKwh: 1500, SolarFeedInKwh: 0},
		{ElectricityPeakKwh: 3000, ElectricityOffPeakKwh: 1500, SolarFeedInKwh: 1000},
		{ElectricityPeakKwh: 3000, ElectricityOffPeakKwh: 500, SolarFeedInKwh: 2000},
		{ElectricityPeakKwh: 200, ElectricityOffPeakKwh: 4000, SolarFeedInKwh: 4200},
		{ElectricityPeakKwh: 1234.5, ElectricityOffPeakKwh: 678.9, SolarFeedInKwh: 1500.25},
	}
	for _, p := range profiles {
		gross := p.GrossElectricityKwh()
		net := Settle(p)
		got := net.PeakKwh + net.OffPeakKwh + min(p.SolarFeedInKwh, gross)
		if !almostEqual(got, gross) {
			t.Errorf("profile %+v: got %f, wanted %f", p, got, gross)
		}
	}
}

func TestSettleSingleVsDualConsistency(t *testing.T) {
	// A single-register profile must net the same as an equivalent
	// dual-register profile with everything on the peak register.
	for _, feedIn := range []float64{0, 500, 3000, 6000} {
		single := Settle(ConsumptionProfile{ElectricityPeakKwh: 4000, SolarFeedInKwh: feedIn, HasSingleRegister: true})
		dual := Settle(ConsumptionProfile{ElectricityPeakKwh: 4000, SolarFeedInKwh: feedIn})
		if !almostEqual(single.TotalKwh, dual.TotalKwh) {
			t.Errorf("feedIn %f: single total %f, dual total %f", feedIn, single.TotalKwh, dual.TotalKwh)
		}
		if !almostEqual(single.SurplusKwh, dual.SurplusKwh) {
			t.Errorf("feedIn %f: single surplus %f, dual surplus %f", feedIn, single.SurplusKwh, dual.SurplusKwh)
		}
	}
}

func checkNet(t *testing.T, net NetConsumption, peak, offPeak, netted, surplus float64) {
	t.Helper()
	if !almostEqual(net.PeakKwh, peak) {
		t.Errorf("got net peak %f, wanted %f", net.PeakKwh, peak)
	}
	if !almostEqual(net.OffPeakKwh, offPeak) {
		t.Errorf("got net off-peak %f, wanted %f", net.OffPeakKwh, offPeak)
	}
	if !almostEqual(net.TotalKwh, peak+offPeak) {
		t.Errorf("got net total %f, wanted %f", net.TotalKwh, peak+offPeak)
	}
	if !almostEqual(net.NettedKwh, netted) {
		t.Errorf("got netted %f, wanted %f", net.NettedKwh, netted)
	}
	if !almostEqual(net.SurplusKwh, surplus) {
		t.Errorf("got surplus %f, wanted %f", net.SurplusKwh, surplus)
	}
}

func almostEqual(f1 float64, f2 float64) bool {
	return math.Abs(f1-f2) < 1e-9
}
