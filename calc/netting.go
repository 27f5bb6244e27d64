package calc

// Dutch net-metering ("saldering"): solar feed-in offsets consumption
// before anything is taxed or billed, up to the amount consumed. Feed-in
// beyond gross consumption is never carried forward as a credit here;
// dynamic contracts value that surplus separately.

// NetConsumption is the billable consumption after settlement, kept on
// the breakdown for auditability.
type NetConsumption struct {
	PeakKwh    float64
	OffPeakKwh float64
	TotalKwh   float64
	// NettedKwh is the feed-in actually offset against consumption.
	NettedKwh float64
	// SurplusKwh is feed-in beyond gross consumption, max(0, feedIn - gross).
	SurplusKwh float64
}

// Settle computes net billable consumption per register. For dual-register
// meters the feed-in is split evenly over both registers; when one register
// is over-subtracted the deficit cascades to the other, and both floors at
// zero. The cascade is symmetric: either register may be the one that runs
// out first.
func Settle(p ConsumptionProfile) NetConsumption {
	gross := p.GrossElectricityKwh()
	n := NetConsumption{
		PeakKwh:    p.ElectricityPeakKwh,
		OffPeakKwh: p.ElectricityOffPeakKwh,
	}

	if p.SolarFeedInKwh > 0 {
		if p.HasSingleRegister {
			n.PeakKwh = max(0, p.ElectricityPeakKwh-p.SolarFeedInKwh)
		} else {
			half := p.SolarFeedInKwh / 2
			peak := p.ElectricityPeakKwh - half
			offPeak := p.ElectricityOffPeakKwh - half
			if peak < 0 {
				offPeak += peak // carry the deficit over
				peak = 0
			} else if offPeak < 0 {
				peak += offPeak
				offPeak = 0
			}
			n.PeakKwh = max(0, peak)
			n.OffPeakKwh = max(0, offPeak)
		}
		n.NettedKwh = min(p.SolarFeedInKwh, gross)
		n.SurplusKwh = max(0, p.SolarFeedInKwh-gross)
	}

	n.TotalKwh = n.PeakKwh + n.OffPeakKwh
	return n
}
