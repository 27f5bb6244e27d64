package hours

import "fmt"

// Default day window for Dutch dual-register meters: peak rate applies
// from 06:00 up to (not including) 23:00, off-peak the remaining hours.
const (
	DefaultDayStart = 6
	DefaultDayEnd   = 23
)

// DayWindow describes which hours of the day count as "day" (peak) hours.
// End is exclusive, so {6, 23} covers 06:00-22:59.
type DayWindow struct {
	Start int
	End   int
}

func NewDayWindow(start, end int) (DayWindow, error) {
	if start < 0 || start > 23 || end < 1 || end > 24 || start >= end {
		return DayWindow{}, fmt.Errorf("invalid day window %d-%d", start, end)
	}
	return DayWindow{Start: start, End: end}, nil
}

func DefaultDayWindow() DayWindow {
	return DayWindow{Start: DefaultDayStart, End: DefaultDayEnd}
}

func (w DayWindow) DayHours() int {
	return w.End - w.Start
}

func (w DayWindow) NightHours() int {
	return 24 - w.DayHours()
}

// DayShare is the fraction of a day covered by the day window,
// used to blend day/night market prices for single-register billing.
func (w DayWindow) DayShare() float64 {
	return float64(w.DayHours()) / 24.0
}

func (w DayWindow) IsDayHour(hour int) bool {
	return hour >= w.Start && hour < w.End
}
