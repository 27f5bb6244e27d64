package hours

import (
	"math"
	"testing"
)

func TestDefaultDayWindow(t *testing.T) {
	w := DefaultDayWindow()
	if w.DayHours() != 17 {
		t.Errorf("got %d day hours, wanted 17", w.DayHours())
	}
	if w.NightHours() != 7 {
		t.Errorf("got %d night hours, wanted 7", w.NightHours())
	}
	if math.Abs(w.DayShare()-17.0/24.0) > 1e-9 {
		t.Errorf("got day share %f, wanted %f", w.DayShare(), 17.0/24.0)
	}
}

func TestIsDayHour(t *testing.T) {
	w := DefaultDayWindow()
	for hour, want := range map[int]bool{0: false, 5: false, 6: true, 12: true, 22: true, 23: false} {
		if got := w.IsDayHour(hour); got != want {
			t.Errorf("hour %d: got %v, wanted %v", hour, got, want)
		}
	}
}

func TestNewDayWindow(t *testing.T) {
	if _, err := NewDayWindow(7, 21); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range [][2]int{{-1, 23}, {6, 25}, {23, 6}, {12, 12}} {
		if _, err := NewDayWindow(bad[0], bad[1]); err == nil {
			t.Errorf("expected error for window %d-%d", bad[0], bad[1])
		}
	}
}
