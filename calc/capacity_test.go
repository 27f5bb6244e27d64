package calc

import (
	"errors"
	"testing"
)

func TestClassifyElectricityCapacity(t *testing.T) {
	small := []string{"1x25A", "1x35A", "1x40A", "3x25A", "3x35A", "3x50A", "3x63A", "3x80A", "3x80a"}
	for _, code := range small {
		checkClassification(t, code, ClassifyElectricityCapacity, false)
	}

	large := []string{"3x100A", "3x125A", ">3x80A", "> 3x80A", "grootverbruik", "Grootverbruik"}
	for _, code := range large {
		checkClassification(t, code, ClassifyElectricityCapacity, true)
	}
}

func TestClassifyGasCapacity(t *testing.T) {
	small := []string{"G1.6", "G2.5", "G4", "G6", "G10", "G16", "G25", "g6"}
	for _, code := range small {
		checkClassification(t, code, ClassifyGasCapacity, false)
	}

	large := []string{"G40", "G65", "G100", "grootverbruik"}
	for _, code := range large {
		checkClassification(t, code, ClassifyGasCapacity, true)
	}
}

func TestClassifyUnrecognizedCodes(t *testing.T) {
	for _, code := range []string{"", "25A", "2x25A", "3x25", "G", "GG6", "3xA", "G0"} {
		_, errE := ClassifyElectricityCapacity(code)
		if errE == nil {
			t.Errorf("electricity classifier accepted %q", code)
			continue
		}
		var capErr *InvalidCapacityCodeError
		if !errors.As(errE, &capErr) {
			t.Errorf("code %q: got %T, wanted *InvalidCapacityCodeError", code, errE)
		}
		if _, errG := ClassifyGasCapacity(code); errG == nil {
			t.Errorf("gas classifier accepted %q", code)
		}
	}
}

func checkClassification(t *testing.T, code string, classify func(string) (bool, error), wantLarge bool) {
	t.Helper()
	isLarge, err := classify(code)
	if err != nil {
		t.Errorf("code %q: unexpected error: %v", code, err)
		return
	}
	if isLarge != wantLarge {
		t.Errorf("code %q: got isLarge=%v, wanted %v", code, isLarge, wantLarge)
	}
}
