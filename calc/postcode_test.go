package calc

import (
	"errors"
	"testing"
)

func TestNormalizePostcode(t *testing.T) {
	valid := map[string]string{
		"1234AB":    "1234AB",
		"1234 ab":   "1234AB",
		" 9999 zz ": "9999ZZ",
		"1012wx":    "1012WX",
	}
	for in, want := range valid {
		got, err := NormalizePostcode(in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("%q: got %q, wanted %q", in, got, want)
		}
	}

	invalid := []string{"", "123AB", "12345AB", "0123AB", "1234A", "1234ABC", "AB1234"}
	for _, in := range invalid {
		if _, err := NormalizePostcode(in); err == nil {
			t.Errorf("%q: expected error", in)
		} else {
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Errorf("%q: got %T, wanted *InvalidInputError", in, err)
			}
		}
	}
}
