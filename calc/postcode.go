package calc

import (
	"regexp"
	"strings"
)

var postcodeRe = regexp.MustCompile(`^\s*([1-9][0-9]{3})\s*([A-Za-z]{2})\s*$`)

// NormalizePostcode turns user input like "1234 ab" into the canonical
// "1234AB" form that postcode-range lookups compare lexicographically.
func NormalizePostcode(postcode string) (string, error) {
	m := postcodeRe.FindStringSubmatch(postcode)
	if m == nil {
		return "", &InvalidInputError{Field: "postcode", Message: "must be 4 digits followed by 2 letters"}
	}
	return m[1] + strings.ToUpper(m[2]), nil
}
