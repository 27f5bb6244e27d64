package calc

import (
	"regexp"
	"strconv"
	"strings"
)

// Kleinverbruik/grootverbruik classification. Grootverbruik electricity
// starts above 3x80A service; grootverbruik gas above a G25 meter. Codes
// explicitly flagged "grootverbruik" are large regardless of size.
// Classification is pure and deterministic, no I/O involved.

var (
	electricityCodeRe = regexp.MustCompile(`^(?i)(>?)\s*([13])x(\d{1,3})A$`)
	gasCodeRe         = regexp.MustCompile(`^(?i)G(\d{1,3}(?:[.,]\d)?)$`)
)

const (
	maxSmallElectricityAmps = 80
	maxSmallGasMeter        = 25.0
)

func ClassifyElectricityCapacity(code string) (isLarge bool, err error) {
	trimmed := strings.TrimSpace(code)
	if strings.EqualFold(trimmed, "grootverbruik") {
		return true, nil
	}

	m := electricityCodeRe.FindStringSubmatch(trimmed)
	if m == nil {
		return false, &InvalidCapacityCodeError{Code: code}
	}

	amps, err := strconv.Atoi(m[3])
	if err != nil || amps == 0 {
		return false, &InvalidCapacityCodeError{Code: code}
	}

	// ">3x80A" style codes denote anything beyond the largest small service.
	if m[1] == ">" {
		return true, nil
	}

	phases := m[2]
	return phases == "3" && amps > maxSmallElectricityAmps, nil
}

func ClassifyGasCapacity(code string) (isLarge bool, err error) {
	trimmed := strings.TrimSpace(code)
	if strings.EqualFold(trimmed, "grootverbruik") {
		return true, nil
	}

	m := gasCodeRe.FindStringSubmatch(trimmed)
	if m == nil {
		return false, &InvalidCapacityCodeError{Code: code}
	}

	size, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil || size == 0 {
		return false, &InvalidCapacityCodeError{Code: code}
	}

	return size > maxSmallGasMeter, nil
}
