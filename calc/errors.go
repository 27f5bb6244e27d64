package calc

import "fmt"

// All calculation errors are terminal for the single request: they stem
// from bad input or absent reference data, never transient failure, so
// nothing here is retried.

// NotFoundError means no grid operator range covers the postcode.
type NotFoundError struct {
	Postcode string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no grid operator registered for postcode %s", e.Postcode)
}

// InvalidCapacityCodeError means a connection capacity code could not be
// classified as kleinverbruik or grootverbruik.
type InvalidCapacityCodeError struct {
	Code string
}

func (e *InvalidCapacityCodeError) Error() string {
	return fmt.Sprintf("unrecognized connection capacity code %q", e.Code)
}

// MissingTariffError means a reference-data row (tax tariff, grid fee,
// supplier contract or market price average) is absent. This is business
// data absence, not a programming fault.
type MissingTariffError struct {
	Kind string // "tax", "grid_fee", "supplier", "market_price"
	Key  string
	Year int
}

func (e *MissingTariffError) Error() string {
	if e.Year > 0 {
		return fmt.Sprintf("no %s tariff for %q in %d", e.Kind, e.Key, e.Year)
	}
	return fmt.Sprintf("no %s tariff for %q", e.Kind, e.Key)
}

// InvalidInputError rejects a request before any computation happens.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for %s: %s", e.Field, e.Message)
}
