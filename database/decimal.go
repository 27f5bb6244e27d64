package database

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

// Rates and amounts are stored as TEXT so tariffs with 5-decimal
// precision survive the round trip exactly.

func parseDecimal(column, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing decimal column %s: %w", column, err)
	}
	return d, nil
}

func parseNullDecimal(column string, value sql.NullString) (decimal.Decimal, error) {
	if !value.Valid {
		return decimal.Zero, nil
	}
	return parseDecimal(column, value.String)
}
