package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/energiekompas/energiekompas-go/calc"
)

type GridFeeRow struct {
	OperatorID   string
	Year         int
	CapacityCode string
	AnnualFee    decimal.Decimal
}

func (d *Database) SaveGridFee(ctx context.Context, row GridFeeRow) error {
	_, err := d.write.ExecContext(ctx, `
		INSERT INTO grid_fee (operator_id, year, capacity_code, annual_fee) VALUES (?, ?, ?, ?)
		ON CONFLICT(operator_id, year, capacity_code) DO UPDATE SET annual_fee = excluded.annual_fee`,
		row.OperatorID, row.Year, row.CapacityCode, row.AnnualFee.String())
	if err != nil {
		return fmt.Errorf("saving grid fee %s/%d/%s: %w", row.OperatorID, row.Year, row.CapacityCode, err)
	}
	return nil
}

// GridFee returns the annual all-in grid fee for a kleinverbruik capacity
// code. There are no rows for grootverbruik codes; the engine never asks
// for those.
func (d *Database) GridFee(ctx context.Context, operatorID string, year int, capacityCode string) (decimal.Decimal, error) {
	row := d.read.QueryRowContext(ctx, `
		SELECT annual_fee FROM grid_fee
		WHERE operator_id = ? AND year = ? AND capacity_code = ?`,
		operatorID, year, capacityCode)

	var fee string
	if err := row.Scan(&fee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, &calc.MissingTariffError{Kind: "grid_fee", Key: operatorID + "/" + capacityCode, Year: year}
		}
		return decimal.Zero, fmt.Errorf("fetching grid fee %s/%d/%s: %w", operatorID, year, capacityCode, err)
	}

	return parseDecimal("annual_fee", fee)
}
