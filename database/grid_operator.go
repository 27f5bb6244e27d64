package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/energiekompas/energiekompas-go/calc"
)

type GridOperatorRow struct {
	ID   string
	Name string
}

type GridOperatorRangeRow struct {
	OperatorID string
	RangeStart string
	RangeEnd   string
}

func (d *Database) SaveGridOperator(ctx context.Context, row GridOperatorRow) error {
	_, err := d.write.ExecContext(ctx, `
		INSERT INTO grid_operator (id, name) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		row.ID, row.Name)
	if err != nil {
		return fmt.Errorf("saving grid operator %s: %w", row.ID, err)
	}
	return nil
}

func (d *Database) SaveGridOperatorRange(ctx context.Context, row GridOperatorRangeRow) error {
	_, err := d.write.ExecContext(ctx, `
		INSERT INTO grid_operator_range (operator_id, range_start, range_end) VALUES (?, ?, ?)
		ON CONFLICT(operator_id, range_start) DO UPDATE SET range_end = excluded.range_end`,
		row.OperatorID, row.RangeStart, row.RangeEnd)
	if err != nil {
		return fmt.Errorf("saving grid operator range %s %s-%s: %w", row.OperatorID, row.RangeStart, row.RangeEnd, err)
	}
	return nil
}

// GridOperatorForPostcode resolves the netbeheerder whose registered
// postcode range covers the normalized postcode. Range comparison is
// lexicographic on the "1234AB" form.
func (d *Database) GridOperatorForPostcode(ctx context.Context, postcode string) (calc.GridOperator, error) {
	row := d.read.QueryRowContext(ctx, `
		SELECT o.id, o.name
		FROM grid_operator_range r
		JOIN grid_operator o ON o.id = r.operator_id
		WHERE ? BETWEEN r.range_start AND r.range_end
		LIMIT 1`,
		postcode)

	var op calc.GridOperator
	if err := row.Scan(&op.ID, &op.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calc.GridOperator{}, &calc.NotFoundError{Postcode: postcode}
		}
		return calc.GridOperator{}, fmt.Errorf("resolving grid operator for %s: %w", postcode, err)
	}

	return op, nil
}

func (d *Database) ListGridOperators(ctx context.Context) ([]GridOperatorRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT id, name FROM grid_operator ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("fetching grid operators: %w", err)
	}
	defer rows.Close()

	var operators []GridOperatorRow
	for rows.Next() {
		var op GridOperatorRow
		if err := rows.Scan(&op.ID, &op.Name); err != nil {
			return nil, fmt.Errorf("scanning grid operator row: %w", err)
		}
		operators = append(operators, op)
	}

	return operators, rows.Err()
}
