package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/energiekompas/energiekompas-go/calc"
)

func (d *Database) SaveTaxTariff(ctx context.Context, t calc.TaxTariff) error {
	_, err := d.write.ExecContext(ctx, `
		INSERT INTO tax_tariff (
			year,
			electricity_bracket1_max, electricity_bracket2_max, electricity_bracket3_max,
			electricity_rate1, electricity_rate2, electricity_rate3, electricity_rate4,
			gas_bracket1_max, gas_rate1, gas_rate2,
			electricity_rebate, vat_percentage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(year) DO UPDATE SET
			electricity_bracket1_max = excluded.electricity_bracket1_max,
			electricity_bracket2_max = excluded.electricity_bracket2_max,
			electricity_bracket3_max = excluded.electricity_bracket3_max,
			electricity_rate1 = excluded.electricity_rate1,
			electricity_rate2 = excluded.electricity_rate2,
			electricity_rate3 = excluded.electricity_rate3,
			electricity_rate4 = excluded.electricity_rate4,
			gas_bracket1_max = excluded.gas_bracket1_max,
			gas_rate1 = excluded.gas_rate1,
			gas_rate2 = excluded.gas_rate2,
			electricity_rebate = excluded.electricity_rebate,
			vat_percentage = excluded.vat_percentage`,
		t.Year,
		t.ElectricityBracket1Max, t.ElectricityBracket2Max, t.ElectricityBracket3Max,
		t.ElectricityRate1.String(), t.ElectricityRate2.String(), t.ElectricityRate3.String(), t.ElectricityRate4.String(),
		t.GasBracket1Max, t.GasRate1.String(), t.GasRate2.String(),
		t.ElectricityRebate.String(), t.VatPercentage.String())
	if err != nil {
		return fmt.Errorf("saving tax tariff for %d: %w", t.Year, err)
	}
	return nil
}

// GovernmentTaxTariff returns the energiebelasting rate table for a year.
func (d *Database) GovernmentTaxTariff(ctx context.Context, year int) (calc.TaxTariff, error) {
	row := d.read.QueryRowContext(ctx, `
		SELECT
			year,
			electricity_bracket1_max, electricity_bracket2_max, electricity_bracket3_max,
			electricity_rate1, electricity_rate2, electricity_rate3, electricity_rate4,
			gas_bracket1_max, gas_rate1, gas_rate2,
			electricity_rebate, vat_percentage
		FROM tax_tariff WHERE year = ?`,
		year)

	var t calc.TaxTariff
	var rate1, rate2, rate3, rate4, gasRate1, gasRate2, rebate, vat string
	err := row.Scan(
		&t.Year,
		&t.ElectricityBracket1Max, &t.ElectricityBracket2Max, &t.ElectricityBracket3Max,
		&rate1, &rate2, &rate3, &rate4,
		&t.GasBracket1Max, &gasRate1, &gasRate2,
		&rebate, &vat)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return calc.TaxTariff{}, &calc.MissingTariffError{Kind: "tax", Key: strconv.Itoa(year), Year: year}
		}
		return calc.TaxTariff{}, fmt.Errorf("fetching tax tariff for %d: %w", year, err)
	}

	if t.ElectricityRate1, err = parseDecimal("electricity_rate1", rate1); err != nil {
		return calc.TaxTariff{}, err
	}
	if t.ElectricityRate2, err = parseDecimal("electricity_rate2", rate2); err != nil {
		return calc.TaxTariff{}, err
	}
	if t.ElectricityRate3, err = parseDecimal("electricity_rate3", rate3); err != nil {
		return calc.TaxTariff{}, err
	}
	if t.ElectricityRate4, err = parseDecimal("electricity_rate4", rate4); err != nil {
		return calc.TaxTariff{}, err
	}
	if t.GasRate1, err = parseDecimal("gas_rate1", gasRate1); err != nil {
		return calc.TaxTariff{}, err
	}
	if t.GasRate2, err = parseDecimal("gas_rate2", gasRate2); err != nil {
		return calc.TaxTariff{}, err
	}
	if t.ElectricityRebate, err = parseDecimal("electricity_rebate", rebate); err != nil {
		return calc.TaxTariff{}, err
	}
	if t.VatPercentage, err = parseDecimal("vat_percentage", vat); err != nil {
		return calc.TaxTariff{}, err
	}

	return t, nil
}
