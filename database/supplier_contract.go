package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/energiekompas/energiekompas-go/calc"
)

// SupplierContractRow is a stored supplier price sheet plus display
// metadata for the comparison front end.
type SupplierContractRow struct {
	ID           string
	SupplierName string
	ProductName  string
	Contract     calc.Contract
}

func (d *Database) SaveSupplierContract(ctx context.Context, row SupplierContractRow) error {
	var (
		singleRate, peakRate, offPeakRate, gasRate, feedInRate *string
		markupElectricity, markupGas, markupFeedIn             *string
		fixedFeeElectricity, fixedFeeGas                       string
	)

	switch row.Contract.Type {
	case calc.ContractTypeFixed, calc.ContractTypeBespoke:
		t := row.Contract.Fixed
		if t == nil {
			return fmt.Errorf("contract %s: fixed tariff sheet missing", row.ID)
		}
		singleRate = strPtr(t.SingleRate.String())
		peakRate = strPtr(t.PeakRate.String())
		offPeakRate = strPtr(t.OffPeakRate.String())
		gasRate = strPtr(t.GasRate.String())
		feedInRate = strPtr(t.FeedInRate.String())
		fixedFeeElectricity = t.FixedFeeElectricityMonth.String()
		fixedFeeGas = t.FixedFeeGasMonth.String()
	case calc.ContractTypeDynamic:
		t := row.Contract.Dynamic
		if t == nil {
			return fmt.Errorf("contract %s: dynamic tariff sheet missing", row.ID)
		}
		markupElectricity = strPtr(t.MarkupElectricity.String())
		markupGas = strPtr(t.MarkupGas.String())
		markupFeedIn = strPtr(t.MarkupFeedIn.String())
		fixedFeeElectricity = t.FixedFeeElectricityMonth.String()
		fixedFeeGas = t.FixedFeeGasMonth.String()
	default:
		return fmt.Errorf("contract %s: unsupported contract type %q", row.ID, row.Contract.Type)
	}

	_, err := d.write.ExecContext(ctx, `
		INSERT INTO supplier_contract (
			id, supplier_name, product_name, contract_type,
			single_rate, peak_rate, off_peak_rate, gas_rate, feed_in_rate,
			markup_electricity, markup_gas, markup_feed_in,
			fixed_fee_electricity_month, fixed_fee_gas_month)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			supplier_name = excluded.supplier_name,
			product_name = excluded.product_name,
			contract_type = excluded.contract_type,
			single_rate = excluded.single_rate,
			peak_rate = excluded.peak_rate,
			off_peak_rate = excluded.off_peak_rate,
			gas_rate = excluded.gas_rate,
			feed_in_rate = excluded.feed_in_rate,
			markup_electricity = excluded.markup_electricity,
			markup_gas = excluded.markup_gas,
			markup_feed_in = excluded.markup_feed_in,
			fixed_fee_electricity_month = excluded.fixed_fee_electricity_month,
			fixed_fee_gas_month = excluded.fixed_fee_gas_month`,
		row.ID, row.SupplierName, row.ProductName, string(row.Contract.Type),
		singleRate, peakRate, offPeakRate, gasRate, feedInRate,
		markupElectricity, markupGas, markupFeedIn,
		fixedFeeElectricity, fixedFeeGas)
	if err != nil {
		return fmt.Errorf("saving supplier contract %s: %w", row.ID, err)
	}
	return nil
}

func (d *Database) GetSupplierContract(ctx context.Context, id string) (SupplierContractRow, error) {
	row := d.read.QueryRowContext(ctx, `
		SELECT id, supplier_name, product_name, contract_type,
			single_rate, peak_rate, off_peak_rate, gas_rate, feed_in_rate,
			markup_electricity, markup_gas, markup_feed_in,
			fixed_fee_electricity_month, fixed_fee_gas_month
		FROM supplier_contract WHERE id = ?`,
		id)

	contract, err := scanSupplierContract(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return SupplierContractRow{}, &calc.MissingTariffError{Kind: "supplier", Key: id}
		}
		return SupplierContractRow{}, fmt.Errorf("fetching supplier contract %s: %w", id, err)
	}

	return contract, nil
}

func (d *Database) ListSupplierContracts(ctx context.Context) ([]SupplierContractRow, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT id, supplier_name, product_name, contract_type,
			single_rate, peak_rate, off_peak_rate, gas_rate, feed_in_rate,
			markup_electricity, markup_gas, markup_feed_in,
			fixed_fee_electricity_month, fixed_fee_gas_month
		FROM supplier_contract ORDER BY supplier_name, product_name`)
	if err != nil {
		return nil, fmt.Errorf("fetching supplier contracts: %w", err)
	}
	defer rows.Close()

	var contracts []SupplierContractRow
	for rows.Next() {
		contract, err := scanSupplierContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning supplier contract row: %w", err)
		}
		contracts = append(contracts, contract)
	}

	return contracts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSupplierContract(row rowScanner) (SupplierContractRow, error) {
	var (
		r                                                      SupplierContractRow
		contractType                                           string
		singleRate, peakRate, offPeakRate, gasRate, feedInRate sql.NullString
		markupElectricity, markupGas, markupFeedIn             sql.NullString
		fixedFeeElectricity, fixedFeeGas                       string
	)

	err := row.Scan(
		&r.ID, &r.SupplierName, &r.ProductName, &contractType,
		&singleRate, &peakRate, &offPeakRate, &gasRate, &feedInRate,
		&markupElectricity, &markupGas, &markupFeedIn,
		&fixedFeeElectricity, &fixedFeeGas)
	if err != nil {
		return SupplierContractRow{}, err
	}

	feeElectricity, err := parseDecimal("fixed_fee_electricity_month", fixedFeeElectricity)
	if err != nil {
		return SupplierContractRow{}, err
	}
	feeGas, err := parseDecimal("fixed_fee_gas_month", fixedFeeGas)
	if err != nil {
		return SupplierContractRow{}, err
	}

	r.Contract.Type = calc.ContractType(contractType)
	switch r.Contract.Type {
	case calc.ContractTypeFixed, calc.ContractTypeBespoke:
		t := calc.FixedTariff{
			FixedFeeElectricityMonth: feeElectricity,
			FixedFeeGasMonth:         feeGas,
		}
		if t.SingleRate, err = parseNullDecimal("single_rate", singleRate); err != nil {
			return SupplierContractRow{}, err
		}
		if t.PeakRate, err = parseNullDecimal("peak_rate", peakRate); err != nil {
			return SupplierContractRow{}, err
		}
		if t.OffPeakRate, err = parseNullDecimal("off_peak_rate", offPeakRate); err != nil {
			return SupplierContractRow{}, err
		}
		if t.GasRate, err = parseNullDecimal("gas_rate", gasRate); err != nil {
			return SupplierContractRow{}, err
		}
		if t.FeedInRate, err = parseNullDecimal("feed_in_rate", feedInRate); err != nil {
			return SupplierContractRow{}, err
		}
		r.Contract.Fixed = &t
	case calc.ContractTypeDynamic:
		t := calc.DynamicTariff{
			FixedFeeElectricityMonth: feeElectricity,
			FixedFeeGasMonth:         feeGas,
		}
		if t.MarkupElectricity, err = parseNullDecimal("markup_electricity", markupElectricity); err != nil {
			return SupplierContractRow{}, err
		}
		if t.MarkupGas, err = parseNullDecimal("markup_gas", markupGas); err != nil {
			return SupplierContractRow{}, err
		}
		if t.MarkupFeedIn, err = parseNullDecimal("markup_feed_in", markupFeedIn); err != nil {
			return SupplierContractRow{}, err
		}
		r.Contract.Dynamic = &t
	default:
		return SupplierContractRow{}, fmt.Errorf("contract %s has unsupported type %q", r.ID, contractType)
	}

	return r, nil
}

func strPtr(s string) *string {
	return &s
}
