package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/energiekompas/energiekompas-go/calc"
	"github.com/energiekompas/energiekompas-go/database"
)

// tariffseed loads reference data (grid operators, postcode ranges, grid
// fees, tax tariffs and supplier contracts) from a yaml file into the
// database. Running it twice with the same file is a no-op.

type seedFile struct {
	GridOperators []seedGridOperator `mapstructure:"grid_operators"`
	GridFees      []seedGridFee      `mapstructure:"grid_fees"`
	TaxTariffs    []seedTaxTariff    `mapstructure:"tax_tariffs"`
	Contracts     []seedContract     `mapstructure:"contracts"`
}

type seedGridOperator struct {
	Id     string      `mapstructure:"id"`
	Name   string      `mapstructure:"name"`
	Ranges []seedRange `mapstructure:"ranges"`
}

type seedRange struct {
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

type seedGridFee struct {
	Operator     string `mapstructure:"operator"`
	Year         int    `mapstructure:"year"`
	CapacityCode string `mapstructure:"capacity_code"`
	AnnualFee    string `mapstructure:"annual_fee"`
}

type seedTaxTariff struct {
	Year int `mapstructure:"year"`

	ElectricityBracket1Max float64 `mapstructure:"electricity_bracket1_max"`
	ElectricityBracket2Max float64 `mapstructure:"electricity_bracket2_max"`
	ElectricityBracket3Max float64 `mapstructure:"electricity_bracket3_max"`
	ElectricityRate1       string  `mapstructure:"electricity_rate1"`
	ElectricityRate2       string  `mapstructure:"electricity_rate2"`
	ElectricityRate3       string  `mapstructure:"electricity_rate3"`
	ElectricityRate4       string  `mapstructure:"electricity_rate4"`

	GasBracket1Max float64 `mapstructure:"gas_bracket1_max"`
	GasRate1       string  `mapstructure:"gas_rate1"`
	GasRate2       string  `mapstructure:"gas_rate2"`

	ElectricityRebate string `mapstructure:"electricity_rebate"`
	VatPercentage     string `mapstructure:"vat_percentage"`
}

type seedContract struct {
	Id           string            `mapstructure:"id"`
	SupplierName string            `mapstructure:"supplier_name"`
	ProductName  string            `mapstructure:"product_name"`
	Type         string            `mapstructure:"type"`
	Fixed        map[string]string `mapstructure:"fixed"`
	Dynamic      map[string]string `mapstructure:"dynamic"`
}

func main() {
	seedPath := flag.String("seed", "config/seed.yaml", "path to seed file")
	dbPath := flag.String("db", "data/energiekompas.db", "path to database file")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.RFC3339,
	}))
	slog.SetDefault(logger)

	if err := run(*seedPath, *dbPath, logger); err != nil {
		logger.Error("seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(seedPath, dbPath string, logger *slog.Logger) error {
	v := viper.New()
	v.SetConfigFile(seedPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading seed file: %w", err)
	}

	var seed seedFile
	if err := v.Unmarshal(&seed); err != nil {
		return fmt.Errorf("unmarshaling seed file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.New(ctx, dbPath, "")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := seedGridOperators(ctx, db, seed.GridOperators); err != nil {
		return err
	}
	if err := seedGridFees(ctx, db, seed.GridFees); err != nil {
		return err
	}
	if err := seedTaxTariffs(ctx, db, seed.TaxTariffs); err != nil {
		return err
	}
	if err := seedContracts(ctx, db, seed.Contracts); err != nil {
		return err
	}

	logger.Info("seeding done",
		slog.Int("operators", len(seed.GridOperators)),
		slog.Int("gridFees", len(seed.GridFees)),
		slog.Int("taxTariffs", len(seed.TaxTariffs)),
		slog.Int("contracts", len(seed.Contracts)))
	return nil
}

func seedGridOperators(ctx context.Context, db *database.Database, operators []seedGridOperator) error {
	for _, op := range operators {
		if err := db.SaveGridOperator(ctx, database.GridOperatorRow{ID: op.Id, Name: op.Name}); err != nil {
			return err
		}
		for _, r := range op.Ranges {
			start, err := calc.NormalizePostcode(r.Start)
			if err != nil {
				return fmt.Errorf("operator %s range start %q: %w", op.Id, r.Start, err)
			}
			end, err := calc.NormalizePostcode(r.End)
			if err != nil {
				return fmt.Errorf("operator %s range end %q: %w", op.Id, r.End, err)
			}
			err = db.SaveGridOperatorRange(ctx, database.GridOperatorRangeRow{
				OperatorID: op.Id,
				RangeStart: start,
				RangeEnd:   end,
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func seedGridFees(ctx context.Context, db *database.Database, fees []seedGridFee) error {
	for _, fee := range fees {
		amount, err := decimal.NewFromString(fee.AnnualFee)
		if err != nil {
			return fmt.Errorf("grid fee %s/%d/%s: %w", fee.Operator, fee.Year, fee.CapacityCode, err)
		}
		err = db.SaveGridFee(ctx, database.GridFeeRow{
			OperatorID:   fee.Operator,
			Year:         fee.Year,
			CapacityCode: fee.CapacityCode,
			AnnualFee:    amount,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func seedTaxTariffs(ctx context.Context, db *database.Database, tariffs []seedTaxTariff) error {
	for _, t := range tariffs {
		rates, err := parseAll(map[string]string{
			"electricity_rate1":  t.ElectricityRate1,
			"electricity_rate2":  t.ElectricityRate2,
			"electricity_rate3":  t.ElectricityRate3,
			"electricity_rate4":  t.ElectricityRate4,
			"gas_rate1":          t.GasRate1,
			"gas_rate2":          t.GasRate2,
			"electricity_rebate": t.ElectricityRebate,
			"vat_percentage":     t.VatPercentage,
		})
		if err != nil {
			return fmt.Errorf("tax tariff %d: %w", t.Year, err)
		}

		err = db.SaveTaxTariff(ctx, calc.TaxTariff{
			Year:                   t.Year,
			ElectricityBracket1Max: t.ElectricityBracket1Max,
			ElectricityBracket2Max: t.ElectricityBracket2Max,
			ElectricityBracket3Max: t.ElectricityBracket3Max,
			ElectricityRate1:       rates["electricity_rate1"],
			ElectricityRate2:       rates["electricity_rate2"],
			ElectricityRate3:       rates["electricity_rate3"],
			ElectricityRate4:       rates["electricity_rate4"],
			GasBracket1Max:         t.GasBracket1Max,
			GasRate1:               rates["gas_rate1"],
			GasRate2:               rates["gas_rate2"],
			ElectricityRebate:      rates["electricity_rebate"],
			VatPercentage:          rates["vat_percentage"],
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func seedContracts(ctx context.Context, db *database.Database, contracts []seedContract) error {
	for _, c := range contracts {
		contract := calc.Contract{Type: calc.ContractType(c.Type)}

		switch contract.Type {
		case calc.ContractTypeFixed, calc.ContractTypeBespoke:
			sheet, err := parseAll(c.Fixed)
			if err != nil {
				return fmt.Errorf("contract %s: %w", c.Id, err)
			}
			contract.Fixed = &calc.FixedTariff{
				SingleRate:               sheet["single_rate"],
				PeakRate:                 sheet["peak_rate"],
				OffPeakRate:              sheet["off_peak_rate"],
				GasRate:                  sheet["gas_rate"],
				FeedInRate:               sheet["feed_in_rate"],
				FixedFeeElectricityMonth: sheet["fixed_fee_electricity_month"],
				FixedFeeGasMonth:         sheet["fixed_fee_gas_month"],
			}
		case calc.ContractTypeDynamic:
			sheet, err := parseAll(c.Dynamic)
			if err != nil {
				return fmt.Errorf("contract %s: %w", c.Id, err)
			}
			contract.Dynamic = &calc.DynamicTariff{
				MarkupElectricity:        sheet["markup_electricity"],
				MarkupGas:                sheet["markup_gas"],
				MarkupFeedIn:             sheet["markup_feed_in"],
				FixedFeeElectricityMonth: sheet["fixed_fee_electricity_month"],
				FixedFeeGasMonth:         sheet["fixed_fee_gas_month"],
			}
		default:
			return fmt.Errorf("contract %s: unknown type %q", c.Id, c.Type)
		}

		err := db.SaveSupplierContract(ctx, database.SupplierContractRow{
			ID:           c.Id,
			SupplierName: c.SupplierName,
			ProductName:  c.ProductName,
			Contract:     contract,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func parseAll(fields map[string]string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(fields))
	for name, value := range fields {
		if value == "" {
			out[name] = decimal.Zero
			continue
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		out[name] = d
	}
	return out, nil
}
