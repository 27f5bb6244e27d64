package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/energiekompas/energiekompas-go/calc"
	"github.com/energiekompas/energiekompas-go/types"
)

func (d *Database) SaveMarketPriceAverages(ctx context.Context, m types.MarketPriceAverages) error {
	_, err := d.write.ExecContext(ctx, `
		INSERT INTO market_price_average (fetched_at, electricity_day, electricity_night, gas)
		VALUES (?, ?, ?, ?)`,
		m.FetchedAt.UTC().Format(time.RFC3339),
		m.ElectricityDay.String(),
		m.ElectricityNight.String(),
		m.Gas.String())
	if err != nil {
		return fmt.Errorf("saving market price averages: %w", err)
	}
	return nil
}

// MarketPriceAverages returns the latest stored averages. History is kept
// so a surprising quote can be traced back to the price level it used.
func (d *Database) MarketPriceAverages(ctx context.Context) (types.MarketPriceAverages, error) {
	row := d.read.QueryRowContext(ctx, `
		SELECT fetched_at, electricity_day, electricity_night, gas
		FROM market_price_average
		ORDER BY id DESC LIMIT 1`)

	var m types.MarketPriceAverages
	var fetchedAt, day, night, gas string
	if err := row.Scan(&fetchedAt, &day, &night, &gas); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.MarketPriceAverages{}, &calc.MissingTariffError{Kind: "market_price", Key: "latest"}
		}
		return types.MarketPriceAverages{}, fmt.Errorf("fetching market price averages: %w", err)
	}

	var err error
	if m.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt); err != nil {
		return types.MarketPriceAverages{}, fmt.Errorf("parsing fetched_at: %w", err)
	}
	if m.ElectricityDay, err = parseDecimal("electricity_day", day); err != nil {
		return types.MarketPriceAverages{}, err
	}
	if m.ElectricityNight, err = parseDecimal("electricity_night", night); err != nil {
		return types.MarketPriceAverages{}, err
	}
	if m.Gas, err = parseDecimal("gas", gas); err != nil {
		return types.MarketPriceAverages{}, err
	}

	return m, nil
}

// PurgeMarketPriceHistory drops everything but the newest maxRows rows.
func (d *Database) PurgeMarketPriceHistory(ctx context.Context, maxRows int) error {
	d.logger.Debug("purging market price history")
	res, err := d.write.ExecContext(ctx, `
		DELETE FROM market_price_average
		WHERE id <= (SELECT id FROM market_price_average ORDER BY id DESC LIMIT 1 OFFSET ?)`,
		maxRows)
	if err != nil {
		return fmt.Errorf("purging market price history: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil {
		d.logger.Debug(fmt.Sprintf("purged %d market price rows", rows))
	} else {
		d.logger.Warn("can't get rows affected by purge", slog.Any("error", err))
	}
	return nil
}
