package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/energiekompas/energiekompas-go/database"
	"github.com/energiekompas/energiekompas-go/types"
)

// A stored average older than this is considered stale and refreshed on startup.
const marketPriceMaxAge = 48 * time.Hour

func NewMarketPriceTask(logger *slog.Logger, db *database.Database, provider types.MarketPriceProvider) func() {
	if needImmediateMarketPriceUpdate(db) {
		logger.Info("need an immediate update of market price averages")
		runMarketPriceTask(logger, db, provider)
	} else {
		logger.Debug("no need for immediate update of market price averages")
	}

	return func() { runMarketPriceTask(logger, db, provider) }
}

func runMarketPriceTask(logger *slog.Logger, db *database.Database, provider types.MarketPriceProvider) {
	logger.Debug("running market price task...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	avgs, err := provider.GetMarketPriceAverages(ctx)
	if err != nil {
		logger.Error("error fetching market price averages", slog.Any("error", err))
		return
	}

	if err := db.SaveMarketPriceAverages(ctx, avgs); err != nil {
		logger.Error("error saving market price averages", slog.Any("error", err))
		return
	}

	logger.Info("market price task done",
		slog.String("electricityDay", avgs.ElectricityDay.String()),
		slog.String("electricityNight", avgs.ElectricityNight.String()),
		slog.String("gas", avgs.Gas.String()))
}

func needImmediateMarketPriceUpdate(db *database.Database) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	avgs, err := db.MarketPriceAverages(ctx)
	if err != nil {
		return true
	}
	return time.Since(avgs.FetchedAt) > marketPriceMaxAge
}
