package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/energiekompas/energiekompas-go/config"
	"github.com/energiekompas/energiekompas-go/database"
)

// Roughly a year of daily refreshes.
const marketPriceMaxRows = 365

func NewMaintenanceTask(logger *slog.Logger, db *database.Database, cnfg *config.AppConfig) func() {
	return func() {
		logger.Debug("running maintenance task...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if err := db.Backup(ctx); err != nil {
			logger.Error("database backup error", slog.Any("error", err))
		}

		if err := db.PurgeBackups(ctx, cnfg.Database.GetBackupRetentionDays()); err != nil {
			logger.Error("backup maintenance error", slog.Any("error", err))
		}

		if err := db.PurgeLog(ctx, cnfg.Logging.GetDbMaxEntries()); err != nil {
			logger.Error("log maintenance error", slog.Any("error", err))
		}

		if err := db.PurgeMarketPriceHistory(ctx, marketPriceMaxRows); err != nil {
			logger.Error("market_price_average maintenance error", slog.Any("error", err))
		}

		logger.Info("maintenance task done")
	}
}
