package task

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/energiekompas/energiekompas-go/config"
	"github.com/energiekompas/energiekompas-go/database"
	"github.com/energiekompas/energiekompas-go/types"
)

type Tasks struct {
	cron            *cron.Cron
	cnfg            *config.AppConfig
	MarketPriceTask func()
	MaintenanceTask func()
}

func NewTasks(
	db *database.Database,
	marketPriceProvider types.MarketPriceProvider,
	cnfg *config.AppConfig,
) *Tasks {
	logger := slog.Default().With("module", "tasks")
	return &Tasks{
		cron:            cron.New(),
		cnfg:            cnfg,
		MarketPriceTask: NewMarketPriceTask(logger.With(slog.String("task", "market_price")), db, marketPriceProvider),
		MaintenanceTask: NewMaintenanceTask(logger.With(slog.String("task", "maintenance")), db, cnfg),
	}
}

func (t *Tasks) Run() {
	_, err := t.cron.AddFunc(t.cnfg.MarketPrice.RunAt, t.MarketPriceTask)
	if err != nil {
		panic(err)
	}
	_, err = t.cron.AddFunc("30 2 * * *", t.MaintenanceTask)
	if err != nil {
		panic(err)
	}
	t.cron.Start()
}

func (t *Tasks) Stop() context.Context {
	return t.cron.Stop()
}
