package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/energiekompas/energiekompas-go/calc"
	"github.com/energiekompas/energiekompas-go/config"
	"github.com/energiekompas/energiekompas-go/database"
	"github.com/energiekompas/energiekompas-go/energyzero"
	"github.com/energiekompas/energiekompas-go/logging"
	"github.com/energiekompas/energiekompas-go/task"
	"github.com/energiekompas/energiekompas-go/www"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("energiekompas is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.Path, cnfg.Database.GetBackupDir())
	if err != nil {
		panic(fmt.Sprintf("failed to connect to database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	dayWindow, err := cnfg.Calculation.GetDayWindow()
	if err != nil {
		panic(fmt.Sprintf("invalid day window configuration: %v", err))
	}

	marketPrices, err := energyzero.New(dayWindow, cnfg.MarketPrice.GetAverageDays())
	if err != nil {
		panic(fmt.Sprintf("failed to create market price provider: %v", err))
	}

	engine := calc.NewEngine(logger, db, dayWindow)
	engine.SetDefaultYear(cnfg.Calculation.GetDefaultYear())

	config.Watch(logger.With("module", "config"), func(fresh *config.AppConfig) {
		// Only the calculation settings are hot-reloadable; address,
		// database path and schedules need a restart.
		w, err := fresh.Calculation.GetDayWindow()
		if err != nil {
			logger.Error("ignoring config change with invalid day window", slog.Any("error", err))
			return
		}
		engine.SetDayWindow(w)
		engine.SetDefaultYear(fresh.Calculation.GetDefaultYear())
	})

	tasks := task.NewTasks(db, marketPrices, cnfg)
	if isDevMode() {
		logger.Info("dev mode, skipping task scheduling")
	} else {
		tasks.Run()
		defer tasks.Stop()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server := www.StartServer(db, engine, tasks, cnfg.Api)
	server.Run(ctx)
}

func isDevMode() bool {
	return strings.EqualFold(os.Getenv("APP_ENV"), "development")
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}
	if syncer, ok := logger.Handler().(interface{ Sync() error }); ok {
		if syncErr := syncer.Sync(); syncErr != nil {
			logger.Error("failed to flush logger", slog.Any("error", syncErr))
		}
	}

	time.Sleep(2 * time.Second)
	os.Exit(1)
}
