package www

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/energiekompas/energiekompas-go/calc"
	"github.com/energiekompas/energiekompas-go/config"
	"github.com/energiekompas/energiekompas-go/database"
	"github.com/energiekompas/energiekompas-go/task"
)

type Server struct {
	logger *slog.Logger
	config config.AppConfigApi
	db     *database.Database
	hub    *Hub
}

func StartServer(db *database.Database, engine *calc.Engine, tasks *task.Tasks, config config.AppConfigApi) *Server {
	logger := slog.Default().With("module", "www")

	s := &Server{
		logger: logger,
		config: config,
		db:     db,
		hub:    NewHub(logger),
	}

	go s.hub.Run()

	logReqMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.logger.Debug("http request",
				slog.String("method", r.Method),
				slog.String("url", r.URL.String()),
				slog.String("remoteAddr", r.RemoteAddr))
			next.ServeHTTP(w, r)
		})
	}

	http.Handle("/api/v1/compute", logReqMW(NewComputeHandler(
		logger.With(slog.String("handler", "compute")),
		engine,
		s.db)))

	http.Handle("/api/v1/grid-operators", logReqMW(NewGridOperatorHandler(
		logger.With(slog.String("handler", "grid_operators")),
		s.db)))

	http.Handle("/api/v1/tax-tariff", logReqMW(NewTaxTariffHandler(
		logger.With(slog.String("handler", "tax_tariff")),
		s.db)))

	http.Handle("/api/v1/market-prices", logReqMW(NewMarketPricesHandler(
		logger.With(slog.String("handler", "market_prices")),
		s.db,
		s.hub,
		tasks.MarketPriceTask)))

	http.Handle("/api/v1/contracts", logReqMW(NewContractsHandler(
		logger.With(slog.String("handler", "contracts")),
		s.db)))

	http.Handle("/api/v1/log", logReqMW(NewLogHandler(
		logger.With(slog.String("handler", "log")),
		s.db)))

	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		name := r.Header.Get("User-Agent")
		client, err := NewClient(s.hub, w, r, name)
		if err != nil {
			s.logger.Error("new websocket client failed", slog.Any("error", err))
			return
		}
		s.hub.Register <- client
		go client.WritePump()
	})

	return s
}

func (s *Server) Run(ctx context.Context) {
	s.logger.Info("starting server...", "address", s.config.Address, "port", s.config.Port)
	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", s.config.Address, s.config.Port),
	}

	srvErrors := make(chan error, 1)

	go func() {
		srvErrors <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	// Keeping state to avoid spamming logs and clients
	fetchErrorState := false
	var lastFetchedAt time.Time

	for {
		select {
		case err := <-srvErrors:
			if err != nil {
				s.logger.Error("server error", slog.Any("error", err))
			}

		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
			defer cancel()
			err := srv.Shutdown(shutdownCtx)
			if err != nil {
				s.logger.Error("server shutdown failed", slog.Any("error", err))
			}
			return

		case <-ticker.C:
			avgs, err := s.db.MarketPriceAverages(ctx)
			if err != nil {
				if !fetchErrorState {
					fetchErrorState = true
					s.logger.Warn("failed to get market price averages", slog.Any("error", err))
				}
				continue
			}
			fetchErrorState = false

			if !avgs.FetchedAt.After(lastFetchedAt) {
				continue
			}
			lastFetchedAt = avgs.FetchedAt

			s.hub.BroadcastEvent(Event{Type: "market_prices", Payload: marketPricesBody{
				ElectricityDay:   avgs.ElectricityDay,
				ElectricityNight: avgs.ElectricityNight,
				Gas:              avgs.Gas,
				FetchedAt:        avgs.FetchedAt,
			}})
		}
	}
}
