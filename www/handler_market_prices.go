package www

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/energiekompas/energiekompas-go/database"
)

type marketPricesBody struct {
	ElectricityDay   decimal.Decimal `json:"electricityDay"`
	ElectricityNight decimal.Decimal `json:"electricityNight"`
	Gas              decimal.Decimal `json:"gas"`
	FetchedAt        time.Time       `json:"fetchedAt"`
}

// NewMarketPricesHandler serves the stored market price averages. A POST
// runs the refresh task first, then returns (and broadcasts) the fresh
// averages.
func NewMarketPricesHandler(logger *slog.Logger, db *database.Database, hub *Hub, refresh func()) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			// Fall through to the shared read below.

		case http.MethodPost:
			refresh()

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		avgs, err := db.MarketPriceAverages(r.Context())
		if err != nil {
			writeCalcError(logger, w, err)
			return
		}

		body := marketPricesBody{
			ElectricityDay:   avgs.ElectricityDay,
			ElectricityNight: avgs.ElectricityNight,
			Gas:              avgs.Gas,
			FetchedAt:        avgs.FetchedAt,
		}

		if r.Method == http.MethodPost && hub != nil {
			hub.BroadcastEvent(Event{Type: "market_prices", Payload: body})
		}

		writeJson(w, http.StatusOK, body)
	}
}
