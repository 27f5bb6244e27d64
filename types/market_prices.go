package types

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MarketPriceAverages holds the supplier-independent market price level
// used by dynamic contracts: average day-ahead electricity price during
// day and night hours plus the average gas price, all excl. VAT.
type MarketPriceAverages struct {
	ElectricityDay   decimal.Decimal
	ElectricityNight decimal.Decimal
	Gas              decimal.Decimal
	FetchedAt        time.Time
}

type MarketPriceProvider interface {
	GetMarketPriceAverages(ctx context.Context) (MarketPriceAverages, error)
}
