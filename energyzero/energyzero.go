package energyzero

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/energiekompas/energiekompas-go/convert"
	"github.com/energiekompas/energiekompas-go/hours"
	"github.com/energiekompas/energiekompas-go/types"
)

// EnergyZero exposes Dutch day-ahead electricity and gas prices. The
// dynamic cost model only needs average price levels, so the hourly
// electricity prices are reduced here to a day/night pair using the same
// day window the engine bills single registers with.

const (
	baseURL             = "https://api.energyzero.nl/v1/energyprices"
	usageTypeElectricty = 1
	usageTypeGas        = 3
)

type rawPrice struct {
	Price       float64   `json:"price"`
	ReadingDate time.Time `json:"readingDate"`
}

type rawResponse struct {
	Prices  []rawPrice `json:"Prices"`
	Average float64    `json:"average"`
}

type EnergyZero struct {
	client      *http.Client
	dayWindow   hours.DayWindow
	averageDays int
	location    *time.Location
}

func New(dayWindow hours.DayWindow, averageDays int) (*EnergyZero, error) {
	loc, err := time.LoadLocation("Europe/Amsterdam")
	if err != nil {
		return nil, fmt.Errorf("failed to load Amsterdam location: %w", err)
	}
	return &EnergyZero{
		client:      &http.Client{Timeout: 30 * time.Second},
		dayWindow:   dayWindow,
		averageDays: averageDays,
		location:    loc,
	}, nil
}

func (e *EnergyZero) GetMarketPriceAverages(ctx context.Context) (types.MarketPriceAverages, error) {
	till := time.Now().UTC()
	from := till.AddDate(0, 0, -e.averageDays)

	electricity, err := e.getPrices(ctx, from, till, usageTypeElectricty)
	if err != nil {
		return types.MarketPriceAverages{}, fmt.Errorf("failed to fetch electricity prices: %w", err)
	}
	if len(electricity.Prices) == 0 {
		return types.MarketPriceAverages{}, fmt.Errorf("no electricity prices returned for %s - %s", from.Format(time.DateOnly), till.Format(time.DateOnly))
	}

	gas, err := e.getPrices(ctx, from, till, usageTypeGas)
	if err != nil {
		return types.MarketPriceAverages{}, fmt.Errorf("failed to fetch gas prices: %w", err)
	}

	day, night := e.dayNightAverages(electricity.Prices)

	return types.MarketPriceAverages{
		ElectricityDay:   day,
		ElectricityNight: night,
		Gas:              convert.PerUnit(decimal.NewFromFloat(gas.Average)),
		FetchedAt:        till,
	}, nil
}

func (e *EnergyZero) getPrices(ctx context.Context, from, till time.Time, usageType int) (rawResponse, error) {
	q := url.Values{}
	q.Set("fromDate", from.Format("2006-01-02T15:04:05.000Z"))
	q.Set("tillDate", till.Format("2006-01-02T15:04:05.000Z"))
	q.Set("interval", "4")
	q.Set("usageType", fmt.Sprintf("%d", usageType))
	q.Set("inclBtw", "false")

	req, err := http.NewRequestWithContext(ctx, "GET", baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return rawResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return rawResponse{}, fmt.Errorf("failed to fetch prices: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return rawResponse{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var raw rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return rawResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return raw, nil
}

// dayNightAverages buckets hourly prices by local Amsterdam hour.
func (e *EnergyZero) dayNightAverages(prices []rawPrice) (day, night decimal.Decimal) {
	var daySum, nightSum float64
	var dayCount, nightCount int

	for _, p := range prices {
		if e.dayWindow.IsDayHour(p.ReadingDate.In(e.location).Hour()) {
			daySum += p.Price
			dayCount++
		} else {
			nightSum += p.Price
			nightCount++
		}
	}

	if dayCount > 0 {
		day = convert.PerUnit(decimal.NewFromFloat(daySum / float64(dayCount)))
	}
	if nightCount > 0 {
		night = convert.PerUnit(decimal.NewFromFloat(nightSum / float64(nightCount)))
	}
	return day, night
}
