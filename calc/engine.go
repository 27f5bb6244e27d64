package calc

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/energiekompas/energiekompas-go/convert"
	"github.com/energiekompas/energiekompas-go/hours"
	"github.com/energiekompas/energiekompas-go/types"
)

// TariffStore is the read-only reference-data contract the engine
// computes against. Implementations map absent rows to the typed errors
// in this package (NotFoundError, MissingTariffError).
type TariffStore interface {
	GridOperatorForPostcode(ctx context.Context, postcode string) (GridOperator, error)
	GridFee(ctx context.Context, operatorID string, year int, capacityCode string) (decimal.Decimal, error)
	GovernmentTaxTariff(ctx context.Context, year int) (TaxTariff, error)
	MarketPriceAverages(ctx context.Context) (types.MarketPriceAverages, error)
}

// Request is one cost calculation. Year 0 means the current year.
type Request struct {
	Consumption ConsumptionProfile
	Capacity    ConnectionCapacity
	Postcode    string
	Contract    Contract
	Year        int
}

type Engine struct {
	logger *slog.Logger
	store  TariffStore

	mu          sync.RWMutex
	dayWindow   hours.DayWindow
	defaultYear int
}

func NewEngine(logger *slog.Logger, store TariffStore, dayWindow hours.DayWindow) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		logger:    logger.With(slog.String("module", "calc")),
		store:     store,
		dayWindow: dayWindow,
	}
}

// SetDayWindow swaps the day/night window used for blending market prices
// on single-register dynamic contracts. Safe to call while requests run.
func (e *Engine) SetDayWindow(w hours.DayWindow) {
	e.mu.Lock()
	e.dayWindow = w
	e.mu.Unlock()
}

func (e *Engine) dayShare() float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dayWindow.DayShare()
}

// SetDefaultYear sets the tariff year used for requests that do not carry
// one. Zero falls back to the current year.
func (e *Engine) SetDefaultYear(year int) {
	e.mu.Lock()
	e.defaultYear = year
	e.mu.Unlock()
}

func (e *Engine) effectiveYear(requested int) int {
	if requested != 0 {
		return requested
	}
	e.mu.RLock()
	year := e.defaultYear
	e.mu.RUnlock()
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	return year
}

// ComputeCost runs the full pipeline: validate, resolve grid operator and
// capacity classes, settle net metering, price the contract, apply energy
// tax and grid fees, and aggregate with VAT. It is a pure function of the
// request and the tariff tables behind the store; identical inputs over an
// identical tariff snapshot produce an identical breakdown.
func (e *Engine) ComputeCost(ctx context.Context, req Request) (*CostBreakdown, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	year := e.effectiveYear(req.Year)

	postcode, err := NormalizePostcode(req.Postcode)
	if err != nil {
		return nil, err
	}

	operator, err := e.store.GridOperatorForPostcode(ctx, postcode)
	if err != nil {
		return nil, err
	}

	largeElectricity, err := ClassifyElectricityCapacity(req.Capacity.ElectricityCode)
	if err != nil {
		return nil, err
	}

	largeGas := false
	if req.Consumption.HasGasConnection() {
		largeGas, err = ClassifyGasCapacity(req.Capacity.GasCode)
		if err != nil {
			return nil, err
		}
	}

	tax, err := e.store.GovernmentTaxTariff(ctx, year)
	if err != nil {
		return nil, err
	}

	net := Settle(req.Consumption)

	b := &CostBreakdown{
		ContractType: req.Contract.Type,
		Year:         year,
		GridOperator: operator,
		Net:          net,
	}

	switch req.Contract.Type {
	case ContractTypeFixed, ContractTypeBespoke:
		tariff, ok := req.Contract.fixedTariff()
		if !ok {
			return nil, &InvalidInputError{Field: "contract", Message: "fixed tariff sheet missing"}
		}
		b.Supplier = FixedCost(net, req.Consumption, *tariff)

	case ContractTypeDynamic:
		tariff, ok := req.Contract.dynamicTariff()
		if !ok {
			return nil, &InvalidInputError{Field: "contract", Message: "dynamic tariff sheet missing"}
		}
		market, err := e.store.MarketPriceAverages(ctx)
		if err != nil {
			return nil, err
		}
		b.Supplier = DynamicCost(net, req.Consumption, *tariff, market, e.dayShare())

	default:
		return nil, &InvalidInputError{Field: "contractType", Message: fmt.Sprintf("unsupported contract type %q", req.Contract.Type)}
	}

	b.SurplusRevenue = b.Supplier.SurplusRevenue

	// Grootverbruik connections pay no fixed grid fee.
	if !largeElectricity {
		b.GridFeeElectricity, err = e.store.GridFee(ctx, operator.ID, year, req.Capacity.ElectricityCode)
		if err != nil {
			return nil, err
		}
	}
	if req.Consumption.HasGasConnection() && !largeGas {
		b.GridFeeGas, err = e.store.GridFee(ctx, operator.ID, year, req.Capacity.GasCode)
		if err != nil {
			return nil, err
		}
	}
	b.GridFeeSubtotal = b.GridFeeElectricity.Add(b.GridFeeGas)

	b.Tax = CalculateTax(net.TotalKwh, req.Consumption.GasM3, largeElectricity, tax)

	annual := b.Supplier.Subtotal.
		Add(b.GridFeeSubtotal).
		Add(b.Tax.NetTax).
		Sub(b.SurplusRevenue)
	vat := annual.Mul(tax.VatPercentage)

	b.AnnualExclVat = convert.Cents(annual)
	b.VatAmount = convert.Cents(vat)
	b.AnnualInclVat = convert.Cents(annual.Add(vat))
	b.MonthlyExclVat = convert.Cents(annual.Div(monthsPerYear))
	b.MonthlyInclVat = convert.Cents(annual.Add(vat).Div(monthsPerYear))

	e.logger.Debug("cost breakdown computed",
		slog.String("postcode", postcode),
		slog.String("operator", operator.ID),
		slog.String("contractType", string(req.Contract.Type)),
		slog.Int("year", year),
		slog.String("annualInclVat", b.AnnualInclVat.String()))

	return b, nil
}

func validateRequest(req Request) error {
	p := req.Consumption
	switch {
	case p.ElectricityPeakKwh < 0:
		return &InvalidInputError{Field: "electricityPeakKwh", Message: "must not be negative"}
	case p.ElectricityOffPeakKwh < 0:
		return &InvalidInputError{Field: "electricityOffPeakKwh", Message: "must not be negative"}
	case p.GasM3 < 0:
		return &InvalidInputError{Field: "gasM3", Message: "must not be negative"}
	case p.SolarFeedInKwh < 0:
		return &InvalidInputError{Field: "solarFeedInKwh", Message: "must not be negative"}
	case p.HasSingleRegister && p.ElectricityOffPeakKwh > 0:
		return &InvalidInputError{Field: "electricityOffPeakKwh", Message: "must be zero for a single-register meter"}
	case req.Year < 0:
		return &InvalidInputError{Field: "year", Message: "must not be negative"}
	}
	return nil
}
