package calc

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/energiekompas/energiekompas-go/hours"
	"github.com/energiekompas/energiekompas-go/types"
)

type stubStore struct {
	operator    GridOperator
	operatorErr error
	gridFees    map[string]string // capacity code -> annual fee
	tax         TaxTariff
	taxErr      error
	market      types.MarketPriceAverages
	marketErr   error

	gridFeeLookups []string
}

func (s *stubStore) GridOperatorForPostcode(_ context.Context, postcode string) (GridOperator, error) {
	if s.operatorErr != nil {
		return GridOperator{}, s.operatorErr
	}
	return s.operator, nil
}

func (s *stubStore) GridFee(_ context.Context, operatorID string, year int, capacityCode string) (decimal.Decimal, error) {
	s.gridFeeLookups = append(s.gridFeeLookups, capacityCode)
	fee, ok := s.gridFees[capacityCode]
	if !ok {
		return decimal.Zero, &MissingTariffError{Kind: "grid_fee", Key: capacityCode, Year: year}
	}
	return decimal.RequireFromString(fee), nil
}

func (s *stubStore) GovernmentTaxTariff(_ context.Context, year int) (TaxTariff, error) {
	if s.taxErr != nil {
		return TaxTariff{}, s.taxErr
	}
	return s.tax, nil
}

func (s *stubStore) MarketPriceAverages(_ context.Context) (types.MarketPriceAverages, error) {
	if s.marketErr != nil {
		return types.MarketPriceAverages{}, s.marketErr
	}
	return s.market, nil
}

func newTestStore() *stubStore {
	return &stubStore{
		operator: GridOperator{ID: "liander", Name: "Liander"},
		gridFees: map[string]string{"3x25A": "430", "G6": "245"},
		tax:      testTariff(),
		market:   testMarket(),
	}
}

func newTestEngine(store TariffStore) *Engine {
	return NewEngine(nil, store, hours.DefaultDayWindow())
}

func fixedRequest() Request {
	tariff := testFixedTariff()
	return Request{
		Consumption: ConsumptionProfile{ElectricityPeakKwh: 3000, ElectricityOffPeakKwh: 1500, GasM3: 1200},
		Capacity:    ConnectionCapacity{ElectricityCode: "3x25A", GasCode: "G6"},
		Postcode:    "1234 AB",
		Contract:    Contract{Type: ContractTypeFixed, Fixed: &tariff},
		Year:        2025,
	}
}

func TestComputeCostFixedContract(t *testing.T) {
	engine := newTestEngine(newTestStore())

	b, err := engine.ComputeCost(context.Background(), fixedRequest())
	require.NoError(t, err)

	require.Equal(t, "Liander", b.GridOperator.Name)
	require.Equal(t, 2025, b.Year)

	require.True(t, b.Supplier.Subtotal.Equal(decimal.RequireFromString("2340")), "supplier subtotal %s", b.Supplier.Subtotal)
	require.True(t, b.GridFeeSubtotal.Equal(decimal.RequireFromString("675")), "grid fee subtotal %s", b.GridFeeSubtotal)
	require.True(t, b.Tax.NetTax.Equal(decimal.RequireFromString("558.668")), "net tax %s", b.Tax.NetTax)

	// 2340 + 675 + 558.668 = 3573.668, VAT 21%.
	require.True(t, b.AnnualExclVat.Equal(decimal.RequireFromString("3573.67")), "annual excl %s", b.AnnualExclVat)
	require.True(t, b.VatAmount.Equal(decimal.RequireFromString("750.47")), "vat %s", b.VatAmount)
	require.True(t, b.AnnualInclVat.Equal(decimal.RequireFromString("4324.14")), "annual incl %s", b.AnnualInclVat)
	require.True(t, b.MonthlyExclVat.Equal(decimal.RequireFromString("297.81")), "monthly excl %s", b.MonthlyExclVat)
	require.True(t, b.MonthlyInclVat.Equal(decimal.RequireFromString("360.34")), "monthly incl %s", b.MonthlyInclVat)
}

func TestComputeCostBespokeContract(t *testing.T) {
	engine := newTestEngine(newTestStore())

	fixed, err := engine.ComputeCost(context.Background(), fixedRequest())
	require.NoError(t, err)

	// A bespoke contract carries a negotiated price sheet in the same
	// shape as a fixed one and must price identically through it.
	req := fixedRequest()
	req.Contract.Type = ContractTypeBespoke

	bespoke, err := engine.ComputeCost(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, ContractTypeBespoke, bespoke.ContractType)
	require.True(t, bespoke.Supplier.Subtotal.Equal(fixed.Supplier.Subtotal), "supplier subtotal %s", bespoke.Supplier.Subtotal)
	require.True(t, bespoke.Tax.NetTax.Equal(fixed.Tax.NetTax))
	require.True(t, bespoke.AnnualInclVat.Equal(fixed.AnnualInclVat), "annual incl %s", bespoke.AnnualInclVat)

	// Without its price sheet a bespoke contract is invalid input.
	req.Contract.Fixed = nil
	_, err = engine.ComputeCost(context.Background(), req)
	require.ErrorAs(t, err, new(*InvalidInputError))
}

func TestComputeCostVatRoundTrip(t *testing.T) {
	engine := newTestEngine(newTestStore())

	b, err := engine.ComputeCost(context.Background(), fixedRequest())
	require.NoError(t, err)

	backedOut := b.AnnualInclVat.Div(decimal.RequireFromString("1.21"))
	tolerance := decimal.RequireFromString("0.01")
	require.True(t, backedOut.Sub(b.AnnualExclVat).Abs().LessThanOrEqual(tolerance),
		"incl/1.21 = %s vs excl %s", backedOut, b.AnnualExclVat)
}

func TestComputeCostIdempotent(t *testing.T) {
	engine := newTestEngine(newTestStore())

	first, err := engine.ComputeCost(context.Background(), fixedRequest())
	require.NoError(t, err)
	second, err := engine.ComputeCost(context.Background(), fixedRequest())
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestComputeCostDynamicContractWithSurplus(t *testing.T) {
	store := newTestStore()
	engine := newTestEngine(store)

	tariff := testDynamicTariff()
	req := Request{
		Consumption: ConsumptionProfile{ElectricityPeakKwh: 2000, ElectricityOffPeakKwh: 1000, SolarFeedInKwh: 5000},
		Capacity:    ConnectionCapacity{ElectricityCode: "3x25A"},
		Postcode:    "1234AB",
		Contract:    Contract{Type: ContractTypeDynamic, Dynamic: &tariff},
		Year:        2025,
	}

	b, err := engine.ComputeCost(context.Background(), req)
	require.NoError(t, err)

	// Everything nets to zero, 2000 kWh surplus at 0.24.
	require.Zero(t, b.Net.TotalKwh)
	require.True(t, b.SurplusRevenue.Equal(decimal.RequireFromString("480")), "surplus %s", b.SurplusRevenue)
	// Supplier side is just the electricity vastrecht: 5*12.
	require.True(t, b.Supplier.Subtotal.Equal(decimal.RequireFromString("60")), "supplier subtotal %s", b.Supplier.Subtotal)
	// Net tax floors at zero; gas fee and gas tax absent without a gas connection.
	require.True(t, b.Tax.NetTax.IsZero())
	require.True(t, b.GridFeeGas.IsZero())
	// 60 + 430 + 0 - 480 = 10.
	require.True(t, b.AnnualExclVat.Equal(decimal.RequireFromString("10")), "annual excl %s", b.AnnualExclVat)
	require.True(t, b.AnnualInclVat.Equal(decimal.RequireFromString("12.1")), "annual incl %s", b.AnnualInclVat)
}

func TestComputeCostDefaultYear(t *testing.T) {
	engine := newTestEngine(newTestStore())
	engine.SetDefaultYear(2030)

	req := fixedRequest()
	req.Year = 0

	b, err := engine.ComputeCost(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 2030, b.Year)

	// An explicit year always wins over the configured default.
	req.Year = 2025
	b, err = engine.ComputeCost(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 2025, b.Year)
}

func TestComputeCostLargeConnectionSkipsGridFee(t *testing.T) {
	store := newTestStore()
	engine := newTestEngine(store)

	req := fixedRequest()
	req.Capacity.ElectricityCode = "3x100A"
	req.Consumption.GasM3 = 0

	b, err := engine.ComputeCost(context.Background(), req)
	require.NoError(t, err)

	require.Empty(t, store.gridFeeLookups, "no grid fee lookup expected for grootverbruik")
	require.True(t, b.GridFeeSubtotal.IsZero())
	// Large connections get the 4-bracket schedule and no rebate.
	require.True(t, b.Tax.Rebate.IsZero())
}

func TestComputeCostErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request, *stubStore)
		asError any
	}{
		{
			name: "unknown postcode",
			mutate: func(r *Request, s *stubStore) {
				s.operatorErr = &NotFoundError{Postcode: "9999ZZ"}
			},
			asError: new(*NotFoundError),
		},
		{
			name:    "malformed postcode",
			mutate:  func(r *Request, s *stubStore) { r.Postcode = "12AB" },
			asError: new(*InvalidInputError),
		},
		{
			name:    "negative consumption",
			mutate:  func(r *Request, s *stubStore) { r.Consumption.GasM3 = -1 },
			asError: new(*InvalidInputError),
		},
		{
			name: "single register with off-peak",
			mutate: func(r *Request, s *stubStore) {
				r.Consumption.HasSingleRegister = true
			},
			asError: new(*InvalidInputError),
		},
		{
			name:    "unknown contract type",
			mutate:  func(r *Request, s *stubStore) { r.Contract.Type = "spot" },
			asError: new(*InvalidInputError),
		},
		{
			name:    "unrecognized capacity code",
			mutate:  func(r *Request, s *stubStore) { r.Capacity.ElectricityCode = "4x25A" },
			asError: new(*InvalidCapacityCodeError),
		},
		{
			name: "missing tax tariff",
			mutate: func(r *Request, s *stubStore) {
				s.taxErr = &MissingTariffError{Kind: "tax", Key: "2031", Year: 2031}
			},
			asError: new(*MissingTariffError),
		},
		{
			name: "missing grid fee",
			mutate: func(r *Request, s *stubStore) {
				delete(s.gridFees, "3x25A")
			},
			asError: new(*MissingTariffError),
		},
		{
			name: "missing market prices for dynamic",
			mutate: func(r *Request, s *stubStore) {
				tariff := testDynamicTariff()
				r.Contract = Contract{Type: ContractTypeDynamic, Dynamic: &tariff}
				s.marketErr = &MissingTariffError{Kind: "market_price", Key: "latest"}
			},
			asError: new(*MissingTariffError),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := newTestStore()
			req := fixedRequest()
			test.mutate(&req, store)

			_, err := newTestEngine(store).ComputeCost(context.Background(), req)
			require.Error(t, err)
			require.ErrorAs(t, err, test.asError)
		})
	}
}
