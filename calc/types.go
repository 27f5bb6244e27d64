package calc

import "github.com/shopspring/decimal"

// ConsumptionProfile is the household's or business's yearly usage as
// entered in the calculator. Electricity is split over two registers for
// dual meters; single-register meters carry everything in PeakKwh.
type ConsumptionProfile struct {
	ElectricityPeakKwh    float64
	ElectricityOffPeakKwh float64
	GasM3                 float64
	SolarFeedInKwh        float64
	HasSingleRegister     bool
}

func (p ConsumptionProfile) GrossElectricityKwh() float64 {
	return p.ElectricityPeakKwh + p.ElectricityOffPeakKwh
}

func (p ConsumptionProfile) HasGasConnection() bool {
	return p.GasM3 > 0
}

// ConnectionCapacity carries the physical connection codes, e.g. "3x25A"
// for electricity and "G6" for gas. The codes determine kleinverbruik vs
// grootverbruik, which changes tax brackets and grid fees.
type ConnectionCapacity struct {
	ElectricityCode string
	GasCode         string
}

type ContractType string

const (
	ContractTypeFixed   ContractType = "fixed"
	ContractTypeDynamic ContractType = "dynamic"
	ContractTypeBespoke ContractType = "bespoke"
)

// FixedTariff is the supplier price sheet for fixed and bespoke contracts.
// Either SingleRate or the Peak/OffPeak pair is used, selected by the
// consumption profile's register layout, never by contract type.
type FixedTariff struct {
	SingleRate               decimal.Decimal
	PeakRate                 decimal.Decimal
	OffPeakRate              decimal.Decimal
	GasRate                  decimal.Decimal
	FeedInRate               decimal.Decimal
	FixedFeeElectricityMonth decimal.Decimal
	FixedFeeGasMonth         decimal.Decimal
}

// DynamicTariff is the supplier's markup sheet for dynamic contracts,
// combined at compute time with the market price averages.
type DynamicTariff struct {
	MarkupElectricity        decimal.Decimal
	MarkupGas                decimal.Decimal
	MarkupFeedIn             decimal.Decimal
	FixedFeeElectricityMonth decimal.Decimal
	FixedFeeGasMonth         decimal.Decimal
}

// Contract is the tagged contract variant: the type selects which tariff
// sheet must be present. Bespoke contracts share the fixed price sheet.
type Contract struct {
	Type    ContractType
	Fixed   *FixedTariff
	Dynamic *DynamicTariff
}

func (c Contract) fixedTariff() (*FixedTariff, bool) {
	if (c.Type == ContractTypeFixed || c.Type == ContractTypeBespoke) && c.Fixed != nil {
		return c.Fixed, true
	}
	return nil, false
}

func (c Contract) dynamicTariff() (*DynamicTariff, bool) {
	if c.Type == ContractTypeDynamic && c.Dynamic != nil {
		return c.Dynamic, true
	}
	return nil, false
}

type GridOperator struct {
	ID   string
	Name string
}

// SupplierCost is the supplier side of the bill before tax and grid fees.
// FeedInCompensation (fixed/bespoke) is already subtracted from Subtotal;
// SurplusRevenue (dynamic) is reported here but settled by the aggregator.
type SupplierCost struct {
	Electricity        decimal.Decimal
	Gas                decimal.Decimal
	FixedFees          decimal.Decimal
	FeedInCompensation decimal.Decimal
	SurplusRevenue     decimal.Decimal
	Subtotal           decimal.Decimal
}

// CostBreakdown is the immutable result of one cost calculation.
// Component subtotals keep full precision, final totals are in cents.
type CostBreakdown struct {
	ContractType ContractType
	Year         int
	GridOperator GridOperator

	Net      NetConsumption
	Supplier SupplierCost
	Tax      TaxResult

	GridFeeElectricity decimal.Decimal
	GridFeeGas         decimal.Decimal
	GridFeeSubtotal    decimal.Decimal

	SurplusRevenue decimal.Decimal

	AnnualExclVat  decimal.Decimal
	VatAmount      decimal.Decimal
	AnnualInclVat  decimal.Decimal
	MonthlyExclVat decimal.Decimal
	MonthlyInclVat decimal.Decimal
}
