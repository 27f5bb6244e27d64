package www

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/energiekompas/energiekompas-go/calc"
	"github.com/energiekompas/energiekompas-go/database"
)

// ContractStore resolves stored supplier contracts referenced by id in a
// compute request.
type ContractStore interface {
	GetSupplierContract(ctx context.Context, id string) (database.SupplierContractRow, error)
}

type computeRequest struct {
	Consumption consumptionBody `json:"consumption"`
	Capacity    capacityBody    `json:"capacity"`
	Postcode    string          `json:"postcode"`
	Year        int             `json:"year"`
	ContractId  string          `json:"contractId"`
	Contract    *contractBody   `json:"contract"`
}

type consumptionBody struct {
	ElectricityPeakKwh    float64 `json:"electricityPeakKwh"`
	ElectricityOffPeakKwh float64 `json:"electricityOffPeakKwh"`
	GasM3                 float64 `json:"gasM3"`
	SolarFeedInKwh        float64 `json:"solarFeedInKwh"`
	HasSingleRegister     bool    `json:"hasSingleRegister"`
}

type capacityBody struct {
	ElectricityCode string `json:"electricityCode"`
	GasCode         string `json:"gasCode"`
}

type contractBody struct {
	Type    string             `json:"type"`
	Fixed   *fixedTariffBody   `json:"fixed"`
	Dynamic *dynamicTariffBody `json:"dynamic"`
}

type fixedTariffBody struct {
	SingleRate               decimal.Decimal `json:"singleRate"`
	PeakRate                 decimal.Decimal `json:"peakRate"`
	OffPeakRate              decimal.Decimal `json:"offPeakRate"`
	GasRate                  decimal.Decimal `json:"gasRate"`
	FeedInRate               decimal.Decimal `json:"feedInRate"`
	FixedFeeElectricityMonth decimal.Decimal `json:"fixedFeeElectricityMonth"`
	FixedFeeGasMonth         decimal.Decimal `json:"fixedFeeGasMonth"`
}

type dynamicTariffBody struct {
	MarkupElectricity        decimal.Decimal `json:"markupElectricity"`
	MarkupGas                decimal.Decimal `json:"markupGas"`
	MarkupFeedIn             decimal.Decimal `json:"markupFeedIn"`
	FixedFeeElectricityMonth decimal.Decimal `json:"fixedFeeElectricityMonth"`
	FixedFeeGasMonth         decimal.Decimal `json:"fixedFeeGasMonth"`
}

type computeResponse struct {
	ContractType string `json:"contractType"`
	Year         int    `json:"year"`

	GridOperator gridOperatorBody `json:"gridOperator"`

	Net      netBody      `json:"net"`
	Supplier supplierBody `json:"supplier"`
	Tax      taxBody      `json:"tax"`

	GridFeeElectricity decimal.Decimal `json:"gridFeeElectricity"`
	GridFeeGas         decimal.Decimal `json:"gridFeeGas"`
	GridFeeSubtotal    decimal.Decimal `json:"gridFeeSubtotal"`

	SurplusRevenue decimal.Decimal `json:"surplusRevenue"`

	AnnualExclVat  decimal.Decimal `json:"annualExclVat"`
	VatAmount      decimal.Decimal `json:"vatAmount"`
	AnnualInclVat  decimal.Decimal `json:"annualInclVat"`
	MonthlyExclVat decimal.Decimal `json:"monthlyExclVat"`
	MonthlyInclVat decimal.Decimal `json:"monthlyInclVat"`
}

type gridOperatorBody struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type netBody struct {
	PeakKwh    float64 `json:"peakKwh"`
	OffPeakKwh float64 `json:"offPeakKwh"`
	TotalKwh   float64 `json:"totalKwh"`
	NettedKwh  float64 `json:"nettedKwh"`
	SurplusKwh float64 `json:"surplusKwh"`
}

type supplierBody struct {
	Electricity        decimal.Decimal `json:"electricity"`
	Gas                decimal.Decimal `json:"gas"`
	FixedFees          decimal.Decimal `json:"fixedFees"`
	FeedInCompensation decimal.Decimal `json:"feedInCompensation"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

type taxBody struct {
	ElectricityTax decimal.Decimal `json:"electricityTax"`
	GasTax         decimal.Decimal `json:"gasTax"`
	Rebate         decimal.Decimal `json:"rebate"`
	NetTax         decimal.Decimal `json:"netTax"`
}

func NewComputeHandler(logger *slog.Logger, engine *calc.Engine, contracts ContractStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var body computeRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJson(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}

		contract, err := resolveContract(r.Context(), contracts, body)
		if err != nil {
			writeCalcError(logger, w, err)
			return
		}

		req := calc.Request{
			Consumption: calc.ConsumptionProfile{
				ElectricityPeakKwh:    body.Consumption.ElectricityPeakKwh,
				ElectricityOffPeakKwh: body.Consumption.ElectricityOffPeakKwh,
				GasM3:                 body.Consumption.GasM3,
				SolarFeedInKwh:        body.Consumption.SolarFeedInKwh,
				HasSingleRegister:     body.Consumption.HasSingleRegister,
			},
			Capacity: calc.ConnectionCapacity{
				ElectricityCode: body.Capacity.ElectricityCode,
				GasCode:         body.Capacity.GasCode,
			},
			Postcode: body.Postcode,
			Contract: contract,
			Year:     body.Year,
		}

		breakdown, err := engine.ComputeCost(r.Context(), req)
		if err != nil {
			writeCalcError(logger, w, err)
			return
		}

		writeJson(w, http.StatusOK, toComputeResponse(breakdown))
	}
}

func resolveContract(ctx context.Context, contracts ContractStore, body computeRequest) (calc.Contract, error) {
	if body.ContractId != "" {
		row, err := contracts.GetSupplierContract(ctx, body.ContractId)
		if err != nil {
			return calc.Contract{}, err
		}
		return row.Contract, nil
	}

	if body.Contract == nil {
		return calc.Contract{}, &calc.InvalidInputError{Field: "contract", Message: "either contract or contractId is required"}
	}

	c := calc.Contract{Type: calc.ContractType(body.Contract.Type)}
	if f := body.Contract.Fixed; f != nil {
		c.Fixed = &calc.FixedTariff{
			SingleRate:               f.SingleRate,
			PeakRate:                 f.PeakRate,
			OffPeakRate:              f.OffPeakRate,
			GasRate:                  f.GasRate,
			FeedInRate:               f.FeedInRate,
			FixedFeeElectricityMonth: f.FixedFeeElectricityMonth,
			FixedFeeGasMonth:         f.FixedFeeGasMonth,
		}
	}
	if d := body.Contract.Dynamic; d != nil {
		c.Dynamic = &calc.DynamicTariff{
			MarkupElectricity:        d.MarkupElectricity,
			MarkupGas:                d.MarkupGas,
			MarkupFeedIn:             d.MarkupFeedIn,
			FixedFeeElectricityMonth: d.FixedFeeElectricityMonth,
			FixedFeeGasMonth:         d.FixedFeeGasMonth,
		}
	}
	return c, nil
}

func toComputeResponse(b *calc.CostBreakdown) computeResponse {
	return computeResponse{
		ContractType: string(b.ContractType),
		Year:         b.Year,
		GridOperator: gridOperatorBody{Id: b.GridOperator.ID, Name: b.GridOperator.Name},
		Net: netBody{
			PeakKwh:    b.Net.PeakKwh,
			OffPeakKwh: b.Net.OffPeakKwh,
			TotalKwh:   b.Net.TotalKwh,
			NettedKwh:  b.Net.NettedKwh,
			SurplusKwh: b.Net.SurplusKwh,
		},
		Supplier: supplierBody{
			Electricity:        b.Supplier.Electricity,
			Gas:                b.Supplier.Gas,
			FixedFees:          b.Supplier.FixedFees,
			FeedInCompensation: b.Supplier.FeedInCompensation,
			Subtotal:           b.Supplier.Subtotal,
		},
		Tax: taxBody{
			ElectricityTax: b.Tax.ElectricityTax,
			GasTax:         b.Tax.GasTax,
			Rebate:         b.Tax.Rebate,
			NetTax:         b.Tax.NetTax,
		},
		GridFeeElectricity: b.GridFeeElectricity,
		GridFeeGas:         b.GridFeeGas,
		GridFeeSubtotal:    b.GridFeeSubtotal,
		SurplusRevenue:     b.SurplusRevenue,
		AnnualExclVat:      b.AnnualExclVat,
		VatAmount:          b.VatAmount,
		AnnualInclVat:      b.AnnualInclVat,
		MonthlyExclVat:     b.MonthlyExclVat,
		MonthlyInclVat:     b.MonthlyInclVat,
	}
}
