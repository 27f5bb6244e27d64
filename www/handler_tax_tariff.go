package www

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/energiekompas/energiekompas-go/database"
)

type taxTariffBody struct {
	Year int `json:"year"`

	ElectricityBracket1Max float64         `json:"electricityBracket1Max"`
	ElectricityBracket2Max float64         `json:"electricityBracket2Max"`
	ElectricityBracket3Max float64         `json:"electricityBracket3Max"`
	ElectricityRate1       decimal.Decimal `json:"electricityRate1"`
	ElectricityRate2       decimal.Decimal `json:"electricityRate2"`
	ElectricityRate3       decimal.Decimal `json:"electricityRate3"`
	ElectricityRate4       decimal.Decimal `json:"electricityRate4"`

	GasBracket1Max float64         `json:"gasBracket1Max"`
	GasRate1       decimal.Decimal `json:"gasRate1"`
	GasRate2       decimal.Decimal `json:"gasRate2"`

	ElectricityRebate decimal.Decimal `json:"electricityRebate"`
	VatPercentage     decimal.Decimal `json:"vatPercentage"`
}

func NewTaxTariffHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		year := intOrDefault(r.URL, "year", time.Now().UTC().Year())
		tariff, err := db.GovernmentTaxTariff(r.Context(), year)
		if err != nil {
			writeCalcError(logger, w, err)
			return
		}

		writeJson(w, http.StatusOK, taxTariffBody{
			Year:                   tariff.Year,
			ElectricityBracket1Max: tariff.ElectricityBracket1Max,
			ElectricityBracket2Max: tariff.ElectricityBracket2Max,
			ElectricityBracket3Max: tariff.ElectricityBracket3Max,
			ElectricityRate1:       tariff.ElectricityRate1,
			ElectricityRate2:       tariff.ElectricityRate2,
			ElectricityRate3:       tariff.ElectricityRate3,
			ElectricityRate4:       tariff.ElectricityRate4,
			GasBracket1Max:         tariff.GasBracket1Max,
			GasRate1:               tariff.GasRate1,
			GasRate2:               tariff.GasRate2,
			ElectricityRebate:      tariff.ElectricityRebate,
			VatPercentage:          tariff.VatPercentage,
		})
	}
}
