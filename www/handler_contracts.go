package www

import (
	"log/slog"
	"net/http"

	"github.com/energiekompas/energiekompas-go/database"
)

type contractSummaryBody struct {
	Id           string        `json:"id"`
	SupplierName string        `json:"supplierName"`
	ProductName  string        `json:"productName"`
	Contract     *contractBody `json:"contract,omitempty"`
}

// NewContractsHandler lists the stored supplier contracts; price sheets
// are included so a client can prefill the calculator form.
func NewContractsHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		rows, err := db.ListSupplierContracts(r.Context())
		if err != nil {
			writeCalcError(logger, w, err)
			return
		}

		out := make([]contractSummaryBody, 0, len(rows))
		for _, row := range rows {
			body := contractSummaryBody{
				Id:           row.ID,
				SupplierName: row.SupplierName,
				ProductName:  row.ProductName,
				Contract:     &contractBody{Type: string(row.Contract.Type)},
			}
			if f := row.Contract.Fixed; f != nil {
				body.Contract.Fixed = &fixedTariffBody{
					SingleRate:               f.SingleRate,
					PeakRate:                 f.PeakRate,
					OffPeakRate:              f.OffPeakRate,
					GasRate:                  f.GasRate,
					FeedInRate:               f.FeedInRate,
					FixedFeeElectricityMonth: f.FixedFeeElectricityMonth,
					FixedFeeGasMonth:         f.FixedFeeGasMonth,
				}
			}
			if d := row.Contract.Dynamic; d != nil {
				body.Contract.Dynamic = &dynamicTariffBody{
					MarkupElectricity:        d.MarkupElectricity,
					MarkupGas:                d.MarkupGas,
					MarkupFeedIn:             d.MarkupFeedIn,
					FixedFeeElectricityMonth: d.FixedFeeElectricityMonth,
					FixedFeeGasMonth:         d.FixedFeeGasMonth,
				}
			}
			out = append(out, body)
		}

		writeJson(w, http.StatusOK, out)
	}
}
