package www

import (
	"log/slog"
	"net/http"

	"github.com/energiekompas/energiekompas-go/calc"
	"github.com/energiekompas/energiekompas-go/database"
)

// NewGridOperatorHandler resolves grid operators. With a postcode query
// parameter it resolves the operator for that postcode, without one it
// lists all known operators.
func NewGridOperatorHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		raw := r.URL.Query().Get("postcode")
		if raw == "" {
			operators, err := db.ListGridOperators(r.Context())
			if err != nil {
				writeCalcError(logger, w, err)
				return
			}
			out := make([]gridOperatorBody, 0, len(operators))
			for _, op := range operators {
				out = append(out, gridOperatorBody{Id: op.ID, Name: op.Name})
			}
			writeJson(w, http.StatusOK, out)
			return
		}

		postcode, err := calc.NormalizePostcode(raw)
		if err != nil {
			writeCalcError(logger, w, err)
			return
		}

		operator, err := db.GridOperatorForPostcode(r.Context(), postcode)
		if err != nil {
			writeCalcError(logger, w, err)
			return
		}

		writeJson(w, http.StatusOK, gridOperatorBody{Id: operator.ID, Name: operator.Name})
	}
}
