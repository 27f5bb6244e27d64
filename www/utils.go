package www

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/energiekompas/energiekompas-go/calc"
)

func intOrDefault(u *url.URL, key string, defaultValue int) int {
	if v := u.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func writeJson(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("json response encoding failed", slog.Any("error", err))
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeCalcError maps the calculation package's typed errors onto HTTP
// statuses: bad input is the caller's fault, missing reference data is a
// lookup miss, everything else is ours.
func writeCalcError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var invalidInput *calc.InvalidInputError
	var invalidCode *calc.InvalidCapacityCodeError
	var notFound *calc.NotFoundError
	var missingTariff *calc.MissingTariffError

	switch {
	case errors.As(err, &invalidInput):
		writeJson(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: invalidInput.Field})
	case errors.As(err, &invalidCode):
		writeJson(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &notFound):
		writeJson(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &missingTariff):
		writeJson(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		logger.Error("request failed", slog.Any("error", err))
		writeJson(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
