package www

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/energiekompas/energiekompas-go/database"
)

type logEntryBody struct {
	Timestamp time.Time `json:"timestamp"`
	Level     int       `json:"level"`
	Message   string    `json:"message"`
	Attrs     string    `json:"attrs"`
}

func NewLogHandler(logger *slog.Logger, db *database.Database) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		page := intOrDefault(r.URL, "page", 1)
		pageSize := intOrDefault(r.URL, "pageSize", 25)
		if page < 1 || pageSize < 1 {
			writeJson(w, http.StatusBadRequest, errorResponse{Error: "page and pageSize must be positive"})
			return
		}

		entries, err := db.GetLogEntries(r.Context(), slog.LevelDebug, page, pageSize)
		if err != nil {
			logger.Error("handling log request", slog.Any("error", err))
			writeJson(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			return
		}

		out := make([]logEntryBody, 0, len(entries))
		for _, e := range entries {
			out = append(out, logEntryBody{
				Timestamp: e.Timestamp,
				Level:     e.Level,
				Message:   e.Message,
				Attrs:     e.Attrs,
			})
		}

		writeJson(w, http.StatusOK, out)
	}
}
