package admin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"igcadmin/lib/api/response"
	"igcadmin/lib/sl"
)

// GetCount returns the status aggregates. Deliberately outside the session
// gate: the public site shows registration totals.
func GetCount(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.admin"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		counts, err := handler.TeamCounts(r.Context())
		if err != nil {
			logger.Error("team counts", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to get team counts"))
			return
		}

		render.JSON(w, r, counts)
	}
}
