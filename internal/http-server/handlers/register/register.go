// Package register handles public team registration submissions, the entry
// point that creates the records the admin surface adjudicates.
package register

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"igcadmin/entity"
	"igcadmin/lib/api/response"
	"igcadmin/lib/sl"
)

type Core interface {
	SubmitRegistration(ctx context.Context, team *entity.TeamRegistration) (*entity.TeamRegistration, error)
}

// Submit validates and stores a new registration. The response carries the
// assigned registration number and team id.
func Submit(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.register"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var team entity.TeamRegistration
		if err := render.Bind(r, &team); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(fmt.Sprintf("Invalid registration: %v", err)))
			return
		}
		logger = logger.With(slog.String("team", team.TeamName))

		saved, err := handler.SubmitRegistration(r.Context(), &team)
		if err != nil {
			logger.Error("submit registration", sl.Err(err))
			switch {
			case errors.Is(err, entity.ErrConflict):
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("Team name already registered"))
			case errors.Is(err, entity.ErrValidation):
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.Error(err.Error()))
			default:
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("Failed to register team"))
			}
			return
		}
		logger.Info("team registered", slog.String("registration_number", saved.RegistrationNumber))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.TeamResult{
			Msg:  "Team registered",
			Team: saved,
		})
	}
}
