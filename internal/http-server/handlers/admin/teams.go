package admin

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"igcadmin/entity"
	"igcadmin/lib/api/response"
	"igcadmin/lib/sl"
)

// actionRequest is the body of accept-team and reject-team. Field presence
// is validated in the facade; reason is optional on reject.
type actionRequest struct {
	TeamName   string `json:"teamName"`
	Reason     string `json:"reason,omitempty"`
	ActionedBy string `json:"actionedBy"`
}

func (a *actionRequest) Bind(_ *http.Request) error {
	return nil
}

// GetTeams lists every registration. An empty store is a 404, which the
// dashboard renders as its empty state.
func GetTeams(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.admin"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		teams, err := handler.ListTeams(r.Context())
		if err != nil {
			if errors.Is(err, entity.ErrNoTeams) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("No teams found"))
				return
			}
			logger.Error("list teams", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Error fetching teams"))
			return
		}
		logger.Debug("teams fetched", slog.Int("count", len(teams)))

		render.JSON(w, r, teams)
	}
}

// AcceptTeam approves a pending team and reports whether the notification
// email went out. The approval is durable even when the email fails.
func AcceptTeam(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.admin"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req actionRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		logger = logger.With(
			slog.String("team", req.TeamName),
			slog.String("actioned_by", req.ActionedBy),
		)

		team, err := handler.AcceptTeam(r.Context(), req.TeamName, req.ActionedBy)
		if err != nil {
			logger.Error("accept team", sl.Err(err))
			render.Status(r, errStatus(err))
			render.JSON(w, r, response.Error(actionMessage(err, "Failed to approve team")))
			return
		}
		logger.Info("team accepted")

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.TeamResult{
			Msg:  "Team approved and notification email sent",
			Team: team,
		})
	}
}

// RejectTeam rejects a team, storing the supplied reason or the default.
func RejectTeam(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.admin"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req actionRequest
		if err := render.Bind(r, &req); err != nil {
			logger.Error("bind request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		logger = logger.With(
			slog.String("team", req.TeamName),
			slog.String("actioned_by", req.ActionedBy),
		)

		team, err := handler.RejectTeam(r.Context(), req.TeamName, req.Reason, req.ActionedBy)
		if err != nil {
			logger.Error("reject team", sl.Err(err))
			render.Status(r, errStatus(err))
			render.JSON(w, r, response.Error(actionMessage(err, "Failed to reject team")))
			return
		}
		logger.Info("team rejected")

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.TeamResult{
			Msg:  "Team rejected",
			Team: team,
		})
	}
}

// actionMessage picks the caller-facing message for an adjudication error;
// internal persistence detail never leaks.
func actionMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return err.Error()
	case errors.Is(err, entity.ErrNotFound):
		return "Team not found"
	case errors.Is(err, entity.ErrConflict):
		return "Team already actioned"
	default:
		return fallback
	}
}
