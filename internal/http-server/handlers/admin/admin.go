// Package admin holds the HTTP handlers for the admin surface: session
// management, team listing, adjudication, and the public count endpoint.
package admin

import (
	"context"
	"errors"
	"net/http"

	"igcadmin/entity"
)

type Core interface {
	Login(ctx context.Context, username, password string) (string, error)
	SessionCookie(token string) *http.Cookie
	ClearCookie() *http.Cookie
	ListTeams(ctx context.Context) ([]*entity.TeamRegistration, error)
	AcceptTeam(ctx context.Context, teamName, actionedBy string) (*entity.TeamRegistration, error)
	RejectTeam(ctx context.Context, teamName, reason, actionedBy string) (*entity.TeamRegistration, error)
	TeamCounts(ctx context.Context) (*entity.TeamCounts, error)
}

// errStatus maps the service error taxonomy to an HTTP status code.
// Persistence detail stays in the logs; the caller sees a generic 500.
func errStatus(err error) int {
	switch {
	case errors.Is(err, entity.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrUnauthorized), errors.Is(err, entity.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, entity.ErrNotFound), errors.Is(err, entity.ErrNoTeams):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
