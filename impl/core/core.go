// Package core is the thin facade the HTTP layer talks to. It validates
// required request fields, then delegates to the auth gate and the
// registration lifecycle manager.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"igcadmin/entity"
	"igcadmin/lib/sl"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error)
	Verify(token string) (*entity.Claims, error)
	SessionCookie(token string) *http.Cookie
	ClearCookie() *http.Cookie
}

type LifecycleService interface {
	Register(ctx context.Context, team *entity.TeamRegistration) (*entity.TeamRegistration, error)
	Approve(ctx context.Context, teamName, actionedBy string) (*entity.TeamRegistration, error)
	Reject(ctx context.Context, teamName, reason, actionedBy string) (*entity.TeamRegistration, error)
	Counts(ctx context.Context) (*entity.TeamCounts, error)
}

type Store interface {
	GetTeams(ctx context.Context) ([]*entity.TeamRegistration, error)
}

type Core struct {
	auth      AuthService
	lifecycle LifecycleService
	store     Store
	log       *slog.Logger
}

func New(auth AuthService, lifecycle LifecycleService, store Store, log *slog.Logger) *Core {
	if auth == nil || lifecycle == nil || store == nil {
		panic("core: missing service")
	}
	return &Core{
		auth:      auth,
		lifecycle: lifecycle,
		store:     store,
		log:       log.With(sl.Module("core")),
	}
}

func (c *Core) Login(ctx context.Context, username, password string) (string, error) {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return "", fmt.Errorf("%w: username and password are required", entity.ErrValidation)
	}
	return c.auth.Login(ctx, username, password)
}

// VerifyToken is the hook the authenticate middleware calls on every
// protected request.
func (c *Core) VerifyToken(token string) (*entity.Claims, error) {
	return c.auth.Verify(token)
}

func (c *Core) SessionCookie(token string) *http.Cookie {
	return c.auth.SessionCookie(token)
}

func (c *Core) ClearCookie() *http.Cookie {
	return c.auth.ClearCookie()
}

// ListTeams returns every registration; an empty store is a distinct
// signal, not a plain empty slice.
func (c *Core) ListTeams(ctx context.Context) ([]*entity.TeamRegistration, error) {
	teams, err := c.store.GetTeams(ctx)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, entity.ErrNoTeams
	}
	return teams, nil
}

func (c *Core) AcceptTeam(ctx context.Context, teamName, actionedBy string) (*entity.TeamRegistration, error) {
	if strings.TrimSpace(teamName) == "" {
		return nil, fmt.Errorf("%w: teamName is required", entity.ErrValidation)
	}
	if strings.TrimSpace(actionedBy) == "" {
		return nil, fmt.Errorf("%w: actionedBy is required", entity.ErrValidation)
	}
	return c.lifecycle.Approve(ctx, teamName, actionedBy)
}

func (c *Core) RejectTeam(ctx context.Context, teamName, reason, actionedBy string) (*entity.TeamRegistration, error) {
	if strings.TrimSpace(teamName) == "" {
		return nil, fmt.Errorf("%w: teamName is required", entity.ErrValidation)
	}
	if strings.TrimSpace(actionedBy) == "" {
		return nil, fmt.Errorf("%w: actionedBy is required", entity.ErrValidation)
	}
	return c.lifecycle.Reject(ctx, teamName, reason, actionedBy)
}

func (c *Core) TeamCounts(ctx context.Context) (*entity.TeamCounts, error) {
	return c.lifecycle.Counts(ctx)
}

func (c *Core) SubmitRegistration(ctx context.Context, team *entity.TeamRegistration) (*entity.TeamRegistration, error) {
	return c.lifecycle.Register(ctx, team)
}
