// Package lifecycle owns the team registration state machine: identifier
// assignment on first save and the pending → approved/rejected transitions.
// The store owns persistence only; all transition rules live here.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"igcadmin/entity"
	"igcadmin/lib/sl"
)

type Store interface {
	GetTeamByName(ctx context.Context, teamName string) (*entity.TeamRegistration, error)
	InsertTeam(ctx context.Context, team *entity.TeamRegistration) error
	UpdateTeam(ctx context.Context, team *entity.TeamRegistration) error
	CountTeams(ctx context.Context, status entity.TeamStatus) (int64, error)
	NextSequence(ctx context.Context) (int64, error)
}

// Notifier is the outbound email sink. Send failures never roll back a
// status change that is already durable.
type Notifier interface {
	SendAcceptance(ctx context.Context, to, registrationNumber string) error
	SendRejection(ctx context.Context, to, teamName string) error
}

// Alerter pushes operational events to the admin chat. Best effort.
type Alerter interface {
	TeamRegistered(team *entity.TeamRegistration)
	TeamApproved(team *entity.TeamRegistration)
	TeamRejected(team *entity.TeamRegistration)
}

type Manager struct {
	store Store
	mail  Notifier
	alert Alerter
	log   *slog.Logger
}

// New builds a Manager. mail and alert may be nil when the corresponding
// channel is not configured.
func New(store Store, mail Notifier, alert Alerter, log *slog.Logger) *Manager {
	return &Manager{
		store: store,
		mail:  mail,
		alert: alert,
		log:   log.With(sl.Module("lifecycle")),
	}
}

// Register validates a new submission, assigns identifiers and persists it
// in pending status.
func (m *Manager) Register(ctx context.Context, team *entity.TeamRegistration) (*entity.TeamRegistration, error) {
	if err := team.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}
	if _, err := m.store.GetTeamByName(ctx, team.TeamName); err == nil {
		return nil, fmt.Errorf("%w: team %s already registered", entity.ErrConflict, team.TeamName)
	}

	team.RegistrationStatus = entity.StatusPending
	team.SubmittedAt = time.Now()
	if err := m.AssignIdentifiers(ctx, team); err != nil {
		return nil, err
	}
	if err := m.store.InsertTeam(ctx, team); err != nil {
		return nil, err
	}
	m.log.Info("team registered",
		slog.String("team", team.TeamName),
		slog.String("registration_number", team.RegistrationNumber),
	)
	if m.alert != nil {
		m.alert.TeamRegistered(team)
	}
	return team, nil
}

// AssignIdentifiers gives a record its registration number and team id.
// Both derive from one draw of the atomic counter, so they always carry the
// same sequence value. No-op when the record already has both; a record is
// never saved with only one of the pair.
func (m *Manager) AssignIdentifiers(ctx context.Context, team *entity.TeamRegistration) error {
	if team.RegistrationNumber != "" && team.TeamId != "" {
		return nil
	}
	seq, err := m.store.NextSequence(ctx)
	if err != nil {
		return err
	}
	team.RegistrationNumber = fmt.Sprintf("PCCOEIGC%03d", seq)
	team.TeamId = fmt.Sprintf("IGC%03d", seq)
	return nil
}

// Approve moves a pending team to approved, stamps approvedAt on the first
// transition only, persists, and sends the acceptance email. Replaying an
// approval succeeds without re-stamping; approving a rejected team is a
// conflict.
func (m *Manager) Approve(ctx context.Context, teamName, actionedBy string) (*entity.TeamRegistration, error) {
	team, err := m.adjudicate(ctx, teamName, actionedBy, entity.StatusApproved)
	if err != nil {
		return nil, err
	}
	if team.ApprovedAt == nil {
		now := time.Now()
		team.ApprovedAt = &now
	}
	if err = m.store.UpdateTeam(ctx, team); err != nil {
		return nil, err
	}
	m.log.Info("team approved",
		slog.String("team", team.TeamName),
		slog.String("actioned_by", actionedBy),
	)

	if m.mail != nil {
		if err = m.mail.SendAcceptance(ctx, team.LeaderEmail, team.RegistrationNumber); err != nil {
			m.log.Error("acceptance email not sent", sl.Err(err), slog.String("team", team.TeamName))
		}
	}
	if m.alert != nil {
		m.alert.TeamApproved(team)
	}
	return team, nil
}

// Reject mirrors Approve for the rejected status. An empty reason stores
// the default text; an explicit reason is stored verbatim.
func (m *Manager) Reject(ctx context.Context, teamName, reason, actionedBy string) (*entity.TeamRegistration, error) {
	team, err := m.adjudicate(ctx, teamName, actionedBy, entity.StatusRejected)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(reason) == "" {
		reason = entity.DefaultRejectionReason
	}
	team.RejectionReason = reason
	if team.RejectedAt == nil {
		now := time.Now()
		team.RejectedAt = &now
	}
	if err = m.store.UpdateTeam(ctx, team); err != nil {
		return nil, err
	}
	m.log.Info("team rejected",
		slog.String("team", team.TeamName),
		slog.String("actioned_by", actionedBy),
	)

	if m.mail != nil {
		if err = m.mail.SendRejection(ctx, team.LeaderEmail, team.TeamName); err != nil {
			m.log.Error("rejection email not sent", sl.Err(err), slog.String("team", team.TeamName))
		}
	}
	if m.alert != nil {
		m.alert.TeamRejected(team)
	}
	return team, nil
}

// adjudicate loads the record and applies the transition guard shared by
// Approve and Reject. Replays of the same decision pass through; crossing
// an earlier decision is a conflict.
func (m *Manager) adjudicate(ctx context.Context, teamName, actionedBy string, target entity.TeamStatus) (*entity.TeamRegistration, error) {
	if strings.TrimSpace(actionedBy) == "" {
		return nil, fmt.Errorf("%w: actionedBy is required", entity.ErrValidation)
	}
	team, err := m.store.GetTeamByName(ctx, teamName)
	if err != nil {
		return nil, err
	}
	if team.RegistrationStatus != entity.StatusPending && team.RegistrationStatus != target {
		return nil, fmt.Errorf("%w: team %s already %s", entity.ErrConflict, teamName, team.RegistrationStatus)
	}
	team.RegistrationStatus = target
	team.ActionedBy = actionedBy
	return team, nil
}

// Counts returns the status aggregates. Four independent counts, matching
// the count endpoint's contract; total always equals the sum of the rest.
func (m *Manager) Counts(ctx context.Context) (*entity.TeamCounts, error) {
	total, err := m.store.CountTeams(ctx, "")
	if err != nil {
		return nil, err
	}
	approved, err := m.store.CountTeams(ctx, entity.StatusApproved)
	if err != nil {
		return nil, err
	}
	pending, err := m.store.CountTeams(ctx, entity.StatusPending)
	if err != nil {
		return nil, err
	}
	rejected, err := m.store.CountTeams(ctx, entity.StatusRejected)
	if err != nil {
		return nil, err
	}
	return &entity.TeamCounts{
		Total:    total,
		Approved: approved,
		Pending:  pending,
		Rejected: rejected,
	}, nil
}
