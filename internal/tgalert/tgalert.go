// Package tgalert posts operational events to a single admin Telegram chat:
// new registrations, adjudication outcomes, and mirrored ERROR-level log
// records. Everything is best effort; a failed send is only logged.
package tgalert

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"

	"igcadmin/entity"
	"igcadmin/lib/sl"
)

type Alert struct {
	api    *tgbotapi.Bot
	chatId int64
	log    *slog.Logger
}

func New(apiKey string, chatId int64, logger *slog.Logger) (*Alert, error) {
	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	return &Alert{
		api:    api,
		chatId: chatId,
		log:    logger.With(sl.Module("tgalert")),
	}, nil
}

func (a *Alert) TeamRegistered(team *entity.TeamRegistration) {
	a.send(fmt.Sprintf("New registration: *%s* (%s)\nLeader: %s\nTeam size: %d",
		team.TeamName, team.RegistrationNumber, team.LeaderName, team.TeamSize()))
}

func (a *Alert) TeamApproved(team *entity.TeamRegistration) {
	a.send(fmt.Sprintf("Approved: *%s* (%s) by %s",
		team.TeamName, team.RegistrationNumber, team.ActionedBy))
}

func (a *Alert) TeamRejected(team *entity.TeamRegistration) {
	a.send(fmt.Sprintf("Rejected: *%s* (%s) by %s\nReason: %s",
		team.TeamName, team.RegistrationNumber, team.ActionedBy, team.RejectionReason))
}

// SendMessageWithLevel implements logger.Sender so ERROR-level log records
// reach the admin chat.
func (a *Alert) SendMessageWithLevel(msg string, _ slog.Level) {
	a.send(msg)
}

func (a *Alert) send(msg string) {
	_, err := a.api.SendMessage(a.chatId, msg, &tgbotapi.SendMessageOpts{
		ParseMode: "Markdown",
	})
	if err != nil {
		a.log.Error("sending telegram message", sl.Err(err))
	}
}
