// Package mailer sends the acceptance and rejection notifications through
// the Mailjet send API (v3.1). The mailer only delivers; whether and with
// what data to notify is decided by the lifecycle manager.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"igcadmin/entity"
	"igcadmin/internal/config"
	"igcadmin/lib/sl"
)

const sendEndpoint = "https://api.mailjet.com/v3.1/send"

type Mailer struct {
	hc        *http.Client
	keyPublic string
	keySecret string
	fromEmail string
	fromName  string
	log       *slog.Logger
}

// New builds a Mailer, or nil when no API keys are configured so callers
// can treat email as disabled.
func New(conf config.MailjetConfig, logger *slog.Logger) *Mailer {
	if conf.APIKeyPublic == "" || conf.APIKeyPrivate == "" {
		return nil
	}
	return &Mailer{
		hc:        &http.Client{Timeout: 10 * time.Second},
		keyPublic: conf.APIKeyPublic,
		keySecret: conf.APIKeyPrivate,
		fromEmail: conf.FromEmail,
		fromName:  conf.FromName,
		log:       logger.With(sl.Module("mailer")),
	}
}

type message struct {
	From     party   `json:"From"`
	To       []party `json:"To"`
	Subject  string  `json:"Subject"`
	HTMLPart string  `json:"HTMLPart"`
}

type party struct {
	Email string `json:"Email"`
	Name  string `json:"Name,omitempty"`
}

// SendAcceptance notifies the team leader that the team made it to the
// next round, quoting the registration number.
func (m *Mailer) SendAcceptance(ctx context.Context, to, registrationNumber string) error {
	subject := "Selection for Round 2 - " + hackathonName
	body := fmt.Sprintf(acceptanceBody, registrationNumber)
	return m.send(ctx, to, subject, body)
}

// SendRejection notifies the team leader that the team was not selected.
func (m *Mailer) SendRejection(ctx context.Context, to, teamName string) error {
	subject := "Hackathon Selection Update - " + hackathonName
	body := fmt.Sprintf(rejectionBody, teamName, hackathonName, hackathonName)
	return m.send(ctx, to, subject, body)
}

func (m *Mailer) send(ctx context.Context, to, subject, htmlPart string) error {
	log := m.log.With(
		slog.String("to", to),
		slog.String("subject", subject),
	)

	status := "ERROR"
	t1 := time.Now()
	defer func() {
		log.Debug("mailjet request completed",
			slog.String("duration", fmt.Sprintf("%.3fms", float64(time.Since(t1))/float64(time.Millisecond))),
			slog.String("status", status))
	}()

	payload := map[string]interface{}{
		"Messages": []message{
			{
				From:     party{Email: m.fromEmail, Name: m.fromName},
				To:       []party{{Email: to}},
				Subject:  subject,
				HTMLPart: htmlPart,
			},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", entity.ErrNotification, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sendEndpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", entity.ErrNotification, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(m.keyPublic, m.keySecret)

	resp, err := m.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrNotification, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	status = resp.Status
	if resp.StatusCode >= 300 {
		log.Error("mailjet returned error",
			slog.String("status", resp.Status),
			slog.String("body", string(body)))
		return fmt.Errorf("%w: mailjet %s", entity.ErrNotification, resp.Status)
	}
	return nil
}

const hackathonName = "Indradhanu: PCCOE International Grand Challenge 2025"

const acceptanceBody = `<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Selection for Round 2 - Indradhanu: PCCOE International Grand Challenge 2025</h2>
  <p>Dear Team Leader and Team Members,</p>
  <p>Greetings from the PCCOE International Grand Challenge Team!</p>
  <h3>Congratulations!</h3>
  <p>We are pleased to inform you that your team, <strong>Registration ID: %s</strong>, has been selected for the second round of the Indradhanu: PCCOE International Grand Challenge 2025.</p>
  <p>As part of this phase, you are required to upload a video of your working prototype on YouTube and submit the link via the official submission form.</p>
  <p>For the detailed event timeline, rules, and updates, kindly refer to the official website.</p>
  <br/>
  <p>Warm regards,</p>
  <p>Team Indradhanu 2025<br/>
  Pimpri Chinchwad College of Engineering (PCCOE)</p>
</div>`

const rejectionBody = `<div style="font-family: Arial, sans-serif; padding: 20px;">
  <h2>Hackathon Selection Update</h2>
  <p>Dear <strong>%s</strong> Team,</p>
  <p>Thank you for participating in <strong>%s</strong> and for the time, effort, and creativity you invested in your submission.</p>
  <p>After careful evaluation by our panel members, we regret to inform you that your team has not been selected to proceed to the next stage of the hackathon.</p>
  <p>We truly appreciate your contribution and enthusiasm, and we encourage you to continue refining your project. We look forward to seeing your participation in our future events.</p>
  <br/>
  <p>Best regards,</p>
  <p>IR Cell PCCoE, Pune<br/>
  Convener, %s</p>
</div>`
