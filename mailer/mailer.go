// Package mailer delivers transactional email. Delivery is
// best-effort: failures are logged and never surfaced to the request
// that triggered the send.
package mailer

import (
	"github.com/bookify/reservations-api/config"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

type Mailer interface {
	Send(to, subject, body string)
}

// Default is the active mailer. Init swaps in the SendGrid client
// when an API key is configured; otherwise mail is only logged.
var Default Mailer = logMailer{}

func Init() {
	if config.SendGridKey != "" {
		Default = &sendGridMailer{client: sendgrid.NewSendClient(config.SendGridKey)}
		logrus.Info("mailer: using sendgrid")
		return
	}
	logrus.Info("mailer: no SENDGRID_API_KEY set, logging mail instead")
}

func Send(to, subject, body string) {
	Default.Send(to, subject, body)
}

type sendGridMailer struct {
	client *sendgrid.Client
}

func (m *sendGridMailer) Send(to, subject, body string) {
	msg := sgmail.NewSingleEmail(
		sgmail.NewEmail("Bookify", config.MailFrom),
		subject,
		sgmail.NewEmail("", to),
		body,
		body,
	)
	resp, err := m.client.Send(msg)
	if err != nil {
		logrus.WithError(err).WithField("to", to).Error("mailer: send failed")
		return
	}
	if resp.StatusCode >= 400 {
		logrus.WithFields(logrus.Fields{"to": to, "status": resp.StatusCode}).Error("mailer: send rejected")
	}
}

type logMailer struct{}

func (logMailer) Send(to, subject, body string) {
	logrus.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
		"body":    body,
	}).Info("mailer: outgoing mail")
}
