package services

import (
	"fmt"
	"net/smtp"

	"github.com/jueviolegrace13/account-management/internal/config"
)

// SMTPMailer sends invitation emails through a plain SMTP endpoint.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewSMTPMailer creates a mailer from config, or nil when no SMTP host is
// configured so invitation delivery is skipped entirely.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

// SendInvitation emails the acceptance link to the invited address.
func (m *SMTPMailer) SendInvitation(to, workspaceName, link string) error {
	subject := fmt.Sprintf("You have been invited to %s", workspaceName)
	body := fmt.Sprintf(
		"You have been invited to join the workspace %q.\r\n\r\n"+
			"Open the link below to accept the invitation. It expires in 7 days.\r\n\r\n%s\r\n",
		workspaceName, link,
	)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		m.from, to, subject, body,
	))

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
