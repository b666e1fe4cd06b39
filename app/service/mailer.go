package service

import (
	"fmt"

	"github.com/vibast-solutions/ms-go-trading/config"

	"gopkg.in/gomail.v2"
)

// Mailer delivers password-reset links. Implementations send a single message
// per call with no retry or delivery confirmation.
type Mailer interface {
	SendPasswordReset(to, resetLink string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	if cfg.SMTPPort == 465 {
		dialer.SSL = true
	}

	return &SMTPMailer{
		dialer: dialer,
		from:   cfg.SMTPFrom,
	}
}

func (m *SMTPMailer) SendPasswordReset(to, resetLink string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Reset your password")
	msg.SetBody("text/plain", fmt.Sprintf("Please use the link below to reset your password:\n%s\n", resetLink))

	return m.dialer.DialAndSend(msg)
}
