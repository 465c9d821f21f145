package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends transactional email (OTP codes, password-reset links).
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

type SMTPMailer struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
	fromName  string
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func NewSMTPMailer(config *SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:      config.Host,
		port:      config.Port,
		username:  config.Username,
		password:  config.Password,
		fromEmail: config.FromEmail,
		fromName:  config.FromName,
	}
}

func (m *SMTPMailer) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.fromName, m.fromEmail))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, m.fromEmail, []string{to}, []byte(msg.String()))
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
