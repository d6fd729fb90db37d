package mailer

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
)

// DefaultSMTPAddr is Gmail's submission port, used with app passwords.
const DefaultSMTPAddr = "smtp.gmail.com:587"

var sendMail = smtp.SendMail

// SMTPMailer authenticates as the sender with PLAIN auth.
type SMTPMailer struct {
	addr string
}

func NewSMTPMailer(addr string) *SMTPMailer {
	if addr == "" {
		addr = DefaultSMTPAddr
	}
	return &SMTPMailer{addr: addr}
}

func (m *SMTPMailer) SendReminder(ctx context.Context, r Reminder, cfg models.EmailConfig) error {
	if err := requireSender(cfg, true); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	host, _, err := net.SplitHostPort(m.addr)
	if err != nil {
		return fmt.Errorf("invalid smtp address %q: %w", m.addr, err)
	}

	subject, body := reminderTemplate(r)
	msg := buildMessage(cfg.Email, r.CustomerEmail, subject, body)
	auth := smtp.PlainAuth("", cfg.Email, cfg.AppPassword, host)

	if err := sendMail(m.addr, auth, cfg.Email, []string{r.CustomerEmail}, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return []byte(b.String())
}
