package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
)

// EmailSender is the part of the Resend client used here.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendMailer sends through the Resend API. The user's sender address is
// the From header and must belong to a domain verified with Resend; the
// app password is not used.
type ResendMailer struct {
	emails EmailSender
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{emails: resend.NewClient(apiKey).Emails}
}

func (m *ResendMailer) SendReminder(ctx context.Context, r Reminder, cfg models.EmailConfig) error {
	if err := requireSender(cfg, false); err != nil {
		return err
	}

	subject, body := reminderTemplate(r)
	params := &resend.SendEmailRequest{
		From:    cfg.Email,
		To:      []string{r.CustomerEmail},
		Subject: subject,
		Text:    body,
	}

	if _, err := m.emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
