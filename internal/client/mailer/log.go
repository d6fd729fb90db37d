package mailer

import (
	"context"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/logging"
)

// LogMailer logs reminders instead of sending them.
type LogMailer struct {
	log logging.Logger
}

func NewLogMailer(log logging.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) SendReminder(ctx context.Context, r Reminder, cfg models.EmailConfig) error {
	if err := requireSender(cfg, false); err != nil {
		return err
	}
	subject, body := reminderTemplate(r)
	m.log.Info(ctx, "email sent (dev mode)", "from", cfg.Email, "to", r.CustomerEmail, "subject", subject, "body", body)
	return nil
}
