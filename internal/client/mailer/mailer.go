// Package mailer sends payment reminders for pending invoices.
package mailer

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/common"
	"github.com/dmitrijs2005/easyinvoice/internal/logging"
)

// Reminder is what a reminder email says.
type Reminder struct {
	InvoiceID     string
	CustomerName  string
	CustomerEmail string
	Amount        float64
	DueDate       string
	SenderName    string
}

// NewReminder fills a Reminder from a stored invoice and its customer.
func NewReminder(inv models.Invoice, cust models.Customer, sender *models.User) Reminder {
	r := Reminder{
		InvoiceID:     inv.ID,
		CustomerName:  cust.Name,
		CustomerEmail: cust.Email,
		Amount:        inv.Total,
		DueDate:       inv.DueDate,
	}
	if sender != nil {
		r.SenderName = sender.Name
	}
	return r
}

// Mailer delivers one reminder using the sender credentials in cfg.
type Mailer interface {
	SendReminder(ctx context.Context, r Reminder, cfg models.EmailConfig) error
}

// Result is the user-facing outcome of a send attempt.
type Result struct {
	Success bool
	Message string
}

// Notify sends r and converts the outcome into a Result. The failure
// reason is logged, not shown.
func Notify(ctx context.Context, m Mailer, r Reminder, cfg models.EmailConfig, log logging.Logger) Result {
	if err := m.SendReminder(ctx, r, cfg); err != nil {
		log.Error(ctx, "reminder failed", "invoice_id", r.InvoiceID, "to", r.CustomerEmail, "error", err)
		return Result{Message: fmt.Sprintf("Failed to send reminder email to %s", r.CustomerEmail)}
	}
	log.Info(ctx, "reminder sent", "invoice_id", r.InvoiceID, "to", r.CustomerEmail)
	return Result{Success: true, Message: fmt.Sprintf("Reminder email sent successfully to %s", r.CustomerEmail)}
}

func requireSender(cfg models.EmailConfig, needSecret bool) error {
	if cfg.Email == "" || (needSecret && cfg.AppPassword == "") {
		return common.ErrEmailNotConfigured
	}
	return nil
}
