package mailer

import (
	"fmt"

	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
)

func reminderTemplate(r Reminder) (string, string) {
	subject := fmt.Sprintf("Payment reminder: invoice %s", r.InvoiceID)

	signature := r.SenderName
	if signature == "" {
		signature = "Accounts"
	}

	body := fmt.Sprintf(`Hi %s,

This is a friendly reminder that invoice %s for $%s is due on %s.

If you have already paid, please ignore this email.

Best,
%s`, r.CustomerName, r.InvoiceID, models.FormatAmount(r.Amount), r.DueDate, signature)

	return subject, body
}
