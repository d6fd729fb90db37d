package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/easyinvoice/internal/client/export"
	"github.com/dmitrijs2005/easyinvoice/internal/client/mailer"
	"github.com/dmitrijs2005/easyinvoice/internal/client/models"
	"github.com/dmitrijs2005/easyinvoice/internal/common"
)

// Export renders the invoice to PDF and hands it to the configured sink.
// Render and save failures are reported as a message; the store is never
// touched.
func (a *App) Export(ctx context.Context, id string) error {
	user, inv, err := a.ownInvoice(ctx, id)
	if err != nil {
		return err
	}
	cust, err := a.invoiceService.FindCustomerByID(ctx, inv.CustomerID)
	if err != nil {
		return err
	}

	doc, err := export.Build(*inv, *cust, user, export.Options{RowsPerPage: a.config.RowsPerPage})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := a.renderer.Render(&buf, doc); err != nil {
		a.log.Error(ctx, "pdf render failed", "invoice_id", inv.ID, "error", err)
		fmt.Fprintf(a.out, "Failed to export invoice %s\n", inv.ID)
		return nil
	}

	loc, err := a.sink.Save(ctx, doc.FileName, &buf)
	if err != nil {
		a.log.Error(ctx, "saving pdf failed", "invoice_id", inv.ID, "error", err)
		fmt.Fprintf(a.out, "Failed to export invoice %s\n", inv.ID)
		return nil
	}

	a.log.Info(ctx, "invoice exported", "invoice_id", inv.ID, "location", loc)
	fmt.Fprintf(a.out, "Invoice saved to %s\n", loc)
	return nil
}

var errAlreadyPaid = errors.New("reminders are only sent for pending invoices")

// Remind emails the customer of a pending invoice using the sender
// credentials from the session.
func (a *App) Remind(ctx context.Context, id string) error {
	user, inv, err := a.ownInvoice(ctx, id)
	if err != nil {
		return err
	}
	if inv.Status != models.StatusPending {
		return errAlreadyPaid
	}
	if !user.HasEmailConfig() {
		return common.ErrEmailNotConfigured
	}
	cust, err := a.invoiceService.FindCustomerByID(ctx, inv.CustomerID)
	if err != nil {
		return err
	}

	res := mailer.Notify(ctx, a.mailer, mailer.NewReminder(*inv, *cust, user), *user.EmailConfig, a.log)
	fmt.Fprintln(a.out, res.Message)
	return nil
}
